// controllers/contractor.go
package controllers

import (
	"errors"
	"net/http"

	"jobtract-backend/config"
	"jobtract-backend/models"
	"jobtract-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateContractorInput struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Trade   string `json:"trade"`
	Notes   string `json:"notes"`
}

type UpdateContractorInput struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Trade   *string `json:"trade"`
	Notes   *string `json:"notes"`
}

// CreateContractor adds a subcontractor to the user's contact list.
func CreateContractor(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var input CreateContractorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	contractor := models.Contractor{
		ID:      uuid.New(),
		UserID:  userID,
		Name:    input.Name,
		Company: input.Company,
		Phone:   input.Phone,
		Email:   input.Email,
		Trade:   input.Trade,
		Notes:   input.Notes,
	}

	if err := config.DB.Create(&contractor).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create contractor")
		return
	}

	c.JSON(http.StatusCreated, contractor)
}

// GetContractors retrieves all contractors for the user.
func GetContractors(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var contractors []models.Contractor
	if err := config.DB.Where("user_id = ?", userID).
		Order("name ASC").
		Find(&contractors).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contractors")
		return
	}

	c.JSON(http.StatusOK, contractors)
}

// GetContractor retrieves a specific contractor by ID.
func GetContractor(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	contractorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contractor ID format")
		return
	}

	var contractor models.Contractor
	if err := config.DB.Where("user_id = ? AND id = ?", userID, contractorUUID).
		First(&contractor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Contractor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, contractor)
}

// UpdateContractor updates an existing contractor.
func UpdateContractor(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	contractorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contractor ID format")
		return
	}

	var input UpdateContractorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != nil && *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	var contractor models.Contractor
	if err := config.DB.Where("user_id = ? AND id = ?", userID, contractorUUID).
		First(&contractor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Contractor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		contractor.Name = *input.Name
	}
	if input.Company != nil {
		contractor.Company = *input.Company
	}
	if input.Phone != nil {
		contractor.Phone = *input.Phone
	}
	if input.Email != nil {
		contractor.Email = *input.Email
	}
	if input.Trade != nil {
		contractor.Trade = *input.Trade
	}
	if input.Notes != nil {
		contractor.Notes = *input.Notes
	}

	if err := config.DB.Save(&contractor).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update contractor")
		return
	}

	c.JSON(http.StatusOK, contractor)
}

// DeleteContractor soft deletes a contractor.
func DeleteContractor(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	contractorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contractor ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, contractorUUID).
		Delete(&models.Contractor{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete contractor")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Contractor not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contractor deleted successfully"})
}

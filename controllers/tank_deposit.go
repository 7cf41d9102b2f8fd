// controllers/tank_deposit.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"jobtract-backend/config"
	"jobtract-backend/models"
	"jobtract-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateTankDepositInput struct {
	ProjectID   *uuid.UUID  `json:"projectId"`
	Client      string      `json:"client" binding:"required"`
	Project     string      `json:"project"`
	TankType    string      `json:"tankType"`
	Amount      interface{} `json:"amount"`
	DepositDate *time.Time  `json:"depositDate"`
	ReturnDate  *time.Time  `json:"returnDate"`
	Status      string      `json:"status"`
	PhotoPath   string      `json:"photoPath"`
	Notes       string      `json:"notes"`
}

type UpdateTankDepositInput struct {
	ProjectID   *uuid.UUID  `json:"projectId"`
	Client      *string     `json:"client"`
	Project     *string     `json:"project"`
	TankType    *string     `json:"tankType"`
	Amount      interface{} `json:"amount"`
	DepositDate *time.Time  `json:"depositDate"`
	ReturnDate  *time.Time  `json:"returnDate"`
	Status      *string     `json:"status"`
	PhotoPath   *string     `json:"photoPath"`
	Notes       *string     `json:"notes"`
}

// CreateTankDeposit records a refundable tank deposit held against a client.
func CreateTankDeposit(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var input CreateTankDepositInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	status := input.Status
	if status == "" {
		status = "Active"
	}

	deposit := models.TankDeposit{
		ID:          uuid.New(),
		UserID:      userID,
		ProjectID:   input.ProjectID,
		Client:      input.Client,
		Project:     input.Project,
		TankType:    input.TankType,
		Amount:      ledgerNumber(input.Amount),
		DepositDate: input.DepositDate,
		ReturnDate:  input.ReturnDate,
		Status:      status,
		PhotoPath:   input.PhotoPath,
		Notes:       input.Notes,
	}

	if err := config.DB.Create(&deposit).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create tank deposit")
		return
	}

	c.JSON(http.StatusCreated, deposit)
}

// GetTankDeposits retrieves all tank deposits for the user.
func GetTankDeposits(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var deposits []models.TankDeposit
	if err := config.DB.Where("user_id = ?", userID).
		Order("deposit_date DESC NULLS LAST").
		Find(&deposits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tank deposits")
		return
	}

	c.JSON(http.StatusOK, deposits)
}

// GetTankDeposit retrieves a specific tank deposit by ID.
func GetTankDeposit(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	depositUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid tank deposit ID format")
		return
	}

	var deposit models.TankDeposit
	if err := config.DB.Where("user_id = ? AND id = ?", userID, depositUUID).
		First(&deposit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Tank deposit not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, deposit)
}

// UpdateTankDeposit updates an existing tank deposit.
func UpdateTankDeposit(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	depositUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid tank deposit ID format")
		return
	}

	var input UpdateTankDepositInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var deposit models.TankDeposit
	if err := config.DB.Where("user_id = ? AND id = ?", userID, depositUUID).
		First(&deposit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Tank deposit not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ProjectID != nil {
		deposit.ProjectID = input.ProjectID
	}
	if input.Client != nil {
		deposit.Client = *input.Client
	}
	if input.Project != nil {
		deposit.Project = *input.Project
	}
	if input.TankType != nil {
		deposit.TankType = *input.TankType
	}
	if input.Amount != nil {
		deposit.Amount = ledgerNumber(input.Amount)
	}
	if input.DepositDate != nil {
		deposit.DepositDate = input.DepositDate
	}
	if input.ReturnDate != nil {
		deposit.ReturnDate = input.ReturnDate
	}
	if input.Status != nil {
		deposit.Status = *input.Status
	}
	if input.PhotoPath != nil {
		deposit.PhotoPath = *input.PhotoPath
	}
	if input.Notes != nil {
		deposit.Notes = *input.Notes
	}

	if err := config.DB.Save(&deposit).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update tank deposit")
		return
	}

	c.JSON(http.StatusOK, deposit)
}

// DeleteTankDeposit soft deletes a tank deposit.
func DeleteTankDeposit(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	depositUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid tank deposit ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, depositUUID).
		Delete(&models.TankDeposit{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete tank deposit")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Tank deposit not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tank deposit deleted successfully"})
}

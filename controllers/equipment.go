// controllers/equipment.go
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

type CreateEquipmentInput struct {
	Name             string      `json:"name" binding:"required"`
	Type             string      `json:"type"`
	Model            string      `json:"model"`
	SerialNumber     string      `json:"serialNumber"`
	PurchaseDate     *time.Time  `json:"purchaseDate"`
	PurchasePrice    interface{} `json:"purchasePrice"`
	Status           string      `json:"status"`
	Location         string      `json:"location"`
	LastMaintenance  *time.Time  `json:"lastMaintenance"`
	NextMaintenance  *time.Time  `json:"nextMaintenance"`
	MaintenanceNotes string      `json:"maintenanceNotes"`
	Operator         string      `json:"operator"`
	FuelType         string      `json:"fuelType"`
	HoursOperated    interface{} `json:"hoursOperated"`
	InsuranceExpiry  *time.Time  `json:"insuranceExpiry"`
	Registration     string      `json:"registration"`
	Condition        string      `json:"condition"`
	WarrantyExpiry   *time.Time  `json:"warrantyExpiry"`
	Supplier         string      `json:"supplier"`
	PhotoPath        string      `json:"photoPath"`
	Notes            string      `json:"notes"`
}

type UpdateEquipmentInput struct {
	Name             *string     `json:"name"`
	Type             *string     `json:"type"`
	Model            *string     `json:"model"`
	SerialNumber     *string     `json:"serialNumber"`
	PurchaseDate     *time.Time  `json:"purchaseDate"`
	PurchasePrice    interface{} `json:"purchasePrice"`
	Status           *string     `json:"status"`
	Location         *string     `json:"location"`
	LastMaintenance  *time.Time  `json:"lastMaintenance"`
	NextMaintenance  *time.Time  `json:"nextMaintenance"`
	MaintenanceNotes *string     `json:"maintenanceNotes"`
	Operator         *string     `json:"operator"`
	FuelType         *string     `json:"fuelType"`
	HoursOperated    interface{} `json:"hoursOperated"`
	InsuranceExpiry  *time.Time  `json:"insuranceExpiry"`
	Registration     *string     `json:"registration"`
	Condition        *string     `json:"condition"`
	WarrantyExpiry   *time.Time  `json:"warrantyExpiry"`
	Supplier         *string     `json:"supplier"`
	PhotoPath        *string     `json:"photoPath"`
	Notes            *string     `json:"notes"`
}

// CreateEquipment registers a new piece of equipment. Purchase price and
// operating hours tolerate the form sending them as strings.
func CreateEquipment(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var input CreateEquipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	status := input.Status
	if status == "" {
		status = "Available"
	}

	equipment := models.Equipment{
		ID:               uuid.New(),
		UserID:           userID,
		Name:             input.Name,
		Type:             input.Type,
		ModelName:        input.Model,
		SerialNumber:     input.SerialNumber,
		PurchaseDate:     input.PurchaseDate,
		PurchasePrice:    ledgerNumber(input.PurchasePrice),
		Status:           status,
		Location:         input.Location,
		LastMaintenance:  input.LastMaintenance,
		NextMaintenance:  input.NextMaintenance,
		MaintenanceNotes: input.MaintenanceNotes,
		Operator:         input.Operator,
		FuelType:         input.FuelType,
		HoursOperated:    ledgerNumber(input.HoursOperated),
		InsuranceExpiry:  input.InsuranceExpiry,
		Registration:     input.Registration,
		Condition:        input.Condition,
		WarrantyExpiry:   input.WarrantyExpiry,
		Supplier:         input.Supplier,
		PhotoPath:        input.PhotoPath,
		Notes:            input.Notes,
	}

	if err := config.DB.Create(&equipment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create equipment")
		return
	}

	c.JSON(http.StatusCreated, equipment)
}

// GetEquipmentList retrieves all equipment for the user.
func GetEquipmentList(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var equipment []models.Equipment
	if err := config.DB.Where("user_id = ?", userID).
		Order("name ASC").
		Find(&equipment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve equipment")
		return
	}

	c.JSON(http.StatusOK, equipment)
}

// GetEquipment retrieves a specific piece of equipment by ID.
func GetEquipment(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	equipmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid equipment ID format")
		return
	}

	var equipment models.Equipment
	if err := config.DB.Where("user_id = ? AND id = ?", userID, equipmentUUID).
		First(&equipment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Equipment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, equipment)
}

// UpdateEquipment updates an existing piece of equipment.
func UpdateEquipment(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	equipmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid equipment ID format")
		return
	}

	var input UpdateEquipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var equipment models.Equipment
	if err := config.DB.Where("user_id = ? AND id = ?", userID, equipmentUUID).
		First(&equipment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Equipment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		equipment.Name = *input.Name
	}
	if input.Type != nil {
		equipment.Type = *input.Type
	}
	if input.Model != nil {
		equipment.ModelName = *input.Model
	}
	if input.SerialNumber != nil {
		equipment.SerialNumber = *input.SerialNumber
	}
	if input.PurchaseDate != nil {
		equipment.PurchaseDate = input.PurchaseDate
	}
	if input.PurchasePrice != nil {
		equipment.PurchasePrice = ledgerNumber(input.PurchasePrice)
	}
	if input.Status != nil {
		equipment.Status = *input.Status
	}
	if input.Location != nil {
		equipment.Location = *input.Location
	}
	if input.LastMaintenance != nil {
		equipment.LastMaintenance = input.LastMaintenance
	}
	if input.NextMaintenance != nil {
		equipment.NextMaintenance = input.NextMaintenance
	}
	if input.MaintenanceNotes != nil {
		equipment.MaintenanceNotes = *input.MaintenanceNotes
	}
	if input.Operator != nil {
		equipment.Operator = *input.Operator
	}
	if input.FuelType != nil {
		equipment.FuelType = *input.FuelType
	}
	if input.HoursOperated != nil {
		equipment.HoursOperated = ledgerNumber(input.HoursOperated)
	}
	if input.InsuranceExpiry != nil {
		equipment.InsuranceExpiry = input.InsuranceExpiry
	}
	if input.Registration != nil {
		equipment.Registration = *input.Registration
	}
	if input.Condition != nil {
		equipment.Condition = *input.Condition
	}
	if input.WarrantyExpiry != nil {
		equipment.WarrantyExpiry = input.WarrantyExpiry
	}
	if input.Supplier != nil {
		equipment.Supplier = *input.Supplier
	}
	if input.PhotoPath != nil {
		equipment.PhotoPath = *input.PhotoPath
	}
	if input.Notes != nil {
		equipment.Notes = *input.Notes
	}

	if err := config.DB.Save(&equipment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update equipment")
		return
	}

	c.JSON(http.StatusOK, equipment)
}

// DeleteEquipment soft deletes a piece of equipment.
func DeleteEquipment(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	equipmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid equipment ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, equipmentUUID).
		Delete(&models.Equipment{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete equipment")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Equipment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Equipment deleted successfully"})
}

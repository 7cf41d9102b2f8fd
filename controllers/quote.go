// controllers/quote.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"jobtract-backend/config"
	"jobtract-backend/ledger"
	"jobtract-backend/models"
	"jobtract-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateQuoteInput struct {
	ClientName         string          `json:"client" binding:"required"`
	ClientAddress      string          `json:"clientAddress"`
	Phone              string          `json:"phone"`
	ClientEmail        string          `json:"email"`
	ProjectDescription string          `json:"description"`
	Status             string          `json:"status"`
	QuoteDate          *time.Time      `json:"quoteDate"`
	ValidUntil         *time.Time      `json:"validUntil"`
	ProjectID          *uuid.UUID      `json:"projectId"`
	LineItems          []LineItemInput `json:"lineItems"`
	PhotoPath          string          `json:"photoPath"`
	Notes              string          `json:"notes"`
}

type UpdateQuoteInput struct {
	ClientName         *string          `json:"client"`
	ClientAddress      *string          `json:"clientAddress"`
	Phone              *string          `json:"phone"`
	ClientEmail        *string          `json:"email"`
	ProjectDescription *string          `json:"description"`
	Status             *string          `json:"status"`
	QuoteDate          *time.Time       `json:"quoteDate"`
	ValidUntil         *time.Time       `json:"validUntil"`
	ProjectID          *uuid.UUID       `json:"projectId"`
	LineItems          *[]LineItemInput `json:"lineItems"`
	PhotoPath          *string          `json:"photoPath"`
	Notes              *string          `json:"notes"`
}

// CreateQuote creates a new quote with server-computed totals.
func CreateQuote(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var input CreateQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	led, err := buildLedger(ledger.PerLine, input.LineItems)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to process line items")
		return
	}
	snap := led.Snapshot()

	status := input.Status
	if status == "" {
		status = "Pending"
	}

	quote := models.Quote{
		ID:                 uuid.New(),
		UserID:             userID,
		ProjectID:          input.ProjectID,
		ClientName:         input.ClientName,
		ClientAddress:      input.ClientAddress,
		Phone:              input.Phone,
		ClientEmail:        input.ClientEmail,
		ProjectDescription: input.ProjectDescription,
		Status:             status,
		QuoteDate:          input.QuoteDate,
		ValidUntil:         input.ValidUntil,
		Subtotal:           snap.Subtotal,
		GSTTotal:           snap.GSTTotal,
		PSTTotal:           snap.PSTTotal,
		Total:              snap.Total,
		LineItems:          storedLineItems(snap),
		PhotoPath:          input.PhotoPath,
		Notes:              input.Notes,
	}

	if err := config.DB.Create(&quote).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create quote")
		return
	}

	c.JSON(http.StatusCreated, quote)
}

// GetQuotes retrieves all quotes for the user.
func GetQuotes(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var quotes []models.Quote
	if err := config.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&quotes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve quotes")
		return
	}

	c.JSON(http.StatusOK, quotes)
}

// GetQuote retrieves a specific quote by ID.
func GetQuote(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	quoteUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	var quote models.Quote
	if err := config.DB.Where("user_id = ? AND id = ?", userID, quoteUUID).
		First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, quote)
}

// UpdateQuote updates an existing quote.
func UpdateQuote(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	quoteUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	var input UpdateQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var quote models.Quote
	if err := config.DB.Where("user_id = ? AND id = ?", userID, quoteUUID).
		First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ClientName != nil {
		quote.ClientName = *input.ClientName
	}
	if input.ClientAddress != nil {
		quote.ClientAddress = *input.ClientAddress
	}
	if input.Phone != nil {
		quote.Phone = *input.Phone
	}
	if input.ClientEmail != nil {
		quote.ClientEmail = *input.ClientEmail
	}
	if input.ProjectDescription != nil {
		quote.ProjectDescription = *input.ProjectDescription
	}
	if input.Status != nil {
		quote.Status = *input.Status
	}
	if input.QuoteDate != nil {
		quote.QuoteDate = input.QuoteDate
	}
	if input.ValidUntil != nil {
		quote.ValidUntil = input.ValidUntil
	}
	if input.ProjectID != nil {
		quote.ProjectID = input.ProjectID
	}
	if input.PhotoPath != nil {
		quote.PhotoPath = *input.PhotoPath
	}
	if input.Notes != nil {
		quote.Notes = *input.Notes
	}

	if input.LineItems != nil {
		led, err := buildLedger(ledger.PerLine, *input.LineItems)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to process line items")
			return
		}
		snap := led.Snapshot()
		quote.Subtotal = snap.Subtotal
		quote.GSTTotal = snap.GSTTotal
		quote.PSTTotal = snap.PSTTotal
		quote.Total = snap.Total
		quote.LineItems = storedLineItems(snap)
	}

	if err := config.DB.Save(&quote).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update quote")
		return
	}

	c.JSON(http.StatusOK, quote)
}

// DeleteQuote soft deletes a quote.
func DeleteQuote(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	quoteUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, quoteUUID).
		Delete(&models.Quote{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete quote")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quote deleted successfully"})
}

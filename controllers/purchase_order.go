// controllers/purchase_order.go
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

type CreatePurchaseOrderInput struct {
	Supplier     string          `json:"supplier" binding:"required"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	OrderDate    *time.Time      `json:"orderDate"`
	DeliveryDate *time.Time      `json:"deliveryDate"`
	ProjectID    *uuid.UUID      `json:"projectId"`
	LineItems    []LineItemInput `json:"lineItems"`
	Notes        string          `json:"notes"`
}

type UpdatePurchaseOrderInput struct {
	Supplier     *string          `json:"supplier"`
	Description  *string          `json:"description"`
	Status       *string          `json:"status"`
	OrderDate    *time.Time       `json:"orderDate"`
	DeliveryDate *time.Time       `json:"deliveryDate"`
	ProjectID    *uuid.UUID       `json:"projectId"`
	LineItems    *[]LineItemInput `json:"lineItems"`
	Notes        *string          `json:"notes"`
}

// CreatePurchaseOrder creates a new purchase order with server-computed
// totals.
func CreatePurchaseOrder(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var input CreatePurchaseOrderInput
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
		status = "Ordered"
	}

	po := models.PurchaseOrder{
		ID:           uuid.New(),
		UserID:       userID,
		ProjectID:    input.ProjectID,
		PONumber:     "PO-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6),
		Supplier:     input.Supplier,
		Description:  input.Description,
		Status:       status,
		OrderDate:    input.OrderDate,
		DeliveryDate: input.DeliveryDate,
		Subtotal:     snap.Subtotal,
		GSTTotal:     snap.GSTTotal,
		PSTTotal:     snap.PSTTotal,
		Total:        snap.Total,
		LineItems:    storedLineItems(snap),
		Notes:        input.Notes,
	}

	if err := config.DB.Create(&po).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create purchase order")
		return
	}

	c.JSON(http.StatusCreated, po)
}

// GetPurchaseOrders retrieves all purchase orders for the user.
func GetPurchaseOrders(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var orders []models.PurchaseOrder
	if err := config.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve purchase orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetPurchaseOrder retrieves a specific purchase order by ID.
func GetPurchaseOrder(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	poUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid purchase order ID format")
		return
	}

	var po models.PurchaseOrder
	if err := config.DB.Where("user_id = ? AND id = ?", userID, poUUID).
		First(&po).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Purchase order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, po)
}

// UpdatePurchaseOrder updates an existing purchase order.
func UpdatePurchaseOrder(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	poUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid purchase order ID format")
		return
	}

	var input UpdatePurchaseOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var po models.PurchaseOrder
	if err := config.DB.Where("user_id = ? AND id = ?", userID, poUUID).
		First(&po).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Purchase order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Supplier != nil {
		po.Supplier = *input.Supplier
	}
	if input.Description != nil {
		po.Description = *input.Description
	}
	if input.Status != nil {
		po.Status = *input.Status
	}
	if input.OrderDate != nil {
		po.OrderDate = input.OrderDate
	}
	if input.DeliveryDate != nil {
		po.DeliveryDate = input.DeliveryDate
	}
	if input.ProjectID != nil {
		po.ProjectID = input.ProjectID
	}
	if input.Notes != nil {
		po.Notes = *input.Notes
	}

	if input.LineItems != nil {
		led, err := buildLedger(ledger.PerLine, *input.LineItems)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to process line items")
			return
		}
		snap := led.Snapshot()
		po.Subtotal = snap.Subtotal
		po.GSTTotal = snap.GSTTotal
		po.PSTTotal = snap.PSTTotal
		po.Total = snap.Total
		po.LineItems = storedLineItems(snap)
	}

	if err := config.DB.Save(&po).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update purchase order")
		return
	}

	c.JSON(http.StatusOK, po)
}

// DeletePurchaseOrder soft deletes a purchase order.
func DeletePurchaseOrder(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	poUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid purchase order ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, poUUID).
		Delete(&models.PurchaseOrder{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete purchase order")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Purchase order not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Purchase order deleted successfully"})
}

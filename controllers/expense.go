// controllers/expense.go
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

// CreateExpenseInput defines the expected JSON structure for creating an
// expense. Totals are not accepted from the client; they are recomputed
// from the line items.
type CreateExpenseInput struct {
	Description   string          `json:"description" binding:"required"`
	Category      string          `json:"category"`
	ExpenseDate   *time.Time      `json:"expenseDate"`
	Vendor        string          `json:"vendor"`
	ReceiptNumber string          `json:"receiptNumber"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	ProjectID     *uuid.UUID      `json:"projectId"`
	LineItems     []LineItemInput `json:"lineItems"`
	PhotoPath     string          `json:"photoPath"`
	Notes         string          `json:"notes"`
}

type UpdateExpenseInput struct {
	Description   *string          `json:"description"`
	Category      *string          `json:"category"`
	ExpenseDate   *time.Time       `json:"expenseDate"`
	Vendor        *string          `json:"vendor"`
	ReceiptNumber *string          `json:"receiptNumber"`
	PaymentMethod *string          `json:"paymentMethod"`
	Status        *string          `json:"status"`
	ProjectID     *uuid.UUID       `json:"projectId"`
	LineItems     *[]LineItemInput `json:"lineItems"`
	PhotoPath     *string          `json:"photoPath"`
	Notes         *string          `json:"notes"`
}

// CreateExpense creates a new expense with server-computed totals.
func CreateExpense(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var input CreateExpenseInput
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

	expense := models.Expense{
		ID:            uuid.New(),
		UserID:        userID,
		ProjectID:     input.ProjectID,
		Description:   input.Description,
		Category:      input.Category,
		ExpenseDate:   input.ExpenseDate,
		Vendor:        input.Vendor,
		ReceiptNumber: input.ReceiptNumber,
		PaymentMethod: input.PaymentMethod,
		Status:        status,
		Subtotal:      snap.Subtotal,
		GSTTotal:      snap.GSTTotal,
		PSTTotal:      snap.PSTTotal,
		Total:         snap.Total,
		LineItems:     storedLineItems(snap),
		PhotoPath:     input.PhotoPath,
		Notes:         input.Notes,
	}

	if err := config.DB.Create(&expense).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// GetExpenses retrieves all expenses for the user.
func GetExpenses(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var expenses []models.Expense
	if err := config.DB.Where("user_id = ?", userID).
		Order("expense_date DESC NULLS LAST, created_at DESC").
		Find(&expenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// GetExpense retrieves a specific expense by ID.
func GetExpense(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	expenseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	var expense models.Expense
	if err := config.DB.Where("user_id = ? AND id = ?", userID, expenseUUID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, expense)
}

// UpdateExpense updates an existing expense, recomputing totals whenever
// the line items change.
func UpdateExpense(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	expenseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	var input UpdateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var expense models.Expense
	if err := config.DB.Where("user_id = ? AND id = ?", userID, expenseUUID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.ExpenseDate != nil {
		expense.ExpenseDate = input.ExpenseDate
	}
	if input.Vendor != nil {
		expense.Vendor = *input.Vendor
	}
	if input.ReceiptNumber != nil {
		expense.ReceiptNumber = *input.ReceiptNumber
	}
	if input.PaymentMethod != nil {
		expense.PaymentMethod = *input.PaymentMethod
	}
	if input.Status != nil {
		expense.Status = *input.Status
	}
	if input.ProjectID != nil {
		expense.ProjectID = input.ProjectID
	}
	if input.PhotoPath != nil {
		expense.PhotoPath = *input.PhotoPath
	}
	if input.Notes != nil {
		expense.Notes = *input.Notes
	}

	if input.LineItems != nil {
		led, err := buildLedger(ledger.PerLine, *input.LineItems)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to process line items")
			return
		}
		snap := led.Snapshot()
		expense.Subtotal = snap.Subtotal
		expense.GSTTotal = snap.GSTTotal
		expense.PSTTotal = snap.PSTTotal
		expense.Total = snap.Total
		expense.LineItems = storedLineItems(snap)
	}

	if err := config.DB.Save(&expense).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update expense")
		return
	}

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense soft deletes an expense.
func DeleteExpense(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	expenseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, expenseUUID).
		Delete(&models.Expense{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete expense")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

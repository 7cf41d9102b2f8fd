// controllers/invoice.go
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

// CreateInvoiceInput defines the expected JSON structure for creating an
// invoice. Invoices apply GST/PST to the whole subtotal; individual line
// items carry no tax flags. A band tax-exempt invoice must record the
// delivery address, which rides on the ledger's Delivery line item.
type CreateInvoiceInput struct {
	ClientName      string          `json:"client" binding:"required"`
	ClientAddress   string          `json:"clientAddress"`
	ClientEmail     string          `json:"email"`
	InvoiceDate     *time.Time      `json:"invoiceDate"`
	DueDate         *time.Time      `json:"dueDate"`
	TaxExempt       bool            `json:"taxExempt"`
	BandName        string          `json:"bandName"`
	DeliveryAddress string          `json:"deliveryAddress"`
	ProjectID       *uuid.UUID      `json:"projectId"`
	LineItems       []LineItemInput `json:"lineItems"`
	PaymentStatus   string          `json:"paymentStatus"`
	PaidAmount      float64         `json:"paidAmount"`
	Notes           string          `json:"notes"`
}

type UpdateInvoiceInput struct {
	ClientName      *string          `json:"client"`
	ClientAddress   *string          `json:"clientAddress"`
	ClientEmail     *string          `json:"email"`
	InvoiceDate     *time.Time       `json:"invoiceDate"`
	DueDate         *time.Time       `json:"dueDate"`
	TaxExempt       *bool            `json:"taxExempt"`
	BandName        *string          `json:"bandName"`
	DeliveryAddress *string          `json:"deliveryAddress"`
	ProjectID       *uuid.UUID       `json:"projectId"`
	LineItems       *[]LineItemInput `json:"lineItems"`
	PaymentStatus   *string          `json:"paymentStatus" binding:"omitempty,oneof=paid unpaid partial"`
	PaidAmount      *float64         `json:"paidAmount" binding:"omitempty,min=0"`
	Notes           *string          `json:"notes"`
}

// invoiceLedger rebuilds the document-level ledger for an invoice and
// applies the exemption rule, keeping the Delivery sentinel consistent.
func invoiceLedger(items []LineItemInput, taxExempt bool, deliveryAddress string) (*ledger.Ledger, error) {
	led, err := buildLedger(ledger.PerDocument, items)
	if err != nil {
		return nil, err
	}
	if err := led.SetTaxExempt(taxExempt); err != nil {
		return nil, err
	}
	if taxExempt {
		if sentinel, ok := led.DeliverySentinel(); ok {
			if err := led.UpdateLineItem(sentinel.ID, "deliveryAddress", deliveryAddress); err != nil {
				return nil, err
			}
		}
	}
	return led, nil
}

// CreateInvoice creates a new invoice with server-computed totals.
func CreateInvoice(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.TaxExempt && input.DeliveryAddress == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Delivery address required for tax-exempt invoices")
		return
	}

	led, err := invoiceLedger(input.LineItems, input.TaxExempt, input.DeliveryAddress)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to process line items")
		return
	}
	snap := led.Snapshot()

	invoiceDate := time.Now()
	if input.InvoiceDate != nil {
		invoiceDate = *input.InvoiceDate
	}

	paymentStatus := input.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = "unpaid"
	}

	invoice := models.Invoice{
		ID:              uuid.New(),
		UserID:          userID,
		ProjectID:       input.ProjectID,
		InvoiceNumber:   "INV-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6),
		ClientName:      input.ClientName,
		ClientAddress:   input.ClientAddress,
		ClientEmail:     input.ClientEmail,
		InvoiceDate:     invoiceDate,
		DueDate:         input.DueDate,
		TaxExempt:       snap.TaxExempt,
		BandName:        input.BandName,
		DeliveryAddress: input.DeliveryAddress,
		GSTRate:         snap.GSTRate,
		PSTRate:         snap.PSTRate,
		Subtotal:        snap.Subtotal,
		GSTTotal:        snap.GSTTotal,
		PSTTotal:        snap.PSTTotal,
		Total:           snap.Total,
		LineItems:       storedLineItems(snap),
		PaymentStatus:   paymentStatus,
		PaidAmount:      input.PaidAmount,
		Notes:           input.Notes,
	}

	if err := config.DB.Create(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices retrieves all invoices for the user.
func GetInvoices(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var invoices []models.Invoice
	if err := config.DB.Where("user_id = ?", userID).
		Order("invoice_date DESC").
		Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice by ID.
func GetInvoice(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("user_id = ? AND id = ?", userID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice updates an existing invoice, recomputing totals whenever
// the line items or the exemption flag change.
func UpdateInvoice(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var input UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("user_id = ? AND id = ?", userID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ClientName != nil {
		invoice.ClientName = *input.ClientName
	}
	if input.ClientAddress != nil {
		invoice.ClientAddress = *input.ClientAddress
	}
	if input.ClientEmail != nil {
		invoice.ClientEmail = *input.ClientEmail
	}
	if input.InvoiceDate != nil {
		invoice.InvoiceDate = *input.InvoiceDate
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}
	if input.TaxExempt != nil {
		invoice.TaxExempt = *input.TaxExempt
	}
	if input.BandName != nil {
		invoice.BandName = *input.BandName
	}
	if input.DeliveryAddress != nil {
		invoice.DeliveryAddress = *input.DeliveryAddress
	}
	if input.ProjectID != nil {
		invoice.ProjectID = input.ProjectID
	}
	if input.PaymentStatus != nil {
		invoice.PaymentStatus = *input.PaymentStatus
	}
	if input.PaidAmount != nil {
		invoice.PaidAmount = *input.PaidAmount
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}

	if invoice.TaxExempt && invoice.DeliveryAddress == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Delivery address required for tax-exempt invoices")
		return
	}

	// Rebuild the ledger whenever anything affecting totals changed.
	if input.LineItems != nil || input.TaxExempt != nil || input.DeliveryAddress != nil {
		items := lineItemInputsFromStored(invoice.LineItems)
		if input.LineItems != nil {
			items = *input.LineItems
		}
		led, err := invoiceLedger(items, invoice.TaxExempt, invoice.DeliveryAddress)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to process line items")
			return
		}
		snap := led.Snapshot()
		invoice.GSTRate = snap.GSTRate
		invoice.PSTRate = snap.PSTRate
		invoice.Subtotal = snap.Subtotal
		invoice.GSTTotal = snap.GSTTotal
		invoice.PSTTotal = snap.PSTTotal
		invoice.Total = snap.Total
		invoice.LineItems = storedLineItems(snap)
	}

	if err := config.DB.Save(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice soft deletes an invoice.
func DeleteInvoice(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, invoiceUUID).
		Delete(&models.Invoice{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}

// lineItemInputsFromStored converts persisted line items back to form
// inputs so a partial update can rebuild the ledger. The Delivery sentinel
// is dropped; the ledger re-adds it when the exemption flag demands one.
func lineItemInputsFromStored(items models.LineItemList) []LineItemInput {
	inputs := make([]LineItemInput, 0, len(items))
	for _, item := range items {
		if item.Description == ledger.DeliveryDescription {
			continue
		}
		inputs = append(inputs, LineItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			HasGST:      item.HasGST,
			HasPST:      item.HasPST,
		})
	}
	return inputs
}

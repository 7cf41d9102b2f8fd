// controllers/receipt.go
package controllers

import (
	"net/http"
	"strings"

	"jobtract-backend/services"
	"jobtract-backend/utils"

	"github.com/gin-gonic/gin"
)

type ParseReceiptInput struct {
	Text string `json:"text" binding:"required"`
}

// ParseReceipt turns OCR'd receipt text into a pre-filled expense draft.
// The image-to-text step happens client side; only the text comes here.
func ParseReceipt(c *gin.Context) {
	if _, err := userIDFromContext(c); err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var input ParseReceiptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if strings.TrimSpace(input.Text) == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Receipt text is empty")
		return
	}

	draft := services.ParseReceiptText(input.Text)
	c.JSON(http.StatusOK, draft)
}

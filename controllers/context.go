package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// userIDFromContext reads the authenticated user id the auth middleware
// stored on the request context.
func userIDFromContext(c *gin.Context) (uuid.UUID, error) {
	userID, exists := c.Get("userId")
	if !exists {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	id, err := uuid.Parse(userID.(string))
	if err != nil {
		return uuid.Nil, errors.New("invalid user ID format")
	}
	return id, nil
}

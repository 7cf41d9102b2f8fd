package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Contractor struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name    string `gorm:"not null"`
	Company string
	Phone   string
	Email   string
	Trade   string
	Notes   string

	gorm.Model
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Quote struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProjectID *uuid.UUID `gorm:"type:uuid;index"`

	ClientName         string `gorm:"not null"`
	ClientAddress      string
	Phone              string
	ClientEmail        string
	ProjectDescription string
	Status             string `gorm:"default:'Pending'"`
	QuoteDate          *time.Time
	ValidUntil         *time.Time

	Subtotal  float64      `gorm:"type:decimal(10,2);not null"`
	GSTTotal  float64      `gorm:"type:decimal(10,2);default:0.0"`
	PSTTotal  float64      `gorm:"type:decimal(10,2);default:0.0"`
	Total     float64      `gorm:"type:decimal(10,2);not null"`
	LineItems LineItemList `gorm:"type:jsonb"`

	PhotoPath string
	Notes     string

	gorm.Model
}

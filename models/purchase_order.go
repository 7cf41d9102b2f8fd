package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseOrder struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProjectID *uuid.UUID `gorm:"type:uuid;index"`

	PONumber     string `gorm:"uniqueIndex;not null"`
	Supplier     string `gorm:"not null"`
	Description  string
	Status       string `gorm:"default:'Ordered'"`
	OrderDate    *time.Time
	DeliveryDate *time.Time

	Subtotal  float64      `gorm:"type:decimal(10,2);not null"`
	GSTTotal  float64      `gorm:"type:decimal(10,2);default:0.0"`
	PSTTotal  float64      `gorm:"type:decimal(10,2);default:0.0"`
	Total     float64      `gorm:"type:decimal(10,2);not null"`
	LineItems LineItemList `gorm:"type:jsonb"`

	Notes string

	gorm.Model
}

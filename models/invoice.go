package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Invoice struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProjectID *uuid.UUID `gorm:"type:uuid;index"`

	InvoiceNumber string `gorm:"uniqueIndex;not null"`
	ClientName    string `gorm:"not null"`
	ClientAddress string
	ClientEmail   string
	InvoiceDate   time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	DueDate       *time.Time

	// Band tax exemption. An exempt invoice records the band name and the
	// on-reserve delivery address carried by the Delivery line item.
	TaxExempt       bool `gorm:"default:false"`
	BandName        string
	DeliveryAddress string

	GSTRate   float64      `gorm:"type:decimal(5,2);default:5.0"`
	PSTRate   float64      `gorm:"type:decimal(5,2);default:7.0"`
	Subtotal  float64      `gorm:"type:decimal(10,2);not null"`
	GSTTotal  float64      `gorm:"type:decimal(10,2);default:0.0"`
	PSTTotal  float64      `gorm:"type:decimal(10,2);default:0.0"`
	Total     float64      `gorm:"type:decimal(10,2);not null"`
	LineItems LineItemList `gorm:"type:jsonb"`

	PaymentStatus string  `gorm:"default:'unpaid'"`
	PaidAmount    float64 `gorm:"type:decimal(10,2);default:0.0"`
	Notes         string

	gorm.Model
}

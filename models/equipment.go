package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Equipment struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name          string `gorm:"not null"`
	Type          string
	ModelName     string `json:"model"`
	SerialNumber  string
	PurchaseDate  *time.Time
	PurchasePrice float64 `gorm:"type:decimal(12,2);default:0.0"`
	Status        string  `gorm:"default:'Available'"`
	Location      string

	LastMaintenance  *time.Time
	NextMaintenance  *time.Time
	MaintenanceNotes string
	Operator         string
	FuelType         string
	HoursOperated    float64 `gorm:"type:decimal(10,1);default:0.0"`
	InsuranceExpiry  *time.Time
	Registration     string
	Condition        string
	WarrantyExpiry   *time.Time
	Supplier         string
	PhotoPath        string
	Notes            string

	gorm.Model
}

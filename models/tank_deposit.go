package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TankDeposit struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProjectID *uuid.UUID `gorm:"type:uuid;index"`

	Client      string `gorm:"not null"`
	Project     string
	TankType    string
	Amount      float64 `gorm:"type:decimal(10,2);default:0.0"`
	DepositDate *time.Time
	ReturnDate  *time.Time
	Status      string `gorm:"default:'Active'"`
	PhotoPath   string
	Notes       string

	gorm.Model
}

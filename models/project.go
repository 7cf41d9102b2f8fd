package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name           string `gorm:"not null"`
	Client         string
	Status         string `gorm:"default:'Planned'"`
	StartDate      *time.Time
	EndDate        *time.Time
	Budget         float64 `gorm:"type:decimal(12,2);default:0.0"`
	Spent          float64 `gorm:"type:decimal(12,2);default:0.0"`
	Progress       int     `gorm:"default:0"` // percent complete
	Description    string
	Location       string
	ProjectManager string
	PhotoPath      string
	Notes          string

	gorm.Model
}

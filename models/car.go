package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Car status values. Hidden cars stay in the database but are never
// offered to customers.
const (
	CarAvailable = "available"
	CarReserved  = "reserved"
	CarHidden    = "hidden"
)

type Car struct {
	ID string `gorm:"primaryKey;type:char(36)" json:"id"`

	Name         string         `gorm:"size:255" json:"name"`
	Category     string         `gorm:"size:100;index" json:"category"`
	Price        float64        `json:"price"`
	Seats        int            `json:"seats"`
	Transmission string         `gorm:"size:50" json:"transmission"`
	Fuel         string         `gorm:"size:50" json:"fuel"`
	Year         int            `json:"year"`
	Description  string         `gorm:"type:text" json:"description"`
	Image        string         `gorm:"size:1024" json:"image"`
	Gallery      datatypes.JSON `gorm:"column:gallery" json:"gallery,omitempty"`

	Status string `gorm:"size:20;index;default:available" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Car) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = CarAvailable
	}
	return nil
}

func IsValidCarStatus(s string) bool {
	switch s {
	case CarAvailable, CarReserved, CarHidden:
		return true
	}
	return false
}

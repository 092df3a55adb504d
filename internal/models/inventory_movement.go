package models

import (
	"time"

	"github.com/google/uuid"
)

type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementAdjustment MovementType = "adjustment" // fija la existencia exacta
)

type InventoryMovement struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID    `gorm:"type:uuid;index;not null"`
	Product   Product
	UserID    uuid.UUID    `gorm:"type:uuid;index;not null"`
	Type      MovementType `gorm:"size:20;not null"`
	Quantity  int          `gorm:"not null"` // delta aplicado (con signo)
	Notes     string       `gorm:"size:255"`
	CreatedAt time.Time
}

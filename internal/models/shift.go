package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shift es el turno de caja de un usuario. Solo puede haber un turno activo por
// usuario (índice parcial creado en database.Init). Se cierra con un corte Z.
type Shift struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID        `gorm:"type:uuid;index;not null"`
	User        User
	InitialCash decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	FinalCash   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	IsActive    bool             `gorm:"not null;default:true"`
	OpenedAt    time.Time        `gorm:"not null"`
	ClosedAt    *time.Time
}

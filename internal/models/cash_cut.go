package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CashCutType string

const (
	CorteX CashCutType = "corte_x" // parcial, el turno sigue abierto
	CorteZ CashCutType = "corte_z" // final, cierra el turno
)

// CashCut es un registro de solo-escritura: nunca se actualiza ni se borra.
type CashCut struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShiftID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	Shift         Shift
	UserID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	Type          CashCutType     `gorm:"size:20;not null"`
	TotalSales    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalCash     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalCard     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalTransfer decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CashCounted   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Difference    decimal.Decimal `gorm:"type:decimal(12,2);not null"` // contado - esperado
	CreatedAt     time.Time
}

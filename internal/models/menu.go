package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"size:100;not null;unique"`
	Description   string    `gorm:"size:255"`
	Icon          string    `gorm:"size:50"`
	Color         string    `gorm:"size:20"`
	OrderPosition int       `gorm:"not null;default:0"` // orden en el menú
	IsActive      bool      `gorm:"not null;default:true"`
}

type Product struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid;index"`
	Category       *Category
	Name           string          `gorm:"size:100;not null"`
	Description    string          `gorm:"size:255"`
	Price          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsActive       bool            `gorm:"not null;default:true"`
	IsCustomizable bool            `gorm:"not null;default:false"` // requiere tortilla + picante
	StockQuantity  int             `gorm:"not null;default:0"`
	MinStock       int             `gorm:"not null;default:0"`
	MaxStock       int             `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ModifierKind string

const (
	ModifierTortilla ModifierKind = "tortilla"
	ModifierPicante  ModifierKind = "picante"
	ModifierExtra    ModifierKind = "extra"
)

// Modifier es dato de referencia: se consulta por id, el carrito nunca lo muta.
type Modifier struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string          `gorm:"size:100;not null"`
	Kind     ModifierKind    `gorm:"size:20;not null;index"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsActive bool            `gorm:"not null;default:true"`
}

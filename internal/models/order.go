package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPendiente     OrderStatus = "pendiente"
	OrderEnPreparacion OrderStatus = "en_preparacion"
	OrderLista         OrderStatus = "lista"
	OrderPagada        OrderStatus = "pagada"
	OrderEntregada     OrderStatus = "entregada"
	OrderCancelada     OrderStatus = "cancelada"
)

// Settled indica si la orden cuenta para el corte de caja. Las órdenes
// pendientes, en preparación o canceladas no suman a ningún total.
func (s OrderStatus) Settled() bool {
	return s == OrderPagada || s == OrderEntregada
}

type OrderType string

const (
	OrderMesa       OrderType = "mesa"
	OrderParaLlevar OrderType = "para_llevar"
)

type PaymentMethod string

const (
	PayEfectivo      PaymentMethod = "efectivo"
	PayTarjeta       PaymentMethod = "tarjeta"
	PayTransferencia PaymentMethod = "transferencia"
)

type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderNumber   string          `gorm:"size:30;uniqueIndex;not null"`
	ShiftID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	UserID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	TableID       *uuid.UUID      `gorm:"type:uuid;index"`
	Type          OrderType       `gorm:"size:20;not null"`
	Status        OrderStatus     `gorm:"size:20;not null;default:'pendiente';index"`
	PaymentMethod PaymentMethod   `gorm:"size:20;not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Tax           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes         string          `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	Product    Product
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"` // precio base sin modificadores
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"` // (base + modificadores) * cantidad
	Notes      string          `gorm:"size:255"`

	Modifiers []OrderItemModifier `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE"`
}

// OrderItemModifier congela el precio del modificador al momento de la venta.
type OrderItemModifier struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderItemID uuid.UUID       `gorm:"type:uuid;index;not null"`
	ModifierID  uuid.UUID       `gorm:"type:uuid;not null"`
	Modifier    Modifier
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

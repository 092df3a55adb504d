package pricing

import (
	"errors"

	"taqueria-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrLineNotFound   = errors.New("línea no encontrada en el carrito")
	ErrInvalidTaxRate = errors.New("la tasa de impuesto debe estar entre 0 y 1")
)

// LineItem es una selección de producto dentro del carrito. Los precios se
// congelan al agregarla: cambios posteriores en el catálogo no la afectan.
type LineItem struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Modifiers   []models.Modifier
	Quantity    int
	Notes       string
}

// UnitBase es el precio unitario con modificadores incluidos.
func (li LineItem) UnitBase() decimal.Decimal {
	base := li.UnitPrice
	for _, m := range li.Modifiers {
		base = base.Add(m.Price)
	}
	return base
}

func (li LineItem) Total() decimal.Decimal {
	return li.UnitBase().Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart es la orden en curso, todavía sin enviar. Vive solo en memoria y se
// descarta al confirmar o cancelar la orden.
type Cart struct {
	Type    models.OrderType
	TableID *uuid.UUID
	Items   []LineItem
}

func New(orderType models.OrderType, tableID *uuid.UUID) *Cart {
	return &Cart{Type: orderType, TableID: tableID}
}

// AddItem agrega siempre una línea nueva con cantidad 1. Dos agregados del
// mismo producto con los mismos modificadores producen dos líneas separadas;
// nunca se fusionan.
func (c *Cart) AddItem(p models.Product, mods []models.Modifier) LineItem {
	li := LineItem{
		ID:          uuid.New(),
		ProductID:   p.ID,
		ProductName: p.Name,
		UnitPrice:   p.Price,
		Modifiers:   append([]models.Modifier(nil), mods...),
		Quantity:    1,
	}
	c.Items = append(c.Items, li)
	return li
}

// SetQuantity fija la cantidad de una línea. Con cantidad <= 0 la línea se
// elimina del carrito.
func (c *Cart) SetQuantity(lineID uuid.UUID, quantity int) error {
	for i := range c.Items {
		if c.Items[i].ID != lineID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
		c.Items[i].Quantity = quantity
		return nil
	}
	return ErrLineNotFound
}

func (c *Cart) Clear() {
	c.Items = nil
}

type Totals struct {
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	ItemCount int
}

// Totals calcula los totales del carrito. Es una función pura: no muta el
// carrito y dos llamadas sobre el mismo estado devuelven lo mismo.
func (c *Cart) Totals(taxRate decimal.Decimal) (Totals, error) {
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(1)) {
		return Totals{}, ErrInvalidTaxRate
	}

	t := Totals{Subtotal: decimal.Zero, Tax: decimal.Zero, Total: decimal.Zero}
	for _, li := range c.Items {
		t.Subtotal = t.Subtotal.Add(li.Total())
		t.ItemCount += li.Quantity
	}
	t.Tax = t.Subtotal.Mul(taxRate).Round(2)
	t.Total = t.Subtotal.Add(t.Tax)
	return t, nil
}

package inventory

import (
	"errors"

	"taqueria-backend/internal/models"
)

var (
	ErrInvalidQuantity = errors.New("cantidad inválida para el movimiento")
	ErrInvalidType     = errors.New("tipo de movimiento inválido (in|out|adjustment)")
)

// ApplyAdjustment calcula la nueva existencia de un producto. Las salidas se
// recortan en cero: el inventario nunca queda negativo. Devuelve también el
// delta realmente aplicado (con signo) para dejarlo en el historial.
func ApplyAdjustment(current, quantity int, typ models.MovementType) (newStock, delta int, err error) {
	switch typ {
	case models.MovementIn:
		if quantity <= 0 {
			return 0, 0, ErrInvalidQuantity
		}
		newStock = current + quantity
	case models.MovementOut:
		if quantity <= 0 {
			return 0, 0, ErrInvalidQuantity
		}
		newStock = current - quantity
		if newStock < 0 {
			newStock = 0
		}
	case models.MovementAdjustment:
		// fija la existencia exacta contada
		if quantity < 0 {
			return 0, 0, ErrInvalidQuantity
		}
		newStock = quantity
	default:
		return 0, 0, ErrInvalidType
	}
	return newStock, newStock - current, nil
}

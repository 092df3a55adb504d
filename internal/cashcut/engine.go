package cashcut

import (
	"errors"

	"taqueria-backend/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrShiftClosed    = errors.New("el turno ya está cerrado")
	ErrInvalidCutType = errors.New("tipo de corte inválido (corte_x|corte_z)")
)

// SalesSummary son las ventas liquidadas de un turno, partidas por método de
// pago. Solo cuentan las órdenes pagadas o entregadas; lo pendiente, en
// preparación o cancelado queda fuera de todos los totales.
type SalesSummary struct {
	TotalSales    decimal.Decimal
	TotalCash     decimal.Decimal
	TotalCard     decimal.Decimal
	TotalTransfer decimal.Decimal
	OrderCount    int
}

func Summarize(orders []models.Order) SalesSummary {
	s := SalesSummary{
		TotalSales:    decimal.Zero,
		TotalCash:     decimal.Zero,
		TotalCard:     decimal.Zero,
		TotalTransfer: decimal.Zero,
	}
	for _, o := range orders {
		if !o.Status.Settled() {
			continue
		}
		s.TotalSales = s.TotalSales.Add(o.Total)
		s.OrderCount++
		switch o.PaymentMethod {
		case models.PayEfectivo:
			s.TotalCash = s.TotalCash.Add(o.Total)
		case models.PayTarjeta:
			s.TotalCard = s.TotalCard.Add(o.Total)
		case models.PayTransferencia:
			s.TotalTransfer = s.TotalTransfer.Add(o.Total)
		}
	}
	return s
}

// Result es el desenlace de una conciliación, todavía sin persistir.
type Result struct {
	Summary      SalesSummary
	ExpectedCash decimal.Decimal
	CashCounted  decimal.Decimal
	Difference   decimal.Decimal // positivo = sobrante, negativo = faltante
	Notable      bool            // |diferencia| > umbral; advierte, no bloquea
}

// Reconcile compara el efectivo contado contra el esperado del turno.
// Un turno sin ventas no es un error: los totales quedan en cero y la
// diferencia es contra el fondo inicial. Un turno cerrado sí se rechaza.
func Reconcile(shift models.Shift, orders []models.Order, cashCounted, threshold decimal.Decimal) (Result, error) {
	if !shift.IsActive {
		return Result{}, ErrShiftClosed
	}

	summary := Summarize(orders)
	expected := shift.InitialCash.Add(summary.TotalCash)
	diff := cashCounted.Sub(expected)

	return Result{
		Summary:      summary,
		ExpectedCash: expected,
		CashCounted:  cashCounted,
		Difference:   diff,
		Notable:      diff.Abs().GreaterThan(threshold),
	}, nil
}

package cashcut

import (
	"testing"

	"taqueria-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func order(status models.OrderStatus, method models.PaymentMethod, total string) models.Order {
	return models.Order{Status: status, PaymentMethod: method, Total: dec(total)}
}

func activeShift(initial string) models.Shift {
	return models.Shift{InitialCash: dec(initial), IsActive: true}
}

func TestSummarizeSplitsByPaymentMethod(t *testing.T) {
	t.Parallel()

	orders := []models.Order{
		order(models.OrderPagada, models.PayEfectivo, "50.00"),
		order(models.OrderEntregada, models.PayTarjeta, "30.00"),
		order(models.OrderPagada, models.PayEfectivo, "20.00"),
		order(models.OrderPagada, models.PayTransferencia, "45.50"),
	}

	s := Summarize(orders)
	require.True(t, s.TotalCash.Equal(dec("70.00")), "efectivo: %s", s.TotalCash)
	require.True(t, s.TotalCard.Equal(dec("30.00")))
	require.True(t, s.TotalTransfer.Equal(dec("45.50")))
	require.True(t, s.TotalSales.Equal(dec("145.50")))
	require.Equal(t, 4, s.OrderCount)
}

func TestSummarizeIgnoresUnsettledOrders(t *testing.T) {
	t.Parallel()

	orders := []models.Order{
		order(models.OrderPagada, models.PayEfectivo, "50.00"),
		order(models.OrderCancelada, models.PayEfectivo, "1000.00"),
		order(models.OrderPendiente, models.PayEfectivo, "80.00"),
		order(models.OrderEnPreparacion, models.PayTarjeta, "60.00"),
		order(models.OrderLista, models.PayTarjeta, "25.00"),
	}

	s := Summarize(orders)
	require.True(t, s.TotalSales.Equal(dec("50.00")))
	require.True(t, s.TotalCash.Equal(dec("50.00")))
	require.Equal(t, 1, s.OrderCount)
}

func TestReconcileExactCount(t *testing.T) {
	t.Parallel()

	orders := []models.Order{
		order(models.OrderPagada, models.PayEfectivo, "50.00"),
		order(models.OrderPagada, models.PayTarjeta, "30.00"),
		order(models.OrderPagada, models.PayEfectivo, "20.00"),
	}

	res, err := Reconcile(activeShift("100.00"), orders, dec("170.00"), dec("10.00"))
	require.NoError(t, err)
	require.True(t, res.ExpectedCash.Equal(dec("170.00")), "esperado: fondo 100 + efectivo 70")
	require.True(t, res.Difference.IsZero())
	require.False(t, res.Notable)
}

func TestReconcileSurplusOverThreshold(t *testing.T) {
	t.Parallel()

	orders := []models.Order{
		order(models.OrderPagada, models.PayEfectivo, "70.00"),
	}

	res, err := Reconcile(activeShift("100.00"), orders, dec("185.00"), dec("10.00"))
	require.NoError(t, err)
	require.True(t, res.Difference.Equal(dec("15.00")))
	require.True(t, res.Notable)
}

func TestReconcileShortageIsNegative(t *testing.T) {
	t.Parallel()

	orders := []models.Order{
		order(models.OrderPagada, models.PayEfectivo, "70.00"),
	}

	res, err := Reconcile(activeShift("100.00"), orders, dec("162.50"), dec("10.00"))
	require.NoError(t, err)
	require.True(t, res.Difference.Equal(dec("-7.50")))
	require.False(t, res.Notable, "faltante menor al umbral no se marca")
}

func TestReconcileThresholdIsExclusive(t *testing.T) {
	t.Parallel()

	// una diferencia exactamente igual al umbral no es notable
	res, err := Reconcile(activeShift("100.00"), nil, dec("110.00"), dec("10.00"))
	require.NoError(t, err)
	require.True(t, res.Difference.Equal(dec("10.00")))
	require.False(t, res.Notable)

	res, err = Reconcile(activeShift("100.00"), nil, dec("110.01"), dec("10.00"))
	require.NoError(t, err)
	require.True(t, res.Notable)
}

func TestReconcileEmptyShift(t *testing.T) {
	t.Parallel()

	res, err := Reconcile(activeShift("500.00"), nil, dec("500.00"), dec("10.00"))
	require.NoError(t, err)
	require.Equal(t, 0, res.Summary.OrderCount)
	require.True(t, res.Summary.TotalSales.IsZero())
	require.True(t, res.ExpectedCash.Equal(dec("500.00")))
	require.True(t, res.Difference.IsZero())
}

func TestReconcileRejectsClosedShift(t *testing.T) {
	t.Parallel()

	shift := models.Shift{InitialCash: dec("100.00"), IsActive: false}
	_, err := Reconcile(shift, nil, dec("100.00"), dec("10.00"))
	require.ErrorIs(t, err, ErrShiftClosed)
}

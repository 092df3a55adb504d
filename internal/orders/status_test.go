package orders

import (
	"testing"

	"taqueria-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	t.Parallel()

	allowed := []struct{ from, to models.OrderStatus }{
		{models.OrderPendiente, models.OrderEnPreparacion},
		{models.OrderPendiente, models.OrderCancelada},
		{models.OrderEnPreparacion, models.OrderLista},
		{models.OrderEnPreparacion, models.OrderCancelada},
		{models.OrderLista, models.OrderPagada},
		{models.OrderLista, models.OrderEntregada},
		{models.OrderPagada, models.OrderEntregada},
	}
	for _, tc := range allowed {
		require.True(t, canTransition(tc.from, tc.to), "%s -> %s debería permitirse", tc.from, tc.to)
	}

	forbidden := []struct{ from, to models.OrderStatus }{
		{models.OrderPendiente, models.OrderPagada},
		{models.OrderPendiente, models.OrderLista},
		{models.OrderEnPreparacion, models.OrderPendiente},
		{models.OrderLista, models.OrderCancelada},
		{models.OrderPagada, models.OrderCancelada},
		{models.OrderEntregada, models.OrderPagada},
		{models.OrderCancelada, models.OrderPendiente},
		{models.OrderEntregada, models.OrderCancelada},
	}
	for _, tc := range forbidden {
		require.False(t, canTransition(tc.from, tc.to), "%s -> %s no debería permitirse", tc.from, tc.to)
	}
}

func TestTerminalStatusesHaveNoExit(t *testing.T) {
	t.Parallel()

	require.Empty(t, statusFlow[models.OrderEntregada])
	require.Empty(t, statusFlow[models.OrderCancelada])
}

func TestSettledStatuses(t *testing.T) {
	t.Parallel()

	require.True(t, models.OrderPagada.Settled())
	require.True(t, models.OrderEntregada.Settled())
	require.False(t, models.OrderPendiente.Settled())
	require.False(t, models.OrderEnPreparacion.Settled())
	require.False(t, models.OrderLista.Settled())
	require.False(t, models.OrderCancelada.Settled())
}

package inventory

import (
	"testing"

	"taqueria-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestApplyAdjustmentIn(t *testing.T) {
	t.Parallel()

	newStock, delta, err := ApplyAdjustment(10, 5, models.MovementIn)
	require.NoError(t, err)
	require.Equal(t, 15, newStock)
	require.Equal(t, 5, delta)
}

func TestApplyAdjustmentOut(t *testing.T) {
	t.Parallel()

	newStock, delta, err := ApplyAdjustment(10, 4, models.MovementOut)
	require.NoError(t, err)
	require.Equal(t, 6, newStock)
	require.Equal(t, -4, delta)
}

func TestApplyAdjustmentOutClampsAtZero(t *testing.T) {
	t.Parallel()

	newStock, delta, err := ApplyAdjustment(3, 10, models.MovementOut)
	require.NoError(t, err)
	require.Equal(t, 0, newStock)
	require.Equal(t, -3, delta, "el delta registra lo realmente descontado")
}

func TestApplyAdjustmentSetsExactCount(t *testing.T) {
	t.Parallel()

	newStock, delta, err := ApplyAdjustment(17, 12, models.MovementAdjustment)
	require.NoError(t, err)
	require.Equal(t, 12, newStock)
	require.Equal(t, -5, delta)

	newStock, delta, err = ApplyAdjustment(17, 0, models.MovementAdjustment)
	require.NoError(t, err)
	require.Equal(t, 0, newStock)
	require.Equal(t, -17, delta)
}

func TestApplyAdjustmentRejectsBadQuantities(t *testing.T) {
	t.Parallel()

	_, _, err := ApplyAdjustment(10, 0, models.MovementIn)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, _, err = ApplyAdjustment(10, -1, models.MovementOut)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, _, err = ApplyAdjustment(10, -1, models.MovementAdjustment)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestApplyAdjustmentRejectsUnknownType(t *testing.T) {
	t.Parallel()

	_, _, err := ApplyAdjustment(10, 5, models.MovementType("merma"))
	require.ErrorIs(t, err, ErrInvalidType)
}

package pricing

import (
	"testing"

	"taqueria-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func product(name, price string) models.Product {
	return models.Product{ID: uuid.New(), Name: name, Price: dec(price), IsActive: true}
}

func modifier(name string, kind models.ModifierKind, price string) models.Modifier {
	return models.Modifier{ID: uuid.New(), Name: name, Kind: kind, Price: dec(price), IsActive: true}
}

func TestLineItemTotalWithModifiers(t *testing.T) {
	t.Parallel()

	cart := New(models.OrderParaLlevar, nil)
	taco := product("Taco de pastor", "15.00")
	extras := []models.Modifier{
		modifier("Queso extra", models.ModifierExtra, "3.00"),
		modifier("Guacamole", models.ModifierExtra, "2.00"),
	}

	line := cart.AddItem(taco, extras)
	require.NoError(t, cart.SetQuantity(line.ID, 3))

	// (15.00 + 3.00 + 2.00) * 3 = 60.00
	require.True(t, cart.Items[0].Total().Equal(dec("60.00")),
		"total de línea: %s", cart.Items[0].Total())
}

func TestTotalsScenario(t *testing.T) {
	t.Parallel()

	cart := New(models.OrderParaLlevar, nil)
	taco := product("Taco de pastor", "15.00")
	line := cart.AddItem(taco, []models.Modifier{
		modifier("Queso extra", models.ModifierExtra, "3.00"),
		modifier("Guacamole", models.ModifierExtra, "2.00"),
	})
	require.NoError(t, cart.SetQuantity(line.ID, 3))

	totals, err := cart.Totals(dec("0.16"))
	require.NoError(t, err)
	require.True(t, totals.Subtotal.Equal(dec("60.00")), "subtotal: %s", totals.Subtotal)
	require.True(t, totals.Tax.Equal(dec("9.60")), "iva: %s", totals.Tax)
	require.True(t, totals.Total.Equal(dec("69.60")), "total: %s", totals.Total)
	require.Equal(t, 3, totals.ItemCount)
}

func TestSubtotalIsSumOfLines(t *testing.T) {
	t.Parallel()

	cart := New(models.OrderParaLlevar, nil)
	cart.AddItem(product("Taco", "12.50"), nil)
	cart.AddItem(product("Quesadilla", "28.00"), nil)
	line := cart.AddItem(product("Agua de horchata", "20.00"), nil)
	require.NoError(t, cart.SetQuantity(line.ID, 2))

	totals, err := cart.Totals(decimal.Zero)
	require.NoError(t, err)

	expected := decimal.Zero
	for _, li := range cart.Items {
		expected = expected.Add(li.Total())
	}
	require.True(t, totals.Subtotal.Equal(expected))
	require.True(t, totals.Tax.IsZero())
	require.True(t, totals.Total.Equal(expected))
}

func TestTotalsIsPure(t *testing.T) {
	t.Parallel()

	cart := New(models.OrderMesa, nil)
	cart.AddItem(product("Taco", "17.00"), []models.Modifier{
		modifier("Doble tortilla", models.ModifierTortilla, "2.00"),
	})

	rate := dec("0.16")
	first, err := cart.Totals(rate)
	require.NoError(t, err)
	second, err := cart.Totals(rate)
	require.NoError(t, err)

	require.True(t, first.Subtotal.Equal(second.Subtotal))
	require.True(t, first.Tax.Equal(second.Tax))
	require.True(t, first.Total.Equal(second.Total))
	require.Equal(t, first.ItemCount, second.ItemCount)
}

func TestTaxRateValidation(t *testing.T) {
	t.Parallel()

	cart := New(models.OrderParaLlevar, nil)
	cart.AddItem(product("Taco", "15.00"), nil)

	_, err := cart.Totals(dec("-0.01"))
	require.ErrorIs(t, err, ErrInvalidTaxRate)

	_, err = cart.Totals(dec("1.01"))
	require.ErrorIs(t, err, ErrInvalidTaxRate)

	_, err = cart.Totals(decimal.NewFromInt(1))
	require.NoError(t, err)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	t.Parallel()

	cart := New(models.OrderParaLlevar, nil)
	keep := cart.AddItem(product("Taco", "15.00"), nil)
	drop := cart.AddItem(product("Quesadilla", "28.00"), nil)
	require.Len(t, cart.Items, 2)

	require.NoError(t, cart.SetQuantity(drop.ID, 0))
	require.Len(t, cart.Items, 1)
	require.Equal(t, keep.ID, cart.Items[0].ID)

	require.NoError(t, cart.SetQuantity(keep.ID, -3))
	require.Empty(t, cart.Items)
}

func TestSetQuantityUnknownLine(t *testing.T) {
	t.Parallel()

	cart := New(models.OrderParaLlevar, nil)
	cart.AddItem(product("Taco", "15.00"), nil)

	err := cart.SetQuantity(uuid.New(), 2)
	require.ErrorIs(t, err, ErrLineNotFound)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 1, cart.Items[0].Quantity)
}

func TestDuplicateAddsNeverMerge(t *testing.T) {
	t.Parallel()

	cart := New(models.OrderParaLlevar, nil)
	taco := product("Taco", "15.00")
	queso := modifier("Queso extra", models.ModifierExtra, "3.00")

	cart.AddItem(taco, []models.Modifier{queso})
	cart.AddItem(taco, []models.Modifier{queso})

	// mismo producto y mismos modificadores: dos líneas separadas
	require.Len(t, cart.Items, 2)
	totals, err := cart.Totals(decimal.Zero)
	require.NoError(t, err)
	require.True(t, totals.Subtotal.Equal(dec("36.00")))
}

func TestClear(t *testing.T) {
	t.Parallel()

	cart := New(models.OrderParaLlevar, nil)
	cart.AddItem(product("Taco", "15.00"), nil)
	cart.Clear()

	require.Empty(t, cart.Items)
	totals, err := cart.Totals(dec("0.16"))
	require.NoError(t, err)
	require.True(t, totals.Subtotal.IsZero())
	require.True(t, totals.Total.IsZero())
	require.Zero(t, totals.ItemCount)
}

func TestRepeatedSumHasNoDrift(t *testing.T) {
	t.Parallel()

	// 0.10 sumado mil veces debe dar exactamente 100.00
	cart := New(models.OrderParaLlevar, nil)
	cheap := product("Tortilla suelta", "0.10")
	for i := 0; i < 1000; i++ {
		cart.AddItem(cheap, nil)
	}

	totals, err := cart.Totals(decimal.Zero)
	require.NoError(t, err)
	require.True(t, totals.Subtotal.Equal(dec("100.00")), "subtotal: %s", totals.Subtotal)
}

package pricing

import (
	"testing"

	"taqueria-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func customizableTaco() models.Product {
	p := product("Taco al gusto", "18.00")
	p.IsCustomizable = true
	return p
}

func TestNewSelectionPreselectsFirstOptions(t *testing.T) {
	t.Parallel()

	maiz := modifier("Maíz", models.ModifierTortilla, "0.00")
	harina := modifier("Harina", models.ModifierTortilla, "2.00")
	sinPicante := modifier("Sin picante", models.ModifierPicante, "0.00")
	inactivo := modifier("Nopal", models.ModifierTortilla, "1.00")
	inactivo.IsActive = false

	sel := NewSelection(customizableTaco(), []models.Modifier{inactivo, maiz, harina, sinPicante})

	require.NotNil(t, sel.Tortilla)
	require.Equal(t, maiz.ID, sel.Tortilla.ID, "debe tomar la primera opción activa")
	require.NotNil(t, sel.Picante)
	require.Equal(t, sinPicante.ID, sel.Picante.ID)
	require.Empty(t, sel.Extras)
}

func TestConfirmRejectsIncompleteSelection(t *testing.T) {
	t.Parallel()

	sel := NewSelection(customizableTaco(), nil)
	_, err := sel.Confirm()
	require.ErrorIs(t, err, ErrSeleccionIncompleta)

	require.NoError(t, sel.SetTortilla(modifier("Maíz", models.ModifierTortilla, "0.00")))
	_, err = sel.Confirm()
	require.ErrorIs(t, err, ErrSeleccionIncompleta, "sigue faltando el picante")

	require.NoError(t, sel.SetPicante(modifier("Medio", models.ModifierPicante, "0.00")))
	mods, err := sel.Confirm()
	require.NoError(t, err)
	require.Len(t, mods, 2)
}

func TestConfirmOrdersModifiers(t *testing.T) {
	t.Parallel()

	sel := NewSelection(customizableTaco(), nil)
	require.NoError(t, sel.SetTortilla(modifier("Harina", models.ModifierTortilla, "2.00")))
	require.NoError(t, sel.SetPicante(modifier("Extra picante", models.ModifierPicante, "0.00")))
	sel.ToggleExtra(modifier("Queso", models.ModifierExtra, "3.00"), true)
	sel.ToggleExtra(modifier("Guacamole", models.ModifierExtra, "2.00"), true)

	mods, err := sel.Confirm()
	require.NoError(t, err)
	require.Len(t, mods, 4)
	require.Equal(t, models.ModifierTortilla, mods[0].Kind)
	require.Equal(t, models.ModifierPicante, mods[1].Kind)
	require.Equal(t, models.ModifierExtra, mods[2].Kind)
	require.Equal(t, models.ModifierExtra, mods[3].Kind)
}

func TestSetTortillaRejectsWrongKind(t *testing.T) {
	t.Parallel()

	sel := NewSelection(customizableTaco(), nil)
	err := sel.SetTortilla(modifier("Queso", models.ModifierExtra, "3.00"))
	require.Error(t, err)
	require.Nil(t, sel.Tortilla)
}

func TestToggleExtraIsIdempotent(t *testing.T) {
	t.Parallel()

	sel := NewSelection(customizableTaco(), nil)
	queso := modifier("Queso", models.ModifierExtra, "3.00")

	sel.ToggleExtra(queso, true)
	sel.ToggleExtra(queso, true)
	require.Len(t, sel.Extras, 1)

	sel.ToggleExtra(queso, false)
	require.Empty(t, sel.Extras)
}

func TestConfirmNonCustomizableNeedsNothing(t *testing.T) {
	t.Parallel()

	refresco := product("Refresco", "20.00")
	sel := NewSelection(refresco, nil)

	mods, err := sel.Confirm()
	require.NoError(t, err)
	require.Empty(t, mods)
}

func TestValidateModifiers(t *testing.T) {
	t.Parallel()

	taco := customizableTaco()
	maiz := modifier("Maíz", models.ModifierTortilla, "0.00")
	harina := modifier("Harina", models.ModifierTortilla, "2.00")
	medio := modifier("Medio", models.ModifierPicante, "0.00")
	queso := modifier("Queso", models.ModifierExtra, "3.00")

	require.NoError(t, ValidateModifiers(taco, []models.Modifier{maiz, medio, queso}))

	// sin picante
	require.ErrorIs(t, ValidateModifiers(taco, []models.Modifier{maiz, queso}), ErrSeleccionIncompleta)

	// dos tortillas
	require.ErrorIs(t, ValidateModifiers(taco, []models.Modifier{maiz, harina, medio}), ErrSeleccionIncompleta)

	// modificador repetido
	require.Error(t, ValidateModifiers(taco, []models.Modifier{maiz, maiz, medio}))

	// un producto sin personalizar acepta cualquier cosa
	refresco := product("Refresco", "20.00")
	require.NoError(t, ValidateModifiers(refresco, nil))
	require.NoError(t, ValidateModifiers(refresco, []models.Modifier{queso}))
}

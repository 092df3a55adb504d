package pricing

import (
	"errors"
	"fmt"

	"taqueria-backend/internal/models"

	"github.com/google/uuid"
)

var ErrSeleccionIncompleta = errors.New("falta elegir tortilla o nivel de picante")

// Selection es el estado del diálogo de personalización de un producto.
// Tortilla y picante son obligatorios de una sola opción; los extras son
// multi-selección sin límite.
type Selection struct {
	Product  models.Product
	Tortilla *models.Modifier
	Picante  *models.Modifier
	Extras   []models.Modifier
}

// NewSelection preselecciona la primera opción disponible de cada grupo
// obligatorio, igual que hace la pantalla de personalización.
func NewSelection(p models.Product, available []models.Modifier) Selection {
	s := Selection{Product: p}
	for i := range available {
		m := available[i]
		if !m.IsActive {
			continue
		}
		switch m.Kind {
		case models.ModifierTortilla:
			if s.Tortilla == nil {
				s.Tortilla = &m
			}
		case models.ModifierPicante:
			if s.Picante == nil {
				s.Picante = &m
			}
		}
	}
	return s
}

func (s *Selection) SetTortilla(m models.Modifier) error {
	if m.Kind != models.ModifierTortilla {
		return fmt.Errorf("el modificador %q no es un tipo de tortilla", m.Name)
	}
	s.Tortilla = &m
	return nil
}

func (s *Selection) SetPicante(m models.Modifier) error {
	if m.Kind != models.ModifierPicante {
		return fmt.Errorf("el modificador %q no es un nivel de picante", m.Name)
	}
	s.Picante = &m
	return nil
}

func (s *Selection) ToggleExtra(m models.Modifier, on bool) {
	if on {
		for _, e := range s.Extras {
			if e.ID == m.ID {
				return
			}
		}
		s.Extras = append(s.Extras, m)
		return
	}
	kept := s.Extras[:0]
	for _, e := range s.Extras {
		if e.ID != m.ID {
			kept = append(kept, e)
		}
	}
	s.Extras = kept
}

// Confirm devuelve los modificadores elegidos en orden tortilla, picante,
// extras. Para productos personalizables ambos grupos obligatorios deben
// estar resueltos; si no, no se crea la línea.
func (s Selection) Confirm() ([]models.Modifier, error) {
	if s.Product.IsCustomizable && (s.Tortilla == nil || s.Picante == nil) {
		return nil, ErrSeleccionIncompleta
	}

	var mods []models.Modifier
	if s.Tortilla != nil {
		mods = append(mods, *s.Tortilla)
	}
	if s.Picante != nil {
		mods = append(mods, *s.Picante)
	}
	mods = append(mods, s.Extras...)
	return mods, nil
}

// ValidateModifiers revisa una combinación ya elegida (por ejemplo la que
// llega en una petición de crear orden): un producto personalizable exige
// exactamente una tortilla y exactamente un picante.
func ValidateModifiers(p models.Product, mods []models.Modifier) error {
	if !p.IsCustomizable {
		return nil
	}
	var tortillas, picantes int
	seen := make(map[uuid.UUID]bool, len(mods))
	for _, m := range mods {
		if seen[m.ID] {
			return fmt.Errorf("modificador %q repetido", m.Name)
		}
		seen[m.ID] = true
		switch m.Kind {
		case models.ModifierTortilla:
			tortillas++
		case models.ModifierPicante:
			picantes++
		}
	}
	if tortillas != 1 || picantes != 1 {
		return ErrSeleccionIncompleta
	}
	return nil
}

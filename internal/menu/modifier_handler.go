package menu

import (
	"taqueria-backend/internal/database"
	"taqueria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ModifierRequest struct {
	Name  string              `json:"name"`
	Kind  models.ModifierKind `json:"kind"`
	Price decimal.Decimal     `json:"price"`
}

type ModifierResponse struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Kind     models.ModifierKind `json:"kind"`
	Price    string              `json:"price"`
	IsActive bool                `json:"is_active"`
}

func toModifierResponse(m models.Modifier) ModifierResponse {
	return ModifierResponse{
		ID:       m.ID.String(),
		Name:     m.Name,
		Kind:     m.Kind,
		Price:    m.Price.StringFixed(2),
		IsActive: m.IsActive,
	}
}

func validKind(k models.ModifierKind) bool {
	return k == models.ModifierTortilla || k == models.ModifierPicante || k == models.ModifierExtra
}

// -------------------------------------------------
// GET /api/modifiers?kind=
// El POS los agrupa: tortilla y picante de una sola opción, extras libres.
// -------------------------------------------------
func ListModifiersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Modifier{}).Where("is_active = true")

		if k := c.Query("kind"); k != "" {
			if !validKind(models.ModifierKind(k)) {
				return fiber.NewError(fiber.StatusBadRequest, "Tipo inválido (tortilla|picante|extra)")
			}
			dbq = dbq.Where("kind = ?", k)
		}

		var list []models.Modifier
		if err := dbq.Order("kind asc, name asc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los modificadores")
		}

		resp := make([]ModifierResponse, 0, len(list))
		for _, m := range list {
			resp = append(resp, toModifierResponse(m))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// POST /api/admin/modifiers
// -------------------------------------------------
func CreateModifierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ModifierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre es obligatorio")
		}
		if !validKind(body.Kind) {
			return fiber.NewError(fiber.StatusBadRequest, "Tipo inválido (tortilla|picante|extra)")
		}
		if body.Price.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "El precio no puede ser negativo")
		}

		m := models.Modifier{
			Name:     body.Name,
			Kind:     body.Kind,
			Price:    body.Price.Round(2),
			IsActive: true,
		}
		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el modificador")
		}
		return c.Status(fiber.StatusCreated).JSON(toModifierResponse(m))
	}
}

// -------------------------------------------------
// DELETE /api/admin/modifiers/:id
// Baja lógica: las órdenes ya cobradas conservan el precio congelado.
// -------------------------------------------------
func DeleteModifierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Id de modificador inválido")
		}

		if err := database.DB.Model(&models.Modifier{}).
			Where("id = ?", id).
			Update("is_active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el modificador")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

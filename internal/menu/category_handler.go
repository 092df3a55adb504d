package menu

import (
	"taqueria-backend/internal/database"
	"taqueria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CategoryRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	Color         string `json:"color"`
	OrderPosition int    `json:"order_position"`
}

// -------------------------------------------------
// GET /api/categories
// -------------------------------------------------
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var list []models.Category
		if err := database.DB.
			Where("is_active = true").
			Order("order_position asc, name asc").
			Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las categorías")
		}
		return c.JSON(list)
	}
}

// -------------------------------------------------
// POST /api/admin/categories
// -------------------------------------------------
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre es obligatorio")
		}

		cat := models.Category{
			Name:          body.Name,
			Description:   body.Description,
			Icon:          body.Icon,
			Color:         body.Color,
			OrderPosition: body.OrderPosition,
			IsActive:      true,
		}
		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "No se pudo crear la categoría (¿nombre repetido?)")
		}
		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}

// -------------------------------------------------
// PUT /api/admin/categories/:id
// -------------------------------------------------
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Id de categoría inválido")
		}

		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		var cat models.Category
		if err := database.DB.First(&cat, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Categoría no encontrada")
		}

		if body.Name != "" {
			cat.Name = body.Name
		}
		cat.Description = body.Description
		cat.Icon = body.Icon
		cat.Color = body.Color
		cat.OrderPosition = body.OrderPosition

		if err := database.DB.Save(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la categoría")
		}
		return c.JSON(cat)
	}
}

// -------------------------------------------------
// DELETE /api/admin/categories/:id
// Baja lógica: los productos existentes conservan su referencia.
// -------------------------------------------------
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Id de categoría inválido")
		}

		if err := database.DB.Model(&models.Category{}).
			Where("id = ?", id).
			Update("is_active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la categoría")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

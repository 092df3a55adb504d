package menu

import (
	"taqueria-backend/internal/database"
	"taqueria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	CategoryID     *uuid.UUID      `json:"category_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	IsCustomizable *bool           `json:"is_customizable"`
	MinStock       int             `json:"min_stock"`
	MaxStock       int             `json:"max_stock"`
}

type ProductResponse struct {
	ID             string  `json:"id"`
	CategoryID     *string `json:"category_id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          string  `json:"price"`
	IsActive       bool    `json:"is_active"`
	IsCustomizable bool    `json:"is_customizable"`
	StockQuantity  int     `json:"stock_quantity"`
	MinStock       int     `json:"min_stock"`
	MaxStock       int     `json:"max_stock"`
}

func ToProductResponse(p models.Product) ProductResponse {
	resp := ProductResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price.StringFixed(2),
		IsActive:       p.IsActive,
		IsCustomizable: p.IsCustomizable,
		StockQuantity:  p.StockQuantity,
		MinStock:       p.MinStock,
		MaxStock:       p.MaxStock,
	}
	if p.CategoryID != nil {
		cid := p.CategoryID.String()
		resp.CategoryID = &cid
	}
	return resp
}

// -------------------------------------------------
// GET /api/products?category_id=
// -------------------------------------------------
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{}).Where("is_active = true")

		if cid := c.Query("category_id"); cid != "" {
			id, err := uuid.Parse(cid)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "category_id inválido")
			}
			dbq = dbq.Where("category_id = ?", id)
		}

		var list []models.Product
		if err := dbq.Order("name asc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los productos")
		}

		resp := make([]ProductResponse, 0, len(list))
		for _, p := range list {
			resp = append(resp, ToProductResponse(p))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// POST /api/admin/products
// -------------------------------------------------
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre es obligatorio")
		}
		if body.Price.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "El precio no puede ser negativo")
		}

		p := models.Product{
			CategoryID:  body.CategoryID,
			Name:        body.Name,
			Description: body.Description,
			Price:       body.Price.Round(2),
			IsActive:    true,
			MinStock:    body.MinStock,
			MaxStock:    body.MaxStock,
		}
		if body.IsCustomizable != nil {
			p.IsCustomizable = *body.IsCustomizable
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el producto")
		}
		return c.Status(fiber.StatusCreated).JSON(ToProductResponse(p))
	}
}

// -------------------------------------------------
// PUT /api/admin/products/:id
// -------------------------------------------------
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Id de producto inválido")
		}

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}

		if body.Name != "" {
			p.Name = body.Name
		}
		if body.Price.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "El precio no puede ser negativo")
		}
		if !body.Price.IsZero() {
			p.Price = body.Price.Round(2)
		}
		p.Description = body.Description
		p.CategoryID = body.CategoryID
		if body.IsCustomizable != nil {
			p.IsCustomizable = *body.IsCustomizable
		}
		p.MinStock = body.MinStock
		p.MaxStock = body.MaxStock

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el producto")
		}
		return c.JSON(ToProductResponse(p))
	}
}

// -------------------------------------------------
// DELETE /api/admin/products/:id
// Baja lógica: las órdenes históricas siguen apuntando al producto.
// -------------------------------------------------
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Id de producto inválido")
		}

		if err := database.DB.Model(&models.Product{}).
			Where("id = ?", id).
			Update("is_active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el producto")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

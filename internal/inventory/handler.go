package inventory

import (
	"errors"
	"log"
	"time"

	"taqueria-backend/internal/audit"
	"taqueria-backend/internal/auth"
	"taqueria-backend/internal/database"
	"taqueria-backend/internal/menu"
	"taqueria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdjustStockRequest struct {
	ProductID uuid.UUID           `json:"product_id"`
	Quantity  int                 `json:"quantity"`
	Type      models.MovementType `json:"type"` // in | out | adjustment
	Notes     string              `json:"notes"`
}

type MovementResponse struct {
	ID          string              `json:"id"`
	ProductID   string              `json:"product_id"`
	ProductName string              `json:"product_name"`
	Type        models.MovementType `json:"type"`
	Quantity    int                 `json:"quantity"`
	Notes       string              `json:"notes,omitempty"`
	CreatedAt   string              `json:"created_at"`
}

// -------------------------------------------------
// POST /api/inventory/adjust
// Entrada, salida o conteo exacto. Existencia y movimiento se escriben en la
// misma transacción para que el historial siempre cuadre con el stock.
// -------------------------------------------------
func AdjustStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body AdjustStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}

		newStock, delta, err := ApplyAdjustment(product.StockQuantity, body.Quantity, body.Type)
		if err != nil {
			if errors.Is(err, ErrInvalidType) {
				return fiber.NewError(fiber.StatusBadRequest, "Tipo de movimiento inválido (in|out|adjustment)")
			}
			return fiber.NewError(fiber.StatusBadRequest, "Cantidad inválida para el movimiento")
		}

		mov := models.InventoryMovement{
			ProductID: product.ID,
			UserID:    userID,
			Type:      body.Type,
			Quantity:  delta,
			Notes:     body.Notes,
		}

		tx := database.DB.Begin()
		if err := tx.Model(&models.Product{}).
			Where("id = ?", product.ID).
			Updates(map[string]any{"stock_quantity": newStock, "updated_at": time.Now()}).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la existencia")
		}
		if err := tx.Create(&mov).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar el movimiento")
		}
		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar el movimiento")
		}

		var actor models.User
		if err := database.DB.First(&actor, "id = ?", userID).Error; err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    actor.Name,
				EntityType:  "product",
				EntityID:    product.ID,
				Action:      models.AuditActionUpdate,
				Description: "Inventario de " + product.Name + " ajustado (" + string(body.Type) + ")",
				Before:      fiber.Map{"stock_quantity": product.StockQuantity},
				After:       fiber.Map{"stock_quantity": newStock},
			}); logErr != nil {
				log.Printf("No se pudo escribir el registro de auditoría: %v", logErr)
			}
		}

		product.StockQuantity = newStock
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"product":  menu.ToProductResponse(product),
			"movement": toMovementResponse(mov, product.Name),
		})
	}
}

func toMovementResponse(m models.InventoryMovement, productName string) MovementResponse {
	return MovementResponse{
		ID:          m.ID.String(),
		ProductID:   m.ProductID.String(),
		ProductName: productName,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}

// -------------------------------------------------
// GET /api/inventory/movements?product_id=
// -------------------------------------------------
func ListMovementsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.InventoryMovement{}).Preload("Product")

		if pid := c.Query("product_id"); pid != "" {
			id, err := uuid.Parse(pid)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "product_id inválido")
			}
			dbq = dbq.Where("product_id = ?", id)
		}

		var movs []models.InventoryMovement
		if err := dbq.Order("created_at desc").Limit(200).Find(&movs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los movimientos")
		}

		resp := make([]MovementResponse, 0, len(movs))
		for _, m := range movs {
			resp = append(resp, toMovementResponse(m, m.Product.Name))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// GET /api/inventory/low-stock
// Productos en o por debajo de su mínimo (los agotados primero).
// -------------------------------------------------
func LowStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var list []models.Product
		if err := database.DB.
			Where("is_active = true AND stock_quantity <= min_stock").
			Order("stock_quantity asc, name asc").
			Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el reporte")
		}

		resp := make([]menu.ProductResponse, 0, len(list))
		for _, p := range list {
			resp = append(resp, menu.ToProductResponse(p))
		}
		return c.JSON(resp)
	}
}

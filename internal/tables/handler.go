package tables

import (
	"taqueria-backend/internal/database"
	"taqueria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateTableRequest struct {
	Number    int `json:"number"`
	Capacity  int `json:"capacity"`
	XPosition int `json:"x_position"`
	YPosition int `json:"y_position"`
}

type SetTableStatusRequest struct {
	Status models.TableStatus `json:"status"`
}

type TableResponse struct {
	ID        string             `json:"id"`
	Number    int                `json:"number"`
	Capacity  int                `json:"capacity"`
	Status    models.TableStatus `json:"status"`
	XPosition int                `json:"x_position"`
	YPosition int                `json:"y_position"`
}

func toTableResponse(t models.Table) TableResponse {
	return TableResponse{
		ID:        t.ID.String(),
		Number:    t.Number,
		Capacity:  t.Capacity,
		Status:    t.Status,
		XPosition: t.XPosition,
		YPosition: t.YPosition,
	}
}

// -------------------------------------------------
// GET /api/tables
// -------------------------------------------------
func ListTablesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var list []models.Table
		if err := database.DB.Order("number asc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las mesas")
		}

		resp := make([]TableResponse, 0, len(list))
		for _, t := range list {
			resp = append(resp, toTableResponse(t))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// POST /api/tables
// -------------------------------------------------
func CreateTableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Number <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El número de mesa debe ser mayor que 0")
		}
		if body.Capacity <= 0 {
			body.Capacity = 4
		}

		table := models.Table{
			Number:    body.Number,
			Capacity:  body.Capacity,
			Status:    models.TableDisponible,
			XPosition: body.XPosition,
			YPosition: body.YPosition,
		}

		if err := database.DB.Create(&table).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "No se pudo crear la mesa (¿número repetido?)")
		}
		return c.Status(fiber.StatusCreated).JSON(toTableResponse(table))
	}
}

// -------------------------------------------------
// PATCH /api/tables/:id/status
// Cambia el estado de una mesa (disponible|ocupada|sucia). Una mesa sucia
// pasa a disponible cuando la limpian; el POS la ocupa al crear la orden.
// -------------------------------------------------
func SetTableStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Id de mesa inválido")
		}

		var body SetTableStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		switch body.Status {
		case models.TableDisponible, models.TableOcupada, models.TableSucia:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Estado inválido (disponible|ocupada|sucia)")
		}

		var table models.Table
		if err := database.DB.First(&table, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mesa no encontrada")
		}

		if err := database.DB.Model(&table).Update("status", body.Status).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la mesa")
		}

		table.Status = body.Status
		return c.JSON(toTableResponse(table))
	}
}

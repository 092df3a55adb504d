package shifts

import (
	"log"
	"time"

	"taqueria-backend/internal/audit"
	"taqueria-backend/internal/auth"
	"taqueria-backend/internal/database"
	"taqueria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OpenShiftRequest struct {
	InitialCash decimal.Decimal `json:"initial_cash"`
}

type ShiftResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name,omitempty"`
	InitialCash string  `json:"initial_cash"`
	FinalCash   *string `json:"final_cash"`
	IsActive    bool    `json:"is_active"`
	OpenedAt    string  `json:"opened_at"`
	ClosedAt    *string `json:"closed_at"`
}

func ToShiftResponse(s models.Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:          s.ID.String(),
		UserID:      s.UserID.String(),
		UserName:    s.User.Name,
		InitialCash: s.InitialCash.StringFixed(2),
		IsActive:    s.IsActive,
		OpenedAt:    s.OpenedAt.Format(time.RFC3339),
	}
	if s.FinalCash != nil {
		fc := s.FinalCash.StringFixed(2)
		resp.FinalCash = &fc
	}
	if s.ClosedAt != nil {
		ca := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &ca
	}
	return resp
}

// -------------------------------------------------
// POST /api/shifts
// Abre el turno del usuario autenticado con su fondo inicial de caja.
// -------------------------------------------------
func OpenShiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body OpenShiftRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.InitialCash.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "El efectivo inicial no puede ser negativo")
		}

		var activeCount int64
		database.DB.Model(&models.Shift{}).
			Where("user_id = ? AND is_active = true", userID).
			Count(&activeCount)
		if activeCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Ya tienes un turno abierto; ciérralo con un corte Z antes de abrir otro")
		}

		shift := models.Shift{
			UserID:      userID,
			InitialCash: body.InitialCash.Round(2),
			IsActive:    true,
			OpenedAt:    time.Now(),
		}

		if err := database.DB.Create(&shift).Error; err != nil {
			// el índice parcial también protege contra dos aperturas simultáneas
			return fiber.NewError(fiber.StatusConflict, "No se pudo abrir el turno")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err == nil {
			shift.User = user
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    user.Name,
				EntityType:  "shift",
				EntityID:    shift.ID,
				Action:      models.AuditActionCreate,
				Description: "Turno abierto con fondo de $" + shift.InitialCash.StringFixed(2),
			}); logErr != nil {
				log.Printf("No se pudo escribir el registro de auditoría: %v", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(ToShiftResponse(shift))
	}
}

// -------------------------------------------------
// GET /api/shifts/active
// Lista los turnos abiertos (los únicos que aceptan cortes).
// -------------------------------------------------
func ListActiveShiftsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var shifts []models.Shift
		if err := database.DB.Preload("User").
			Where("is_active = true").
			Order("opened_at asc").
			Find(&shifts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los turnos")
		}

		resp := make([]ShiftResponse, 0, len(shifts))
		for _, s := range shifts {
			resp = append(resp, ToShiftResponse(s))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// GET /api/shifts/:id
// -------------------------------------------------
func GetShiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Id de turno inválido")
		}

		var shift models.Shift
		if err := database.DB.Preload("User").First(&shift, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Turno no encontrado")
		}
		return c.JSON(ToShiftResponse(shift))
	}
}

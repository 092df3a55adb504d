package cashcut

import (
	"errors"
	"log"
	"time"

	"taqueria-backend/internal/audit"
	"taqueria-backend/internal/auth"
	"taqueria-backend/internal/config"
	"taqueria-backend/internal/database"
	"taqueria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PerformCutRequest struct {
	ShiftID     uuid.UUID          `json:"shift_id"`
	Type        models.CashCutType `json:"type"`
	CashCounted decimal.Decimal    `json:"cash_counted"`
}

type SalesSummaryResponse struct {
	TotalSales    string `json:"total_sales"`
	TotalCash     string `json:"total_cash"`
	TotalCard     string `json:"total_card"`
	TotalTransfer string `json:"total_transfer"`
	OrderCount    int    `json:"order_count"`
}

type CashCutResponse struct {
	ID            string             `json:"id"`
	ShiftID       string             `json:"shift_id"`
	Type          models.CashCutType `json:"type"`
	TotalSales    string             `json:"total_sales"`
	TotalCash     string             `json:"total_cash"`
	TotalCard     string             `json:"total_card"`
	TotalTransfer string             `json:"total_transfer"`
	ExpectedCash  string             `json:"expected_cash"`
	CashCounted   string             `json:"cash_counted"`
	Difference    string             `json:"difference"`
	Notable       bool               `json:"notable"`
	CreatedAt     string             `json:"created_at"`
}

func toSummaryResponse(s SalesSummary) SalesSummaryResponse {
	return SalesSummaryResponse{
		TotalSales:    s.TotalSales.StringFixed(2),
		TotalCash:     s.TotalCash.StringFixed(2),
		TotalCard:     s.TotalCard.StringFixed(2),
		TotalTransfer: s.TotalTransfer.StringFixed(2),
		OrderCount:    s.OrderCount,
	}
}

func loadShiftOrders(shiftID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := database.DB.
		Where("shift_id = ? AND status IN ?", shiftID,
			[]models.OrderStatus{models.OrderPagada, models.OrderEntregada}).
		Find(&orders).Error
	return orders, err
}

// -------------------------------------------------
// GET /api/shifts/:id/summary
// Resumen de ventas liquidadas del turno, partido por método de pago.
// -------------------------------------------------
func ShiftSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Id de turno inválido")
		}

		var shift models.Shift
		if err := database.DB.First(&shift, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Turno no encontrado")
		}

		orders, err := loadShiftOrders(shift.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron leer las órdenes del turno")
		}

		summary := Summarize(orders)
		expected := shift.InitialCash.Add(summary.TotalCash)

		return c.JSON(fiber.Map{
			"shift_id":      shift.ID,
			"initial_cash":  shift.InitialCash.StringFixed(2),
			"expected_cash": expected.StringFixed(2),
			"summary":       toSummaryResponse(summary),
		})
	}
}

// -------------------------------------------------
// POST /api/cash-cuts
// Corte X: guarda el registro y el turno sigue abierto.
// Corte Z: guarda el registro y cierra el turno, las dos cosas en una sola
// transacción; no puede quedar un corte final con el turno abierto.
// -------------------------------------------------
func PerformCutHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body PerformCutRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.Type != models.CorteX && body.Type != models.CorteZ {
			return fiber.NewError(fiber.StatusBadRequest, "Tipo de corte inválido (corte_x|corte_z)")
		}
		if body.CashCounted.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "El efectivo contado no puede ser negativo")
		}

		var shift models.Shift
		if err := database.DB.First(&shift, "id = ?", body.ShiftID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Turno no encontrado")
		}

		orders, err := loadShiftOrders(shift.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron leer las órdenes del turno")
		}

		result, err := Reconcile(shift, orders, body.CashCounted.Round(2), cfg.CashDiffThreshold)
		if err != nil {
			if errors.Is(err, ErrShiftClosed) {
				return fiber.NewError(fiber.StatusConflict, "El turno ya está cerrado; no admite más cortes")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo conciliar el turno")
		}

		cut := models.CashCut{
			ShiftID:       shift.ID,
			UserID:        shift.UserID,
			Type:          body.Type,
			TotalSales:    result.Summary.TotalSales,
			TotalCash:     result.Summary.TotalCash,
			TotalCard:     result.Summary.TotalCard,
			TotalTransfer: result.Summary.TotalTransfer,
			CashCounted:   result.CashCounted,
			Difference:    result.Difference,
		}

		tx := database.DB.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Create(&cut).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el corte")
		}

		if body.Type == models.CorteZ {
			now := time.Now()
			if err := tx.Model(&models.Shift{}).
				Where("id = ? AND is_active = true", shift.ID).
				Updates(map[string]any{
					"is_active":  false,
					"final_cash": result.CashCounted,
					"closed_at":  now,
				}).Error; err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cerrar el turno")
			}
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el corte")
		}

		if result.Notable {
			log.Printf("Corte %s del turno %s con diferencia notable: %s",
				cut.Type, shift.ID, result.Difference.StringFixed(2))
		}

		var actor models.User
		if err := database.DB.First(&actor, "id = ?", userID).Error; err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    actor.Name,
				EntityType:  "cash_cut",
				EntityID:    cut.ID,
				Action:      models.AuditActionCreate,
				Description: "Corte " + string(cut.Type) + " con diferencia de $" + result.Difference.StringFixed(2),
				After:       toCutResponse(cut, result),
			}); logErr != nil {
				log.Printf("No se pudo escribir el registro de auditoría: %v", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toCutResponse(cut, result))
	}
}

func toCutResponse(cut models.CashCut, result Result) CashCutResponse {
	return CashCutResponse{
		ID:            cut.ID.String(),
		ShiftID:       cut.ShiftID.String(),
		Type:          cut.Type,
		TotalSales:    cut.TotalSales.StringFixed(2),
		TotalCash:     cut.TotalCash.StringFixed(2),
		TotalCard:     cut.TotalCard.StringFixed(2),
		TotalTransfer: cut.TotalTransfer.StringFixed(2),
		ExpectedCash:  result.ExpectedCash.StringFixed(2),
		CashCounted:   cut.CashCounted.StringFixed(2),
		Difference:    cut.Difference.StringFixed(2),
		Notable:       result.Notable,
		CreatedAt:     cut.CreatedAt.Format(time.RFC3339),
	}
}

// -------------------------------------------------
// GET /api/cash-cuts?shift_id=&from=&to=
// Historial de cortes; los registros nunca se editan ni se borran.
// -------------------------------------------------
func ListCashCutsHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.CashCut{}).Preload("Shift")

		if sid := c.Query("shift_id"); sid != "" {
			id, err := uuid.Parse(sid)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "shift_id inválido")
			}
			dbq = dbq.Where("shift_id = ?", id)
		}
		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fecha 'from' inválida, debe ser 'YYYY-MM-DD'")
			}
			dbq = dbq.Where("created_at >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fecha 'to' inválida, debe ser 'YYYY-MM-DD'")
			}
			dbq = dbq.Where("created_at < ?", to.AddDate(0, 0, 1))
		}

		var cuts []models.CashCut
		if err := dbq.Order("created_at desc").Limit(200).Find(&cuts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los cortes")
		}

		resp := make([]CashCutResponse, 0, len(cuts))
		for _, cut := range cuts {
			expected := cut.Shift.InitialCash.Add(cut.TotalCash)
			resp = append(resp, CashCutResponse{
				ID:            cut.ID.String(),
				ShiftID:       cut.ShiftID.String(),
				Type:          cut.Type,
				TotalSales:    cut.TotalSales.StringFixed(2),
				TotalCard:     cut.TotalCard.StringFixed(2),
				TotalCash:     cut.TotalCash.StringFixed(2),
				TotalTransfer: cut.TotalTransfer.StringFixed(2),
				ExpectedCash:  expected.StringFixed(2),
				CashCounted:   cut.CashCounted.StringFixed(2),
				Difference:    cut.Difference.StringFixed(2),
				Notable:       cut.Difference.Abs().GreaterThan(cfg.CashDiffThreshold),
				CreatedAt:     cut.CreatedAt.Format(time.RFC3339),
			})
		}
		return c.JSON(resp)
	}
}

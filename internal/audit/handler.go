package audit

import (
	"time"

	"taqueria-backend/internal/database"
	"taqueria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	UserName    string             `json:"user_name"`
	EntityType  string             `json:"entity_type"`
	EntityID    string             `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	CreatedAt   string             `json:"created_at"`
}

// -------------------------------------------------
// GET /api/audit-logs?entity_type=order&from=2025-01-01&to=2025-01-31
// -------------------------------------------------
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if et := c.Query("entity_type"); et != "" {
			dbq = dbq.Where("entity_type = ?", et)
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

		var logs []models.AuditLog
		if err := dbq.Order("created_at desc").Limit(500).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los registros")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, AuditLogResponse{
				ID:          l.ID.String(),
				UserID:      l.UserID.String(),
				UserName:    l.UserName,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID.String(),
				Action:      l.Action,
				Description: l.Description,
				CreatedAt:   l.CreatedAt.Format(time.RFC3339),
			})
		}

		return c.JSON(resp)
	}
}

package audit

import (
	"encoding/json"
	"fmt"

	"taqueria-backend/internal/database"
	"taqueria-backend/internal/models"

	"github.com/google/uuid"
)

type LogOptions struct {
	UserID      uuid.UUID
	UserName    string
	EntityType  string
	EntityID    uuid.UUID
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog guarda un registro de auditoría. Para jsonb de Postgres los campos
// vacíos deben ser el string JSON "null", no un string vacío.
func WriteLog(opts LogOptions) error {
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("no se pudo guardar el registro de auditoría: %w", err)
	}

	return nil
}

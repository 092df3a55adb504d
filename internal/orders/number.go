package orders

import (
	"fmt"
	"time"

	"taqueria-backend/internal/models"

	"gorm.io/gorm"
)

// nextOrderNumber genera el folio ORD-YYYYMMDD-NNNN dentro de la transacción
// de creación. La numeración reinicia cada día; el índice único sobre
// order_number atrapa cualquier colisión entre dos creaciones simultáneas.
func nextOrderNumber(tx *gorm.DB, now time.Time) (string, error) {
	day := now.Format("20060102")
	prefix := "ORD-" + day + "-"

	var count int64
	if err := tx.Model(&models.Order{}).
		Where("order_number LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("no se pudo calcular el folio: %w", err)
	}

	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

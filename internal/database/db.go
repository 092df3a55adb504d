package database

import (
	"log"

	"taqueria-backend/internal/config"
	"taqueria-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	// gen_random_uuid() requiere pgcrypto en Postgres < 13
	if err := DB.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		log.Printf("No se pudo crear la extensión pgcrypto (puede que ya exista): %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.UserPermission{},
		&models.Category{},
		&models.Product{},
		&models.Modifier{},
		&models.Table{},
		&models.Shift{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemModifier{},
		&models.CashCut{},
		&models.InventoryMovement{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Error en AutoMigrate: %v", err)
	}

	// Un solo turno activo por usuario. AutoMigrate no sabe crear índices
	// parciales, así que se crea a mano.
	if err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_shifts_one_active_per_user
		ON shifts(user_id) WHERE is_active = true
	`).Error; err != nil {
		log.Printf("No se pudo crear el índice de turno activo único: %v", err)
	}

	log.Println("Conexión a la base de datos lista. Migración completada.")
}

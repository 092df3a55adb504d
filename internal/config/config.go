package config

import (
	"log"
	"os"

	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	TaxRate     decimal.Decimal // IVA, fracción (0.16 = 16%)
	// Umbral absoluto a partir del cual la diferencia de un corte se marca notable
	CashDiffThreshold decimal.Decimal
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:       getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=taqueria port=5432 sslmode=disable"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		CORSOrigins:       getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		TaxRate:           getDecimal("TAX_RATE", "0.16"),
		CashDiffThreshold: getDecimal("CASH_DIFF_THRESHOLD", "10.00"),
	}

	// Controles de seguridad para producción
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] La variable de entorno JWT_SECRET no está definida. Es obligatoria para producción.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET debe tener al menos 32 caracteres. Riesgo de seguridad.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=taqueria port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN usa el valor por defecto; define tu propia conexión de Postgres para producción.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS usa el valor por defecto; define tu propio dominio para producción.")
	}
	if cfg.TaxRate.IsNegative() || cfg.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		log.Fatalf("[FATAL] TAX_RATE debe estar entre 0 y 1, se recibió %s", cfg.TaxRate)
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDecimal(key, def string) decimal.Decimal {
	raw := getEnv(key, def)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("[FATAL] %s no es un número decimal válido: %q", key, raw)
	}
	return d
}

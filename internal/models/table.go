package models

import "github.com/google/uuid"

type TableStatus string

const (
	TableDisponible TableStatus = "disponible"
	TableOcupada    TableStatus = "ocupada"
	TableSucia      TableStatus = "sucia"
)

type Table struct {
	ID       uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number   int         `gorm:"not null;uniqueIndex"`
	Capacity int         `gorm:"not null;default:4"`
	Status   TableStatus `gorm:"size:20;not null;default:'disponible'"`
	// posición en el plano del salón
	XPosition int `gorm:"not null;default:0"`
	YPosition int `gorm:"not null;default:0"`
}

func (Table) TableName() string { return "tables" }

package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleSupervisor UserRole = "supervisor"
	RoleCajero     UserRole = "cajero"
	RoleMesero     UserRole = "mesero"
	RoleCocina     UserRole = "cocina"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"size:100;not null"`
	Email        string    `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         UserRole  `gorm:"size:20;not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Permissions []UserPermission `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Permisos conocidos del sistema. El rol admin no necesita registros: pasa todo.
const (
	PermPOSAccess       = "pos_access"
	PermKitchenAccess   = "kitchen_access"
	PermInventoryManage = "inventory_manage"
	PermSalesView       = "sales_view"
	PermUsersManage     = "users_manage"
	PermCashManage      = "cash_manage"
	PermReportsView     = "reports_view"
)

type UserPermission struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_user_perm"`
	Permission string    `gorm:"size:50;not null;uniqueIndex:idx_user_perm"`
	CreatedAt  time.Time
}

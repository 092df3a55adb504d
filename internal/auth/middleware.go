package auth

import (
	"fmt"
	"strings"

	"taqueria-backend/internal/config"
	"taqueria-backend/internal/database"
	"taqueria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUserRoleKey = "user_role"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Falta el encabezado Authorization")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "El formato de Authorization debe ser 'Bearer <token>'")
		}

		tokenStr := parts[1]

		token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de firma inválido")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido o expirado")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "No se pudo leer el token")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserRoleKey, claims.Role)

		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(CtxUserRoleKey)
		role, ok := roleVal.(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "No se pudo leer el rol del usuario")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "No tienes permiso para esta operación")
	}
}

// RequirePermission exige un permiso explícito de la tabla user_permissions.
// El rol admin pasa siempre, sin registro.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(CtxUserRoleKey).(models.UserRole)
		if role == models.RoleAdmin {
			return c.Next()
		}

		userID, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "No se pudo leer el usuario")
		}

		if !HasPermission(userID, permission) {
			return fiber.NewError(fiber.StatusForbidden, "No tienes permiso para esta operación")
		}
		return c.Next()
	}
}

func HasPermission(userID uuid.UUID, permission string) bool {
	var count int64
	database.DB.Model(&models.UserPermission{}).
		Where("user_id = ? AND permission = ?", userID, permission).
		Count(&count)
	return count > 0
}

// CurrentUserID lee el id de usuario que dejó el middleware JWT.
func CurrentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "No se pudo leer el usuario")
	}
	return id, nil
}

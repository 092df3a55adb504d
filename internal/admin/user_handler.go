package admin

import (
	"log"
	"strings"

	"taqueria-backend/internal/audit"
	"taqueria-backend/internal/auth"
	"taqueria-backend/internal/database"
	"taqueria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	Role        models.UserRole `json:"role"`
	Permissions []string        `json:"permissions"`
}

type UpdateUserRequest struct {
	Name     *string          `json:"name"`
	Role     *models.UserRole `json:"role"`
	IsActive *bool            `json:"is_active"`
	Password *string          `json:"password"`
}

type SetPermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

type UserResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        models.UserRole `json:"role"`
	IsActive    bool            `json:"is_active"`
	Permissions []string        `json:"permissions"`
}

var validRoles = map[models.UserRole]bool{
	models.RoleAdmin:      true,
	models.RoleSupervisor: true,
	models.RoleCajero:     true,
	models.RoleMesero:     true,
	models.RoleCocina:     true,
}

var validPermissions = map[string]bool{
	models.PermPOSAccess:       true,
	models.PermKitchenAccess:   true,
	models.PermInventoryManage: true,
	models.PermSalesView:       true,
	models.PermUsersManage:     true,
	models.PermCashManage:      true,
	models.PermReportsView:     true,
}

func toUserResponse(u models.User) UserResponse {
	perms := make([]string, 0, len(u.Permissions))
	for _, p := range u.Permissions {
		perms = append(perms, p.Permission)
	}
	return UserResponse{
		ID:          u.ID.String(),
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		Permissions: perms,
	}
}

// -------------------------------------------------
// POST /api/admin/users
// -------------------------------------------------
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre, email y contraseña son obligatorios")
		}
		if !validRoles[body.Role] {
			return fiber.NewError(fiber.StatusBadRequest, "Rol inválido (admin|supervisor|cajero|mesero|cocina)")
		}
		for _, p := range body.Permissions {
			if !validPermissions[p] {
				return fiber.NewError(fiber.StatusBadRequest, "Permiso desconocido: "+p)
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cifrar la contraseña")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         body.Role,
			IsActive:     true,
		}

		tx := database.DB.Begin()
		if err := tx.Create(&user).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusConflict, "No se pudo crear el usuario (¿email repetido?)")
		}
		for _, p := range body.Permissions {
			if err := tx.Create(&models.UserPermission{UserID: user.ID, Permission: p}).Error; err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron asignar los permisos")
			}
		}
		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el usuario")
		}

		writeUserAudit(c, user.ID, models.AuditActionCreate, "Usuario creado: "+user.Email)

		user.Permissions = nil
		if err := database.DB.Preload("Permissions").First(&user, "id = ?", user.ID).Error; err == nil {
			return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
		}
		return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
	}
}

// -------------------------------------------------
// GET /api/admin/users
// -------------------------------------------------
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Preload("Permissions").Order("created_at asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los usuarios")
		}

		resp := make([]UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, toUserResponse(u))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// PUT /api/admin/users/:id
// -------------------------------------------------
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Id de usuario inválido")
		}

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
		}

		if body.Name != nil && *body.Name != "" {
			user.Name = *body.Name
		}
		if body.Role != nil {
			if !validRoles[*body.Role] {
				return fiber.NewError(fiber.StatusBadRequest, "Rol inválido")
			}
			user.Role = *body.Role
		}
		if body.IsActive != nil {
			user.IsActive = *body.IsActive
		}
		if body.Password != nil && *body.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cifrar la contraseña")
			}
			user.PasswordHash = string(hash)
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el usuario")
		}

		writeUserAudit(c, user.ID, models.AuditActionUpdate, "Usuario actualizado: "+user.Email)

		database.DB.Preload("Permissions").First(&user, "id = ?", user.ID)
		return c.JSON(toUserResponse(user))
	}
}

// -------------------------------------------------
// PUT /api/admin/users/:id/permissions
// Reemplaza el conjunto completo de permisos del usuario.
// -------------------------------------------------
func SetPermissionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Id de usuario inválido")
		}

		var body SetPermissionsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		for _, p := range body.Permissions {
			if !validPermissions[p] {
				return fiber.NewError(fiber.StatusBadRequest, "Permiso desconocido: "+p)
			}
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
		}

		tx := database.DB.Begin()
		if err := tx.Where("user_id = ?", id).Delete(&models.UserPermission{}).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron actualizar los permisos")
		}
		for _, p := range body.Permissions {
			if err := tx.Create(&models.UserPermission{UserID: id, Permission: p}).Error; err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron actualizar los permisos")
			}
		}
		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron actualizar los permisos")
		}

		writeUserAudit(c, user.ID, models.AuditActionUpdate, "Permisos actualizados: "+user.Email)

		database.DB.Preload("Permissions").First(&user, "id = ?", id)
		return c.JSON(toUserResponse(user))
	}
}

func writeUserAudit(c *fiber.Ctx, entityID uuid.UUID, action models.AuditAction, desc string) {
	actorID, err := auth.CurrentUserID(c)
	if err != nil {
		return
	}
	var actor models.User
	if err := database.DB.First(&actor, "id = ?", actorID).Error; err != nil {
		return
	}
	if logErr := audit.WriteLog(audit.LogOptions{
		UserID:      actorID,
		UserName:    actor.Name,
		EntityType:  "user",
		EntityID:    entityID,
		Action:      action,
		Description: desc,
	}); logErr != nil {
		// un fallo de auditoría no tumba la operación
		log.Printf("No se pudo escribir el registro de auditoría: %v", logErr)
	}
}

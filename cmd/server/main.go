package main

import (
	"log"
	"strings"

	"taqueria-backend/internal/admin"
	"taqueria-backend/internal/audit"
	"taqueria-backend/internal/auth"
	"taqueria-backend/internal/cashcut"
	"taqueria-backend/internal/config"
	"taqueria-backend/internal/database"
	"taqueria-backend/internal/inventory"
	"taqueria-backend/internal/menu"
	"taqueria-backend/internal/models"
	"taqueria-backend/internal/orders"
	"taqueria-backend/internal/reports"
	"taqueria-backend/internal/shifts"
	"taqueria-backend/internal/tables"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	// CORS: los orígenes llegan como string separado por comas
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Auth pública
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protegido
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Atajos de middleware por permiso
	posAccess := auth.RequirePermission(models.PermPOSAccess)
	cashManage := auth.RequirePermission(models.PermCashManage)
	catalogAdmin := auth.RequireRole(models.RoleAdmin, models.RoleSupervisor)

	// Administración de usuarios y permisos
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequirePermission(models.PermUsersManage))

	adminRoutes.Post("/users", admin.CreateUserHandler())
	adminRoutes.Get("/users", admin.ListUsersHandler())
	adminRoutes.Put("/users/:id", admin.UpdateUserHandler())
	adminRoutes.Put("/users/:id/permissions", admin.SetPermissionsHandler())

	// Catálogo: lectura para cualquier usuario autenticado, mutación solo
	// para admin/supervisor
	protected.Get("/categories", menu.ListCategoriesHandler())
	protected.Post("/categories", catalogAdmin, menu.CreateCategoryHandler())
	protected.Put("/categories/:id", catalogAdmin, menu.UpdateCategoryHandler())
	protected.Delete("/categories/:id", catalogAdmin, menu.DeleteCategoryHandler())

	protected.Get("/products", menu.ListProductsHandler())
	protected.Post("/products", catalogAdmin, menu.CreateProductHandler())
	protected.Put("/products/:id", catalogAdmin, menu.UpdateProductHandler())
	protected.Delete("/products/:id", catalogAdmin, menu.DeleteProductHandler())

	protected.Get("/modifiers", menu.ListModifiersHandler())
	protected.Post("/modifiers", catalogAdmin, menu.CreateModifierHandler())
	protected.Delete("/modifiers/:id", catalogAdmin, menu.DeleteModifierHandler())

	// Punto de venta
	protected.Post("/orders", posAccess, orders.CreateOrderHandler(cfg))
	protected.Get("/orders", posAccess, orders.ListOrdersHandler())
	protected.Patch("/orders/:id/status", orders.UpdateOrderStatusHandler())

	protected.Post("/shifts", posAccess, shifts.OpenShiftHandler())

	protected.Get("/tables", tables.ListTablesHandler())
	protected.Post("/tables", catalogAdmin, tables.CreateTableHandler())
	protected.Patch("/tables/:id/status", posAccess, tables.SetTableStatusHandler())

	// Cocina
	kitchen := protected.Group("/kitchen")
	kitchen.Use(auth.RequirePermission(models.PermKitchenAccess))

	kitchen.Get("/orders", orders.KitchenOrdersHandler())

	// Corte de caja
	protected.Get("/shifts/active", cashManage, shifts.ListActiveShiftsHandler())
	protected.Get("/shifts/:id", cashManage, shifts.GetShiftHandler())
	protected.Get("/shifts/:id/summary", cashManage, cashcut.ShiftSummaryHandler())
	protected.Post("/cash-cuts", cashManage, cashcut.PerformCutHandler(cfg))
	protected.Get("/cash-cuts", cashManage, cashcut.ListCashCutsHandler(cfg))

	// Inventario
	inv := protected.Group("/inventory")
	inv.Use(auth.RequirePermission(models.PermInventoryManage))

	inv.Post("/adjust", inventory.AdjustStockHandler())
	inv.Get("/movements", inventory.ListMovementsHandler())
	inv.Get("/low-stock", inventory.LowStockHandler())

	// Reportes
	rep := protected.Group("/reports")
	rep.Use(auth.RequirePermission(models.PermReportsView))

	rep.Get("/sales", reports.SalesReportHandler())
	rep.Get("/sales/export", reports.ExportSalesReportHandler())

	// Auditoría
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Servidor escuchando en el puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}

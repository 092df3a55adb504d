package orders

import (
	"log"
	"time"

	"taqueria-backend/internal/audit"
	"taqueria-backend/internal/auth"
	"taqueria-backend/internal/config"
	"taqueria-backend/internal/database"
	"taqueria-backend/internal/models"
	"taqueria-backend/internal/pricing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateOrderItemRequest struct {
	ProductID   uuid.UUID   `json:"product_id"`
	Quantity    int         `json:"quantity"`
	ModifierIDs []uuid.UUID `json:"modifier_ids"`
	Notes       string      `json:"notes"`
}

type CreateOrderRequest struct {
	ShiftID       uuid.UUID                `json:"shift_id"`
	Type          models.OrderType         `json:"type"`
	TableID       *uuid.UUID               `json:"table_id"`
	PaymentMethod models.PaymentMethod     `json:"payment_method"`
	Notes         string                   `json:"notes"`
	Items         []CreateOrderItemRequest `json:"items"`
}

type OrderItemModifierResponse struct {
	ModifierID string `json:"modifier_id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
}

type OrderItemResponse struct {
	ID          string                      `json:"id"`
	ProductID   string                      `json:"product_id"`
	ProductName string                      `json:"product_name"`
	Quantity    int                         `json:"quantity"`
	UnitPrice   string                      `json:"unit_price"`
	TotalPrice  string                      `json:"total_price"`
	Notes       string                      `json:"notes,omitempty"`
	Modifiers   []OrderItemModifierResponse `json:"modifiers"`
}

type OrderResponse struct {
	ID            string               `json:"id"`
	OrderNumber   string               `json:"order_number"`
	ShiftID       string               `json:"shift_id"`
	TableID       *string              `json:"table_id,omitempty"`
	Type          models.OrderType     `json:"type"`
	Status        models.OrderStatus   `json:"status"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Subtotal      string               `json:"subtotal"`
	Tax           string               `json:"tax"`
	Total         string               `json:"total"`
	Notes         string               `json:"notes,omitempty"`
	CreatedAt     string               `json:"created_at"`
	Items         []OrderItemResponse  `json:"items"`
}

func toOrderResponse(o models.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID.String(),
		OrderNumber:   o.OrderNumber,
		ShiftID:       o.ShiftID.String(),
		Type:          o.Type,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		Subtotal:      o.Subtotal.StringFixed(2),
		Tax:           o.Tax.StringFixed(2),
		Total:         o.Total.StringFixed(2),
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		Items:         make([]OrderItemResponse, 0, len(o.Items)),
	}
	if o.TableID != nil {
		tid := o.TableID.String()
		resp.TableID = &tid
	}
	for _, it := range o.Items {
		item := OrderItemResponse{
			ID:          it.ID.String(),
			ProductID:   it.ProductID.String(),
			ProductName: it.Product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			TotalPrice:  it.TotalPrice.StringFixed(2),
			Notes:       it.Notes,
			Modifiers:   make([]OrderItemModifierResponse, 0, len(it.Modifiers)),
		}
		for _, m := range it.Modifiers {
			item.Modifiers = append(item.Modifiers, OrderItemModifierResponse{
				ModifierID: m.ModifierID.String(),
				Name:       m.Modifier.Name,
				Price:      m.Price.StringFixed(2),
			})
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

// -------------------------------------------------
// POST /api/orders
// Valida el carrito con el motor de precios y escribe orden, líneas y
// modificadores en una sola transacción: o entra todo o no entra nada.
// -------------------------------------------------
func CreateOrderHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Type != models.OrderMesa && body.Type != models.OrderParaLlevar {
			return fiber.NewError(fiber.StatusBadRequest, "Tipo de orden inválido (mesa|para_llevar)")
		}
		switch body.PaymentMethod {
		case models.PayEfectivo, models.PayTarjeta, models.PayTransferencia:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Método de pago inválido (efectivo|tarjeta|transferencia)")
		}
		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "La orden necesita al menos un artículo")
		}
		for _, it := range body.Items {
			if it.Quantity < 1 {
				return fiber.NewError(fiber.StatusBadRequest, "La cantidad debe ser al menos 1")
			}
		}

		var shift models.Shift
		if err := database.DB.First(&shift, "id = ?", body.ShiftID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Turno no encontrado")
		}
		if !shift.IsActive {
			return fiber.NewError(fiber.StatusConflict, "El turno ya está cerrado; no admite órdenes nuevas")
		}

		var table *models.Table
		if body.Type == models.OrderMesa {
			if body.TableID == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Una orden para mesa necesita mesa")
			}
			var t models.Table
			if err := database.DB.First(&t, "id = ?", *body.TableID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Mesa no encontrada")
			}
			if t.Status == models.TableOcupada {
				return fiber.NewError(fiber.StatusConflict, "La mesa ya está ocupada")
			}
			table = &t
		}

		// Arma el carrito con precios actuales del catálogo.
		cart := pricing.New(body.Type, body.TableID)
		for _, it := range body.Items {
			var product models.Product
			if err := database.DB.First(&product, "id = ? AND is_active = true", it.ProductID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado o inactivo")
			}

			var mods []models.Modifier
			if len(it.ModifierIDs) > 0 {
				if err := database.DB.Where("id IN ? AND is_active = true", it.ModifierIDs).Find(&mods).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron leer los modificadores")
				}
				if len(mods) != len(it.ModifierIDs) {
					return fiber.NewError(fiber.StatusNotFound, "Algún modificador no existe o está inactivo")
				}
			}

			if err := pricing.ValidateModifiers(product, mods); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Producto "+product.Name+": "+err.Error())
			}

			line := cart.AddItem(product, mods)
			cart.Items[len(cart.Items)-1].Notes = it.Notes
			if err := cart.SetQuantity(line.ID, it.Quantity); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo armar el carrito")
			}
		}

		totals, err := cart.Totals(cfg.TaxRate)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron calcular los totales")
		}

		now := time.Now()
		order := models.Order{
			ShiftID:       shift.ID,
			UserID:        userID,
			TableID:       body.TableID,
			Type:          body.Type,
			Status:        models.OrderPendiente,
			PaymentMethod: body.PaymentMethod,
			Subtotal:      totals.Subtotal,
			Tax:           totals.Tax,
			Total:         totals.Total,
			Notes:         body.Notes,
		}

		tx := database.DB.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		number, err := nextOrderNumber(tx, now)
		if err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el folio")
		}
		order.OrderNumber = number

		if err := tx.Create(&order).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la orden")
		}

		for _, li := range cart.Items {
			item := models.OrderItem{
				OrderID:    order.ID,
				ProductID:  li.ProductID,
				Quantity:   li.Quantity,
				UnitPrice:  li.UnitPrice,
				TotalPrice: li.Total(),
				Notes:      li.Notes,
			}
			if err := tx.Create(&item).Error; err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la orden completa")
			}
			for _, m := range li.Modifiers {
				if err := tx.Create(&models.OrderItemModifier{
					OrderItemID: item.ID,
					ModifierID:  m.ID,
					Price:       m.Price,
				}).Error; err != nil {
					tx.Rollback()
					return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la orden completa")
				}
			}
		}

		if table != nil {
			if err := tx.Model(&models.Table{}).
				Where("id = ?", table.ID).
				Update("status", models.TableOcupada).Error; err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo ocupar la mesa")
			}
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la orden")
		}

		writeOrderAudit(c, order.ID, models.AuditActionCreate,
			"Orden "+order.OrderNumber+" creada por $"+order.Total.StringFixed(2))

		var created models.Order
		if err := database.DB.
			Preload("Items.Product").
			Preload("Items.Modifiers.Modifier").
			First(&created, "id = ?", order.ID).Error; err != nil {
			return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
		}
		return c.Status(fiber.StatusCreated).JSON(toOrderResponse(created))
	}
}

// -------------------------------------------------
// GET /api/orders?shift_id=&status=
// -------------------------------------------------
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Order{}).
			Preload("Items.Product").
			Preload("Items.Modifiers.Modifier")

		if sid := c.Query("shift_id"); sid != "" {
			id, err := uuid.Parse(sid)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "shift_id inválido")
			}
			dbq = dbq.Where("shift_id = ?", id)
		}
		if st := c.Query("status"); st != "" {
			dbq = dbq.Where("status = ?", st)
		}

		var list []models.Order
		if err := dbq.Order("created_at desc").Limit(200).Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las órdenes")
		}

		resp := make([]OrderResponse, 0, len(list))
		for _, o := range list {
			resp = append(resp, toOrderResponse(o))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// GET /api/kitchen/orders
// La pantalla de cocina solo ve lo pendiente y lo que está en plancha.
// -------------------------------------------------
func KitchenOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var list []models.Order
		if err := database.DB.
			Preload("Items.Product").
			Preload("Items.Modifiers.Modifier").
			Where("status IN ?", []models.OrderStatus{models.OrderPendiente, models.OrderEnPreparacion}).
			Order("created_at asc").
			Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las órdenes de cocina")
		}

		resp := make([]OrderResponse, 0, len(list))
		for _, o := range list {
			resp = append(resp, toOrderResponse(o))
		}
		return c.JSON(resp)
	}
}

// transiciones de estado permitidas
var statusFlow = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPendiente:     {models.OrderEnPreparacion, models.OrderCancelada},
	models.OrderEnPreparacion: {models.OrderLista, models.OrderCancelada},
	models.OrderLista:         {models.OrderPagada, models.OrderEntregada},
	models.OrderPagada:        {models.OrderEntregada},
}

func canTransition(from, to models.OrderStatus) bool {
	for _, s := range statusFlow[from] {
		if s == to {
			return true
		}
	}
	return false
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// -------------------------------------------------
// PATCH /api/orders/:id/status
// -------------------------------------------------
func UpdateOrderStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Id de orden inválido")
		}

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		var order models.Order
		if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Orden no encontrada")
		}

		if !canTransition(order.Status, body.Status) {
			return fiber.NewError(fiber.StatusConflict,
				"Transición inválida: "+string(order.Status)+" → "+string(body.Status))
		}

		before := order.Status

		tx := database.DB.Begin()
		if err := tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]any{"status": body.Status, "updated_at": time.Now()}).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la orden")
		}

		// Al entregar una orden de mesa, la mesa queda sucia hasta que la limpien.
		if body.Status == models.OrderEntregada && order.TableID != nil {
			if err := tx.Model(&models.Table{}).
				Where("id = ?", *order.TableID).
				Update("status", models.TableSucia).Error; err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo liberar la mesa")
			}
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la orden")
		}

		writeOrderAudit(c, order.ID, models.AuditActionUpdate,
			"Orden "+order.OrderNumber+": "+string(before)+" → "+string(body.Status))

		order.Status = body.Status
		return c.JSON(fiber.Map{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"status":       order.Status,
		})
	}
}

func writeOrderAudit(c *fiber.Ctx, orderID uuid.UUID, action models.AuditAction, desc string) {
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
		EntityType:  "order",
		EntityID:    orderID,
		Action:      action,
		Description: desc,
	}); logErr != nil {
		log.Printf("No se pudo escribir el registro de auditoría: %v", logErr)
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/orders"
)

// OrderHandler maneja el ciclo de vida de órdenes de venta.
type OrderHandler struct {
	uc *orders.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create crea la orden: descuenta stock, factura y actualiza el cliente en
// una sola transacción. Con stock insuficiente responde 409 y nada queda
// confirmado.
// POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.CreateOrder(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID devuelve la orden con sus líneas.
// GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetOrder(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// Cancel cancela la orden; con restore_stock restituye el inventario con
// movimientos de devolución y revierte el gasto del cliente.
// POST /api/orders/:id/cancel
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.CancelOrder(c.Context(), GetCompanyID(c), c.Params("id"), GetUserID(c), in.Reason, in.RestoreStock)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// MarkShipping pasa la orden a despacho.
// POST /api/orders/:id/shipping
func (h *OrderHandler) MarkShipping(c *fiber.Ctx) error {
	resp, err := h.uc.MarkShipping(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// MarkCompleted cierra la orden despachada.
// POST /api/orders/:id/complete
func (h *OrderHandler) MarkCompleted(c *fiber.Ctx) error {
	resp, err := h.uc.MarkCompleted(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// List lista las órdenes de un cliente.
// GET /api/orders?customer_id=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.uc.ListByCustomer(c.Context(), GetCompanyID(c), c.Query("customer_id"), page)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(list)
}

// GetInvoice devuelve la factura acompañante de la orden.
// GET /api/orders/:id/invoice
func (h *OrderHandler) GetInvoice(c *fiber.Ctx) error {
	resp, err := h.uc.GetInvoice(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// PayInvoice marca como pagada la factura de la orden.
// POST /api/orders/:id/invoice/pay
func (h *OrderHandler) PayInvoice(c *fiber.Ctx) error {
	resp, err := h.uc.MarkInvoicePaid(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

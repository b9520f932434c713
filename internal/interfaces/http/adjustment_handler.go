package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/inventory"
)

// AdjustmentHandler maneja el flujo de ajustes manuales de stock.
type AdjustmentHandler struct {
	uc *inventory.AdjustmentUseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *inventory.AdjustmentUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Propose crea un ajuste pendiente de aprobación.
// POST /api/stock/adjustments
func (h *AdjustmentHandler) Propose(c *fiber.Ctx) error {
	var in dto.ProposeAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Propose(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Approve aplica el ajuste pendiente sobre el stock.
// POST /api/stock/adjustments/:id/approve
func (h *AdjustmentHandler) Approve(c *fiber.Ctx) error {
	resp, err := h.uc.Approve(c.Context(), GetCompanyID(c), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// Reject rechaza el ajuste pendiente, sin efecto sobre stock.
// POST /api/stock/adjustments/:id/reject
func (h *AdjustmentHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Reject(c.Context(), GetCompanyID(c), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// GetByID devuelve un ajuste.
// GET /api/stock/adjustments/:id
func (h *AdjustmentHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// List lista los ajustes de la empresa.
// GET /api/stock/adjustments
func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.uc.List(c.Context(), GetCompanyID(c), page)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(list)
}

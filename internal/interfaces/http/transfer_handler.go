package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/inventory"
)

// TransferHandler maneja el flujo de traslados entre bodegas.
type TransferHandler struct {
	uc *inventory.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *inventory.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create crea el traslado en estado pendiente.
// POST /api/stock/transfers
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Approve aprueba el traslado pendiente.
// POST /api/stock/transfers/:id/approve
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
	resp, err := h.uc.Approve(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// MarkInTransit marca el traslado como en tránsito.
// POST /api/stock/transfers/:id/in-transit
func (h *TransferHandler) MarkInTransit(c *fiber.Ctx) error {
	resp, err := h.uc.MarkInTransit(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// Complete aplica todas las líneas del traslado (salida en origen, entrada
// en destino) como una unidad atómica.
// POST /api/stock/transfers/:id/complete
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	resp, err := h.uc.Complete(c.Context(), GetCompanyID(c), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// GetByID devuelve un traslado con sus líneas.
// GET /api/stock/transfers/:id
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// List lista los traslados de la empresa.
// GET /api/stock/transfers
func (h *TransferHandler) List(c *fiber.Ctx) error {
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

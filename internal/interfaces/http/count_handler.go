package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/inventory"
)

// CountHandler maneja la reconciliación por conteo físico.
type CountHandler struct {
	uc *inventory.CountUseCase
}

// NewCountHandler construye el handler.
func NewCountHandler(uc *inventory.CountUseCase) *CountHandler {
	return &CountHandler{uc: uc}
}

// Create crea el conteo en borrador con la cantidad de sistema fotografiada.
// POST /api/stock/counts
func (h *CountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Complete cierra el conteo aplicando las correcciones por discrepancia.
// POST /api/stock/counts/:id/complete
func (h *CountHandler) Complete(c *fiber.Ctx) error {
	resp, err := h.uc.Complete(c.Context(), GetCompanyID(c), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// GetByID devuelve un conteo con sus líneas.
// GET /api/stock/counts/:id
func (h *CountHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// List lista los conteos de una bodega.
// GET /api/stock/counts?warehouse_id=
func (h *CountHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.uc.ListByWarehouse(c.Context(), c.Query("warehouse_id"), page)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(list)
}

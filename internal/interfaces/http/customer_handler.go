package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/usecase"
)

// CustomerHandler maneja los clientes de la empresa.
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create da de alta un cliente (rango inicial STANDARD).
// POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID devuelve un cliente con su gasto acumulado y rango.
// GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.Get(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// List lista los clientes de la empresa.
// GET /api/customers?limit=&offset=
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, err := h.uc.List(GetCompanyID(c), page)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":     len(list),
		"customers": list,
	})
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/inventory"
)

// MovementHandler consulta de solo lectura del libro de movimientos.
type MovementHandler struct {
	uc *inventory.MovementQueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementQueryUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// History lista movimientos filtrando por producto, bodega y rango de
// fechas, del más reciente al más antiguo.
// GET /api/stock/movements?product_id=&warehouse_id=&from=&to=&limit=&offset=
func (h *MovementHandler) History(c *fiber.Ctx) error {
	var in dto.MovementHistoryRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	list, err := h.uc.History(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":     len(list),
		"movements": list,
	})
}

// StockByWarehouse lista las existencias vigentes de una bodega.
// GET /api/stock/warehouses/:id
func (h *MovementHandler) StockByWarehouse(c *fiber.Ctx) error {
	list, err := h.uc.StockByWarehouse(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(list)
}

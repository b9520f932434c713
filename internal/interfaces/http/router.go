package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/inventory"
	"github.com/jhoicas/Comercio-api/internal/application/orders"
	"github.com/jhoicas/Comercio-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	CustomerUC    *usecase.CustomerUseCase
	AdjustmentUC  *inventory.AdjustmentUseCase
	TransferUC    *inventory.TransferUseCase
	CountUC       *inventory.CountUseCase
	MovementQuery *inventory.MovementQueryUseCase
	OrderUC       *orders.OrderUseCase
}

// Router registra las rutas de la API. Todo lo que toca datos de empresa va
// detrás del middleware de tenant.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	protected := api.Group("/", TenantMiddleware())

	// Catálogo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Stock: libro de movimientos, ajustes, traslados y conteos
	stock := protected.Group("/stock")

	movementHandler := NewMovementHandler(deps.MovementQuery)
	stock.Get("/movements", movementHandler.History)
	stock.Get("/warehouses/:id", movementHandler.StockByWarehouse)

	adjustments := stock.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", adjustmentHandler.Propose)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Post("/:id/approve", adjustmentHandler.Approve)
	adjustments.Post("/:id/reject", adjustmentHandler.Reject)

	transfers := stock.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/approve", transferHandler.Approve)
	transfers.Post("/:id/in-transit", transferHandler.MarkInTransit)
	transfers.Post("/:id/complete", transferHandler.Complete)

	counts := stock.Group("/counts")
	countHandler := NewCountHandler(deps.CountUC)
	counts.Post("/", countHandler.Create)
	counts.Get("/", countHandler.List)
	counts.Get("/:id", countHandler.GetByID)
	counts.Post("/:id/complete", countHandler.Complete)

	// Órdenes
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Post("/:id/cancel", orderHandler.Cancel)
	ordersGroup.Post("/:id/shipping", orderHandler.MarkShipping)
	ordersGroup.Post("/:id/complete", orderHandler.MarkCompleted)
	ordersGroup.Get("/:id/invoice", orderHandler.GetInvoice)
	ordersGroup.Post("/:id/invoice/pay", orderHandler.PayInvoice)
}

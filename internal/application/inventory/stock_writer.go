package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// Toda mutación de stock pasa por ApplyDelta o Correct: releen la fila con
// bloqueo (SELECT FOR UPDATE) dentro de la transacción del caller, actualizan
// el StockRecord y registran el movimiento en la misma tx. Ningún flujo
// escribe stock por otro camino.

// DeltaInput describe un cambio de cantidad con verificación de no-negatividad.
type DeltaInput struct {
	ProductID       string
	WarehouseID     string
	Kind            entity.MovementKind
	Quantity        decimal.Decimal // positiva; el signo lo decide Kind.Direction()
	DestWarehouseID string          // solo TRANSFER_OUT
	Reference       string          // documento causante (orden, traslado, ajuste)
	Reason          string
	CreatedBy       string
	Now             time.Time
}

// ApplyDelta relee la cantidad vigente con bloqueo de fila, verifica que el
// resultado no quede negativo, actualiza el stock y registra el movimiento.
// Devuelve cantidad antes y después. Con stock insuficiente retorna
// *domain.InsufficientStockError y el caller hace rollback.
func ApplyDelta(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	in DeltaInput,
) (before, after decimal.Decimal, err error) {
	dir := in.Kind.Direction()
	if dir == 0 || !in.Quantity.GreaterThan(decimal.Zero) {
		return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
	}

	// Bloquea la fila para que dos transacciones concurrentes no crean ambas
	// que hay stock suficiente para el mismo (producto, bodega).
	stock, err := stockRepo.GetForUpdate(in.ProductID, in.WarehouseID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	before = stock.Quantity

	delta := in.Quantity
	if dir < 0 {
		delta = in.Quantity.Neg()
	}
	after = before.Add(delta)
	if after.IsNegative() {
		return before, before, &domain.InsufficientStockError{
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Requested:   in.Quantity,
			Available:   before,
		}
	}

	stock.Quantity = after
	stock.UpdatedAt = in.Now
	if err := stockRepo.Upsert(stock); err != nil {
		return before, after, err
	}

	mov := &entity.StockMovement{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		WarehouseID:     in.WarehouseID,
		Kind:            in.Kind,
		Quantity:        delta,
		QuantityBefore:  before,
		QuantityAfter:   after,
		DestWarehouseID: in.DestWarehouseID,
		Reference:       in.Reference,
		Reason:          in.Reason,
		Date:            in.Now,
		CreatedAt:       in.Now,
		CreatedBy:       in.CreatedBy,
	}
	if err := movRepo.Create(mov); err != nil {
		return before, after, err
	}
	return before, after, nil
}

// CorrectionInput corrección incondicional por conteo físico.
type CorrectionInput struct {
	ProductID   string
	WarehouseID string
	Actual      decimal.Decimal // cantidad contada; fija el stock sin verificar faltantes
	Reference   string          // id del conteo
	Reason      string
	CreatedBy   string
	Now         time.Time
}

// Correct fija la cantidad en el valor contado (puede subir o bajar, sin
// verificación de stock insuficiente) y registra un COUNT_CORRECTION con el
// antes releído bajo bloqueo, preservando el invariante de replay del libro.
func Correct(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	in CorrectionInput,
) (before, after decimal.Decimal, err error) {
	if in.Actual.IsNegative() {
		return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
	}
	stock, err := stockRepo.GetForUpdate(in.ProductID, in.WarehouseID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	before = stock.Quantity
	after = in.Actual
	if before.Equal(after) {
		return before, after, nil
	}

	stock.Quantity = after
	stock.UpdatedAt = in.Now
	if err := stockRepo.Upsert(stock); err != nil {
		return before, after, err
	}

	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		WarehouseID:    in.WarehouseID,
		Kind:           entity.MovementCountCorrection,
		Quantity:       after.Sub(before),
		QuantityBefore: before,
		QuantityAfter:  after,
		Reference:      in.Reference,
		Reason:         in.Reason,
		Date:           in.Now,
		CreatedAt:      in.Now,
		CreatedBy:      in.CreatedBy,
	}
	if err := movRepo.Create(mov); err != nil {
		return before, after, err
	}
	return before, after, nil
}

// RefreshProductStock rematerializa el agregado del producto (suma entre
// bodegas) dentro de la misma transacción que lo modificó.
func RefreshProductStock(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	productID string,
) error {
	total, err := stockRepo.SumByProduct(productID)
	if err != nil {
		return err
	}
	return productRepo.UpdateStock(productID, total)
}

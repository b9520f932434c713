package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, order_id, customer_id, number, amount, status, issued_at, due_date, created_at, updated_at`

// Create persiste la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, invoice.OrderID, invoice.CustomerID,
		invoice.Number, invoice.Amount, string(invoice.Status),
		invoice.IssuedAt, invoice.DueDate, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

// GetByID obtiene la factura, o nil si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.scanOne(query, id, "get invoice")
}

// GetByOrderID devuelve la factura acompañante de la orden, o nil.
func (r *InvoiceRepo) GetByOrderID(orderID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE order_id = $1`
	return r.scanOne(query, orderID, "get invoice by order")
}

func (r *InvoiceRepo) scanOne(query, arg, op string) (*entity.Invoice, error) {
	var inv entity.Invoice
	var status string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&inv.ID, &inv.CompanyID, &inv.OrderID, &inv.CustomerID,
		&inv.Number, &inv.Amount, &status,
		&inv.IssuedAt, &inv.DueDate, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	inv.Status = entity.InvoiceStatus(status)
	return &inv, nil
}

// Update actualiza el estado de la factura.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices SET status = $2, updated_at = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, string(invoice.Status), invoice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

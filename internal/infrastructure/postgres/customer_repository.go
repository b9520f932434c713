package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, company_id, name, tax_id, email, phone, lifetime_spending, rank, created_at, updated_at`

// Create persiste el cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.CompanyID, customer.Name, customer.TaxID,
		customer.Email, customer.Phone, customer.LifetimeSpending,
		string(customer.Rank), customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

// GetByID obtiene el cliente, o nil si no existe.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.scanOne(query, id, "get customer")
}

// GetForUpdate obtiene el cliente bloqueando la fila (SELECT FOR UPDATE):
// el gasto acumulado se actualiza leer-modificar-escribir dentro de la tx.
func (r *CustomerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id, "get customer for update")
}

func (r *CustomerRepo) scanOne(query, id, op string) (*entity.Customer, error) {
	var c entity.Customer
	var rank string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.TaxID, &c.Email, &c.Phone,
		&c.LifetimeSpending, &rank, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.Rank = entity.CustomerRank(rank)
	return &c, nil
}

// Update actualiza datos de contacto, gasto acumulado y rango.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, tax_id = $3, email = $4, phone = $5,
		    lifetime_spending = $6, rank = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.TaxID, customer.Email, customer.Phone,
		customer.LifetimeSpending, string(customer.Rank), customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// ListByCompany lista los clientes de una empresa.
func (r *CustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		var rank string
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.TaxID, &c.Email, &c.Phone,
			&c.LifetimeSpending, &rank, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		c.Rank = entity.CustomerRank(rank)
		list = append(list, &c)
	}
	return list, rows.Err()
}

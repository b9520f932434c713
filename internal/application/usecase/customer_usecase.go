package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// CustomerUseCase casos de uso de clientes. El gasto acumulado y el rango
// los mantiene la transacción de órdenes; aquí solo alta y consulta.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente con rango inicial STANDARD.
func (uc *CustomerUseCase) Create(companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		Name:             in.Name,
		TaxID:            in.TaxID,
		Email:            in.Email,
		Phone:            in.Phone,
		LifetimeSpending: decimal.Zero,
		Rank:             entity.RankStandard,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Get devuelve un cliente por id.
func (uc *CustomerUseCase) Get(companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes de la empresa.
func (uc *CustomerUseCase) List(companyID string, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:               c.ID,
		Name:             c.Name,
		TaxID:            c.TaxID,
		Email:            c.Email,
		Phone:            c.Phone,
		LifetimeSpending: c.LifetimeSpending,
		Rank:             string(c.Rank),
	}
}

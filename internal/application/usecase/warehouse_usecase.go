package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso de bodegas.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una bodega.
func (uc *WarehouseUseCase) Create(companyID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	wh := &entity.Warehouse{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(wh); err != nil {
		return nil, err
	}
	return toWarehouseResponse(wh), nil
}

// Get devuelve una bodega por id.
func (uc *WarehouseUseCase) Get(companyID, id string) (*dto.WarehouseResponse, error) {
	wh, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if wh.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toWarehouseResponse(wh), nil
}

// List lista bodegas de la empresa.
func (uc *WarehouseUseCase) List(companyID string, page dto.PageRequest) ([]*dto.WarehouseResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, toWarehouseResponse(w))
	}
	return out, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{ID: w.ID, Name: w.Name, Address: w.Address}
}

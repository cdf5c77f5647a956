package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para suplidores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un suplidor.
func (uc *SupplierUseCase) Create(ctx context.Context, tenant *entity.Tenant, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		RNC:       in.RNC,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, tenant.SchemaName, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un suplidor por ID.
func (uc *SupplierUseCase) GetByID(ctx context.Context, tenant *entity.Tenant, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, tenant.SchemaName, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(supplier), nil
}

// Update actualiza campos del suplidor; nil deja el campo como está.
func (uc *SupplierUseCase) Update(ctx context.Context, tenant *entity.Tenant, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, tenant.SchemaName, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.RNC != nil {
		supplier.RNC = *in.RNC
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, tenant.SchemaName, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List lista suplidores con paginación.
func (uc *SupplierUseCase) List(ctx context.Context, tenant *entity.Tenant, limit, offset int) ([]*dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx, tenant.SchemaName, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:      s.ID,
		Name:    s.Name,
		RNC:     s.RNC,
		Email:   s.Email,
		Phone:   s.Phone,
		Address: s.Address,
	}
}

package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/ncf"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes. No hay borrado: un cliente
// con facturas emitidas no puede desaparecer del historial.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente. NCFType vacío asume consumidor final (B02);
// si viene RNC y no se indica tipo, se asume crédito fiscal (B01).
func (uc *CustomerUseCase) Create(ctx context.Context, tenant *entity.Tenant, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	ncfType := in.NCFType
	if ncfType == "" {
		ncfType = ncf.TipoConsumo
		if in.RNC != "" {
			ncfType = ncf.TipoCreditoFiscal
		}
	}
	if !ncf.IsValidType(ncfType) {
		return nil, domain.ErrInvalidInput
	}
	if in.RNC != "" {
		existing, err := uc.repo.GetByRNC(ctx, tenant.SchemaName, in.RNC)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		RNC:       in.RNC,
		NCFType:   ncfType,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, tenant.SchemaName, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, tenant *entity.Tenant, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, tenant.SchemaName, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// Update actualiza campos del cliente; nil deja el campo como está.
func (uc *CustomerUseCase) Update(ctx context.Context, tenant *entity.Tenant, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, tenant.SchemaName, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.RNC != nil {
		customer.RNC = *in.RNC
	}
	if in.NCFType != nil {
		if !ncf.IsValidType(*in.NCFType) {
			return nil, domain.ErrInvalidInput
		}
		customer.NCFType = *in.NCFType
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, tenant.SchemaName, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(ctx context.Context, tenant *entity.Tenant, limit, offset int) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx, tenant.SchemaName, limit, offset)
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
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:      c.ID,
		Name:    c.Name,
		RNC:     c.RNC,
		NCFType: c.NCFType,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
	}
}

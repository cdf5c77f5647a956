package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

// Tasas de ITBIS aceptadas (%): exento, reducida y general.
var validTaxRates = []decimal.Decimal{
	decimal.Zero,
	decimal.NewFromInt(16),
	decimal.NewFromInt(18),
}

func isValidTaxRate(r decimal.Decimal) bool {
	for _, v := range validTaxRates {
		if r.Equal(v) {
			return true
		}
	}
	return false
}

// ProductUseCase casos de uso CRUD para productos del catálogo. El stock se
// ajusta vía RegisterMovement, nunca editando el producto directamente.
type ProductUseCase struct {
	repo    repository.ProductRepository
	movRepo repository.StockMovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, movRepo repository.StockMovementRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, movRepo: movRepo}
}

// Create crea un producto. TaxRate nil asume ITBIS general (18%).
func (uc *ProductUseCase) Create(ctx context.Context, tenant *entity.Tenant, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() || in.Stock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(ctx, tenant.SchemaName, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	taxRate := decimal.NewFromInt(18)
	if in.TaxRate != nil {
		if !isValidTaxRate(*in.TaxRate) {
			return nil, domain.ErrInvalidInput
		}
		taxRate = *in.TaxRate
	}
	unit := in.Unit
	if unit == "" {
		unit = "unidad"
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Unit:        unit,
		Price:       in.Price,
		Cost:        in.Cost,
		TaxRate:     taxRate,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, tenant.SchemaName, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, tenant *entity.Tenant, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, tenant.SchemaName, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Stock (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, tenant *entity.Tenant, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, tenant.SchemaName, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Cost = *in.Cost
	}
	if in.TaxRate != nil {
		if !isValidTaxRate(*in.TaxRate) {
			return nil, domain.ErrInvalidInput
		}
		product.TaxRate = *in.TaxRate
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, tenant.SchemaName, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, tenant *entity.Tenant, limit, offset int) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, tenant.SchemaName, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// RegisterMovement registra un movimiento manual de inventario (IN o ADJ) y
// ajusta el stock del producto. Las salidas por venta las genera la emisión
// de facturas, no este endpoint.
func (uc *ProductUseCase) RegisterMovement(ctx context.Context, tenant *entity.Tenant, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.MovementType != entity.MovementIn && in.MovementType != entity.MovementAdj {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.MovementType == entity.MovementIn && in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(ctx, tenant.SchemaName, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Quantity.IsPositive() {
		err = uc.repo.IncrementStock(ctx, tenant.SchemaName, in.ProductID, in.Quantity)
	} else {
		err = uc.repo.DecrementStock(ctx, tenant.SchemaName, in.ProductID, in.Quantity.Neg())
	}
	if err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		MovementType: in.MovementType,
		Quantity:     in.Quantity,
		Reference:    in.Reference,
		CreatedBy:    userID,
		CreatedAt:    time.Now(),
	}
	if err := uc.movRepo.Create(ctx, tenant.SchemaName, mov); err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// ListMovements historial de movimientos de un producto.
func (uc *ProductUseCase) ListMovements(ctx context.Context, tenant *entity.Tenant, productID string, limit, offset int) ([]*dto.MovementResponse, error) {
	list, err := uc.movRepo.ListByProduct(ctx, tenant.SchemaName, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		Price:       p.Price,
		Cost:        p.Cost,
		TaxRate:     p.TaxRate,
		Stock:       p.Stock,
	}
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		MovementType: m.MovementType,
		Quantity:     m.Quantity,
		Reference:    m.Reference,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

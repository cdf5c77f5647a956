package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, description, unit, price, cost, tax_rate, stock, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, schema string, p *entity.Product) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`, tbl(schema, "products"))
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.Description, p.Unit, p.Price, p.Cost, p.TaxRate, p.Stock, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, schema, id string) (*entity.Product, error) {
	query := fmt.Sprintf(`SELECT `+productColumns+` FROM %s WHERE id = $1`, tbl(schema, "products"))
	return r.scanOne(ctx, query, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, schema, sku string) (*entity.Product, error) {
	query := fmt.Sprintf(`SELECT `+productColumns+` FROM %s WHERE sku = $1`, tbl(schema, "products"))
	return r.scanOne(ctx, query, sku)
}

func (r *ProductRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Unit, &p.Price, &p.Cost, &p.TaxRate, &p.Stock,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(ctx context.Context, schema string, limit, offset int) ([]*entity.Product, error) {
	query := fmt.Sprintf(`
		SELECT `+productColumns+` FROM %s ORDER BY name LIMIT $1 OFFSET $2`, tbl(schema, "products"))
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Description, &p.Unit, &p.Price, &p.Cost, &p.TaxRate, &p.Stock,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un producto existente (no toca stock).
func (r *ProductRepo) Update(ctx context.Context, schema string, p *entity.Product) error {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $2, description = $3, unit = $4, price = $5, cost = $6, tax_rate = $7, updated_at = $8
		WHERE id = $1`, tbl(schema, "products"))
	if _, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Description, p.Unit, p.Price, p.Cost, p.TaxRate, p.UpdatedAt); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// DecrementStock descuenta existencia de forma atómica. El WHERE stock >= qty
// garantiza que nunca queda negativo; cero filas afectadas = sin existencia.
func (r *ProductRepo) DecrementStock(ctx context.Context, schema, id string, qty decimal.Decimal) error {
	query := fmt.Sprintf(`
		UPDATE %s SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`, tbl(schema, "products"))
	tag, err := r.q.Exec(ctx, query, id, qty)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// IncrementStock suma existencia (entradas y reversos de ajuste).
func (r *ProductRepo) IncrementStock(ctx context.Context, schema, id string, qty decimal.Decimal) error {
	query := fmt.Sprintf(`
		UPDATE %s SET stock = stock + $2, updated_at = now()
		WHERE id = $1`, tbl(schema, "products"))
	tag, err := r.q.Exec(ctx, query, id, qty)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo bitácora de movimientos de inventario.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento. La bitácora es append-only.
func (r *StockMovementRepo) Create(ctx context.Context, schema string, m *entity.StockMovement) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, product_id, movement_type, quantity, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, tbl(schema, "stock_movements"))
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.MovementType, m.Quantity, m.Reference, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct historial de movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, schema, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := fmt.Sprintf(`
		SELECT id, product_id, movement_type, quantity, reference, created_by, created_at
		FROM %s WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, tbl(schema, "stock_movements"))
	rows, err := r.q.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.MovementType, &m.Quantity, &m.Reference, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

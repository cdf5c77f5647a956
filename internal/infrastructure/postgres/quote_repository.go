package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implementación de QuoteRepository (usable con pool o tx).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteColumns = `id, customer_id, quote_date, valid_until, subtotal, tax_amount,
	discount_amount, total_amount, status, invoice_id, notes, created_by, created_at, updated_at`

// Create persiste la cabecera de una cotización.
func (r *QuoteRepo) Create(ctx context.Context, schema string, q *entity.Quote) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (`+quoteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`, tbl(schema, "quotes"))
	_, err := r.q.Exec(ctx, query,
		q.ID, q.CustomerID, q.QuoteDate, q.ValidUntil, q.Subtotal, q.TaxAmount,
		q.DiscountAmount, q.TotalAmount, q.Status, q.InvoiceID, q.Notes, q.CreatedBy, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de cotización.
func (r *QuoteRepo) CreateItem(ctx context.Context, schema string, item *entity.QuoteItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, quote_id, product_id, quantity, unit_price, tax_rate, tax_amount,
			discount_rate, discount_amount, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, tbl(schema, "quote_items"))
	_, err := r.q.Exec(ctx, query,
		item.ID, item.QuoteID, item.ProductID, item.Quantity, item.UnitPrice, item.TaxRate, item.TaxAmount,
		item.DiscountRate, item.DiscountAmount, item.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("insert quote item: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización por ID.
func (r *QuoteRepo) GetByID(ctx context.Context, schema, id string) (*entity.Quote, error) {
	query := fmt.Sprintf(`SELECT `+quoteColumns+` FROM %s WHERE id = $1`, tbl(schema, "quotes"))
	return r.scanOne(ctx, query, id)
}

// GetByIDForUpdate obtiene una cotización bloqueando la fila. Garantiza que la
// conversión a factura ocurra una sola vez.
func (r *QuoteRepo) GetByIDForUpdate(ctx context.Context, schema, id string) (*entity.Quote, error) {
	query := fmt.Sprintf(`SELECT `+quoteColumns+` FROM %s WHERE id = $1 FOR UPDATE`, tbl(schema, "quotes"))
	return r.scanOne(ctx, query, id)
}

func (r *QuoteRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Quote, error) {
	var q entity.Quote
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&q.ID, &q.CustomerID, &q.QuoteDate, &q.ValidUntil, &q.Subtotal, &q.TaxAmount,
		&q.DiscountAmount, &q.TotalAmount, &q.Status, &q.InvoiceID, &q.Notes, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return &q, nil
}

// GetItems obtiene las líneas de una cotización.
func (r *QuoteRepo) GetItems(ctx context.Context, schema, quoteID string) ([]*entity.QuoteItem, error) {
	query := fmt.Sprintf(`
		SELECT id, quote_id, product_id, quantity, unit_price, tax_rate, tax_amount,
			discount_rate, discount_amount, total_amount
		FROM %s WHERE quote_id = $1 ORDER BY id`, tbl(schema, "quote_items"))
	rows, err := r.q.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("get quote items: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuoteItem
	for rows.Next() {
		var it entity.QuoteItem
		if err := rows.Scan(
			&it.ID, &it.QuoteID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TaxRate, &it.TaxAmount,
			&it.DiscountRate, &it.DiscountAmount, &it.TotalAmount,
		); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista cotizaciones, opcionalmente filtradas por estado.
func (r *QuoteRepo) List(ctx context.Context, schema, status string, limit, offset int) ([]*entity.Quote, error) {
	var query string
	var args []any
	if status != "" {
		query = fmt.Sprintf(`
			SELECT `+quoteColumns+` FROM %s WHERE status = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`, tbl(schema, "quotes"))
		args = []any{status, limit, offset}
	} else {
		query = fmt.Sprintf(`
			SELECT `+quoteColumns+` FROM %s
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`, tbl(schema, "quotes"))
		args = []any{limit, offset}
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		var q entity.Quote
		if err := rows.Scan(
			&q.ID, &q.CustomerID, &q.QuoteDate, &q.ValidUntil, &q.Subtotal, &q.TaxAmount,
			&q.DiscountAmount, &q.TotalAmount, &q.Status, &q.InvoiceID, &q.Notes, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, &q)
	}
	return list, rows.Err()
}

// Update actualiza la cabecera de una cotización.
func (r *QuoteRepo) Update(ctx context.Context, schema string, q *entity.Quote) error {
	query := fmt.Sprintf(`
		UPDATE %s SET customer_id = $2, quote_date = $3, valid_until = $4, subtotal = $5,
			tax_amount = $6, discount_amount = $7, total_amount = $8, status = $9,
			invoice_id = $10, notes = $11, updated_at = $12
		WHERE id = $1`, tbl(schema, "quotes"))
	_, err := r.q.Exec(ctx, query,
		q.ID, q.CustomerID, q.QuoteDate, q.ValidUntil, q.Subtotal,
		q.TaxAmount, q.DiscountAmount, q.TotalAmount, q.Status,
		q.InvoiceID, q.Notes, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	return nil
}

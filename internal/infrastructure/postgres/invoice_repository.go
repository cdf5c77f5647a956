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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, customer_id, ncf, sequence_type, issue_date, due_date,
	subtotal, tax_amount, discount_amount, total_amount, status, payment_status,
	notes, voided_at, voided_reason, created_by, created_at, updated_at`

// Create persiste la cabecera de una factura.
func (r *InvoiceRepo) Create(ctx context.Context, schema string, inv *entity.Invoice) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		tbl(schema, "invoices"))
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CustomerID, inv.NCF, inv.SequenceType, inv.IssueDate, inv.DueDate,
		inv.Subtotal, inv.TaxAmount, inv.DiscountAmount, inv.TotalAmount, inv.Status, inv.PaymentStatus,
		inv.Notes, inv.VoidedAt, inv.VoidedReason, inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de factura.
func (r *InvoiceRepo) CreateItem(ctx context.Context, schema string, item *entity.InvoiceItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, invoice_id, product_id, quantity, unit_price, tax_rate, tax_amount,
			discount_rate, discount_amount, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, tbl(schema, "invoice_items"))
	_, err := r.q.Exec(ctx, query,
		item.ID, item.InvoiceID, item.ProductID, item.Quantity, item.UnitPrice, item.TaxRate, item.TaxAmount,
		item.DiscountRate, item.DiscountAmount, item.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, schema, id string) (*entity.Invoice, error) {
	query := fmt.Sprintf(`SELECT `+invoiceColumns+` FROM %s WHERE id = $1`, tbl(schema, "invoices"))
	return r.scanOne(ctx, query, id)
}

// GetByIDForUpdate obtiene una factura bloqueando la fila (FOR UPDATE).
// Serializa transiciones de estado y registro de pagos concurrentes.
func (r *InvoiceRepo) GetByIDForUpdate(ctx context.Context, schema, id string) (*entity.Invoice, error) {
	query := fmt.Sprintf(`SELECT `+invoiceColumns+` FROM %s WHERE id = $1 FOR UPDATE`, tbl(schema, "invoices"))
	return r.scanOne(ctx, query, id)
}

func (r *InvoiceRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&inv.ID, &inv.CustomerID, &inv.NCF, &inv.SequenceType, &inv.IssueDate, &inv.DueDate,
		&inv.Subtotal, &inv.TaxAmount, &inv.DiscountAmount, &inv.TotalAmount, &inv.Status, &inv.PaymentStatus,
		&inv.Notes, &inv.VoidedAt, &inv.VoidedReason, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetItems obtiene las líneas de una factura.
func (r *InvoiceRepo) GetItems(ctx context.Context, schema, invoiceID string) ([]*entity.InvoiceItem, error) {
	query := fmt.Sprintf(`
		SELECT id, invoice_id, product_id, quantity, unit_price, tax_rate, tax_amount,
			discount_rate, discount_amount, total_amount
		FROM %s WHERE invoice_id = $1 ORDER BY id`, tbl(schema, "invoice_items"))
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(
			&it.ID, &it.InvoiceID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TaxRate, &it.TaxAmount,
			&it.DiscountRate, &it.DiscountAmount, &it.TotalAmount,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista facturas con filtros opcionales y paginación.
func (r *InvoiceRepo) List(ctx context.Context, schema string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := fmt.Sprintf(`SELECT `+invoiceColumns+` FROM %s WHERE 1=1`, tbl(schema, "invoices"))
	args := []any{}
	n := 0
	addArg := func(clause string, v any) {
		n++
		args = append(args, v)
		query += fmt.Sprintf(clause, n)
	}
	if f.Status != "" {
		addArg(" AND status = $%d", f.Status)
	}
	if f.PaymentStatus != "" {
		addArg(" AND payment_status = $%d", f.PaymentStatus)
	}
	if f.CustomerID != "" {
		addArg(" AND customer_id = $%d", f.CustomerID)
	}
	if f.From != nil {
		addArg(" AND issue_date >= $%d", *f.From)
	}
	if f.To != nil {
		addArg(" AND issue_date <= $%d", *f.To)
	}
	query += " ORDER BY created_at DESC"
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	addArg(" LIMIT $%d", limit)
	addArg(" OFFSET $%d", f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.CustomerID, &inv.NCF, &inv.SequenceType, &inv.IssueDate, &inv.DueDate,
			&inv.Subtotal, &inv.TaxAmount, &inv.DiscountAmount, &inv.TotalAmount, &inv.Status, &inv.PaymentStatus,
			&inv.Notes, &inv.VoidedAt, &inv.VoidedReason, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Update actualiza la cabecera de una factura.
func (r *InvoiceRepo) Update(ctx context.Context, schema string, inv *entity.Invoice) error {
	query := fmt.Sprintf(`
		UPDATE %s SET customer_id = $2, ncf = $3, sequence_type = $4, issue_date = $5, due_date = $6,
			subtotal = $7, tax_amount = $8, discount_amount = $9, total_amount = $10,
			status = $11, payment_status = $12, notes = $13, voided_at = $14, voided_reason = $15,
			updated_at = $16
		WHERE id = $1`, tbl(schema, "invoices"))
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CustomerID, inv.NCF, inv.SequenceType, inv.IssueDate, inv.DueDate,
		inv.Subtotal, inv.TaxAmount, inv.DiscountAmount, inv.TotalAmount,
		inv.Status, inv.PaymentStatus, inv.Notes, inv.VoidedAt, inv.VoidedReason, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// DeleteItems borra las líneas de una factura (solo borradores).
func (r *InvoiceRepo) DeleteItems(ctx context.Context, schema, invoiceID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE invoice_id = $1`, tbl(schema, "invoice_items"))
	if _, err := r.q.Exec(ctx, query, invoiceID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

// Delete borra una factura (solo borradores; las líneas van primero).
func (r *InvoiceRepo) Delete(ctx context.Context, schema, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, tbl(schema, "invoices"))
	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

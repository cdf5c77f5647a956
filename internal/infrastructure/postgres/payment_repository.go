package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos append-only y catálogo de formas de pago.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, invoice_id, payment_method_id, amount, reference_number, payment_date, notes, created_at`

// Create registra un pago. No hay Update ni Delete: los pagos no se tocan.
func (r *PaymentRepo) Create(ctx context.Context, schema string, p *entity.Payment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, tbl(schema, "payments"))
	_, err := r.q.Exec(ctx, query,
		p.ID, p.InvoiceID, p.PaymentMethodID, p.Amount, p.ReferenceNumber, p.PaymentDate, p.Notes, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByInvoice pagos de una factura en orden de registro.
func (r *PaymentRepo) ListByInvoice(ctx context.Context, schema, invoiceID string) ([]*entity.Payment, error) {
	query := fmt.Sprintf(`
		SELECT `+paymentColumns+` FROM %s WHERE invoice_id = $1 ORDER BY created_at`, tbl(schema, "payments"))
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(
			&p.ID, &p.InvoiceID, &p.PaymentMethodID, &p.Amount, &p.ReferenceNumber, &p.PaymentDate, &p.Notes, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// SumByInvoice suma de pagos de la factura. Fuente del estado de pago derivado.
func (r *PaymentRepo) SumByInvoice(ctx context.Context, schema, invoiceID string) (decimal.Decimal, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(amount), 0) FROM %s WHERE invoice_id = $1`, tbl(schema, "payments"))
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, invoiceID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	return sum, nil
}

// GetMethod obtiene una forma de pago por ID.
func (r *PaymentRepo) GetMethod(ctx context.Context, schema, id string) (*entity.PaymentMethod, error) {
	query := fmt.Sprintf(`SELECT id, name, is_active FROM %s WHERE id = $1`, tbl(schema, "payment_methods"))
	var m entity.PaymentMethod
	err := r.q.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	return &m, nil
}

// ListMethods catálogo de formas de pago activas.
func (r *PaymentRepo) ListMethods(ctx context.Context, schema string) ([]*entity.PaymentMethod, error) {
	query := fmt.Sprintf(`SELECT id, name, is_active FROM %s WHERE is_active ORDER BY name`, tbl(schema, "payment_methods"))
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentMethod
	for rows.Next() {
		var m entity.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.IsActive); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

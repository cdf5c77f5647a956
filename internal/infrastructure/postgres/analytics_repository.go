package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el panel financiero. Las cifras
// salen de facturas, pagos y compras en el momento de la consulta; no existe
// ninguna tabla de agregados.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetIncome ingresos por facturas emitidas en el rango. Las anuladas quedan
// fuera por el filtro de estado.
func (r *AnalyticsRepo) GetIncome(ctx context.Context, schema string, from, to time.Time) (decimal.Decimal, int, error) {
	query := fmt.Sprintf(`
	SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
	FROM %s
	WHERE status = $1 AND issue_date BETWEEN $2 AND $3`, tbl(schema, "invoices"))
	var total decimal.Decimal
	var count int
	err := r.pool.QueryRow(ctx, query, entity.InvoiceStatusIssued, from, to).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("income query: %w", err)
	}
	return total, count, nil
}

// GetReceivables cuentas por cobrar: facturas emitidas cuyo estado de pago no
// es paid. El saldo es total menos pagos registrados, nunca negativo.
func (r *AnalyticsRepo) GetReceivables(ctx context.Context, schema string) (repository.ReceivablesResult, error) {
	return r.receivables(ctx, schema, "")
}

// GetOverdue vencidas: por cobrar con due_date anterior a now.
func (r *AnalyticsRepo) GetOverdue(ctx context.Context, schema string, now time.Time) (repository.ReceivablesResult, error) {
	return r.receivables(ctx, schema, " AND i.due_date < $2", now)
}

func (r *AnalyticsRepo) receivables(ctx context.Context, schema, extra string, extraArgs ...any) (repository.ReceivablesResult, error) {
	query := fmt.Sprintf(`
	SELECT COUNT(*), COALESCE(SUM(GREATEST(i.total_amount - COALESCE(p.paid, 0), 0)), 0)
	FROM %s i
	LEFT JOIN (
	    SELECT invoice_id, SUM(amount) AS paid FROM %s GROUP BY invoice_id
	) p ON p.invoice_id = i.id
	WHERE i.status = $1 AND i.payment_status <> 'paid'`+extra,
		tbl(schema, "invoices"), tbl(schema, "payments"))
	args := append([]any{entity.InvoiceStatusIssued}, extraArgs...)
	var res repository.ReceivablesResult
	err := r.pool.QueryRow(ctx, query, args...).Scan(&res.InvoiceCount, &res.Total)
	if err != nil {
		return repository.ReceivablesResult{}, fmt.Errorf("receivables query: %w", err)
	}
	return res, nil
}

// GetTopProducts productos con mayor ingreso facturado en el rango.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, schema string, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	query := fmt.Sprintf(`
	SELECT it.product_id, pr.sku, pr.name,
	       COALESCE(SUM(it.quantity), 0)     AS qty,
	       COALESCE(SUM(it.total_amount), 0) AS revenue
	FROM %s it
	JOIN %s i  ON i.id = it.invoice_id
	JOIN %s pr ON pr.id = it.product_id
	WHERE i.status = $1 AND i.issue_date BETWEEN $2 AND $3
	GROUP BY it.product_id, pr.sku, pr.name
	ORDER BY revenue DESC
	LIMIT $4`,
		tbl(schema, "invoice_items"), tbl(schema, "invoices"), tbl(schema, "products"))
	rows, err := r.pool.Query(ctx, query, entity.InvoiceStatusIssued, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top products query: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.SKU, &t.Name, &t.QuantitySold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetPendingPayables cuentas por pagar pendientes: compras sin saldar.
func (r *AnalyticsRepo) GetPendingPayables(ctx context.Context, schema string) (decimal.Decimal, int, error) {
	query := fmt.Sprintf(`
	SELECT COALESCE(SUM(total_amount - paid_amount), 0), COUNT(*)
	FROM %s WHERE status = $1`, tbl(schema, "purchase_invoices"))
	var total decimal.Decimal
	var count int
	err := r.pool.QueryRow(ctx, query, entity.PurchaseStatusPending).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("payables query: %w", err)
	}
	return total, count, nil
}

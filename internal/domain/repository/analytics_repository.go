package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductResult fila cruda de la consulta de productos más vendidos.
type TopProductResult struct {
	ProductID    string
	SKU          string
	Name         string
	QuantitySold decimal.Decimal
	Revenue      decimal.Decimal
}

// ReceivablesResult totales de cuentas por cobrar.
type ReceivablesResult struct {
	InvoiceCount int
	Total        decimal.Decimal // Σ(total_amount − pagado) sobre facturas emitidas sin saldar
}

// AnalyticsRepository consultas read-only para el panel financiero.
// Se recalculan en cada petición; no hay caché que invalidar.
type AnalyticsRepository interface {
	// GetIncome suma total_amount de facturas emitidas (voided excluidas) en el rango.
	GetIncome(ctx context.Context, schema string, from, to time.Time) (decimal.Decimal, int, error)
	// GetReceivables cuentas por cobrar: emitidas con payment_status distinto de paid.
	GetReceivables(ctx context.Context, schema string) (ReceivablesResult, error)
	// GetOverdue vencidas: due_date < now, emitidas y sin saldar.
	GetOverdue(ctx context.Context, schema string, now time.Time) (ReceivablesResult, error)
	// GetTopProducts productos con mayor ingreso en el rango.
	GetTopProducts(ctx context.Context, schema string, from, to time.Time, limit int) ([]TopProductResult, error)
	// GetPendingPayables cuentas por pagar pendientes (compras).
	GetPendingPayables(ctx context.Context, schema string) (decimal.Decimal, int, error)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quimidom/quimidom-api/internal/application/billing"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con repos
// atados a la tx. Si fn retorna error se hace Rollback: un NCF incrementado en
// una transacción que falla nunca llega a verse.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunIssue emisión de factura: asignación de NCF, descuento de inventario y
// cambio de estado en una sola unidad atómica.
func (r *TxRunner) RunIssue(ctx context.Context, fn func(
	seqRepo repository.FiscalSequenceRepository,
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewFiscalSequenceRepository(q),
			NewInvoiceRepository(q),
			NewProductRepository(q),
			NewStockMovementRepository(q),
		)
	})
}

// RunInvoice mutaciones de factura en borrador (crear, editar, borrar).
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewInvoiceRepository(q))
	})
}

// RunPayment registro de pago más recálculo del estado de pago.
func (r *TxRunner) RunPayment(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewInvoiceRepository(q), NewPaymentRepository(q))
	})
}

// RunQuote conversión de cotización a factura en borrador.
func (r *TxRunner) RunQuote(ctx context.Context, fn func(
	quoteRepo repository.QuoteRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewQuoteRepository(q), NewInvoiceRepository(q))
	})
}

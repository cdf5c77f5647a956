package billing_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/quimidom/quimidom-api/internal/application/billing"
	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

// store base de datos en memoria compartida por los repos fake. Las
// transacciones no se simulan: el fakeTx solo invoca el callback con los
// repos; el rollback se cubre en integración, aquí interesa la lógica.
type store struct {
	mu        sync.Mutex
	customers map[string]*entity.Customer
	products  map[string]*entity.Product
	invoices  map[string]*entity.Invoice
	items     map[string][]*entity.InvoiceItem
	quotes    map[string]*entity.Quote
	quoteItms map[string][]*entity.QuoteItem
	payments  []*entity.Payment
	methods   map[string]*entity.PaymentMethod
	sequences []*entity.FiscalSequence
	movements []*entity.StockMovement

	// si no es nil, GetItems de facturas falla con este error
	errGetItems error
}

func newStore() *store {
	return &store{
		customers: map[string]*entity.Customer{},
		products:  map[string]*entity.Product{},
		invoices:  map[string]*entity.Invoice{},
		items:     map[string][]*entity.InvoiceItem{},
		quotes:    map[string]*entity.Quote{},
		quoteItms: map[string][]*entity.QuoteItem{},
		methods:   map[string]*entity.PaymentMethod{},
	}
}

// ── repos fake ────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct{ s *store }

func (r *fakeCustomerRepo) Create(_ context.Context, _ string, c *entity.Customer) error {
	r.s.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, _ string, id string) (*entity.Customer, error) {
	return r.s.customers[id], nil
}

func (r *fakeCustomerRepo) GetByRNC(_ context.Context, _ string, rnc string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.RNC == rnc {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, _ string, c *entity.Customer) error {
	r.s.customers[c.ID] = c
	return nil
}

type fakeProductRepo struct{ s *store }

func (r *fakeProductRepo) Create(_ context.Context, _ string, p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, _ string, id string) (*entity.Product, error) {
	return r.s.products[id], nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, _ string, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, _ string, p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, _ string, id string, qty decimal.Decimal) error {
	p, ok := r.s.products[id]
	if !ok || p.Stock.LessThan(qty) {
		return domain.ErrInsufficientStock
	}
	p.Stock = p.Stock.Sub(qty)
	return nil
}

func (r *fakeProductRepo) IncrementStock(_ context.Context, _ string, id string, qty decimal.Decimal) error {
	if p, ok := r.s.products[id]; ok {
		p.Stock = p.Stock.Add(qty)
	}
	return nil
}

type fakeMovementRepo struct{ s *store }

func (r *fakeMovementRepo) Create(_ context.Context, _ string, m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, _ string, productID string, _, _ int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeInvoiceRepo struct{ s *store }

func (r *fakeInvoiceRepo) Create(_ context.Context, _ string, inv *entity.Invoice) error {
	r.s.invoices[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepo) CreateItem(_ context.Context, _ string, item *entity.InvoiceItem) error {
	r.s.items[item.InvoiceID] = append(r.s.items[item.InvoiceID], item)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, _ string, id string) (*entity.Invoice, error) {
	return r.s.invoices[id], nil
}

func (r *fakeInvoiceRepo) GetByIDForUpdate(_ context.Context, _ string, id string) (*entity.Invoice, error) {
	return r.s.invoices[id], nil
}

func (r *fakeInvoiceRepo) GetItems(_ context.Context, _ string, invoiceID string) ([]*entity.InvoiceItem, error) {
	if r.s.errGetItems != nil {
		return nil, r.s.errGetItems
	}
	return r.s.items[invoiceID], nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, _ string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		if f.PaymentStatus != "" && inv.PaymentStatus != f.PaymentStatus {
			continue
		}
		if f.CustomerID != "" && inv.CustomerID != f.CustomerID {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, _ string, inv *entity.Invoice) error {
	r.s.invoices[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepo) DeleteItems(_ context.Context, _ string, invoiceID string) error {
	delete(r.s.items, invoiceID)
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, _ string, id string) error {
	delete(r.s.invoices, id)
	return nil
}

type fakePaymentRepo struct{ s *store }

func (r *fakePaymentRepo) Create(_ context.Context, _ string, p *entity.Payment) error {
	r.s.payments = append(r.s.payments, p)
	return nil
}

func (r *fakePaymentRepo) ListByInvoice(_ context.Context, _ string, invoiceID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) SumByInvoice(_ context.Context, _ string, invoiceID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.s.payments {
		if p.InvoiceID == invoiceID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (r *fakePaymentRepo) GetMethod(_ context.Context, _ string, id string) (*entity.PaymentMethod, error) {
	return r.s.methods[id], nil
}

func (r *fakePaymentRepo) ListMethods(_ context.Context, _ string) ([]*entity.PaymentMethod, error) {
	var out []*entity.PaymentMethod
	for _, m := range r.s.methods {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeSeqRepo struct{ s *store }

func (r *fakeSeqRepo) Create(_ context.Context, _ string, seq *entity.FiscalSequence) error {
	r.s.sequences = append(r.s.sequences, seq)
	return nil
}

func (r *fakeSeqRepo) GetByID(_ context.Context, _ string, id string) (*entity.FiscalSequence, error) {
	for _, seq := range r.s.sequences {
		if seq.ID == id {
			return seq, nil
		}
	}
	return nil, nil
}

func (r *fakeSeqRepo) List(_ context.Context, _ string) ([]*entity.FiscalSequence, error) {
	return r.s.sequences, nil
}

func (r *fakeSeqRepo) ListByTypeForUpdate(_ context.Context, _ string, sequenceType string) ([]*entity.FiscalSequence, error) {
	var out []*entity.FiscalSequence
	for _, seq := range r.s.sequences {
		if seq.SequenceType == sequenceType {
			out = append(out, seq)
		}
	}
	return out, nil
}

func (r *fakeSeqRepo) SetCurrentNumber(_ context.Context, _ string, id string, next int64) error {
	for _, seq := range r.s.sequences {
		if seq.ID == id && next > seq.CurrentNumber {
			seq.CurrentNumber = next
		}
	}
	return nil
}

func (r *fakeSeqRepo) Update(_ context.Context, _ string, in *entity.FiscalSequence) error {
	for i, seq := range r.s.sequences {
		if seq.ID == in.ID {
			r.s.sequences[i] = in
		}
	}
	return nil
}

type fakeQuoteRepo struct{ s *store }

func (r *fakeQuoteRepo) Create(_ context.Context, _ string, q *entity.Quote) error {
	r.s.quotes[q.ID] = q
	return nil
}

func (r *fakeQuoteRepo) CreateItem(_ context.Context, _ string, item *entity.QuoteItem) error {
	r.s.quoteItms[item.QuoteID] = append(r.s.quoteItms[item.QuoteID], item)
	return nil
}

func (r *fakeQuoteRepo) GetByID(_ context.Context, _ string, id string) (*entity.Quote, error) {
	return r.s.quotes[id], nil
}

func (r *fakeQuoteRepo) GetByIDForUpdate(_ context.Context, _ string, id string) (*entity.Quote, error) {
	return r.s.quotes[id], nil
}

func (r *fakeQuoteRepo) GetItems(_ context.Context, _ string, quoteID string) ([]*entity.QuoteItem, error) {
	return r.s.quoteItms[quoteID], nil
}

func (r *fakeQuoteRepo) List(_ context.Context, _ string, status string, _, _ int) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range r.s.quotes {
		if status == "" || q.Status == status {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuoteRepo) Update(_ context.Context, _ string, q *entity.Quote) error {
	r.s.quotes[q.ID] = q
	return nil
}

// fakeTx invoca los callbacks con los repos fake, serializando con el mutex
// del store para poder ejercitar emisiones concurrentes.
type fakeTx struct{ s *store }

func (t *fakeTx) RunIssue(ctx context.Context, fn func(
	repository.FiscalSequenceRepository,
	repository.InvoiceRepository,
	repository.ProductRepository,
	repository.StockMovementRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return fn(&fakeSeqRepo{t.s}, &fakeInvoiceRepo{t.s}, &fakeProductRepo{t.s}, &fakeMovementRepo{t.s})
}

func (t *fakeTx) RunInvoice(ctx context.Context, fn func(repository.InvoiceRepository) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return fn(&fakeInvoiceRepo{t.s})
}

func (t *fakeTx) RunPayment(ctx context.Context, fn func(
	repository.InvoiceRepository,
	repository.PaymentRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return fn(&fakeInvoiceRepo{t.s}, &fakePaymentRepo{t.s})
}

func (t *fakeTx) RunQuote(ctx context.Context, fn func(
	repository.QuoteRepository,
	repository.InvoiceRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return fn(&fakeQuoteRepo{t.s}, &fakeInvoiceRepo{t.s})
}

var _ billing.TxRunner = (*fakeTx)(nil)

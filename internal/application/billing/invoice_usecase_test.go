package billing_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quimidom/quimidom-api/internal/application/billing"
	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/ncf"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const testSchema = "tenant_acme"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	s         *store
	tenant    *entity.Tenant
	invoiceUC *billing.InvoiceUseCase
	paymentUC *billing.PaymentUseCase
	quoteUC   *billing.QuoteUseCase
}

// newFixture arma un tenant con un cliente consumidor final, dos productos con
// stock, una secuencia B02 activa y una forma de pago.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := newStore()
	s.customers["cust-1"] = &entity.Customer{
		ID:      "cust-1",
		Name:    "Ferretería El Conde",
		NCFType: ncf.TipoConsumo,
	}
	s.products["prod-acido"] = &entity.Product{
		ID:      "prod-acido",
		SKU:     "QM-AC-001",
		Name:    "Ácido muriático 1 gal",
		Unit:    "galón",
		Price:   dec("270.00"),
		TaxRate: dec("18"),
		Stock:   dec("100"),
	}
	s.products["prod-cloro"] = &entity.Product{
		ID:      "prod-cloro",
		SKU:     "QM-CL-010",
		Name:    "Cloro granulado 10 kg",
		Unit:    "saco",
		Price:   dec("1850.00"),
		TaxRate: dec("18"),
		Stock:   dec("3"),
	}
	s.sequences = append(s.sequences, &entity.FiscalSequence{
		ID:            "seq-b02",
		SequenceType:  ncf.TipoConsumo,
		Prefix:        ncf.TipoConsumo,
		CurrentNumber: 1,
		EndNumber:     50,
		ValidUntil:    time.Now().AddDate(1, 0, 0),
		IsActive:      true,
	})
	s.methods["pm-efectivo"] = &entity.PaymentMethod{ID: "pm-efectivo", Name: "Efectivo", IsActive: true}

	tx := &fakeTx{s}
	invoiceRepo := &fakeInvoiceRepo{s}
	customerRepo := &fakeCustomerRepo{s}
	productRepo := &fakeProductRepo{s}
	paymentRepo := &fakePaymentRepo{s}
	quoteRepo := &fakeQuoteRepo{s}

	return &fixture{
		s:         s,
		tenant:    &entity.Tenant{ID: "t-1", Slug: "acme", SchemaName: testSchema, IsActive: true},
		invoiceUC: billing.NewInvoiceUseCase(tx, invoiceRepo, customerRepo, productRepo, paymentRepo),
		paymentUC: billing.NewPaymentUseCase(tx, paymentRepo),
		quoteUC:   billing.NewQuoteUseCase(tx, quoteRepo, customerRepo, productRepo),
	}
}

// draftInvoice crea un borrador de 2 galones de ácido (270.00 c/u, ITBIS 18%).
func (f *fixture) draftInvoice(t *testing.T) *dto.InvoiceResponse {
	t.Helper()
	inv, err := f.invoiceUC.Create(context.Background(), f.tenant, "user-1", dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Items: []dto.InvoiceItemRequest{
			{ProductID: "prod-acido", Quantity: dec("2")},
		},
	})
	require.NoError(t, err)
	return inv
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrador
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceCreate_BorradorSinNCF(t *testing.T) {
	f := newFixture(t)
	inv := f.draftInvoice(t)

	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	assert.Empty(t, inv.NCF, "el borrador no lleva NCF")
	assert.Equal(t, entity.PaymentStatusPending, inv.PaymentStatus)

	// 2 × 270.00 = 540.00; ITBIS 18% = 97.20; total 637.20
	assert.True(t, dec("540.00").Equal(inv.Subtotal), "subtotal: %s", inv.Subtotal)
	assert.True(t, dec("97.20").Equal(inv.TaxAmount), "itbis: %s", inv.TaxAmount)
	assert.True(t, dec("637.20").Equal(inv.TotalAmount), "total: %s", inv.TotalAmount)

	// Crear el borrador no toca el inventario.
	assert.True(t, dec("100").Equal(f.s.products["prod-acido"].Stock))
}

func TestInvoiceCreate_ClienteInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.invoiceUC.Create(context.Background(), f.tenant, "user-1", dto.CreateInvoiceRequest{
		CustomerID: "no-existe",
		Items:      []dto.InvoiceItemRequest{{ProductID: "prod-acido", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceCreate_SinLineas(t *testing.T) {
	f := newFixture(t)
	_, err := f.invoiceUC.Create(context.Background(), f.tenant, "user-1", dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceIssue_AsignaNCFYDescuentaStock(t *testing.T) {
	f := newFixture(t)
	draft := f.draftInvoice(t)

	issued, err := f.invoiceUC.Issue(context.Background(), f.tenant, "user-1", draft.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusIssued, issued.Status)
	assert.Equal(t, "B0200000001", issued.NCF)

	// Inventario descontado y movimiento OUT registrado con la factura como referencia.
	assert.True(t, dec("98").Equal(f.s.products["prod-acido"].Stock))
	require.Len(t, f.s.movements, 1)
	assert.Equal(t, entity.MovementOut, f.s.movements[0].MovementType)
	assert.Equal(t, draft.ID, f.s.movements[0].Reference)

	// El siguiente número quedó reservado.
	assert.Equal(t, int64(2), f.s.sequences[0].CurrentNumber)
}

func TestInvoiceIssue_SoloDesdeBorrador(t *testing.T) {
	f := newFixture(t)
	draft := f.draftInvoice(t)
	_, err := f.invoiceUC.Issue(context.Background(), f.tenant, "user-1", draft.ID)
	require.NoError(t, err)

	_, err = f.invoiceUC.Issue(context.Background(), f.tenant, "user-1", draft.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInvoiceState,
		"emitir dos veces no debe reasignar NCF")
}

func TestInvoiceIssue_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	inv, err := f.invoiceUC.Create(context.Background(), f.tenant, "user-1", dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Items:      []dto.InvoiceItemRequest{{ProductID: "prod-cloro", Quantity: dec("5")}},
	})
	require.NoError(t, err, "el borrador se crea aunque no haya stock")

	_, err = f.invoiceUC.Issue(context.Background(), f.tenant, "user-1", inv.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestInvoiceIssue_VencimientoPasado(t *testing.T) {
	f := newFixture(t)
	inv, err := f.invoiceUC.Create(context.Background(), f.tenant, "user-1", dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		DueDate:    "2020-01-15",
		Items:      []dto.InvoiceItemRequest{{ProductID: "prod-acido", Quantity: dec("1")}},
	})
	require.NoError(t, err)

	_, err = f.invoiceUC.Issue(context.Background(), f.tenant, "user-1", inv.ID)
	assert.ErrorIs(t, err, domain.ErrIssuePrecondition)
}

func TestInvoiceIssue_SecuenciaAgotada(t *testing.T) {
	f := newFixture(t)
	f.s.sequences[0].CurrentNumber = 51 // pasó EndNumber=50
	draft := f.draftInvoice(t)

	_, err := f.invoiceUC.Issue(context.Background(), f.tenant, "user-1", draft.ID)
	assert.ErrorIs(t, err, domain.ErrSequenceExhausted)

	// La factura permanece en borrador y el inventario intacto.
	assert.Equal(t, entity.InvoiceStatusDraft, f.s.invoices[draft.ID].Status)
	assert.True(t, dec("100").Equal(f.s.products["prod-acido"].Stock))
}

func TestInvoiceIssue_ConcurrenteNCFUnicos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 10
	drafts := make([]string, n)
	for i := range drafts {
		drafts[i] = f.draftInvoice(t).ID
	}

	var wg sync.WaitGroup
	for _, id := range drafts {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.invoiceUC.Issue(ctx, f.tenant, "user-1", id)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, inv := range f.s.invoices {
		require.NotEmpty(t, inv.NCF)
		assert.False(t, seen[inv.NCF], "NCF duplicado: %s", inv.NCF)
		seen[inv.NCF] = true
	}
	assert.Equal(t, int64(n+1), f.s.sequences[0].CurrentNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inmutabilidad post-emisión
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceUpdate_EmitidaSoloNotas(t *testing.T) {
	f := newFixture(t)
	draft := f.draftInvoice(t)
	_, err := f.invoiceUC.Issue(context.Background(), f.tenant, "user-1", draft.ID)
	require.NoError(t, err)

	// Cambiar líneas en una emitida está prohibido.
	_, err = f.invoiceUC.Update(context.Background(), f.tenant, draft.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{ProductID: "prod-acido", Quantity: dec("9")}},
	})
	assert.ErrorIs(t, err, domain.ErrImmutableState)

	// Las notas sí se pueden anotar.
	notes := "entregar en almacén 2"
	updated, err := f.invoiceUC.Update(context.Background(), f.tenant, draft.ID, dto.UpdateInvoiceRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, "B0200000001", updated.NCF, "el NCF no cambia al editar notas")
}

func TestInvoiceUpdate_BorradorRecalculaTotales(t *testing.T) {
	f := newFixture(t)
	draft := f.draftInvoice(t)

	updated, err := f.invoiceUC.Update(context.Background(), f.tenant, draft.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{ProductID: "prod-acido", Quantity: dec("3")}},
	})
	require.NoError(t, err)

	// 3 × 270.00 = 810.00; ITBIS 145.80; total 955.80
	assert.True(t, dec("810.00").Equal(updated.Subtotal), "subtotal: %s", updated.Subtotal)
	assert.True(t, dec("955.80").Equal(updated.TotalAmount), "total: %s", updated.TotalAmount)
}

func TestInvoiceUpdate_FalloAlLeerLineasPropagaError(t *testing.T) {
	f := newFixture(t)
	draft := f.draftInvoice(t)

	// Si la relectura de líneas falla, la respuesta no debe salir sin ellas.
	f.s.errGetItems = errors.New("conexión perdida")
	notes := "nota"
	resp, err := f.invoiceUC.Update(context.Background(), f.tenant, draft.ID, dto.UpdateInvoiceRequest{Notes: &notes})
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestInvoiceDelete_SoloBorradores(t *testing.T) {
	f := newFixture(t)
	draft := f.draftInvoice(t)
	issued := f.draftInvoice(t)
	_, err := f.invoiceUC.Issue(context.Background(), f.tenant, "user-1", issued.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.invoiceUC.Delete(context.Background(), f.tenant, issued.ID), domain.ErrImmutableState)

	require.NoError(t, f.invoiceUC.Delete(context.Background(), f.tenant, draft.ID))
	assert.Nil(t, f.s.invoices[draft.ID])
}

// ──────────────────────────────────────────────────────────────────────────────
// Anulación
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceVoid_RequiereMotivo(t *testing.T) {
	f := newFixture(t)
	draft := f.draftInvoice(t)

	_, err := f.invoiceUC.Void(context.Background(), f.tenant, draft.ID, "")
	assert.ErrorIs(t, err, domain.ErrVoidReasonRequired)
}

func TestInvoiceVoid_ConservaNCFYEsTerminal(t *testing.T) {
	f := newFixture(t)
	draft := f.draftInvoice(t)
	_, err := f.invoiceUC.Issue(context.Background(), f.tenant, "user-1", draft.ID)
	require.NoError(t, err)

	voided, err := f.invoiceUC.Void(context.Background(), f.tenant, draft.ID, "error de digitación")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusVoided, voided.Status)
	assert.Equal(t, "error de digitación", voided.VoidedReason)
	assert.NotEmpty(t, voided.VoidedAt)
	assert.Equal(t, "B0200000001", voided.NCF, "el NCF consumido no se libera")

	_, err = f.invoiceUC.Void(context.Background(), f.tenant, draft.ID, "otra vez")
	assert.ErrorIs(t, err, domain.ErrImmutableState, "voided es terminal")

	// El número no vuelve a la secuencia: la siguiente emisión usa el 2.
	next := f.draftInvoice(t)
	issued, err := f.invoiceUC.Issue(context.Background(), f.tenant, "user-1", next.ID)
	require.NoError(t, err)
	assert.Equal(t, "B0200000002", issued.NCF)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversión de cotización
// ──────────────────────────────────────────────────────────────────────────────

func TestQuoteConvert_UnaSolaVez(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	quote, err := f.quoteUC.Create(ctx, f.tenant, "user-1", dto.CreateQuoteRequest{
		CustomerID: "cust-1",
		Items:      []dto.InvoiceItemRequest{{ProductID: "prod-acido", Quantity: dec("2")}},
	})
	require.NoError(t, err)

	// Pendiente no se convierte.
	_, err = f.quoteUC.Convert(ctx, f.tenant, "user-1", quote.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidQuoteState)

	_, err = f.quoteUC.Approve(ctx, f.tenant, quote.ID)
	require.NoError(t, err)

	inv, err := f.quoteUC.Convert(ctx, f.tenant, "user-1", quote.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status, "la conversión produce un borrador")
	assert.True(t, dec("637.20").Equal(inv.TotalAmount))

	assert.Equal(t, entity.QuoteStatusConverted, f.s.quotes[quote.ID].Status)
	assert.Equal(t, inv.ID, f.s.quotes[quote.ID].InvoiceID)

	// Converted es terminal: no se convierte de nuevo.
	_, err = f.quoteUC.Convert(ctx, f.tenant, "user-1", quote.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidQuoteState)
}

package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
)

// issuedInvoice deja una factura emitida de total 637.20 lista para pagos.
func issuedInvoice(t *testing.T, f *fixture) string {
	t.Helper()
	draft := f.draftInvoice(t)
	_, err := f.invoiceUC.Issue(context.Background(), f.tenant, "user-1", draft.ID)
	require.NoError(t, err)
	return draft.ID
}

func pay(t *testing.T, f *fixture, invoiceID, amount string) (*dto.PaymentResponse, error) {
	t.Helper()
	return f.paymentUC.Record(context.Background(), f.tenant, invoiceID, dto.RecordPaymentRequest{
		PaymentMethodID: "pm-efectivo",
		Amount:          dec(amount),
	})
}

func TestPaymentRecord_SoloFacturasEmitidas(t *testing.T) {
	f := newFixture(t)
	draft := f.draftInvoice(t)

	_, err := pay(t, f, draft.ID, "100.00")
	assert.ErrorIs(t, err, domain.ErrInvalidInvoiceState,
		"un borrador no acepta pagos")
}

func TestPaymentRecord_MontoInvalido(t *testing.T) {
	f := newFixture(t)
	id := issuedInvoice(t, f)

	_, err := pay(t, f, id, "0")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = pay(t, f, id, "-50.00")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPaymentRecord_MetodoInexistente(t *testing.T) {
	f := newFixture(t)
	id := issuedInvoice(t, f)

	_, err := f.paymentUC.Record(context.Background(), f.tenant, id, dto.RecordPaymentRequest{
		PaymentMethodID: "pm-no-existe",
		Amount:          dec("100.00"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Pago parcial → partial; completar el total → paid. El estado es derivado de
// Σ(pagos), nunca se fija a mano.
func TestPaymentRecord_DerivaEstadoParcialYPagado(t *testing.T) {
	f := newFixture(t)
	id := issuedInvoice(t, f) // total 637.20

	p1, err := pay(t, f, id, "300.00")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPartial, p1.PaymentStatus)
	assert.True(t, dec("300.00").Equal(p1.PaidAmount))
	assert.True(t, dec("337.20").Equal(p1.Balance), "balance: %s", p1.Balance)
	assert.True(t, p1.OverpaidAmount.IsZero())

	p2, err := pay(t, f, id, "337.20")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, p2.PaymentStatus)
	assert.True(t, p2.Balance.IsZero())
	assert.True(t, p2.OverpaidAmount.IsZero())

	assert.Equal(t, entity.PaymentStatusPaid, f.s.invoices[id].PaymentStatus)
}

// El sobrepago se acepta tal cual y se expone; el saldo nunca es negativo.
func TestPaymentRecord_SobrepagoSeExpone(t *testing.T) {
	f := newFixture(t)
	id := issuedInvoice(t, f) // total 637.20

	p, err := pay(t, f, id, "700.00")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, p.PaymentStatus)
	assert.True(t, dec("700.00").Equal(p.PaidAmount))
	assert.True(t, p.Balance.IsZero(), "el saldo no baja de cero: %s", p.Balance)
	assert.True(t, dec("62.80").Equal(p.OverpaidAmount), "sobrepago: %s", p.OverpaidAmount)
}

// Los pagos son append-only: cada registro suma, nada se edita ni borra.
func TestPaymentRecord_HistorialAppendOnly(t *testing.T) {
	f := newFixture(t)
	id := issuedInvoice(t, f)

	for _, amount := range []string{"100.00", "200.00", "37.20"} {
		_, err := pay(t, f, id, amount)
		require.NoError(t, err)
	}

	list, err := f.paymentUC.ListByInvoice(context.Background(), f.tenant, id)
	require.NoError(t, err)
	require.Len(t, list, 3)

	sum := decimal.Zero
	for _, p := range list {
		sum = sum.Add(p.Amount)
	}
	assert.True(t, dec("337.20").Equal(sum))
}

// Una factura anulada con pagos los conserva: no hay reverso automático.
func TestPaymentRecord_AnulacionNoReviertePagos(t *testing.T) {
	f := newFixture(t)
	id := issuedInvoice(t, f)

	_, err := pay(t, f, id, "300.00")
	require.NoError(t, err)

	_, err = f.invoiceUC.Void(context.Background(), f.tenant, id, "cliente desistió")
	require.NoError(t, err)

	list, err := f.paymentUC.ListByInvoice(context.Background(), f.tenant, id)
	require.NoError(t, err)
	assert.Len(t, list, 1, "los pagos registrados permanecen en el historial")

	// Pero una anulada ya no acepta pagos nuevos.
	_, err = pay(t, f, id, "100.00")
	assert.ErrorIs(t, err, domain.ErrInvalidInvoiceState)
}

func TestPaymentListMethods_SoloActivas(t *testing.T) {
	f := newFixture(t)
	f.s.methods["pm-cheque"] = &entity.PaymentMethod{ID: "pm-cheque", Name: "Cheque", IsActive: false}

	methods, err := f.paymentUC.ListMethods(context.Background(), f.tenant)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "Efectivo", methods[0].Name)
}

package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/billing"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// TestComputeLine_VectorExacto: cantidad=3, precio=100.00, descuento=10%,
// ITBIS=18% → descuento=30.00, base=270.00, impuesto=48.60, total=318.60.
func TestComputeLine_VectorExacto(t *testing.T) {
	got, err := billing.ComputeLine(dec("3"), dec("100.00"), dec("18"), dec("10"))
	require.NoError(t, err)

	assert.True(t, got.DiscountAmount.Equal(dec("30.00")), "descuento: %s", got.DiscountAmount)
	assert.True(t, got.TaxAmount.Equal(dec("48.60")), "impuesto: %s", got.TaxAmount)
	assert.True(t, got.TotalAmount.Equal(dec("318.60")), "total: %s", got.TotalAmount)
}

// TestComputeLine_RedondeoMitadArriba verifica el redondeo a 2 decimales por línea.
// base = 1 × 10.375 = 10.375; itbis 18% = 1.8675 → 1.87.
func TestComputeLine_RedondeoMitadArriba(t *testing.T) {
	got, err := billing.ComputeLine(dec("1"), dec("10.375"), dec("18"), dec("0"))
	require.NoError(t, err)
	assert.True(t, got.TaxAmount.Equal(dec("1.87")), "impuesto: %s", got.TaxAmount)
}

// TestComputeLine_CantidadCero: cantidad o precio en cero → todos los montos en cero.
func TestComputeLine_CantidadCero(t *testing.T) {
	got, err := billing.ComputeLine(decimal.Zero, dec("100"), dec("18"), dec("10"))
	require.NoError(t, err)
	assert.True(t, got.DiscountAmount.IsZero())
	assert.True(t, got.TaxAmount.IsZero())
	assert.True(t, got.TotalAmount.IsZero())

	got, err = billing.ComputeLine(dec("5"), decimal.Zero, dec("18"), dec("10"))
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.IsZero())
}

// TestComputeLine_NegativosRechazados: cantidad o precio negativos → ErrInvalidInput.
func TestComputeLine_NegativosRechazados(t *testing.T) {
	_, err := billing.ComputeLine(dec("-1"), dec("100"), dec("18"), dec("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = billing.ComputeLine(dec("1"), dec("-100"), dec("18"), dec("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = billing.ComputeLine(dec("1"), dec("100"), dec("-18"), dec("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestAggregate_ConsistenciaTotal: para cualquier factura con líneas que suman
// subtotal S, descuento D e impuesto T, el total debe ser exactamente S − D + T.
func TestAggregate_ConsistenciaTotal(t *testing.T) {
	lines := [][4]string{
		// cantidad, precio, itbis, descuento
		{"3", "100.00", "18", "10"},
		{"1.5", "249.99", "18", "0"},
		{"12", "33.33", "16", "5"},
		{"7", "0.01", "0", "0"},
	}
	var items []*entity.InvoiceItem
	for _, l := range lines {
		amounts, err := billing.ComputeLine(dec(l[0]), dec(l[1]), dec(l[2]), dec(l[3]))
		require.NoError(t, err)
		items = append(items, &entity.InvoiceItem{
			Quantity:       dec(l[0]),
			UnitPrice:      dec(l[1]),
			TaxRate:        dec(l[2]),
			DiscountRate:   dec(l[3]),
			DiscountAmount: amounts.DiscountAmount,
			TaxAmount:      amounts.TaxAmount,
			TotalAmount:    amounts.TotalAmount,
		})
	}
	totals := billing.Aggregate(items)

	expected := totals.Subtotal.Sub(totals.DiscountAmount).Add(totals.TaxAmount)
	diff := totals.TotalAmount.Sub(expected).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.01")),
		"total %s debe igualar S−D+T %s", totals.TotalAmount, expected)
}

// TestDerivePaymentStatus cubre la derivación pending/partial/paid y el sobrepago.
func TestDerivePaymentStatus(t *testing.T) {
	total := dec("1000")

	assert.Equal(t, entity.PaymentStatusPending, billing.DerivePaymentStatus(total, decimal.Zero))
	assert.Equal(t, entity.PaymentStatusPartial, billing.DerivePaymentStatus(total, dec("700")))
	assert.Equal(t, entity.PaymentStatusPaid, billing.DerivePaymentStatus(total, dec("1000")))
	assert.Equal(t, entity.PaymentStatusPaid, billing.DerivePaymentStatus(total, dec("1050")))

	assert.True(t, billing.RemainingBalance(total, dec("700")).Equal(dec("300")))
	assert.True(t, billing.RemainingBalance(total, dec("1050")).IsZero(), "el saldo nunca es negativo")
	assert.True(t, billing.OverpaidAmount(total, dec("1050")).Equal(dec("50")))
	assert.True(t, billing.OverpaidAmount(total, dec("700")).IsZero())
}

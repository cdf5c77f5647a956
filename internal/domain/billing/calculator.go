// Package billing contiene la aritmética pura de facturación: cálculo de
// líneas, agregados de factura y derivación del estado de pago.
//
// Disciplina de redondeo: cada línea se redondea a 2 decimales (mitad hacia
// arriba) en el descuento y el impuesto; los agregados suman valores ya
// redondeados y no se vuelven a redondear.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
)

var cien = decimal.NewFromInt(100)

// LineAmounts montos derivados de una línea.
type LineAmounts struct {
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
}

// ComputeLine calcula descuento, ITBIS y total de una línea.
// Cantidad o precio negativos se rechazan; cero produce montos en cero.
//
//	descuento = round2(cantidad × precio × tasaDescuento / 100)
//	base      = cantidad × precio − descuento
//	itbis     = round2(base × tasaImpuesto / 100)
//	total     = base + itbis
func ComputeLine(quantity, unitPrice, taxRate, discountRate decimal.Decimal) (LineAmounts, error) {
	if quantity.IsNegative() || unitPrice.IsNegative() {
		return LineAmounts{}, domain.ErrInvalidInput
	}
	if taxRate.IsNegative() || discountRate.IsNegative() {
		return LineAmounts{}, domain.ErrInvalidInput
	}
	gross := quantity.Mul(unitPrice)
	discount := gross.Mul(discountRate).Div(cien).Round(2)
	base := gross.Sub(discount)
	tax := base.Mul(taxRate).Div(cien).Round(2)
	return LineAmounts{
		DiscountAmount: discount,
		TaxAmount:      tax,
		TotalAmount:    base.Add(tax),
	}, nil
}

// Totals agregados de una factura o cotización.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
}

// Aggregate suma las líneas ya calculadas. Subtotal es Σ(cantidad × precio);
// el total cumple Total = Subtotal − Descuento + ITBIS por construcción.
func Aggregate(items []*entity.InvoiceItem) Totals {
	t := Totals{
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		TaxAmount:      decimal.Zero,
		TotalAmount:    decimal.Zero,
	}
	for _, it := range items {
		t.Subtotal = t.Subtotal.Add(it.Quantity.Mul(it.UnitPrice))
		t.DiscountAmount = t.DiscountAmount.Add(it.DiscountAmount)
		t.TaxAmount = t.TaxAmount.Add(it.TaxAmount)
		t.TotalAmount = t.TotalAmount.Add(it.TotalAmount)
	}
	return t
}

// DerivePaymentStatus deriva el estado de pago desde la suma de pagos:
// paid si Σpagos ≥ total; partial si 0 < Σpagos < total; pending si Σpagos = 0.
func DerivePaymentStatus(total, paid decimal.Decimal) string {
	switch {
	case paid.GreaterThanOrEqual(total) && paid.IsPositive():
		return entity.PaymentStatusPaid
	case paid.IsPositive():
		return entity.PaymentStatusPartial
	default:
		return entity.PaymentStatusPending
	}
}

// RemainingBalance saldo pendiente, nunca negativo aun con sobrepago.
func RemainingBalance(total, paid decimal.Decimal) decimal.Decimal {
	r := total.Sub(paid)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// OverpaidAmount monto pagado en exceso; cero si no hay sobrepago.
// El sobrepago no se rechaza ni se recorta: se expone para que el negocio decida.
func OverpaidAmount(total, paid decimal.Decimal) decimal.Decimal {
	o := paid.Sub(total)
	if o.IsNegative() {
		return decimal.Zero
	}
	return o
}

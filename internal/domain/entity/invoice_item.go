package entity

import "github.com/shopspring/decimal"

// InvoiceItem representa una línea de una factura. Pertenece exclusivamente a
// su factura y se borra en cascada cuando se elimina una factura en borrador.
// Los montos derivados se calculan una sola vez con redondeo a 2 decimales:
//
//	DiscountAmount = round2(Quantity × UnitPrice × DiscountRate / 100)
//	TaxAmount      = round2((Quantity × UnitPrice − DiscountAmount) × TaxRate / 100)
//	TotalAmount    = Quantity × UnitPrice − DiscountAmount + TaxAmount
type InvoiceItem struct {
	ID             string
	InvoiceID      string
	ProductID      string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	TaxRate        decimal.Decimal // porcentaje ITBIS (18 = 18%)
	TaxAmount      decimal.Decimal
	DiscountRate   decimal.Decimal // porcentaje
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
}

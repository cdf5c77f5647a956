package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de compra (cuenta por pagar).
const (
	PurchaseStatusPending = "pending"
	PurchaseStatusPaid    = "paid"
)

// PurchaseInvoice representa una factura recibida de un suplidor.
// Alimenta el resumen de cuentas por pagar del panel financiero.
type PurchaseInvoice struct {
	ID             string
	SupplierID     string
	DocumentNumber string // NCF o número de documento del suplidor
	IssueDate      time.Time
	DueDate        time.Time
	TotalAmount    decimal.Decimal
	PaidAmount     decimal.Decimal
	Status         string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una factura. El flujo es monótono:
// draft → issued → voided, o draft → voided. Voided es terminal.
const (
	InvoiceStatusDraft  = "draft"
	InvoiceStatusIssued = "issued"
	InvoiceStatusVoided = "voided"
)

// Estados de pago derivados de la suma de pagos registrados.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// Invoice representa la cabecera de una factura de venta.
// NCF se asigna exactamente una vez, en la transición draft → issued, y es
// inmutable desde entonces. TotalAmount = Subtotal + TaxAmount - DiscountAmount.
type Invoice struct {
	ID             string
	CustomerID     string
	NCF            string // vacío hasta la emisión
	SequenceType   string // tipo de NCF a asignar al emitir (derivado del cliente)
	IssueDate      time.Time
	DueDate        time.Time
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	Status         string
	PaymentStatus  string
	Notes          string
	VoidedAt       *time.Time
	VoidedReason   string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsMutable indica si la factura admite cambios de líneas, fechas o borrado.
func (i *Invoice) IsMutable() bool {
	return i.Status == InvoiceStatusDraft
}

package dto

import "github.com/shopspring/decimal"

// InvoiceItemRequest línea de factura o cotización en una petición.
type InvoiceItemRequest struct {
	ProductID    string          `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"` // cero = usar precio de lista del producto
	DiscountRate decimal.Decimal `json:"discount_rate"`
}

// CreateInvoiceRequest crea una factura en borrador.
type CreateInvoiceRequest struct {
	CustomerID string               `json:"customer_id"`
	DueDate    string               `json:"due_date"` // YYYY-MM-DD
	Notes      string               `json:"notes"`
	Items      []InvoiceItemRequest `json:"items"`
}

// UpdateInvoiceRequest edita una factura. En borrador admite líneas, fecha de
// vencimiento y notas; emitida solo notas.
type UpdateInvoiceRequest struct {
	DueDate string               `json:"due_date"`
	Notes   *string              `json:"notes"`
	Items   []InvoiceItemRequest `json:"items"`
}

// VoidInvoiceRequest anula una factura; el motivo es obligatorio.
type VoidInvoiceRequest struct {
	Reason string `json:"reason"`
}

// InvoiceItemResponse línea calculada.
type InvoiceItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountRate   decimal.Decimal `json:"discount_rate"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// InvoiceResponse factura completa con totales y estado de pago.
type InvoiceResponse struct {
	ID             string                `json:"id"`
	CustomerID     string                `json:"customer_id"`
	CustomerName   string                `json:"customer_name,omitempty"`
	NCF            string                `json:"ncf,omitempty"`
	SequenceType   string                `json:"sequence_type"`
	IssueDate      string                `json:"issue_date"`
	DueDate        string                `json:"due_date"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxAmount      decimal.Decimal       `json:"tax_amount"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	Status         string                `json:"status"`
	PaymentStatus  string                `json:"payment_status"`
	PaidAmount     decimal.Decimal       `json:"paid_amount"`
	Balance        decimal.Decimal       `json:"balance"`
	OverpaidAmount decimal.Decimal       `json:"overpaid_amount"`
	Notes          string                `json:"notes,omitempty"`
	VoidedAt       string                `json:"voided_at,omitempty"`
	VoidedReason   string                `json:"voided_reason,omitempty"`
	Items          []InvoiceItemResponse `json:"items,omitempty"`
}

// RecordPaymentRequest registra un pago contra una factura emitida.
type RecordPaymentRequest struct {
	PaymentMethodID string          `json:"payment_method_id"`
	Amount          decimal.Decimal `json:"amount"`
	ReferenceNumber string          `json:"reference_number"`
	PaymentDate     string          `json:"payment_date"` // YYYY-MM-DD; vacío = hoy
	Notes           string          `json:"notes"`
}

// PaymentItemResponse un pago del historial de una factura.
type PaymentItemResponse struct {
	ID              string          `json:"id"`
	InvoiceID       string          `json:"invoice_id"`
	PaymentMethodID string          `json:"payment_method_id"`
	Amount          decimal.Decimal `json:"amount"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	PaymentDate     string          `json:"payment_date"`
	Notes           string          `json:"notes,omitempty"`
}

// PaymentMethodResponse forma de pago del catálogo del tenant.
type PaymentMethodResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PaymentResponse pago registrado más el estado derivado de la factura.
type PaymentResponse struct {
	ID              string          `json:"id"`
	InvoiceID       string          `json:"invoice_id"`
	PaymentMethodID string          `json:"payment_method_id"`
	Amount          decimal.Decimal `json:"amount"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	PaymentDate     string          `json:"payment_date"`
	PaymentStatus   string          `json:"payment_status"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	Balance         decimal.Decimal `json:"balance"`
	OverpaidAmount  decimal.Decimal `json:"overpaid_amount"`
}

package dto

import "github.com/shopspring/decimal"

// CreateQuoteRequest crea una cotización pendiente.
type CreateQuoteRequest struct {
	CustomerID string               `json:"customer_id"`
	ValidUntil string               `json:"valid_until"` // YYYY-MM-DD
	Notes      string               `json:"notes"`
	Items      []InvoiceItemRequest `json:"items"`
}

// QuoteResponse cotización completa.
type QuoteResponse struct {
	ID             string                `json:"id"`
	CustomerID     string                `json:"customer_id"`
	CustomerName   string                `json:"customer_name,omitempty"`
	QuoteDate      string                `json:"quote_date"`
	ValidUntil     string                `json:"valid_until"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxAmount      decimal.Decimal       `json:"tax_amount"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	Status         string                `json:"status"`
	InvoiceID      string                `json:"invoice_id,omitempty"`
	Notes          string                `json:"notes,omitempty"`
	Items          []InvoiceItemResponse `json:"items,omitempty"`
}

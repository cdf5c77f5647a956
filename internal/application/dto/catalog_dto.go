package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Clientes ──────────────────────────────────────────────────────────────────

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	RNC     string `json:"rnc"`
	NCFType string `json:"ncf_type"` // B01, B02, B14, B15; vacío = B02
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateCustomerRequest campos modificables de un cliente (nil = sin cambio).
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	RNC     *string `json:"rnc"`
	NCFType *string `json:"ncf_type"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// CustomerResponse representación pública de un cliente.
type CustomerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	RNC     string `json:"rnc,omitempty"`
	NCFType string `json:"ncf_type"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// ── Productos ─────────────────────────────────────────────────────────────────

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	TaxRate     *decimal.Decimal `json:"tax_rate"` // nil = ITBIS 18%
	Stock       decimal.Decimal `json:"stock"`
}

// UpdateProductRequest campos modificables de un producto (nil = sin cambio).
// Stock no se toca aquí: se ajusta vía movimientos.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Unit        *string          `json:"unit"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Stock       decimal.Decimal `json:"stock"`
}

// RegisterMovementRequest movimiento manual de inventario (IN o ADJ).
type RegisterMovementRequest struct {
	ProductID    string          `json:"product_id"`
	MovementType string          `json:"movement_type"` // IN | ADJ
	Quantity     decimal.Decimal `json:"quantity"`
	Reference    string          `json:"reference"`
}

// MovementResponse movimiento de inventario registrado.
type MovementResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	MovementType string          `json:"movement_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reference    string          `json:"reference,omitempty"`
	CreatedBy    string          `json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ── Suplidores y compras ──────────────────────────────────────────────────────

// CreateSupplierRequest alta de suplidor.
type CreateSupplierRequest struct {
	Name    string `json:"name"`
	RNC     string `json:"rnc"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateSupplierRequest campos modificables de un suplidor (nil = sin cambio).
type UpdateSupplierRequest struct {
	Name    *string `json:"name"`
	RNC     *string `json:"rnc"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// SupplierResponse representación pública de un suplidor.
type SupplierResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	RNC     string `json:"rnc,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// CreatePurchaseRequest registra una factura de compra.
type CreatePurchaseRequest struct {
	SupplierID     string          `json:"supplier_id"`
	DocumentNumber string          `json:"document_number"`
	IssueDate      string          `json:"issue_date"` // YYYY-MM-DD
	DueDate        string          `json:"due_date"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Notes          string          `json:"notes"`
}

// RegisterPurchasePaymentRequest abona a una factura de compra.
type RegisterPurchasePaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// PurchaseResponse factura de compra.
type PurchaseResponse struct {
	ID             string          `json:"id"`
	SupplierID     string          `json:"supplier_id"`
	SupplierName   string          `json:"supplier_name,omitempty"`
	DocumentNumber string          `json:"document_number"`
	IssueDate      string          `json:"issue_date"`
	DueDate        string          `json:"due_date"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
}

// ── Secuencias fiscales ───────────────────────────────────────────────────────

// CreateSequenceRequest alta de secuencia NCF (solo admin).
type CreateSequenceRequest struct {
	SequenceType string `json:"sequence_type"`
	Prefix       string `json:"prefix"` // vacío = igual al tipo
	StartNumber  int64  `json:"start_number"`
	EndNumber    int64  `json:"end_number"`
	ValidUntil   string `json:"valid_until"` // YYYY-MM-DD
}

// SequenceResponse estado de una secuencia NCF.
type SequenceResponse struct {
	ID            string `json:"id"`
	SequenceType  string `json:"sequence_type"`
	Prefix        string `json:"prefix"`
	CurrentNumber int64  `json:"current_number"`
	EndNumber     int64  `json:"end_number"`
	Remaining     int64  `json:"remaining"`
	ValidUntil    string `json:"valid_until"`
	IsActive      bool   `json:"is_active"`
}

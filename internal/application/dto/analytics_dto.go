package dto

import "github.com/shopspring/decimal"

// TopProductDTO producto destacado del panel.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// FinanceSummaryDTO resumen financiero del panel. Se recalcula en cada
// petición a partir de facturas y pagos; no se cachea.
type FinanceSummaryDTO struct {
	MonthlyIncome        decimal.Decimal `json:"monthly_income"`
	MonthlyIncomeDisplay string          `json:"monthly_income_display"` // formato RD$ solo para mostrar
	MonthlyInvoices      int             `json:"monthly_invoices"`
	Receivables          decimal.Decimal `json:"receivables"`
	ReceivableInvoices   int             `json:"receivable_invoices"`
	Overdue              decimal.Decimal `json:"overdue"`
	OverdueInvoices      int             `json:"overdue_invoices"`
	PendingPayables      decimal.Decimal `json:"pending_payables"`
	PayableInvoices      int             `json:"payable_invoices"`
	TopProducts          []TopProductDTO `json:"top_products"`
	PeriodLabel          string          `json:"period_label"`
}

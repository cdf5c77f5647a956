// Package analytics contiene los casos de uso del panel financiero: ingresos,
// cuentas por cobrar, vencidas y por pagar. Todo se recalcula bajo demanda.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
	"github.com/quimidom/quimidom-api/pkg/moneyfmt"
)

const panelTopProducts = 5 // productos en el widget del panel

// FinanceUseCase genera el resumen financiero del mes en curso del tenant.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). Ninguna cifra
// viene de un agregado almacenado; todo se deriva de facturas y pagos al
// momento de la consulta.
type FinanceUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewFinanceUseCase construye el caso de uso.
func NewFinanceUseCase(analyticsRepo repository.AnalyticsRepository) *FinanceUseCase {
	return &FinanceUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el FinanceSummaryDTO del tenant.
//
// Cinco consultas en paralelo:
//  1. GetIncome(mes)       → MonthlyIncome + MonthlyInvoices
//  2. GetReceivables       → Receivables + ReceivableInvoices
//  3. GetOverdue(hoy)      → Overdue + OverdueInvoices
//  4. GetTopProducts(mes)  → TopProducts
//  5. GetPendingPayables   → PendingPayables + PayableInvoices
func (uc *FinanceUseCase) GetSummary(ctx context.Context, tenant *entity.Tenant) (*dto.FinanceSummaryDTO, error) {
	now := time.Now()
	schema := tenant.SchemaName

	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		Add(24*time.Hour - time.Nanosecond)

	type amountCountResult struct {
		amount decimal.Decimal
		count  int
		err    error
	}
	type receivablesResult struct {
		res repository.ReceivablesResult
		err error
	}
	type topResult struct {
		rows []repository.TopProductResult
		err  error
	}

	incomeCh := make(chan amountCountResult, 1)
	recvCh := make(chan receivablesResult, 1)
	overdueCh := make(chan receivablesResult, 1)
	topCh := make(chan topResult, 1)
	payablesCh := make(chan amountCountResult, 1)

	go func() {
		amount, count, err := uc.analyticsRepo.GetIncome(ctx, schema, monthStart, monthEnd)
		incomeCh <- amountCountResult{amount, count, err}
	}()
	go func() {
		res, err := uc.analyticsRepo.GetReceivables(ctx, schema)
		recvCh <- receivablesResult{res, err}
	}()
	go func() {
		res, err := uc.analyticsRepo.GetOverdue(ctx, schema, now)
		overdueCh <- receivablesResult{res, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopProducts(ctx, schema, monthStart, monthEnd, panelTopProducts)
		topCh <- topResult{rows, err}
	}()
	go func() {
		amount, count, err := uc.analyticsRepo.GetPendingPayables(ctx, schema)
		payablesCh <- amountCountResult{amount, count, err}
	}()

	income := <-incomeCh
	recv := <-recvCh
	overdue := <-overdueCh
	top := <-topCh
	payables := <-payablesCh

	if income.err != nil {
		return nil, fmt.Errorf("panel: ingresos del mes: %w", income.err)
	}
	if recv.err != nil {
		return nil, fmt.Errorf("panel: cuentas por cobrar: %w", recv.err)
	}
	if overdue.err != nil {
		return nil, fmt.Errorf("panel: facturas vencidas: %w", overdue.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("panel: productos destacados: %w", top.err)
	}
	if payables.err != nil {
		return nil, fmt.Errorf("panel: cuentas por pagar: %w", payables.err)
	}

	topProducts := make([]dto.TopProductDTO, 0, len(top.rows))
	for _, r := range top.rows {
		topProducts = append(topProducts, dto.TopProductDTO{
			ProductID:    r.ProductID,
			SKU:          r.SKU,
			Name:         r.Name,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue.Round(2),
		})
	}

	monthlyIncome := income.amount.Round(2)
	return &dto.FinanceSummaryDTO{
		MonthlyIncome:        monthlyIncome,
		MonthlyIncomeDisplay: moneyfmt.DOP(monthlyIncome),
		MonthlyInvoices:      income.count,
		Receivables:          recv.res.Total.Round(2),
		ReceivableInvoices:   recv.res.InvoiceCount,
		Overdue:              overdue.res.Total.Round(2),
		OverdueInvoices:      overdue.res.InvoiceCount,
		PendingPayables:      payables.amount.Round(2),
		PayableInvoices:      payables.count,
		TopProducts:          topProducts,
		PeriodLabel:          monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Agosto 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/domain"
	domainbilling "github.com/quimidom/quimidom-api/internal/domain/billing"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

// PaymentUseCase registra pagos contra facturas emitidas y deriva el estado
// de pago. Los pagos son append-only; el sobrepago se acepta y se expone como
// overpaid_amount, nunca se recorta en silencio.
type PaymentUseCase struct {
	tx          TxRunner
	paymentRepo repository.PaymentRepository
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(tx TxRunner, paymentRepo repository.PaymentRepository) *PaymentUseCase {
	return &PaymentUseCase{tx: tx, paymentRepo: paymentRepo}
}

// Record inserta el pago y recalcula payment_status en una transacción con la
// factura bloqueada. Solo facturas emitidas aceptan pagos; monto > 0.
func (uc *PaymentUseCase) Record(ctx context.Context, tenant *entity.Tenant, invoiceID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	schema := tenant.SchemaName
	if !in.Amount.GreaterThan(decimal.Zero) || in.PaymentMethodID == "" {
		return nil, domain.ErrInvalidInput
	}
	payDate := time.Now()
	if in.PaymentDate != "" {
		var err error
		payDate, err = time.Parse(dateLayout, in.PaymentDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	var payment *entity.Payment
	var inv *entity.Invoice
	var paid decimal.Decimal

	err := uc.tx.RunPayment(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		var err error
		inv, err = invoiceRepo.GetByIDForUpdate(ctx, schema, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Status != entity.InvoiceStatusIssued {
			return domain.ErrInvalidInvoiceState
		}
		method, err := paymentRepo.GetMethod(ctx, schema, in.PaymentMethodID)
		if err != nil {
			return err
		}
		if method == nil || !method.IsActive {
			return domain.ErrNotFound
		}

		payment = &entity.Payment{
			ID:              uuid.New().String(),
			InvoiceID:       invoiceID,
			PaymentMethodID: in.PaymentMethodID,
			Amount:          in.Amount,
			ReferenceNumber: in.ReferenceNumber,
			PaymentDate:     payDate,
			Notes:           in.Notes,
			CreatedAt:       time.Now(),
		}
		if err := paymentRepo.Create(ctx, schema, payment); err != nil {
			return err
		}

		paid, err = paymentRepo.SumByInvoice(ctx, schema, invoiceID)
		if err != nil {
			return err
		}
		status := domainbilling.DerivePaymentStatus(inv.TotalAmount, paid)
		if status != inv.PaymentStatus {
			inv.PaymentStatus = status
			inv.UpdatedAt = time.Now()
			return invoiceRepo.Update(ctx, schema, inv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.PaymentResponse{
		ID:              payment.ID,
		InvoiceID:       payment.InvoiceID,
		PaymentMethodID: payment.PaymentMethodID,
		Amount:          payment.Amount,
		ReferenceNumber: payment.ReferenceNumber,
		PaymentDate:     payment.PaymentDate.Format(dateLayout),
		PaymentStatus:   inv.PaymentStatus,
		PaidAmount:      paid,
		Balance:         domainbilling.RemainingBalance(inv.TotalAmount, paid),
		OverpaidAmount:  domainbilling.OverpaidAmount(inv.TotalAmount, paid),
	}, nil
}

// ListByInvoice pagos registrados de una factura, en orden de inserción.
func (uc *PaymentUseCase) ListByInvoice(ctx context.Context, tenant *entity.Tenant, invoiceID string) ([]*dto.PaymentItemResponse, error) {
	payments, err := uc.paymentRepo.ListByInvoice(ctx, tenant.SchemaName, invoiceID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentItemResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, &dto.PaymentItemResponse{
			ID:              p.ID,
			InvoiceID:       p.InvoiceID,
			PaymentMethodID: p.PaymentMethodID,
			Amount:          p.Amount,
			ReferenceNumber: p.ReferenceNumber,
			PaymentDate:     p.PaymentDate.Format(dateLayout),
			Notes:           p.Notes,
		})
	}
	return out, nil
}

// ListMethods catálogo de formas de pago activas del tenant.
func (uc *PaymentUseCase) ListMethods(ctx context.Context, tenant *entity.Tenant) ([]*dto.PaymentMethodResponse, error) {
	methods, err := uc.paymentRepo.ListMethods(ctx, tenant.SchemaName)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		out = append(out, &dto.PaymentMethodResponse{ID: m.ID, Name: m.Name})
	}
	return out, nil
}

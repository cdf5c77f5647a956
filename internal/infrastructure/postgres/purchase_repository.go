package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, rnc, email, phone, address, created_at, updated_at`

// Create persiste un nuevo suplidor.
func (r *SupplierRepo) Create(ctx context.Context, schema string, s *entity.Supplier) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (`+supplierColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, tbl(schema, "suppliers"))
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.RNC, s.Email, s.Phone, s.Address, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un suplidor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, schema, id string) (*entity.Supplier, error) {
	query := fmt.Sprintf(`SELECT `+supplierColumns+` FROM %s WHERE id = $1`, tbl(schema, "suppliers"))
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.RNC, &s.Email, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// List lista suplidores con paginación.
func (r *SupplierRepo) List(ctx context.Context, schema string, limit, offset int) ([]*entity.Supplier, error) {
	query := fmt.Sprintf(`
		SELECT `+supplierColumns+` FROM %s ORDER BY name LIMIT $1 OFFSET $2`, tbl(schema, "suppliers"))
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(
			&s.ID, &s.Name, &s.RNC, &s.Email, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza un suplidor existente.
func (r *SupplierRepo) Update(ctx context.Context, schema string, s *entity.Supplier) error {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $2, rnc = $3, email = $4, phone = $5, address = $6, updated_at = $7
		WHERE id = $1`, tbl(schema, "suppliers"))
	if _, err := r.q.Exec(ctx, query, s.ID, s.Name, s.RNC, s.Email, s.Phone, s.Address, s.UpdatedAt); err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

var _ repository.PurchaseInvoiceRepository = (*PurchaseRepo)(nil)

// PurchaseRepo facturas de compra (cuentas por pagar).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, supplier_id, document_number, issue_date, due_date,
	total_amount, paid_amount, status, notes, created_at, updated_at`

// Create registra una factura de compra.
func (r *PurchaseRepo) Create(ctx context.Context, schema string, p *entity.PurchaseInvoice) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (`+purchaseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`, tbl(schema, "purchase_invoices"))
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SupplierID, p.DocumentNumber, p.IssueDate, p.DueDate,
		p.TotalAmount, p.PaidAmount, p.Status, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura de compra por ID.
func (r *PurchaseRepo) GetByID(ctx context.Context, schema, id string) (*entity.PurchaseInvoice, error) {
	query := fmt.Sprintf(`SELECT `+purchaseColumns+` FROM %s WHERE id = $1`, tbl(schema, "purchase_invoices"))
	var p entity.PurchaseInvoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.SupplierID, &p.DocumentNumber, &p.IssueDate, &p.DueDate,
		&p.TotalAmount, &p.PaidAmount, &p.Status, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase invoice: %w", err)
	}
	return &p, nil
}

// List lista facturas de compra, opcionalmente filtradas por estado.
func (r *PurchaseRepo) List(ctx context.Context, schema, status string, limit, offset int) ([]*entity.PurchaseInvoice, error) {
	var query string
	var args []any
	if status != "" {
		query = fmt.Sprintf(`
			SELECT `+purchaseColumns+` FROM %s WHERE status = $1
			ORDER BY due_date LIMIT $2 OFFSET $3`, tbl(schema, "purchase_invoices"))
		args = []any{status, limit, offset}
	} else {
		query = fmt.Sprintf(`
			SELECT `+purchaseColumns+` FROM %s
			ORDER BY due_date LIMIT $1 OFFSET $2`, tbl(schema, "purchase_invoices"))
		args = []any{limit, offset}
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseInvoice
	for rows.Next() {
		var p entity.PurchaseInvoice
		if err := rows.Scan(
			&p.ID, &p.SupplierID, &p.DocumentNumber, &p.IssueDate, &p.DueDate,
			&p.TotalAmount, &p.PaidAmount, &p.Status, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase invoice: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza una factura de compra (abonos y estado).
func (r *PurchaseRepo) Update(ctx context.Context, schema string, p *entity.PurchaseInvoice) error {
	query := fmt.Sprintf(`
		UPDATE %s SET document_number = $2, issue_date = $3, due_date = $4, total_amount = $5,
			paid_amount = $6, status = $7, notes = $8, updated_at = $9
		WHERE id = $1`, tbl(schema, "purchase_invoices"))
	_, err := r.q.Exec(ctx, query,
		p.ID, p.DocumentNumber, p.IssueDate, p.DueDate, p.TotalAmount,
		p.PaidAmount, p.Status, p.Notes, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase invoice: %w", err)
	}
	return nil
}

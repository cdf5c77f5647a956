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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, rnc, ncf_type, email, phone, address, created_at, updated_at`

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, schema string, c *entity.Customer) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, tbl(schema, "customers"))
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.RNC, c.NCFType, c.Email, c.Phone, c.Address, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, schema, id string) (*entity.Customer, error) {
	query := fmt.Sprintf(`SELECT `+customerColumns+` FROM %s WHERE id = $1`, tbl(schema, "customers"))
	return r.scanOne(ctx, query, id)
}

// GetByRNC obtiene un cliente por RNC o cédula.
func (r *CustomerRepo) GetByRNC(ctx context.Context, schema, rnc string) (*entity.Customer, error) {
	query := fmt.Sprintf(`SELECT `+customerColumns+` FROM %s WHERE rnc = $1`, tbl(schema, "customers"))
	return r.scanOne(ctx, query, rnc)
}

func (r *CustomerRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.RNC, &c.NCFType, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List lista clientes con paginación.
func (r *CustomerRepo) List(ctx context.Context, schema string, limit, offset int) ([]*entity.Customer, error) {
	query := fmt.Sprintf(`
		SELECT `+customerColumns+` FROM %s ORDER BY name LIMIT $1 OFFSET $2`, tbl(schema, "customers"))
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(
			&c.ID, &c.Name, &c.RNC, &c.NCFType, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente existente.
func (r *CustomerRepo) Update(ctx context.Context, schema string, c *entity.Customer) error {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $2, rnc = $3, ncf_type = $4, email = $5, phone = $6, address = $7, updated_at = $8
		WHERE id = $1`, tbl(schema, "customers"))
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.RNC, c.NCFType, c.Email, c.Phone, c.Address, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

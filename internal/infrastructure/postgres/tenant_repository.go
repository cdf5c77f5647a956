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

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo acceso a public.tenants. Es la única tabla fuera de los esquemas
// por tenant.
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

const tenantColumns = `id, name, slug, schema_name, hostname, rnc, is_active, created_at, updated_at`

// Create persiste un nuevo tenant.
func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	query := `
		INSERT INTO public.tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Name, t.Slug, t.SchemaName, t.Hostname, t.RNC, t.IsActive, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtiene un tenant por ID.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	return r.getBy(ctx, "id", id)
}

// GetByHostname obtiene un tenant por hostname (resolución por request).
func (r *TenantRepo) GetByHostname(ctx context.Context, hostname string) (*entity.Tenant, error) {
	return r.getBy(ctx, "hostname", hostname)
}

// GetBySlug obtiene un tenant por slug (cabecera X-Tenant).
func (r *TenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	return r.getBy(ctx, "slug", slug)
}

func (r *TenantRepo) getBy(ctx context.Context, column, value string) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM public.tenants WHERE ` + column + ` = $1`
	var t entity.Tenant
	err := r.q.QueryRow(ctx, query, value).Scan(
		&t.ID, &t.Name, &t.Slug, &t.SchemaName, &t.Hostname, &t.RNC, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant by %s: %w", column, err)
	}
	return &t, nil
}

// List lista todos los tenants.
func (r *TenantRepo) List(ctx context.Context) ([]*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM public.tenants ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tenant
	for rows.Next() {
		var t entity.Tenant
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Slug, &t.SchemaName, &t.Hostname, &t.RNC, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

package repository

import (
	"context"

	"github.com/quimidom/quimidom-api/internal/domain/entity"
)

// TenantRepository acceso a los tenants (esquema public).
// Los métodos devuelven nil, nil cuando no existe el registro.
type TenantRepository interface {
	Create(ctx context.Context, t *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	GetByHostname(ctx context.Context, hostname string) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	List(ctx context.Context) ([]*entity.Tenant, error)
}

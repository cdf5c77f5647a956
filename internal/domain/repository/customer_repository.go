package repository

import (
	"context"

	"github.com/quimidom/quimidom-api/internal/domain/entity"
)

// CustomerRepository clientes del tenant.
type CustomerRepository interface {
	Create(ctx context.Context, schema string, c *entity.Customer) error
	GetByID(ctx context.Context, schema, id string) (*entity.Customer, error)
	GetByRNC(ctx context.Context, schema, rnc string) (*entity.Customer, error)
	List(ctx context.Context, schema string, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, schema string, c *entity.Customer) error
}

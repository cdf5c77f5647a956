package repository

import (
	"context"

	"github.com/quimidom/quimidom-api/internal/domain/entity"
)

// UserRepository usuarios del tenant. schema es el esquema PostgreSQL del
// tenant y se pasa explícitamente en cada llamada (nunca estado global).
type UserRepository interface {
	Create(ctx context.Context, schema string, u *entity.User) error
	GetByID(ctx context.Context, schema, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, schema, email string) (*entity.User, error)
	List(ctx context.Context, schema string, limit, offset int) ([]*entity.User, error)
	Update(ctx context.Context, schema string, u *entity.User) error
	Delete(ctx context.Context, schema, id string) error
}

package repository

import (
	"context"

	"github.com/quimidom/quimidom-api/internal/domain/entity"
)

// QuoteRepository cotizaciones y sus líneas.
type QuoteRepository interface {
	Create(ctx context.Context, schema string, q *entity.Quote) error
	CreateItem(ctx context.Context, schema string, item *entity.QuoteItem) error
	GetByID(ctx context.Context, schema, id string) (*entity.Quote, error)
	GetByIDForUpdate(ctx context.Context, schema, id string) (*entity.Quote, error)
	GetItems(ctx context.Context, schema, quoteID string) ([]*entity.QuoteItem, error)
	List(ctx context.Context, schema, status string, limit, offset int) ([]*entity.Quote, error)
	Update(ctx context.Context, schema string, q *entity.Quote) error
}

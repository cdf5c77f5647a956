package repository

import (
	"context"

	"github.com/quimidom/quimidom-api/internal/domain/entity"
)

// FiscalSequenceRepository secuencias NCF del tenant.
//
// ListByTypeForUpdate debe ejecutarse dentro de una transacción: bloquea las
// filas del tipo (SELECT ... FOR UPDATE) para serializar asignaciones
// concurrentes. SetCurrentNumber persiste el incremento dentro de esa misma
// transacción; CurrentNumber nunca retrocede.
type FiscalSequenceRepository interface {
	Create(ctx context.Context, schema string, s *entity.FiscalSequence) error
	GetByID(ctx context.Context, schema, id string) (*entity.FiscalSequence, error)
	List(ctx context.Context, schema string) ([]*entity.FiscalSequence, error)
	ListByTypeForUpdate(ctx context.Context, schema, sequenceType string) ([]*entity.FiscalSequence, error)
	SetCurrentNumber(ctx context.Context, schema, id string, next int64) error
	Update(ctx context.Context, schema string, s *entity.FiscalSequence) error
}

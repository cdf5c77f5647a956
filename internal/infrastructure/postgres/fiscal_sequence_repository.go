package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

var _ repository.FiscalSequenceRepository = (*FiscalSequenceRepo)(nil)

// FiscalSequenceRepo secuencias NCF. ListByTypeForUpdate toma el lock de fila
// que serializa la numeración; debe usarse dentro de una transacción.
type FiscalSequenceRepo struct {
	q Querier
}

// NewFiscalSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFiscalSequenceRepository(q Querier) *FiscalSequenceRepo {
	return &FiscalSequenceRepo{q: q}
}

const sequenceColumns = `id, sequence_type, prefix, current_number, end_number, valid_until, is_active, created_at, updated_at`

// Create persiste una nueva secuencia.
func (r *FiscalSequenceRepo) Create(ctx context.Context, schema string, s *entity.FiscalSequence) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (`+sequenceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, tbl(schema, "fiscal_sequences"))
	_, err := r.q.Exec(ctx, query,
		s.ID, s.SequenceType, s.Prefix, s.CurrentNumber, s.EndNumber, s.ValidUntil, s.IsActive,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert fiscal sequence: %w", err)
	}
	return nil
}

// GetByID obtiene una secuencia por ID.
func (r *FiscalSequenceRepo) GetByID(ctx context.Context, schema, id string) (*entity.FiscalSequence, error) {
	query := fmt.Sprintf(`SELECT `+sequenceColumns+` FROM %s WHERE id = $1`, tbl(schema, "fiscal_sequences"))
	var s entity.FiscalSequence
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.SequenceType, &s.Prefix, &s.CurrentNumber, &s.EndNumber, &s.ValidUntil, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fiscal sequence: %w", err)
	}
	return &s, nil
}

// List todas las secuencias del tenant.
func (r *FiscalSequenceRepo) List(ctx context.Context, schema string) ([]*entity.FiscalSequence, error) {
	query := fmt.Sprintf(`
		SELECT `+sequenceColumns+` FROM %s ORDER BY sequence_type, created_at`, tbl(schema, "fiscal_sequences"))
	return r.scanMany(ctx, query)
}

// ListByTypeForUpdate bloquea las filas del tipo con SELECT ... FOR UPDATE.
// El lock se mantiene hasta el fin de la transacción y serializa las
// emisiones concurrentes del mismo tipo de NCF.
func (r *FiscalSequenceRepo) ListByTypeForUpdate(ctx context.Context, schema, sequenceType string) ([]*entity.FiscalSequence, error) {
	query := fmt.Sprintf(`
		SELECT `+sequenceColumns+` FROM %s
		WHERE sequence_type = $1 ORDER BY created_at FOR UPDATE`, tbl(schema, "fiscal_sequences"))
	return r.scanMany(ctx, query, sequenceType)
}

func (r *FiscalSequenceRepo) scanMany(ctx context.Context, query string, args ...any) ([]*entity.FiscalSequence, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query fiscal sequences: %w", err)
	}
	defer rows.Close()
	var list []*entity.FiscalSequence
	for rows.Next() {
		var s entity.FiscalSequence
		if err := rows.Scan(
			&s.ID, &s.SequenceType, &s.Prefix, &s.CurrentNumber, &s.EndNumber, &s.ValidUntil, &s.IsActive,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan fiscal sequence: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SetCurrentNumber persiste el incremento del contador dentro de la misma
// transacción que tomó el lock. El GREATEST evita cualquier retroceso.
func (r *FiscalSequenceRepo) SetCurrentNumber(ctx context.Context, schema, id string, next int64) error {
	query := fmt.Sprintf(`
		UPDATE %s SET current_number = GREATEST(current_number, $2), updated_at = now()
		WHERE id = $1`, tbl(schema, "fiscal_sequences"))
	if _, err := r.q.Exec(ctx, query, id, next); err != nil {
		return fmt.Errorf("set current number: %w", err)
	}
	return nil
}

// Update actualiza prefijo, vigencia y estado activo de una secuencia.
func (r *FiscalSequenceRepo) Update(ctx context.Context, schema string, s *entity.FiscalSequence) error {
	query := fmt.Sprintf(`
		UPDATE %s SET prefix = $2, end_number = $3, valid_until = $4, is_active = $5, updated_at = $6
		WHERE id = $1`, tbl(schema, "fiscal_sequences"))
	if _, err := r.q.Exec(ctx, query, s.ID, s.Prefix, s.EndNumber, s.ValidUntil, s.IsActive, s.UpdatedAt); err != nil {
		return fmt.Errorf("update fiscal sequence: %w", err)
	}
	return nil
}

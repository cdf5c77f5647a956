package fiscal_test

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quimidom/quimidom-api/internal/application/fiscal"
	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
)

const testSchema = "tenant_test"

// seqStore simula el backing store serializado: el mutex cumple el papel del
// SELECT ... FOR UPDATE de PostgreSQL, de modo que las asignaciones
// concurrentes quedan serializadas igual que en producción.
type seqStore struct {
	mu   sync.Mutex
	rows map[string]*entity.FiscalSequence
}

func newSeqStore(rows ...*entity.FiscalSequence) *seqStore {
	s := &seqStore{rows: make(map[string]*entity.FiscalSequence)}
	for _, r := range rows {
		s.rows[r.ID] = r
	}
	return s
}

func (s *seqStore) Create(ctx context.Context, schema string, seq *entity.FiscalSequence) error {
	s.rows[seq.ID] = seq
	return nil
}

func (s *seqStore) GetByID(ctx context.Context, schema, id string) (*entity.FiscalSequence, error) {
	return s.rows[id], nil
}

func (s *seqStore) List(ctx context.Context, schema string) ([]*entity.FiscalSequence, error) {
	var out []*entity.FiscalSequence
	for _, r := range s.rows {
		out = append(out, r)
	}
	return out, nil
}

// ListByTypeForUpdate toma el lock y NO lo suelta: lo libera SetCurrentNumber,
// emulando que las filas quedan bloqueadas hasta el fin de la transacción.
func (s *seqStore) ListByTypeForUpdate(ctx context.Context, schema, sequenceType string) ([]*entity.FiscalSequence, error) {
	s.mu.Lock()
	var out []*entity.FiscalSequence
	for _, r := range s.rows {
		if r.SequenceType == sequenceType {
			cp := *r
			out = append(out, &cp)
		}
	}
	if len(out) == 0 {
		s.mu.Unlock() // sin filas no hay nada bloqueado
		return nil, nil
	}
	return out, nil
}

func (s *seqStore) SetCurrentNumber(ctx context.Context, schema, id string, next int64) error {
	defer s.mu.Unlock()
	s.rows[id].CurrentNumber = next
	return nil
}

// unlock libera el lock cuando Allocate retornó sin llegar a SetCurrentNumber
// (caminos de error: agotada, vencida, inactiva, ambigua).
func (s *seqStore) unlock() { s.mu.Unlock() }

func (s *seqStore) Update(ctx context.Context, schema string, seq *entity.FiscalSequence) error {
	s.rows[seq.ID] = seq
	return nil
}

func activeB02(current, end int64) *entity.FiscalSequence {
	return &entity.FiscalSequence{
		ID:            "seq-b02",
		SequenceType:  "B02",
		Prefix:        "B02",
		CurrentNumber: current,
		EndNumber:     end,
		ValidUntil:    time.Now().AddDate(1, 0, 0),
		IsActive:      true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Monotonicidad: N asignaciones concurrentes producen números estrictamente
// crecientes, sin duplicados ni saltos más allá del incremento de 1.
// ──────────────────────────────────────────────────────────────────────────────

func TestAllocate_ConcurrenciaSinDuplicados(t *testing.T) {
	const n = 50
	store := newSeqStore(activeB02(1, 1000))

	results := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := fiscal.Allocate(context.Background(), store, testSchema, "B02", time.Now())
			if assert.NoError(t, err) {
				results <- got
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	var numbers []int64
	for ncfStr := range results {
		assert.False(t, seen[ncfStr], "NCF duplicado: %s", ncfStr)
		seen[ncfStr] = true
		suffix := strings.TrimPrefix(ncfStr, "B02")
		num, err := strconv.ParseInt(suffix, 10, 64)
		require.NoError(t, err)
		numbers = append(numbers, num)
	}
	assert.Len(t, seen, n)

	// El conjunto de sufijos debe ser exactamente 1..n (sin huecos).
	for want := int64(1); want <= n; want++ {
		found := false
		for _, got := range numbers {
			if got == want {
				found = true
				break
			}
		}
		assert.True(t, found, "falta el secuencial %d", want)
	}
	assert.Equal(t, int64(n+1), store.rows["seq-b02"].CurrentNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// Agotamiento: con current = end queda exactamente una asignación; la siguiente
// falla con ErrSequenceExhausted.
// ──────────────────────────────────────────────────────────────────────────────

func TestAllocate_Agotamiento(t *testing.T) {
	store := newSeqStore(activeB02(100, 100))

	got, err := fiscal.Allocate(context.Background(), store, testSchema, "B02", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "B0200000100", got)
	assert.Equal(t, int64(101), store.rows["seq-b02"].CurrentNumber)

	_, err = fiscal.Allocate(context.Background(), store, testSchema, "B02", time.Now())
	assert.ErrorIs(t, err, domain.ErrSequenceExhausted)
	store.unlock()

	// El número no avanza tras un fallo por agotamiento.
	assert.Equal(t, int64(101), store.rows["seq-b02"].CurrentNumber)
}

func TestAllocate_Vencida(t *testing.T) {
	seq := activeB02(1, 1000)
	seq.ValidUntil = time.Now().AddDate(0, 0, -1)
	store := newSeqStore(seq)

	_, err := fiscal.Allocate(context.Background(), store, testSchema, "B02", time.Now())
	assert.ErrorIs(t, err, domain.ErrSequenceExpired)
	store.unlock()
}

// TestAllocate_VigenteHastaHoy: valid_until = hoy todavía permite asignar
// (la secuencia vence al terminar el día, no al empezar).
func TestAllocate_VigenteHastaHoy(t *testing.T) {
	seq := activeB02(1, 1000)
	seq.ValidUntil = time.Now()
	store := newSeqStore(seq)

	got, err := fiscal.Allocate(context.Background(), store, testSchema, "B02", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "B0200000001", got)
}

func TestAllocate_Inactiva(t *testing.T) {
	seq := activeB02(1, 1000)
	seq.IsActive = false
	store := newSeqStore(seq)

	_, err := fiscal.Allocate(context.Background(), store, testSchema, "B02", time.Now())
	assert.ErrorIs(t, err, domain.ErrSequenceInactive)
	store.unlock()
}

func TestAllocate_SinSecuencia(t *testing.T) {
	store := newSeqStore()

	_, err := fiscal.Allocate(context.Background(), store, testSchema, "B02", time.Now())
	assert.ErrorIs(t, err, domain.ErrSequenceMissing)
}

func TestAllocate_Ambigua(t *testing.T) {
	a := activeB02(1, 1000)
	b := activeB02(500, 2000)
	b.ID = "seq-b02-bis"
	store := newSeqStore(a, b)

	_, err := fiscal.Allocate(context.Background(), store, testSchema, "B02", time.Now())
	assert.ErrorIs(t, err, domain.ErrSequenceAmbiguous)
	store.unlock()
}

func TestAllocate_TipoInvalido(t *testing.T) {
	store := newSeqStore(activeB02(1, 1000))

	for _, tipo := range []string{"", "B99", "b02"} {
		_, err := fiscal.Allocate(context.Background(), store, testSchema, tipo, time.Now())
		assert.ErrorIs(t, err, domain.ErrInvalidInput, fmt.Sprintf("tipo %q", tipo))
	}
}

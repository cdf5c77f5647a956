// Package fiscal implementa la asignación de NCF sobre las secuencias
// autorizadas por la DGII. La asignación es la sección crítica del sistema:
// debe ejecutarse dentro de la transacción del caller, con las filas de la
// secuencia bloqueadas (SELECT ... FOR UPDATE), para que asignaciones
// concurrentes del mismo tipo serialicen y nunca dupliquen números.
package fiscal

import (
	"context"
	"time"

	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/ncf"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

// Allocate asigna el próximo NCF del tipo indicado.
//
// Reglas, en orden:
//   - el tipo debe ser válido (B01/B02/B14/B15)
//   - sin filas del tipo → ErrSequenceMissing; sin filas activas → ErrSequenceInactive
//   - más de una activa → ErrSequenceAmbiguous (configuración inconsistente)
//   - today posterior a valid_until → ErrSequenceExpired
//   - current_number > end_number → ErrSequenceExhausted
//
// En éxito compone prefix + secuencial(8) e incrementa current_number en 1.
// El incremento se persiste en la misma transacción del caller: si la emisión
// falla después, el rollback deshace también el incremento, así que un número
// asignado y confirmado nunca se reutiliza.
func Allocate(ctx context.Context, seqRepo repository.FiscalSequenceRepository, schema, sequenceType string, today time.Time) (string, error) {
	if !ncf.IsValidType(sequenceType) {
		return "", domain.ErrInvalidInput
	}

	rows, err := seqRepo.ListByTypeForUpdate(ctx, schema, sequenceType)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", domain.ErrSequenceMissing
	}

	var active []*entityRef
	for _, s := range rows {
		if s.IsActive {
			active = append(active, &entityRef{s.ID, s.Prefix, s.CurrentNumber, s.EndNumber, s.ValidUntil})
		}
	}
	if len(active) == 0 {
		return "", domain.ErrSequenceInactive
	}
	if len(active) > 1 {
		return "", domain.ErrSequenceAmbiguous
	}

	seq := active[0]
	if dateOnly(today).After(dateOnly(seq.validUntil)) {
		return "", domain.ErrSequenceExpired
	}
	if seq.currentNumber > seq.endNumber {
		return "", domain.ErrSequenceExhausted
	}

	number := ncf.Compose(seq.prefix, seq.currentNumber)
	if err := seqRepo.SetCurrentNumber(ctx, schema, seq.id, seq.currentNumber+1); err != nil {
		return "", err
	}
	return number, nil
}

// entityRef evita arrastrar la entidad completa por el resto del algoritmo.
type entityRef struct {
	id            string
	prefix        string
	currentNumber int64
	endNumber     int64
	validUntil    time.Time
}

// dateOnly normaliza a medianoche: la vigencia de una secuencia es por fecha,
// no por hora.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

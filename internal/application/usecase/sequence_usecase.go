package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/ncf"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

const sequenceDateLayout = "2006-01-02"

// SequenceUseCase administración de secuencias NCF (solo admin). Crear una
// secuencia activa desactiva cualquier otra activa del mismo tipo: nunca debe
// haber dos activas a la vez.
type SequenceUseCase struct {
	repo repository.FiscalSequenceRepository
}

// NewSequenceUseCase construye el caso de uso.
func NewSequenceUseCase(repo repository.FiscalSequenceRepository) *SequenceUseCase {
	return &SequenceUseCase{repo: repo}
}

// Create registra un rango NCF autorizado por la DGII y lo deja activo.
func (uc *SequenceUseCase) Create(ctx context.Context, tenant *entity.Tenant, in dto.CreateSequenceRequest) (*dto.SequenceResponse, error) {
	if !ncf.IsValidType(in.SequenceType) {
		return nil, domain.ErrInvalidInput
	}
	if in.StartNumber < 1 || in.EndNumber < in.StartNumber {
		return nil, domain.ErrInvalidInput
	}
	validUntil, err := time.Parse(sequenceDateLayout, in.ValidUntil)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	prefix := in.Prefix
	if prefix == "" {
		prefix = in.SequenceType
	}
	// desactivar la secuencia activa anterior del mismo tipo
	existing, err := uc.repo.List(ctx, tenant.SchemaName)
	if err != nil {
		return nil, err
	}
	for _, s := range existing {
		if s.SequenceType == in.SequenceType && s.IsActive {
			s.IsActive = false
			s.UpdatedAt = time.Now()
			if err := uc.repo.Update(ctx, tenant.SchemaName, s); err != nil {
				return nil, err
			}
		}
	}
	now := time.Now()
	seq := &entity.FiscalSequence{
		ID:            uuid.New().String(),
		SequenceType:  in.SequenceType,
		Prefix:        prefix,
		CurrentNumber: in.StartNumber,
		EndNumber:     in.EndNumber,
		ValidUntil:    validUntil,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, tenant.SchemaName, seq); err != nil {
		return nil, err
	}
	return toSequenceResponse(seq), nil
}

// Deactivate apaga una secuencia sin borrarla; su historial de numeración queda.
func (uc *SequenceUseCase) Deactivate(ctx context.Context, tenant *entity.Tenant, id string) (*dto.SequenceResponse, error) {
	seq, err := uc.repo.GetByID(ctx, tenant.SchemaName, id)
	if err != nil {
		return nil, err
	}
	if seq == nil {
		return nil, domain.ErrNotFound
	}
	seq.IsActive = false
	seq.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, tenant.SchemaName, seq); err != nil {
		return nil, err
	}
	return toSequenceResponse(seq), nil
}

// List estado de todas las secuencias del tenant, incluido cuántos números quedan.
func (uc *SequenceUseCase) List(ctx context.Context, tenant *entity.Tenant) ([]*dto.SequenceResponse, error) {
	list, err := uc.repo.List(ctx, tenant.SchemaName)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SequenceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSequenceResponse(s))
	}
	return out, nil
}

func toSequenceResponse(s *entity.FiscalSequence) *dto.SequenceResponse {
	if s == nil {
		return nil
	}
	remaining := s.EndNumber - s.CurrentNumber + 1
	if remaining < 0 {
		remaining = 0
	}
	return &dto.SequenceResponse{
		ID:            s.ID,
		SequenceType:  s.SequenceType,
		Prefix:        s.Prefix,
		CurrentNumber: s.CurrentNumber,
		EndNumber:     s.EndNumber,
		Remaining:     remaining,
		ValidUntil:    s.ValidUntil.Format(sequenceDateLayout),
		IsActive:      s.IsActive,
	}
}

package usecase

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

// SchemaProvisioner crea el esquema de un tenant y ejecuta sus migraciones.
type SchemaProvisioner interface {
	ProvisionTenant(ctx context.Context, schema string) error
}

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,48}$`)

// TenantUseCase administración de tenants de la plataforma. Crear un tenant
// registra la fila en public.tenants y aprovisiona su esquema en la misma
// llamada; si la migración falla, Provision permite reintentarla sobre el
// tenant ya registrado.
type TenantUseCase struct {
	repo        repository.TenantRepository
	provisioner SchemaProvisioner
}

// NewTenantUseCase construye el caso de uso.
func NewTenantUseCase(repo repository.TenantRepository, provisioner SchemaProvisioner) *TenantUseCase {
	return &TenantUseCase{repo: repo, provisioner: provisioner}
}

// Create registra y aprovisiona un tenant nuevo. El esquema se deriva del
// slug: "tenant_" + slug con guiones convertidos a guion bajo.
func (uc *TenantUseCase) Create(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	if in.Name == "" || in.Slug == "" || in.Hostname == "" {
		return nil, domain.ErrInvalidInput
	}
	if !slugPattern.MatchString(in.Slug) {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.repo.GetBySlug(ctx, in.Slug); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now().UTC()
	t := &entity.Tenant{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Slug:       in.Slug,
		SchemaName: schemaForSlug(in.Slug),
		Hostname:   in.Hostname,
		RNC:        in.RNC,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	if err := uc.provisioner.ProvisionTenant(ctx, t.SchemaName); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

// Provision reejecuta las migraciones del esquema de un tenant existente.
// Es idempotente: las migraciones ya aplicadas no se repiten.
func (uc *TenantUseCase) Provision(ctx context.Context, id string) (*dto.TenantResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.provisioner.ProvisionTenant(ctx, t.SchemaName); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

// GetByID devuelve un tenant por su ID.
func (uc *TenantUseCase) GetByID(ctx context.Context, id string) (*dto.TenantResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTenantResponse(t), nil
}

// List devuelve todos los tenants registrados.
func (uc *TenantUseCase) List(ctx context.Context) ([]*dto.TenantResponse, error) {
	tenants, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, toTenantResponse(t))
	}
	return out, nil
}

func schemaForSlug(slug string) string {
	out := make([]byte, 0, len(slug)+7)
	out = append(out, "tenant_"...)
	for i := 0; i < len(slug); i++ {
		if slug[i] == '-' {
			out = append(out, '_')
			continue
		}
		out = append(out, slug[i])
	}
	return string(out)
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		Hostname:  t.Hostname,
		RNC:       t.RNC,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
	}
}

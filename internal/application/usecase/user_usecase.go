package usecase

import (
	"context"
	"time"

	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/domain"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

// UserUseCase administración de usuarios del tenant. El alta vive en auth
// (requiere hashear password); aquí va el resto del CRUD.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, tenant *entity.Tenant, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, tenant.SchemaName, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(ctx context.Context, tenant *entity.Tenant, limit, offset int) ([]*dto.UserResponse, error) {
	list, err := uc.repo.List(ctx, tenant.SchemaName, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// SetRole cambia el rol de un usuario.
func (uc *UserUseCase) SetRole(ctx context.Context, tenant *entity.Tenant, id, role string) (*dto.UserResponse, error) {
	if role != entity.RoleAdmin && role != entity.RoleManager && role != entity.RoleUser {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(ctx, tenant.SchemaName, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, tenant.SchemaName, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Deactivate suspende el acceso de un usuario sin borrarlo.
func (uc *UserUseCase) Deactivate(ctx context.Context, tenant *entity.Tenant, id string) error {
	user, err := uc.repo.GetByID(ctx, tenant.SchemaName, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	user.Status = "inactive"
	user.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, tenant.SchemaName, user)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/warehouse-rental/internal/domain"
	"github.com/spec-kit/warehouse-rental/internal/repository"
	apperrors "github.com/spec-kit/warehouse-rental/pkg/util"
)

// RoleService exposes CRUD over roles. Name uniqueness is left to the store
// constraint; a duplicate surfaces as a Conflict from the error mapping, not
// as a service-level check.
type RoleService struct {
	roles repository.RoleRepository
}

// NewRoleService constructs the service.
func NewRoleService(roles repository.RoleRepository) *RoleService {
	return &RoleService{roles: roles}
}

// Create persists a new role.
func (s *RoleService) Create(ctx context.Context, name string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("role name required", nil)
	}
	role := &domain.Role{Name: name}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// GetByID fetches a role.
func (s *RoleService) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("role", map[string]any{"id": id})
		}
		return nil, err
	}
	return role, nil
}

// List returns all roles.
func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}

// Update renames a role.
func (s *RoleService) Update(ctx context.Context, id int64, name string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("role name required", nil)
	}
	role := &domain.Role{ID: id, Name: name}
	if err := s.roles.Update(ctx, role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("role", map[string]any{"id": id})
		}
		return nil, err
	}
	return role, nil
}

// Delete removes a role. Deleting a role still referenced by users fails with
// the referential-constraint Conflict from the store.
func (s *RoleService) Delete(ctx context.Context, id int64) error {
	if err := s.roles.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("role", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

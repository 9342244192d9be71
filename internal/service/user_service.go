package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/warehouse-rental/internal/auth"
	"github.com/spec-kit/warehouse-rental/internal/domain"
	"github.com/spec-kit/warehouse-rental/internal/events"
	"github.com/spec-kit/warehouse-rental/internal/repository"
	apperrors "github.com/spec-kit/warehouse-rental/pkg/util"
)

// UserService owns user records, credential storage and authentication.
type UserService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	verifier   auth.CredentialVerifier
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	RoleRepo   repository.RoleRepository
	Verifier   auth.CredentialVerifier
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
}

// UserCreateInput describes a signup payload.
type UserCreateInput struct {
	FullName       string
	Mobile         string
	Email          string
	RoleID         int64
	Credential     string
	EmailConfirmed bool
	GoogleAccount  bool
	Photo          []byte
}

// UserUpdateInput describes an update payload. Credential and Photo are patch
// fields: a blank credential or nil photo leaves the stored value untouched.
type UserUpdateInput struct {
	FullName      string
	Mobile        string
	Email         string
	RoleID        int64
	Credential    string
	GoogleAccount bool
	Photo         []byte
}

// NewUserService builds the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		roles:      deps.RoleRepo,
		verifier:   deps.Verifier,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
	}
}

// Create registers a new user. The email must be free and the role must exist.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if _, err := s.roles.GetByID(ctx, input.RoleID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("role does not exist", map[string]any{"role_id": input.RoleID})
		}
		return nil, err
	}

	stored, err := s.verifier.Store(input.Credential)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FullName:       input.FullName,
		Mobile:         input.Mobile,
		Email:          input.Email,
		RoleID:         input.RoleID,
		Credential:     stored,
		EmailConfirmed: input.EmailConfirmed,
		GoogleAccount:  input.GoogleAccount,
		Photo:          input.Photo,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, events.UserRegisteredPayload{
		UserID: user.ID,
		Email:  user.Email,
	})
	return user, nil
}

// GetByID fetches a user.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail fetches a user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return nil, err
	}
	return user, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Update mutates a user. Updating the email to one held by a different user
// fails with Conflict; keeping the current email succeeds. The role is
// re-resolved and must exist. Credential and photo follow patch semantics.
func (s *UserService) Update(ctx context.Context, id int64, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}

	if input.Email != user.Email {
		if other, err := s.users.GetByEmail(ctx, input.Email); err == nil && other.ID != id {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	if input.RoleID != 0 {
		if _, err := s.roles.GetByID(ctx, input.RoleID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("role does not exist", map[string]any{"role_id": input.RoleID})
			}
			return nil, err
		}
		user.RoleID = input.RoleID
	}

	user.FullName = input.FullName
	user.Mobile = input.Mobile
	user.Email = input.Email
	user.GoogleAccount = input.GoogleAccount

	if strings.TrimSpace(input.Credential) != "" {
		stored, err := s.verifier.Store(input.Credential)
		if err != nil {
			return nil, err
		}
		user.Credential = stored
	}
	if input.Photo != nil {
		user.Photo = input.Photo
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user by id.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// Authenticate verifies email and credential. It fails Unauthorized for an
// unknown email, an unconfirmed email, or a credential mismatch. On success a
// signed token is issued alongside the user.
func (s *UserService) Authenticate(ctx context.Context, email, credential string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if !user.EmailConfirmed {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("email not confirmed")
	}
	if !s.verifier.Verify(user.Credential, credential) {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	if s.tokens == nil {
		return user, "", time.Time{}, nil
	}
	token, exp, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// ConfirmEmail marks the user's email confirmed. Confirming twice is a no-op.
func (s *UserService) ConfirmEmail(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return err
	}
	user.EmailConfirmed = true
	return s.users.Update(ctx, user)
}

// UpdateCredential replaces the stored credential for the given email.
func (s *UserService) UpdateCredential(ctx context.Context, email, newCredential string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return err
	}
	stored, err := s.verifier.Store(newCredential)
	if err != nil {
		return err
	}
	user.Credential = stored
	return s.users.Update(ctx, user)
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

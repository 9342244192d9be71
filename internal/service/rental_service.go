package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/warehouse-rental/internal/config"
	"github.com/spec-kit/warehouse-rental/internal/domain"
	"github.com/spec-kit/warehouse-rental/internal/events"
	"github.com/spec-kit/warehouse-rental/internal/repository"
	apperrors "github.com/spec-kit/warehouse-rental/pkg/util"
)

// RentalService orchestrates the rental lifecycle and the sector occupancy
// transition it drives. Creation and finalization each run inside a single
// store transaction.
type RentalService struct {
	rentals    repository.RentalRepository
	sectors    repository.SectorRepository
	cache      AvailableSectorCache
	dispatcher events.Dispatcher
	locking    config.SectorLockingMode
}

// RentalDependencies bundles collaborators for the rental service.
type RentalDependencies struct {
	RentalRepo repository.RentalRepository
	SectorRepo repository.SectorRepository
	Cache      AvailableSectorCache
	Dispatcher events.Dispatcher
	Locking    config.SectorLockingMode
}

// RentalCreateInput describes a rental creation payload. The user id is not
// validated against the user store.
type RentalCreateInput struct {
	SectorID        int64
	UserID          int64
	OrderID         string
	AmountPaidCents int64
	StartTime       time.Time
	EndTime         time.Time
}

// NewRentalService builds the service.
func NewRentalService(deps RentalDependencies) *RentalService {
	locking := deps.Locking
	if locking == "" {
		locking = config.LockingCAS
	}
	return &RentalService{
		rentals:    deps.RentalRepo,
		sectors:    deps.SectorRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		locking:    locking,
	}
}

// Create reserves the sector and records the rental. The sector must exist
// and be DISPONIBLE; on success the sector is OCUPADO and the rental ACTIVO.
// In "cas" mode the occupancy flip is guarded inside the transaction, closing
// the read-check/write race of the original system; "check" mode reproduces
// the original two-step behavior.
func (s *RentalService) Create(ctx context.Context, input RentalCreateInput) (*domain.Rental, error) {
	sector, err := s.sectors.GetByID(ctx, input.SectorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("sector", map[string]any{"id": input.SectorID})
		}
		return nil, err
	}
	if sector.State != domain.SectorStateAvailable {
		return nil, apperrors.NewConflict("sector not available", map[string]any{
			"sector_id": sector.ID,
			"state":     sector.State,
		})
	}

	rental := &domain.Rental{
		SectorID:        sector.ID,
		SectorName:      sector.Name,
		UserID:          input.UserID,
		OrderID:         input.OrderID,
		AmountPaidCents: input.AmountPaidCents,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		State:           domain.RentalStateActive,
	}

	if err := s.rentals.CreateActive(ctx, rental, s.locking == config.LockingCAS); err != nil {
		if errors.Is(err, repository.ErrSectorNotAvailable) {
			return nil, apperrors.NewConflict("sector not available", map[string]any{"sector_id": sector.ID})
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("sector", map[string]any{"id": input.SectorID})
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	s.publish(ctx, events.EventRentalCreated, events.RentalCreatedPayload{
		RentalID: rental.ID,
		SectorID: rental.SectorID,
		UserID:   rental.UserID,
		OrderID:  rental.OrderID,
		EndTime:  rental.EndTime,
	})
	return rental, nil
}

// ListByUser returns all rentals held by a user.
func (s *RentalService) ListByUser(ctx context.Context, userID int64) ([]domain.Rental, error) {
	return s.rentals.ListByUser(ctx, userID)
}

// Finalize marks the rental FINALIZADO and releases its sector. The prior
// rental state is not checked: finalizing twice re-runs the same effect.
func (s *RentalService) Finalize(ctx context.Context, rentalID int64) error {
	rental, err := s.rentals.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("rental", map[string]any{"id": rentalID})
		}
		return err
	}

	if err := s.rentals.Finish(ctx, rental.ID, rental.SectorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("rental", map[string]any{"id": rentalID})
		}
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	s.publish(ctx, events.EventRentalFinished, events.RentalFinishedPayload{
		RentalID: rental.ID,
		SectorID: rental.SectorID,
	})
	return nil
}

func (s *RentalService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
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

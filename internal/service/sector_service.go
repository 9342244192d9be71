package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/warehouse-rental/internal/domain"
	"github.com/spec-kit/warehouse-rental/internal/events"
	"github.com/spec-kit/warehouse-rental/internal/repository"
	apperrors "github.com/spec-kit/warehouse-rental/pkg/util"
)

// AvailableSectorCache caches the available-sector listing.
type AvailableSectorCache interface {
	GetAvailable(ctx context.Context) ([]domain.Sector, bool)
	SetAvailable(ctx context.Context, sectors []domain.Sector)
	Invalidate(ctx context.Context)
}

// SectorService exposes sector queries and the administrative state update.
// Any state may move to any other state, including a self-loop; there is no
// transition table.
type SectorService struct {
	sectors    repository.SectorRepository
	cache      AvailableSectorCache
	dispatcher events.Dispatcher
}

// NewSectorService constructs the service. Cache and dispatcher may be nil.
func NewSectorService(sectors repository.SectorRepository, cache AvailableSectorCache, dispatcher events.Dispatcher) *SectorService {
	return &SectorService{sectors: sectors, cache: cache, dispatcher: dispatcher}
}

// ListAll returns every sector.
func (s *SectorService) ListAll(ctx context.Context) ([]domain.Sector, error) {
	return s.sectors.List(ctx)
}

// ListAvailable returns sectors in DISPONIBLE state, served from cache when warm.
func (s *SectorService) ListAvailable(ctx context.Context) ([]domain.Sector, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetAvailable(ctx); ok {
			return cached, nil
		}
	}
	sectors, err := s.sectors.ListByState(ctx, domain.SectorStateAvailable)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetAvailable(ctx, sectors)
	}
	return sectors, nil
}

// GetByID fetches a sector.
func (s *SectorService) GetByID(ctx context.Context, id int64) (*domain.Sector, error) {
	sector, err := s.sectors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("sector", map[string]any{"id": id})
		}
		return nil, err
	}
	return sector, nil
}

// GetByName fetches a sector by exact name, no normalization.
func (s *SectorService) GetByName(ctx context.Context, name string) (*domain.Sector, error) {
	sector, err := s.sectors.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("sector", map[string]any{"name": name})
		}
		return nil, err
	}
	return sector, nil
}

// UpdateState overwrites the sector state unconditionally.
func (s *SectorService) UpdateState(ctx context.Context, id int64, state domain.SectorState) (*domain.Sector, error) {
	if !domain.ValidSectorState(state) {
		return nil, apperrors.NewValidationError("unknown sector state", map[string]any{"state": state})
	}

	sector, err := s.sectors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("sector", map[string]any{"id": id})
		}
		return nil, err
	}

	oldState := sector.State
	if err := s.sectors.UpdateState(ctx, id, state); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("sector", map[string]any{"id": id})
		}
		return nil, err
	}
	sector.State = state

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	s.publishStateChanged(ctx, id, oldState, state)
	return sector, nil
}

func (s *SectorService) publishStateChanged(ctx context.Context, id int64, oldState, newState domain.SectorState) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSectorStateChanged,
		Timestamp: time.Now(),
		Payload: events.SectorStateChangedPayload{
			SectorID: id,
			OldState: oldState,
			NewState: newState,
		},
	})
}

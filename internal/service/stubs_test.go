package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/warehouse-rental/internal/domain"
	"github.com/spec-kit/warehouse-rental/internal/repository"
)

// In-memory repository stubs shared by the service tests.

type memRoleRepo struct {
	roles  map[int64]*domain.Role
	nextID int64
}

func newMemRoleRepo() *memRoleRepo {
	return &memRoleRepo{roles: make(map[int64]*domain.Role)}
}

func (r *memRoleRepo) Create(_ context.Context, role *domain.Role) error {
	r.nextID++
	role.ID = r.nextID
	cp := *role
	r.roles[role.ID] = &cp
	return nil
}

func (r *memRoleRepo) Update(_ context.Context, role *domain.Role) error {
	if _, ok := r.roles[role.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *role
	r.roles[role.ID] = &cp
	return nil
}

func (r *memRoleRepo) GetByID(_ context.Context, id int64) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *role
	return &cp, nil
}

func (r *memRoleRepo) List(_ context.Context) ([]domain.Role, error) {
	out := make([]domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r *memRoleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.roles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.roles, id)
	return nil
}

type memUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *user
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

type memSectorRepo struct {
	sectors map[int64]*domain.Sector
	// staleState, when set, is reported by GetByID instead of the stored
	// state. It simulates a concurrent writer landing between the service's
	// read and the repository write.
	staleState domain.SectorState
}

func newMemSectorRepo(sectors ...domain.Sector) *memSectorRepo {
	repo := &memSectorRepo{sectors: make(map[int64]*domain.Sector)}
	for i := range sectors {
		cp := sectors[i]
		repo.sectors[cp.ID] = &cp
	}
	return repo
}

func (r *memSectorRepo) List(_ context.Context) ([]domain.Sector, error) {
	out := make([]domain.Sector, 0, len(r.sectors))
	for _, sector := range r.sectors {
		out = append(out, *sector)
	}
	return out, nil
}

func (r *memSectorRepo) ListByState(_ context.Context, state domain.SectorState) ([]domain.Sector, error) {
	var out []domain.Sector
	for _, sector := range r.sectors {
		if sector.State == state {
			out = append(out, *sector)
		}
	}
	return out, nil
}

func (r *memSectorRepo) GetByID(_ context.Context, id int64) (*domain.Sector, error) {
	sector, ok := r.sectors[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *sector
	if r.staleState != "" {
		cp.State = r.staleState
	}
	return &cp, nil
}

func (r *memSectorRepo) GetByName(_ context.Context, name string) (*domain.Sector, error) {
	for _, sector := range r.sectors {
		if sector.Name == name {
			cp := *sector
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memSectorRepo) UpdateState(_ context.Context, id int64, state domain.SectorState) error {
	sector, ok := r.sectors[id]
	if !ok {
		return pgx.ErrNoRows
	}
	sector.State = state
	return nil
}

// memRentalRepo mimics the transactional rental repository against the same
// sector map, including the conditional occupancy guard.
type memRentalRepo struct {
	sectors *memSectorRepo
	rentals map[int64]*domain.Rental
	nextID  int64
}

func newMemRentalRepo(sectors *memSectorRepo) *memRentalRepo {
	return &memRentalRepo{sectors: sectors, rentals: make(map[int64]*domain.Rental)}
}

func (r *memRentalRepo) CreateActive(_ context.Context, rental *domain.Rental, casGuard bool) error {
	sector, ok := r.sectors.sectors[rental.SectorID]
	if !ok {
		return pgx.ErrNoRows
	}
	if casGuard && sector.State != domain.SectorStateAvailable {
		return repository.ErrSectorNotAvailable
	}
	sector.State = domain.SectorStateOccupied

	r.nextID++
	rental.ID = r.nextID
	rental.CreatedAt = time.Now()
	cp := *rental
	r.rentals[rental.ID] = &cp
	return nil
}

func (r *memRentalRepo) GetByID(_ context.Context, id int64) (*domain.Rental, error) {
	rental, ok := r.rentals[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *rental
	return &cp, nil
}

func (r *memRentalRepo) ListByUser(_ context.Context, userID int64) ([]domain.Rental, error) {
	var out []domain.Rental
	for _, rental := range r.rentals {
		if rental.UserID == userID {
			out = append(out, *rental)
		}
	}
	return out, nil
}

func (r *memRentalRepo) Finish(_ context.Context, rentalID, sectorID int64) error {
	rental, ok := r.rentals[rentalID]
	if !ok {
		return pgx.ErrNoRows
	}
	rental.State = domain.RentalStateFinished
	if sector, ok := r.sectors.sectors[sectorID]; ok {
		sector.State = domain.SectorStateAvailable
	}
	return nil
}

// recordingCache tracks cache interactions for the sector service tests.
type recordingCache struct {
	available   []domain.Sector
	warm        bool
	sets        int
	invalidated int
}

func (c *recordingCache) GetAvailable(_ context.Context) ([]domain.Sector, bool) {
	if !c.warm {
		return nil, false
	}
	return c.available, true
}

func (c *recordingCache) SetAvailable(_ context.Context, sectors []domain.Sector) {
	c.available = sectors
	c.warm = true
	c.sets++
}

func (c *recordingCache) Invalidate(_ context.Context) {
	c.warm = false
	c.invalidated++
}

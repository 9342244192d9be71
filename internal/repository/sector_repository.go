package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/warehouse-rental/internal/domain"
)

// SectorRepository defines persistence access for storage sectors.
type SectorRepository interface {
	List(ctx context.Context) ([]domain.Sector, error)
	ListByState(ctx context.Context, state domain.SectorState) ([]domain.Sector, error)
	GetByID(ctx context.Context, id int64) (*domain.Sector, error)
	GetByName(ctx context.Context, name string) (*domain.Sector, error)
	// UpdateState overwrites the state unconditionally. Returns pgx.ErrNoRows
	// when the sector does not exist.
	UpdateState(ctx context.Context, id int64, state domain.SectorState) error
}

type sectorRepository struct {
	pool *pgxpool.Pool
}

// NewSectorRepository returns a Postgres-backed implementation.
func NewSectorRepository(pool *pgxpool.Pool) SectorRepository {
	return &sectorRepository{pool: pool}
}

const sectorColumns = `id, nombre, metros_cuadrados, precio_mensual_centimos, caracteristicas, estado, fecha_creacion`

func (r *sectorRepository) List(ctx context.Context) ([]domain.Sector, error) {
	const query = `SELECT ` + sectorColumns + ` FROM sectores ORDER BY id`
	return r.queryMany(ctx, query)
}

func (r *sectorRepository) ListByState(ctx context.Context, state domain.SectorState) ([]domain.Sector, error) {
	const query = `SELECT ` + sectorColumns + ` FROM sectores WHERE estado=$1 ORDER BY id`
	return r.queryMany(ctx, query, state)
}

func (r *sectorRepository) GetByID(ctx context.Context, id int64) (*domain.Sector, error) {
	const query = `SELECT ` + sectorColumns + ` FROM sectores WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *sectorRepository) GetByName(ctx context.Context, name string) (*domain.Sector, error) {
	const query = `SELECT ` + sectorColumns + ` FROM sectores WHERE nombre=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, name))
}

func (r *sectorRepository) UpdateState(ctx context.Context, id int64, state domain.SectorState) error {
	const query = `UPDATE sectores SET estado=$1 WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, state, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sectorRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.Sector, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Sector
	for rows.Next() {
		var sector domain.Sector
		if err := rows.Scan(
			&sector.ID,
			&sector.Name,
			&sector.AreaSqMeters,
			&sector.MonthlyPriceCents,
			&sector.Features,
			&sector.State,
			&sector.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, sector)
	}
	return result, rows.Err()
}

func (r *sectorRepository) scanOne(row pgx.Row) (*domain.Sector, error) {
	var sector domain.Sector
	if err := row.Scan(
		&sector.ID,
		&sector.Name,
		&sector.AreaSqMeters,
		&sector.MonthlyPriceCents,
		&sector.Features,
		&sector.State,
		&sector.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &sector, nil
}

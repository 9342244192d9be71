package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/warehouse-rental/internal/domain"
)

// ErrSectorNotAvailable is returned when the guarded create finds the sector
// already taken inside the transaction.
var ErrSectorNotAvailable = errors.New("sector not available")

// RentalRepository defines persistence access for rentals. Writes that touch
// both a rental and its sector run inside a single transaction.
type RentalRepository interface {
	// CreateActive inserts an ACTIVE rental and flips its sector to OCUPADO in
	// one transaction. With casGuard the sector flip is conditional on the
	// sector still being DISPONIBLE; otherwise the flip is unconditional,
	// matching the original check-then-act behavior.
	CreateActive(ctx context.Context, rental *domain.Rental, casGuard bool) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Rental, error)
	// Finish marks the rental FINALIZADO and its sector DISPONIBLE in one
	// transaction.
	Finish(ctx context.Context, rentalID, sectorID int64) error
}

type rentalRepository struct {
	pool *pgxpool.Pool
}

// NewRentalRepository returns a Postgres-backed implementation.
func NewRentalRepository(pool *pgxpool.Pool) RentalRepository {
	return &rentalRepository{pool: pool}
}

const rentalColumns = `a.id, a.sector_id, s.nombre, a.usuario_id, a.orden_id, a.monto_pagado_centimos, a.fecha_inicio, a.fecha_fin, a.estado, a.fecha_creacion`

func (r *rentalRepository) CreateActive(ctx context.Context, rental *domain.Rental, casGuard bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	occupy := `UPDATE sectores SET estado=$1 WHERE id=$2`
	args := []any{domain.SectorStateOccupied, rental.SectorID}
	if casGuard {
		occupy += ` AND estado=$3`
		args = append(args, domain.SectorStateAvailable)
	}
	cmd, err := tx.Exec(ctx, occupy, args...)
	if err != nil {
		return fmt.Errorf("occupy sector: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		if casGuard {
			return ErrSectorNotAvailable
		}
		return pgx.ErrNoRows
	}

	const insert = `
        INSERT INTO alquileres (sector_id, usuario_id, orden_id, monto_pagado_centimos, fecha_inicio, fecha_fin, estado)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, fecha_creacion`
	if err := tx.QueryRow(ctx, insert,
		rental.SectorID,
		rental.UserID,
		rental.OrderID,
		rental.AmountPaidCents,
		rental.StartTime,
		rental.EndTime,
		rental.State,
	).Scan(&rental.ID, &rental.CreatedAt); err != nil {
		return fmt.Errorf("insert rental: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	const query = `
        SELECT ` + rentalColumns + `
        FROM alquileres a JOIN sectores s ON s.id = a.sector_id
        WHERE a.id=$1`

	var rental domain.Rental
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&rental.ID,
		&rental.SectorID,
		&rental.SectorName,
		&rental.UserID,
		&rental.OrderID,
		&rental.AmountPaidCents,
		&rental.StartTime,
		&rental.EndTime,
		&rental.State,
		&rental.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rental, nil
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Rental, error) {
	const query = `
        SELECT ` + rentalColumns + `
        FROM alquileres a JOIN sectores s ON s.id = a.sector_id
        WHERE a.usuario_id=$1 ORDER BY a.id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Rental
	for rows.Next() {
		var rental domain.Rental
		if err := rows.Scan(
			&rental.ID,
			&rental.SectorID,
			&rental.SectorName,
			&rental.UserID,
			&rental.OrderID,
			&rental.AmountPaidCents,
			&rental.StartTime,
			&rental.EndTime,
			&rental.State,
			&rental.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, rental)
	}
	return result, rows.Err()
}

func (r *rentalRepository) Finish(ctx context.Context, rentalID, sectorID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE alquileres SET estado=$1 WHERE id=$2`, domain.RentalStateFinished, rentalID)
	if err != nil {
		return fmt.Errorf("finish rental: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, `UPDATE sectores SET estado=$1 WHERE id=$2`, domain.SectorStateAvailable, sectorID); err != nil {
		return fmt.Errorf("release sector: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

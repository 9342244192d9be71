package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/warehouse-rental/internal/domain"
)

// UserRepository defines persistence access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, nombre_completo, movil, correo_electronico, rol_id, contrasena, correo_confirmado, google, foto, fecha_creacion`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO usuarios (nombre_completo, movil, correo_electronico, rol_id, contrasena, correo_confirmado, google, foto)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, fecha_creacion`

	return r.pool.QueryRow(ctx, query,
		user.FullName,
		user.Mobile,
		user.Email,
		user.RoleID,
		user.Credential,
		user.EmailConfirmed,
		user.GoogleAccount,
		user.Photo,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE usuarios SET nombre_completo=$1, movil=$2, correo_electronico=$3, rol_id=$4,
            contrasena=$5, correo_confirmado=$6, google=$7, foto=$8
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		user.FullName,
		user.Mobile,
		user.Email,
		user.RoleID,
		user.Credential,
		user.EmailConfirmed,
		user.GoogleAccount,
		user.Photo,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM usuarios WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM usuarios WHERE correo_electronico=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM usuarios ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.FullName,
			&user.Mobile,
			&user.Email,
			&user.RoleID,
			&user.Credential,
			&user.EmailConfirmed,
			&user.GoogleAccount,
			&user.Photo,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM usuarios WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Mobile,
		&user.Email,
		&user.RoleID,
		&user.Credential,
		&user.EmailConfirmed,
		&user.GoogleAccount,
		&user.Photo,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homefind/api/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// UserRow is a user joined with how many properties they own.
type UserRow struct {
	User          models.User
	PropertyCount int64
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	const query = `
		SELECT id, name, email, role, is_active, created_at, updated_at
		FROM users WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]UserRow, error) {
	const query = `
		SELECT u.id, u.name, u.email, u.role, u.is_active, u.created_at, u.updated_at,
		       COUNT(p.id) AS property_count
		FROM users u
		LEFT JOIN properties p ON p.owner_id = u.id
		GROUP BY u.id, u.name, u.email, u.role, u.is_active, u.created_at, u.updated_at
		ORDER BY u.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []UserRow
	for rows.Next() {
		var ur UserRow
		if err := rows.Scan(
			&ur.User.ID,
			&ur.User.Name,
			&ur.User.Email,
			&ur.User.Role,
			&ur.User.IsActive,
			&ur.User.CreatedAt,
			&ur.User.UpdatedAt,
			&ur.PropertyCount,
		); err != nil {
			return nil, err
		}
		users = append(users, ur)
	}
	return users, rows.Err()
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	const query = `
		UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homefind/api/internal/models"
)

var ErrPropertyNotFound = errors.New("property not found")

type PropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(pool *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{pool: pool}
}

const propertyColumns = `
	id, owner_id, title, description, price_etb, price_usd, category, tx_type,
	location, bedrooms, bathrooms, size_sqm, images, amenities, is_active,
	duration_days, expires_at, created_at, updated_at
`

func (r *PropertyRepository) Create(ctx context.Context, p models.Property) error {
	const query = `
		INSERT INTO properties (
			id, owner_id, title, description, price_etb, price_usd, category, tx_type,
			location, bedrooms, bathrooms, size_sqm, images, amenities, is_active,
			duration_days, expires_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14, $15,
			$16, $17, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.OwnerID,
		p.Title,
		p.Description,
		p.PriceETB,
		p.PriceUSD,
		p.Category,
		p.Type,
		p.Location,
		p.Bedrooms,
		p.Bathrooms,
		p.SizeSqm,
		p.Images,
		p.Amenities,
		p.IsActive,
		p.DurationDays,
		p.ExpiresAt,
	)
	return err
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (models.Property, error) {
	const query = `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	p, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Property{}, ErrPropertyNotFound
		}
		return models.Property{}, err
	}
	return p, nil
}

func (r *PropertyRepository) ListActive(ctx context.Context, category, txType *string, limit, offset int) ([]models.Property, error) {
	const query = `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE is_active = TRUE
		  AND ($1::text IS NULL OR category = $1)
		  AND ($2::text IS NULL OR tx_type = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.pool.Query(ctx, query, category, txType, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *PropertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	const query = `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *PropertyRepository) List(ctx context.Context, limit, offset int) ([]models.Property, error) {
	const query = `
		SELECT ` + propertyColumns + `
		FROM properties
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

// CountOwned returns the size of the caller's scoped property set; a nil
// ownerID means unscoped (admin).
func (r *PropertyRepository) CountOwned(ctx context.Context, ownerID *string) (int64, error) {
	const query = `
		SELECT COUNT(*) FROM properties
		WHERE ($1::text IS NULL OR owner_id = $1)
	`
	var count int64
	err := r.pool.QueryRow(ctx, query, ownerID).Scan(&count)
	return count, err
}

// ExpireDue deactivates every active property whose expiry has passed and
// returns how many rows changed. Safe to run at any cadence.
func (r *PropertyRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	const query = `
		UPDATE properties
		SET is_active = FALSE, updated_at = NOW()
		WHERE is_active = TRUE AND expires_at < $1
	`
	cmd, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *PropertyRepository) ForceExpire(ctx context.Context, id string, now time.Time) error {
	const query = `
		UPDATE properties
		SET is_active = FALSE, expires_at = $2, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, now)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Renew(ctx context.Context, id string, expiresAt time.Time, durationDays int) error {
	const query = `
		UPDATE properties
		SET is_active = TRUE, expires_at = $2, duration_days = $3, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, expiresAt, durationDays)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM properties WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func scanProperty(row pgx.Row) (models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.PriceETB,
		&p.PriceUSD,
		&p.Category,
		&p.Type,
		&p.Location,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.SizeSqm,
		&p.Images,
		&p.Amenities,
		&p.IsActive,
		&p.DurationDays,
		&p.ExpiresAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func scanProperties(rows pgx.Rows) ([]models.Property, error) {
	var properties []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homefind/api/internal/models"
)

var ErrLeadNotFound = errors.New("lead not found")

type LeadRepository struct {
	pool *pgxpool.Pool
}

func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{pool: pool}
}

// LeadRow is a lead joined with its referenced property and seller display
// fields, nil where the reference is absent.
type LeadRow struct {
	Lead             models.Lead
	PropertyTitle    *string
	PropertyLocation *string
	SellerName       *string
}

func (r *LeadRepository) Create(ctx context.Context, lead models.Lead) error {
	const query = `
		INSERT INTO leads (
			id, name, email, phone, message, property_id, seller_id, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $9
		)
	`
	_, err := r.pool.Exec(ctx, query,
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Message,
		lead.PropertyID,
		lead.SellerID,
		lead.Status,
		lead.CreatedAt,
	)
	return err
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (models.Lead, error) {
	const query = `
		SELECT id, name, email, phone, message, property_id, seller_id, status, created_at, updated_at
		FROM leads WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	var lead models.Lead
	if err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Message,
		&lead.PropertyID,
		&lead.SellerID,
		&lead.Status,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Lead{}, ErrLeadNotFound
		}
		return models.Lead{}, err
	}
	return lead, nil
}

// List returns leads newest first; a nil sellerID means unscoped (admin).
func (r *LeadRepository) List(ctx context.Context, sellerID *string) ([]LeadRow, error) {
	const query = `
		SELECT l.id, l.name, l.email, l.phone, l.message, l.property_id, l.seller_id,
		       l.status, l.created_at, l.updated_at,
		       p.title, p.location, u.name
		FROM leads l
		LEFT JOIN properties p ON p.id = l.property_id
		LEFT JOIN users u ON u.id = l.seller_id
		WHERE ($1::text IS NULL OR l.seller_id = $1)
		ORDER BY l.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []LeadRow
	for rows.Next() {
		var lr LeadRow
		if err := rows.Scan(
			&lr.Lead.ID,
			&lr.Lead.Name,
			&lr.Lead.Email,
			&lr.Lead.Phone,
			&lr.Lead.Message,
			&lr.Lead.PropertyID,
			&lr.Lead.SellerID,
			&lr.Lead.Status,
			&lr.Lead.CreatedAt,
			&lr.Lead.UpdatedAt,
			&lr.PropertyTitle,
			&lr.PropertyLocation,
			&lr.SellerName,
		); err != nil {
			return nil, err
		}
		leads = append(leads, lr)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status models.LeadStatus, now time.Time) error {
	const query = `
		UPDATE leads SET status = $2, updated_at = $3 WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, status, now)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM leads WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

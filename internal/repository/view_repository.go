package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"homefind/api/internal/models"
)

type ViewRepository struct {
	pool *pgxpool.Pool
}

func NewViewRepository(pool *pgxpool.Pool) *ViewRepository {
	return &ViewRepository{pool: pool}
}

// PropertyViewCount is a per-property rollup row joined with display fields.
type PropertyViewCount struct {
	PropertyID string
	Title      string
	Location   string
	Images     []string
	ViewCount  int64
}

// RecentView is a view event joined with its property's display fields.
type RecentView struct {
	ID         string
	PropertyID string
	Title      string
	Location   string
	VisitorID  *string
	ViewedAt   time.Time
}

// DailyCount is one UTC calendar-day bucket.
type DailyCount struct {
	Day   time.Time
	Count int64
}

func (r *ViewRepository) Insert(ctx context.Context, v models.PropertyView) error {
	const query = `
		INSERT INTO property_views (
			id, property_id, visitor_id, user_id, ip_address, user_agent, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`
	_, err := r.pool.Exec(ctx, query,
		v.ID,
		v.PropertyID,
		v.VisitorID,
		v.UserID,
		v.IPAddress,
		v.UserAgent,
		v.CreatedAt,
	)
	return err
}

// CountViews counts scoped view rows; nil ownerID means unscoped, nil since
// means all time.
func (r *ViewRepository) CountViews(ctx context.Context, ownerID *string, since *time.Time) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM property_views v
		JOIN properties p ON p.id = v.property_id
		WHERE ($1::text IS NULL OR p.owner_id = $1)
		  AND ($2::timestamptz IS NULL OR v.created_at >= $2)
	`
	var count int64
	err := r.pool.QueryRow(ctx, query, ownerID, since).Scan(&count)
	return count, err
}

// CountUniqueVisitors counts distinct non-null visitor ids over all time.
// Deliberately unwindowed, unlike the other overview counts.
func (r *ViewRepository) CountUniqueVisitors(ctx context.Context, ownerID *string) (int64, error) {
	const query = `
		SELECT COUNT(DISTINCT v.visitor_id)
		FROM property_views v
		JOIN properties p ON p.id = v.property_id
		WHERE v.visitor_id IS NOT NULL
		  AND ($1::text IS NULL OR p.owner_id = $1)
	`
	var count int64
	err := r.pool.QueryRow(ctx, query, ownerID).Scan(&count)
	return count, err
}

func (r *ViewRepository) TopProperties(ctx context.Context, ownerID *string, limit int) ([]PropertyViewCount, error) {
	const query = `
		SELECT v.property_id, p.title, p.location, p.images, COUNT(*) AS view_count
		FROM property_views v
		JOIN properties p ON p.id = v.property_id
		WHERE ($1::text IS NULL OR p.owner_id = $1)
		GROUP BY v.property_id, p.title, p.location, p.images
		ORDER BY view_count DESC, v.property_id ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []PropertyViewCount
	for rows.Next() {
		var c PropertyViewCount
		if err := rows.Scan(&c.PropertyID, &c.Title, &c.Location, &c.Images, &c.ViewCount); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *ViewRepository) RecentViews(ctx context.Context, ownerID *string, limit int) ([]RecentView, error) {
	const query = `
		SELECT v.id, v.property_id, p.title, p.location, v.visitor_id, v.created_at
		FROM property_views v
		JOIN properties p ON p.id = v.property_id
		WHERE ($1::text IS NULL OR p.owner_id = $1)
		ORDER BY v.created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []RecentView
	for rows.Next() {
		var v RecentView
		if err := rows.Scan(&v.ID, &v.PropertyID, &v.Title, &v.Location, &v.VisitorID, &v.ViewedAt); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *ViewRepository) CountByProperty(ctx context.Context, propertyID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM property_views WHERE property_id = $1`
	var count int64
	err := r.pool.QueryRow(ctx, query, propertyID).Scan(&count)
	return count, err
}

// DailyCounts buckets a property's views since the cutoff by UTC calendar day.
// Days with no views produce no row; the caller zero-fills.
func (r *ViewRepository) DailyCounts(ctx context.Context, propertyID string, since time.Time) ([]DailyCount, error) {
	const query = `
		SELECT date_trunc('day', created_at AT TIME ZONE 'UTC') AS day, COUNT(*)
		FROM property_views
		WHERE property_id = $1 AND created_at >= $2
		GROUP BY day
		ORDER BY day ASC
	`
	rows, err := r.pool.Query(ctx, query, propertyID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []DailyCount
	for rows.Next() {
		var c DailyCount
		if err := rows.Scan(&c.Day, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

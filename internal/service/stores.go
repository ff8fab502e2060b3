package service

import (
	"context"
	"time"

	"homefind/api/internal/apperr"
	"homefind/api/internal/models"
	"homefind/api/internal/repository"
)

// Storage capabilities the services depend on. The pgx repositories satisfy
// these in production; tests substitute in-memory fakes.

type PropertyStore interface {
	Create(ctx context.Context, p models.Property) error
	GetByID(ctx context.Context, id string) (models.Property, error)
	ListActive(ctx context.Context, category, txType *string, limit, offset int) ([]models.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error)
	List(ctx context.Context, limit, offset int) ([]models.Property, error)
	CountOwned(ctx context.Context, ownerID *string) (int64, error)
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
	ForceExpire(ctx context.Context, id string, now time.Time) error
	Renew(ctx context.Context, id string, expiresAt time.Time, durationDays int) error
	Delete(ctx context.Context, id string) error
}

type ViewStore interface {
	Insert(ctx context.Context, v models.PropertyView) error
	CountViews(ctx context.Context, ownerID *string, since *time.Time) (int64, error)
	CountUniqueVisitors(ctx context.Context, ownerID *string) (int64, error)
	TopProperties(ctx context.Context, ownerID *string, limit int) ([]repository.PropertyViewCount, error)
	RecentViews(ctx context.Context, ownerID *string, limit int) ([]repository.RecentView, error)
	CountByProperty(ctx context.Context, propertyID string) (int64, error)
	DailyCounts(ctx context.Context, propertyID string, since time.Time) ([]repository.DailyCount, error)
}

type LeadStore interface {
	Create(ctx context.Context, lead models.Lead) error
	GetByID(ctx context.Context, id string) (models.Lead, error)
	List(ctx context.Context, sellerID *string) ([]repository.LeadRow, error)
	UpdateStatus(ctx context.Context, id string, status models.LeadStatus, now time.Time) error
	Delete(ctx context.Context, id string) error
}

// Deduper is the optional repeat-view suppression policy.
type Deduper interface {
	FirstSeen(ctx context.Context, propertyID, visitorID string, window time.Duration) (bool, error)
}

// ImageResolver turns stored image object keys into fetchable URLs.
type ImageResolver interface {
	ImageURL(ctx context.Context, objectKey string) (string, error)
}

// scopeOwner maps the caller to an ownership filter: sellers and agents see
// their own inventory, admins see everything, nobody else may call.
func scopeOwner(caller models.Caller) (*string, error) {
	switch caller.Role {
	case models.UserRoleAdmin:
		return nil, nil
	case models.UserRoleSeller, models.UserRoleAgent:
		id := caller.ID
		return &id, nil
	default:
		return nil, apperr.Forbidden("role may not access scoped data")
	}
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"homefind/api/internal/apperr"
	"homefind/api/internal/config"
	"homefind/api/internal/ids"
	"homefind/api/internal/models"
	"homefind/api/internal/repository"
)

// ListingService owns the property lifecycle: creation, visibility, and the
// active/expired flag. The sweep is its only time-driven mutation; renew and
// force-expire are the explicit counterparts.
type ListingService struct {
	properties PropertyStore
	cfg        config.ListingsConfig
	log        zerolog.Logger
}

func NewListingService(properties PropertyStore, cfg config.ListingsConfig, log zerolog.Logger) *ListingService {
	return &ListingService{
		properties: properties,
		cfg:        cfg,
		log:        log,
	}
}

type CreatePropertyInput struct {
	Title        string
	Description  string
	PriceETB     int64
	PriceUSD     *int64
	Category     models.PropertyCategory
	Type         models.TransactionType
	Location     string
	Bedrooms     *int
	Bathrooms    *int
	SizeSqm      *float64
	Images       []string
	Amenities    []string
	DurationDays int
}

func (s *ListingService) CreateProperty(ctx context.Context, caller models.Caller, input CreatePropertyInput, now time.Time) (models.Property, error) {
	if !caller.Role.CanSell() {
		return models.Property{}, apperr.Forbidden("role may not own listings")
	}
	if input.Title == "" {
		return models.Property{}, apperr.Validation("title is required")
	}
	if input.Location == "" {
		return models.Property{}, apperr.Validation("location is required")
	}
	if input.PriceETB <= 0 {
		return models.Property{}, apperr.Validation("price must be positive")
	}
	switch input.Category {
	case models.PropertyCategoryLand, models.PropertyCategoryHouse, models.PropertyCategoryCommercial:
	default:
		return models.Property{}, apperr.Validation("unknown category")
	}
	switch input.Type {
	case models.TransactionTypeSale, models.TransactionTypeLease:
	default:
		return models.Property{}, apperr.Validation("unknown transaction type")
	}

	days := input.DurationDays
	if days <= 0 {
		days = s.cfg.DefaultDurationDays
	}

	property := models.Property{
		ID:           ids.New(ids.PrefixProperty),
		OwnerID:      caller.ID,
		Title:        input.Title,
		Description:  input.Description,
		PriceETB:     input.PriceETB,
		PriceUSD:     input.PriceUSD,
		Category:     input.Category,
		Type:         input.Type,
		Location:     input.Location,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		SizeSqm:      input.SizeSqm,
		Images:       input.Images,
		Amenities:    input.Amenities,
		IsActive:     true,
		DurationDays: days,
		ExpiresAt:    now.AddDate(0, 0, days),
		CreatedAt:    now,
	}

	if err := s.properties.Create(ctx, property); err != nil {
		return models.Property{}, apperr.Transient("create property", err)
	}
	return property, nil
}

// GetProperty hides inactive listings from everyone but the owner and admins.
// A nil caller is an anonymous visitor.
func (s *ListingService) GetProperty(ctx context.Context, caller *models.Caller, id string) (models.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return models.Property{}, mapPropertyErr(err)
	}
	if !property.IsActive {
		if caller == nil || (!caller.IsAdmin() && caller.ID != property.OwnerID) {
			return models.Property{}, apperr.NotFound("property")
		}
	}
	return property, nil
}

func (s *ListingService) ListActive(ctx context.Context, category, txType *string, limit, offset int) ([]models.Property, error) {
	properties, err := s.properties.ListActive(ctx, category, txType, limit, offset)
	if err != nil {
		return nil, apperr.Transient("list properties", err)
	}
	return properties, nil
}

// ListAll returns every listing regardless of state, newest first, for the
// moderation view.
func (s *ListingService) ListAll(ctx context.Context, limit, offset int) ([]models.Property, error) {
	properties, err := s.properties.List(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Transient("list all properties", err)
	}
	return properties, nil
}

func (s *ListingService) ListOwned(ctx context.Context, caller models.Caller) ([]models.Property, error) {
	properties, err := s.properties.ListByOwner(ctx, caller.ID)
	if err != nil {
		return nil, apperr.Transient("list owned properties", err)
	}
	return properties, nil
}

func (s *ListingService) DeleteProperty(ctx context.Context, caller models.Caller, id string) error {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return mapPropertyErr(err)
	}
	if !caller.IsAdmin() && property.OwnerID != caller.ID {
		return apperr.Forbidden("not the property owner")
	}
	if err := s.properties.Delete(ctx, id); err != nil {
		return mapPropertyErr(err)
	}
	return nil
}

// Sweep deactivates every listing whose expiry has passed. Idempotent: a
// second pass at the same instant changes nothing.
func (s *ListingService) Sweep(ctx context.Context, now time.Time) (int64, error) {
	count, err := s.properties.ExpireDue(ctx, now)
	if err != nil {
		return 0, apperr.Transient("sweep expired listings", err)
	}
	return count, nil
}

// ForceExpire deactivates a listing immediately regardless of its expiry.
func (s *ListingService) ForceExpire(ctx context.Context, id string, now time.Time) error {
	if err := s.properties.ForceExpire(ctx, id, now); err != nil {
		return mapPropertyErr(err)
	}
	return nil
}

// Renew reactivates a listing for durationDays from now and stores the chosen
// duration as the property's default for the next renewal. Zero durationDays
// falls back to the stored duration, then to the configured default.
func (s *ListingService) Renew(ctx context.Context, caller models.Caller, id string, durationDays int, now time.Time) (models.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return models.Property{}, mapPropertyErr(err)
	}
	if !caller.IsAdmin() && property.OwnerID != caller.ID {
		return models.Property{}, apperr.Forbidden("not the property owner")
	}

	days := durationDays
	if days <= 0 {
		days = property.DurationDays
	}
	if days <= 0 {
		days = s.cfg.DefaultDurationDays
	}

	expiresAt := now.AddDate(0, 0, days)
	if err := s.properties.Renew(ctx, id, expiresAt, days); err != nil {
		return models.Property{}, mapPropertyErr(err)
	}

	property.IsActive = true
	property.ExpiresAt = expiresAt
	property.DurationDays = days
	return property, nil
}

func mapPropertyErr(err error) error {
	if errors.Is(err, repository.ErrPropertyNotFound) {
		return apperr.NotFound("property")
	}
	return apperr.Transient("property store", err)
}

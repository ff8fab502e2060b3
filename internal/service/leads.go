package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"homefind/api/internal/apperr"
	"homefind/api/internal/ids"
	"homefind/api/internal/models"
	"homefind/api/internal/repository"
)

// LeadService captures inbound inquiries and routes each to the seller who
// owns the referenced listing.
type LeadService struct {
	leads      LeadStore
	properties PropertyStore
	log        zerolog.Logger
}

func NewLeadService(leads LeadStore, properties PropertyStore, log zerolog.Logger) *LeadService {
	return &LeadService{
		leads:      leads,
		properties: properties,
		log:        log,
	}
}

type CreateLeadInput struct {
	Name       string
	Email      string
	Phone      *string
	Message    *string
	PropertyID *string
	SellerID   *string
}

// CreateLead persists a NEW lead. When a property is referenced without an
// explicit seller, the seller is resolved from the property's owner; a
// dangling property reference degrades to a general inquiry rather than
// failing the submission.
func (s *LeadService) CreateLead(ctx context.Context, input CreateLeadInput, now time.Time) (models.Lead, error) {
	if input.Name == "" {
		return models.Lead{}, apperr.Validation("name is required")
	}
	if input.Email == "" {
		return models.Lead{}, apperr.Validation("email is required")
	}

	propertyID := input.PropertyID
	sellerID := input.SellerID
	if propertyID != nil && sellerID == nil {
		property, err := s.properties.GetByID(ctx, *propertyID)
		switch {
		case err == nil:
			sellerID = &property.OwnerID
		case errors.Is(err, repository.ErrPropertyNotFound):
			s.log.Warn().Str("property_id", *propertyID).Msg("lead references unknown property, keeping as general inquiry")
			propertyID = nil
		default:
			return models.Lead{}, apperr.Transient("resolve lead owner", err)
		}
	}

	lead := models.Lead{
		ID:         ids.New(ids.PrefixLead),
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Message:    input.Message,
		PropertyID: propertyID,
		SellerID:   sellerID,
		Status:     models.LeadStatusNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return models.Lead{}, apperr.Transient("create lead", err)
	}
	return lead, nil
}

// ListLeads returns the caller's leads newest first: admins see all, sellers
// and agents only leads routed to them.
func (s *LeadService) ListLeads(ctx context.Context, caller models.Caller) ([]repository.LeadRow, error) {
	seller, err := scopeOwner(caller)
	if err != nil {
		return nil, err
	}
	leads, err := s.leads.List(ctx, seller)
	if err != nil {
		return nil, apperr.Transient("list leads", err)
	}
	return leads, nil
}

// UpdateStatus moves a lead to any of the four statuses. Only the assigned
// seller or an admin may touch it.
func (s *LeadService) UpdateStatus(ctx context.Context, caller models.Caller, leadID string, status models.LeadStatus, now time.Time) (models.Lead, error) {
	if !models.ValidLeadStatus(status) {
		return models.Lead{}, apperr.Validation("unknown lead status")
	}

	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return models.Lead{}, mapLeadErr(err)
	}
	if !caller.IsAdmin() && (lead.SellerID == nil || *lead.SellerID != caller.ID) {
		return models.Lead{}, apperr.Forbidden("not the assigned seller")
	}

	if err := s.leads.UpdateStatus(ctx, leadID, status, now); err != nil {
		return models.Lead{}, mapLeadErr(err)
	}
	lead.Status = status
	lead.UpdatedAt = now
	return lead, nil
}

func (s *LeadService) DeleteLead(ctx context.Context, caller models.Caller, leadID string) error {
	if !caller.IsAdmin() {
		return apperr.Forbidden("admin only")
	}
	if err := s.leads.Delete(ctx, leadID); err != nil {
		return mapLeadErr(err)
	}
	return nil
}

func mapLeadErr(err error) error {
	if errors.Is(err, repository.ErrLeadNotFound) {
		return apperr.NotFound("lead")
	}
	return apperr.Transient("lead store", err)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"homefind/api/internal/apperr"
	"homefind/api/internal/models"
)

func newLeadService(props *fakePropertyStore, leads *fakeLeadStore) *LeadService {
	return NewLeadService(leads, props, zerolog.Nop())
}

func TestCreateLeadValidation(t *testing.T) {
	props := newFakePropertyStore()
	leads := newFakeLeadStore(props)
	svc := newLeadService(props, leads)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	if _, err := svc.CreateLead(context.Background(), CreateLeadInput{Email: "j@x.com"}, now); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("missing name: err = %v, want ValidationError", err)
	}
	if _, err := svc.CreateLead(context.Background(), CreateLeadInput{Name: "Jane"}, now); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("missing email: err = %v, want ValidationError", err)
	}
}

func TestLeadAttributionFromProperty(t *testing.T) {
	props := newFakePropertyStore()
	leads := newFakeLeadStore(props)
	svc := newLeadService(props, leads)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	seedProperty(props, "p1", "seller-s", true, now.Add(24*time.Hour))
	leads.sellers["seller-s"] = "Sara Seller"

	lead, err := svc.CreateLead(context.Background(), CreateLeadInput{
		Name:       "Jane",
		Email:      "j@x.com",
		PropertyID: strptr("p1"),
	}, now)
	if err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	if lead.SellerID == nil || *lead.SellerID != "seller-s" {
		t.Fatalf("sellerId = %v, want seller-s resolved from property owner", lead.SellerID)
	}
	if lead.Status != models.LeadStatusNew {
		t.Errorf("status = %s, want NEW", lead.Status)
	}

	// The assigned seller sees it, another seller does not, an admin does.
	mine, err := svc.ListLeads(context.Background(), models.Caller{ID: "seller-s", Role: models.UserRoleSeller})
	if err != nil {
		t.Fatalf("ListLeads(assigned): %v", err)
	}
	if len(mine) != 1 || mine[0].Lead.ID != lead.ID {
		t.Errorf("assigned seller list = %v, want the new lead", mine)
	}
	if mine[0].PropertyTitle == nil || *mine[0].PropertyTitle == "" {
		t.Error("property title not joined")
	}
	if mine[0].SellerName == nil || *mine[0].SellerName != "Sara Seller" {
		t.Error("seller name not joined")
	}

	other, err := svc.ListLeads(context.Background(), models.Caller{ID: "seller-x", Role: models.UserRoleSeller})
	if err != nil {
		t.Fatalf("ListLeads(other): %v", err)
	}
	if len(other) != 0 {
		t.Errorf("other seller sees %d leads, want 0", len(other))
	}

	all, err := svc.ListLeads(context.Background(), models.Caller{ID: "admin-1", Role: models.UserRoleAdmin})
	if err != nil {
		t.Fatalf("ListLeads(admin): %v", err)
	}
	if len(all) != 1 {
		t.Errorf("admin sees %d leads, want 1", len(all))
	}
}

func TestCreateLeadUnknownPropertyBecomesGeneralInquiry(t *testing.T) {
	props := newFakePropertyStore()
	leads := newFakeLeadStore(props)
	svc := newLeadService(props, leads)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	lead, err := svc.CreateLead(context.Background(), CreateLeadInput{
		Name:       "Jane",
		Email:      "j@x.com",
		PropertyID: strptr("vanished"),
	}, now)
	if err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	if lead.PropertyID != nil {
		t.Errorf("propertyId = %v, want nil for general inquiry", lead.PropertyID)
	}
	if lead.SellerID != nil {
		t.Errorf("sellerId = %v, want nil", lead.SellerID)
	}
}

func TestCreateLeadExplicitSellerWins(t *testing.T) {
	props := newFakePropertyStore()
	leads := newFakeLeadStore(props)
	svc := newLeadService(props, leads)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	seedProperty(props, "p1", "seller-owner", true, now.Add(24*time.Hour))

	lead, err := svc.CreateLead(context.Background(), CreateLeadInput{
		Name:       "Jane",
		Email:      "j@x.com",
		PropertyID: strptr("p1"),
		SellerID:   strptr("seller-manual"),
	}, now)
	if err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	if lead.SellerID == nil || *lead.SellerID != "seller-manual" {
		t.Errorf("sellerId = %v, want explicit seller-manual kept", lead.SellerID)
	}
}

func TestUpdateLeadStatus(t *testing.T) {
	props := newFakePropertyStore()
	leads := newFakeLeadStore(props)
	svc := newLeadService(props, leads)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	seedProperty(props, "p1", "seller-s", true, now.Add(24*time.Hour))
	lead, err := svc.CreateLead(context.Background(), CreateLeadInput{
		Name:       "Jane",
		Email:      "j@x.com",
		PropertyID: strptr("p1"),
	}, now)
	if err != nil {
		t.Fatalf("CreateLead: %v", err)
	}

	assigned := models.Caller{ID: "seller-s", Role: models.UserRoleSeller}
	stranger := models.Caller{ID: "seller-x", Role: models.UserRoleSeller}
	admin := models.Caller{ID: "admin-1", Role: models.UserRoleAdmin}

	if _, err := svc.UpdateStatus(context.Background(), assigned, lead.ID, "ARCHIVED", now); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad status: err = %v, want ValidationError", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), assigned, "missing", models.LeadStatusContacted, now); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing lead: err = %v, want NotFound", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), stranger, lead.ID, models.LeadStatusContacted, now); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("stranger update: err = %v, want Forbidden", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), assigned, lead.ID, models.LeadStatusContacted, now)
	if err != nil {
		t.Fatalf("assigned seller update: %v", err)
	}
	if updated.Status != models.LeadStatusContacted {
		t.Errorf("status = %s, want CONTACTED", updated.Status)
	}

	// No transition restrictions: CLOSED may go straight back to NEW.
	if _, err := svc.UpdateStatus(context.Background(), admin, lead.ID, models.LeadStatusClosed, now); err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), admin, lead.ID, models.LeadStatusNew, now); err != nil {
		t.Fatalf("reopen: %v", err)
	}
}

func TestDeleteLeadAdminOnly(t *testing.T) {
	props := newFakePropertyStore()
	leads := newFakeLeadStore(props)
	svc := newLeadService(props, leads)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	seedProperty(props, "p1", "seller-s", true, now.Add(24*time.Hour))
	lead, err := svc.CreateLead(context.Background(), CreateLeadInput{
		Name:       "Jane",
		Email:      "j@x.com",
		PropertyID: strptr("p1"),
	}, now)
	if err != nil {
		t.Fatalf("CreateLead: %v", err)
	}

	assigned := models.Caller{ID: "seller-s", Role: models.UserRoleSeller}
	if err := svc.DeleteLead(context.Background(), assigned, lead.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("seller delete: err = %v, want Forbidden", err)
	}

	admin := models.Caller{ID: "admin-1", Role: models.UserRoleAdmin}
	if err := svc.DeleteLead(context.Background(), admin, lead.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := svc.DeleteLead(context.Background(), admin, lead.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("repeat delete: err = %v, want NotFound", err)
	}
}

package models

import "time"

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusClosed    LeadStatus = "CLOSED"
	LeadStatusLost      LeadStatus = "LOST"
)

// ValidLeadStatus reports whether s is one of the four enumerated statuses.
// Any valid status may transition to any other.
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusClosed, LeadStatusLost:
		return true
	}
	return false
}

type Lead struct {
	ID         string
	Name       string
	Email      string
	Phone      *string
	Message    *string
	PropertyID *string
	SellerID   *string
	Status     LeadStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

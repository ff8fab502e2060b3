package models

import "time"

type PropertyCategory string

const (
	PropertyCategoryLand       PropertyCategory = "LAND"
	PropertyCategoryHouse      PropertyCategory = "HOUSE"
	PropertyCategoryCommercial PropertyCategory = "COMMERCIAL"
)

type TransactionType string

const (
	TransactionTypeSale  TransactionType = "SALE"
	TransactionTypeLease TransactionType = "LEASE"
)

type Property struct {
	ID           string
	OwnerID      string
	Title        string
	Description  string
	PriceETB     int64
	PriceUSD     *int64
	Category     PropertyCategory
	Type         TransactionType
	Location     string
	Bedrooms     *int
	Bathrooms    *int
	SizeSqm      *float64
	Images       []string
	Amenities    []string
	IsActive     bool
	DurationDays int
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PropertyView is an immutable impression event. Rows are append-only; nothing
// in normal operation updates or deletes them.
type PropertyView struct {
	ID         string
	PropertyID string
	VisitorID  *string
	UserID     *string
	IPAddress  *string
	UserAgent  *string
	CreatedAt  time.Time
}

package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"homefind/api/internal/apperr"
	"homefind/api/internal/config"
	"homefind/api/internal/ids"
	"homefind/api/internal/models"
)

// AnalyticsService ingests view events and answers scoped rollup queries.
// Every aggregate is computed fresh against the event log; there is no
// materialized rollup table.
type AnalyticsService struct {
	views      ViewStore
	properties PropertyStore
	dedup      Deduper
	images     ImageResolver
	cfg        config.AnalyticsConfig
	log        zerolog.Logger
}

func NewAnalyticsService(views ViewStore, properties PropertyStore, dedup Deduper, images ImageResolver, cfg config.AnalyticsConfig, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		views:      views,
		properties: properties,
		dedup:      dedup,
		images:     images,
		cfg:        cfg,
		log:        log,
	}
}

type RecordViewInput struct {
	PropertyID string
	VisitorID  *string
	UserID     *string
	IPAddress  *string
	UserAgent  *string
}

// RecordView appends one immutable view event. The property reference is
// checked, not inferred: an unknown property is NotFound. When the dedup
// window is configured, a repeat view inside the window is silently skipped
// and the returned id is empty.
func (s *AnalyticsService) RecordView(ctx context.Context, input RecordViewInput, now time.Time) (string, error) {
	if input.PropertyID == "" {
		return "", apperr.Validation("propertyId is required")
	}
	if _, err := s.properties.GetByID(ctx, input.PropertyID); err != nil {
		return "", mapPropertyErr(err)
	}

	if s.cfg.DedupWindow > 0 && s.dedup != nil && input.VisitorID != nil && *input.VisitorID != "" {
		first, err := s.dedup.FirstSeen(ctx, input.PropertyID, *input.VisitorID, s.cfg.DedupWindow)
		if err != nil {
			// Count the view anyway; losing dedup must never lose the event.
			s.log.Warn().Err(err).Str("property_id", input.PropertyID).Msg("view dedup unavailable")
		} else if !first {
			return "", nil
		}
	}

	view := models.PropertyView{
		ID:         ids.New(ids.PrefixView),
		PropertyID: input.PropertyID,
		VisitorID:  input.VisitorID,
		UserID:     input.UserID,
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
		CreatedAt:  now,
	}
	if err := s.views.Insert(ctx, view); err != nil {
		return "", apperr.Transient("insert view", err)
	}
	return view.ID, nil
}

type Overview struct {
	TotalViews      int64 `json:"totalViews"`
	TodayViews      int64 `json:"todayViews"`
	WeekViews       int64 `json:"weekViews"`
	MonthViews      int64 `json:"monthViews"`
	UniqueVisitors  int64 `json:"uniqueVisitors"`
	TotalProperties int64 `json:"totalProperties"`
}

// Overview computes the scoped dashboard counters. todayViews starts at local
// midnight of now, weekViews is a rolling 168h window, monthViews starts at
// the first of the calendar month. uniqueVisitors is the lifetime distinct
// visitor count with no window, matching what seller dashboards already show.
func (s *AnalyticsService) Overview(ctx context.Context, caller models.Caller, now time.Time) (Overview, error) {
	owner, err := scopeOwner(caller)
	if err != nil {
		return Overview{}, err
	}

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := now.Add(-7 * 24 * time.Hour)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var ov Overview
	if ov.TotalViews, err = s.views.CountViews(ctx, owner, nil); err != nil {
		return Overview{}, apperr.Transient("count views", err)
	}
	if ov.TodayViews, err = s.views.CountViews(ctx, owner, &todayStart); err != nil {
		return Overview{}, apperr.Transient("count today views", err)
	}
	if ov.WeekViews, err = s.views.CountViews(ctx, owner, &weekStart); err != nil {
		return Overview{}, apperr.Transient("count week views", err)
	}
	if ov.MonthViews, err = s.views.CountViews(ctx, owner, &monthStart); err != nil {
		return Overview{}, apperr.Transient("count month views", err)
	}
	if ov.UniqueVisitors, err = s.views.CountUniqueVisitors(ctx, owner); err != nil {
		return Overview{}, apperr.Transient("count unique visitors", err)
	}
	if ov.TotalProperties, err = s.properties.CountOwned(ctx, owner); err != nil {
		return Overview{}, apperr.Transient("count properties", err)
	}
	return ov, nil
}

type TopProperty struct {
	PropertyID string `json:"propertyId"`
	Title      string `json:"title"`
	Location   string `json:"location"`
	ImageURL   string `json:"imageUrl,omitempty"`
	ViewCount  int64  `json:"viewCount"`
}

// TopProperties ranks the caller's listings by view count, descending, ties
// broken by property id. Listings with zero views are absent, not zero-padded.
func (s *AnalyticsService) TopProperties(ctx context.Context, caller models.Caller, n int) ([]TopProperty, error) {
	owner, err := scopeOwner(caller)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = s.cfg.TopLimit
	}

	counts, err := s.views.TopProperties(ctx, owner, n)
	if err != nil {
		return nil, apperr.Transient("top properties", err)
	}

	top := make([]TopProperty, 0, len(counts))
	for _, c := range counts {
		entry := TopProperty{
			PropertyID: c.PropertyID,
			Title:      c.Title,
			Location:   c.Location,
			ViewCount:  c.ViewCount,
		}
		if len(c.Images) > 0 && s.images != nil {
			url, err := s.images.ImageURL(ctx, c.Images[0])
			if err != nil {
				s.log.Warn().Err(err).Str("property_id", c.PropertyID).Msg("resolve cover image failed")
			} else {
				entry.ImageURL = url
			}
		}
		top = append(top, entry)
	}
	return top, nil
}

type ActivityItem struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"propertyId"`
	Title      string    `json:"propertyTitle"`
	Location   string    `json:"propertyLocation"`
	VisitorID  *string   `json:"visitorId,omitempty"`
	ViewedAt   time.Time `json:"viewedAt"`
}

func (s *AnalyticsService) RecentActivity(ctx context.Context, caller models.Caller, n int) ([]ActivityItem, error) {
	owner, err := scopeOwner(caller)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = s.cfg.RecentLimit
	}

	views, err := s.views.RecentViews(ctx, owner, n)
	if err != nil {
		return nil, apperr.Transient("recent views", err)
	}

	items := make([]ActivityItem, 0, len(views))
	for _, v := range views {
		items = append(items, ActivityItem{
			ID:         v.ID,
			PropertyID: v.PropertyID,
			Title:      v.Title,
			Location:   v.Location,
			VisitorID:  v.VisitorID,
			ViewedAt:   v.ViewedAt,
		})
	}
	return items, nil
}

type DailyBucket struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type TimeSeries struct {
	PropertyID  string        `json:"propertyId"`
	TotalViews  int64         `json:"totalViews"`
	WeeklyViews int64         `json:"weeklyViews"`
	Daily       []DailyBucket `json:"dailyBreakdown"`
}

// PropertyTimeSeries returns lifetime views plus a zero-filled daily histogram
// for the trailing seven UTC calendar days including today, oldest first. Only
// the owner and admins may read it.
func (s *AnalyticsService) PropertyTimeSeries(ctx context.Context, caller models.Caller, propertyID string, now time.Time) (TimeSeries, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return TimeSeries{}, mapPropertyErr(err)
	}
	if !caller.IsAdmin() && property.OwnerID != caller.ID {
		return TimeSeries{}, apperr.Forbidden("not the property owner")
	}

	days := s.cfg.SeriesDays
	if days <= 0 {
		days = 7
	}

	utcNow := now.UTC()
	bucketStart := time.Date(utcNow.Year(), utcNow.Month(), utcNow.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))

	counts, err := s.views.DailyCounts(ctx, propertyID, bucketStart)
	if err != nil {
		return TimeSeries{}, apperr.Transient("daily counts", err)
	}
	byDay := make(map[string]int64, len(counts))
	for _, c := range counts {
		byDay[c.Day.UTC().Format("2006-01-02")] = c.Count
	}

	series := TimeSeries{PropertyID: propertyID}
	for i := 0; i < days; i++ {
		date := bucketStart.AddDate(0, 0, i).Format("2006-01-02")
		count := byDay[date]
		series.Daily = append(series.Daily, DailyBucket{Date: date, Count: count})
		series.WeeklyViews += count
	}

	if series.TotalViews, err = s.views.CountByProperty(ctx, propertyID); err != nil {
		return TimeSeries{}, apperr.Transient("count property views", err)
	}
	return series, nil
}

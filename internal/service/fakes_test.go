package service

import (
	"context"
	"sort"
	"time"

	"homefind/api/internal/models"
	"homefind/api/internal/repository"
)

// In-memory stand-ins for the pgx repositories, mirroring their query
// semantics closely enough to exercise the services.

type fakePropertyStore struct {
	properties map[string]models.Property
}

func newFakePropertyStore() *fakePropertyStore {
	return &fakePropertyStore{properties: make(map[string]models.Property)}
}

func (f *fakePropertyStore) Create(_ context.Context, p models.Property) error {
	f.properties[p.ID] = p
	return nil
}

func (f *fakePropertyStore) GetByID(_ context.Context, id string) (models.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return models.Property{}, repository.ErrPropertyNotFound
	}
	return p, nil
}

func (f *fakePropertyStore) ListActive(_ context.Context, category, txType *string, limit, offset int) ([]models.Property, error) {
	var out []models.Property
	for _, p := range f.properties {
		if !p.IsActive {
			continue
		}
		if category != nil && string(p.Category) != *category {
			continue
		}
		if txType != nil && string(p.Type) != *txType {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePropertyStore) ListByOwner(_ context.Context, ownerID string) ([]models.Property, error) {
	var out []models.Property
	for _, p := range f.properties {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePropertyStore) List(_ context.Context, limit, offset int) ([]models.Property, error) {
	var out []models.Property
	for _, p := range f.properties {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePropertyStore) CountOwned(_ context.Context, ownerID *string) (int64, error) {
	var count int64
	for _, p := range f.properties {
		if ownerID == nil || p.OwnerID == *ownerID {
			count++
		}
	}
	return count, nil
}

func (f *fakePropertyStore) ExpireDue(_ context.Context, now time.Time) (int64, error) {
	var count int64
	for id, p := range f.properties {
		if p.IsActive && p.ExpiresAt.Before(now) {
			p.IsActive = false
			f.properties[id] = p
			count++
		}
	}
	return count, nil
}

func (f *fakePropertyStore) ForceExpire(_ context.Context, id string, now time.Time) error {
	p, ok := f.properties[id]
	if !ok {
		return repository.ErrPropertyNotFound
	}
	p.IsActive = false
	p.ExpiresAt = now
	f.properties[id] = p
	return nil
}

func (f *fakePropertyStore) Renew(_ context.Context, id string, expiresAt time.Time, durationDays int) error {
	p, ok := f.properties[id]
	if !ok {
		return repository.ErrPropertyNotFound
	}
	p.IsActive = true
	p.ExpiresAt = expiresAt
	p.DurationDays = durationDays
	f.properties[id] = p
	return nil
}

func (f *fakePropertyStore) Delete(_ context.Context, id string) error {
	if _, ok := f.properties[id]; !ok {
		return repository.ErrPropertyNotFound
	}
	delete(f.properties, id)
	return nil
}

type fakeViewStore struct {
	views      []models.PropertyView
	properties *fakePropertyStore
}

func newFakeViewStore(properties *fakePropertyStore) *fakeViewStore {
	return &fakeViewStore{properties: properties}
}

func (f *fakeViewStore) inScope(v models.PropertyView, ownerID *string) bool {
	if ownerID == nil {
		return true
	}
	p, ok := f.properties.properties[v.PropertyID]
	return ok && p.OwnerID == *ownerID
}

func (f *fakeViewStore) Insert(_ context.Context, v models.PropertyView) error {
	f.views = append(f.views, v)
	return nil
}

func (f *fakeViewStore) CountViews(_ context.Context, ownerID *string, since *time.Time) (int64, error) {
	var count int64
	for _, v := range f.views {
		if !f.inScope(v, ownerID) {
			continue
		}
		if since != nil && v.CreatedAt.Before(*since) {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeViewStore) CountUniqueVisitors(_ context.Context, ownerID *string) (int64, error) {
	visitors := make(map[string]struct{})
	for _, v := range f.views {
		if v.VisitorID == nil || !f.inScope(v, ownerID) {
			continue
		}
		visitors[*v.VisitorID] = struct{}{}
	}
	return int64(len(visitors)), nil
}

func (f *fakeViewStore) TopProperties(_ context.Context, ownerID *string, limit int) ([]repository.PropertyViewCount, error) {
	counts := make(map[string]int64)
	for _, v := range f.views {
		if f.inScope(v, ownerID) {
			counts[v.PropertyID]++
		}
	}

	var out []repository.PropertyViewCount
	for id, count := range counts {
		p := f.properties.properties[id]
		out = append(out, repository.PropertyViewCount{
			PropertyID: id,
			Title:      p.Title,
			Location:   p.Location,
			Images:     p.Images,
			ViewCount:  count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ViewCount != out[j].ViewCount {
			return out[i].ViewCount > out[j].ViewCount
		}
		return out[i].PropertyID < out[j].PropertyID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeViewStore) RecentViews(_ context.Context, ownerID *string, limit int) ([]repository.RecentView, error) {
	var scoped []models.PropertyView
	for _, v := range f.views {
		if f.inScope(v, ownerID) {
			scoped = append(scoped, v)
		}
	}
	sort.Slice(scoped, func(i, j int) bool { return scoped[i].CreatedAt.After(scoped[j].CreatedAt) })
	if len(scoped) > limit {
		scoped = scoped[:limit]
	}

	out := make([]repository.RecentView, 0, len(scoped))
	for _, v := range scoped {
		p := f.properties.properties[v.PropertyID]
		out = append(out, repository.RecentView{
			ID:         v.ID,
			PropertyID: v.PropertyID,
			Title:      p.Title,
			Location:   p.Location,
			VisitorID:  v.VisitorID,
			ViewedAt:   v.CreatedAt,
		})
	}
	return out, nil
}

func (f *fakeViewStore) CountByProperty(_ context.Context, propertyID string) (int64, error) {
	var count int64
	for _, v := range f.views {
		if v.PropertyID == propertyID {
			count++
		}
	}
	return count, nil
}

func (f *fakeViewStore) DailyCounts(_ context.Context, propertyID string, since time.Time) ([]repository.DailyCount, error) {
	buckets := make(map[time.Time]int64)
	for _, v := range f.views {
		if v.PropertyID != propertyID || v.CreatedAt.Before(since) {
			continue
		}
		day := v.CreatedAt.UTC().Truncate(24 * time.Hour)
		buckets[day]++
	}

	var out []repository.DailyCount
	for day, count := range buckets {
		out = append(out, repository.DailyCount{Day: day, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

type fakeLeadStore struct {
	leads      map[string]models.Lead
	order      []string
	properties *fakePropertyStore
	sellers    map[string]string // seller id -> name
}

func newFakeLeadStore(properties *fakePropertyStore) *fakeLeadStore {
	return &fakeLeadStore{
		leads:      make(map[string]models.Lead),
		properties: properties,
		sellers:    make(map[string]string),
	}
}

func (f *fakeLeadStore) Create(_ context.Context, lead models.Lead) error {
	f.leads[lead.ID] = lead
	f.order = append(f.order, lead.ID)
	return nil
}

func (f *fakeLeadStore) GetByID(_ context.Context, id string) (models.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return models.Lead{}, repository.ErrLeadNotFound
	}
	return lead, nil
}

func (f *fakeLeadStore) List(_ context.Context, sellerID *string) ([]repository.LeadRow, error) {
	var out []repository.LeadRow
	for i := len(f.order) - 1; i >= 0; i-- {
		lead := f.leads[f.order[i]]
		if sellerID != nil && (lead.SellerID == nil || *lead.SellerID != *sellerID) {
			continue
		}
		row := repository.LeadRow{Lead: lead}
		if lead.PropertyID != nil {
			if p, ok := f.properties.properties[*lead.PropertyID]; ok {
				row.PropertyTitle = &p.Title
				row.PropertyLocation = &p.Location
			}
		}
		if lead.SellerID != nil {
			if name, ok := f.sellers[*lead.SellerID]; ok {
				row.SellerName = &name
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeLeadStore) UpdateStatus(_ context.Context, id string, status models.LeadStatus, now time.Time) error {
	lead, ok := f.leads[id]
	if !ok {
		return repository.ErrLeadNotFound
	}
	lead.Status = status
	lead.UpdatedAt = now
	f.leads[id] = lead
	return nil
}

func (f *fakeLeadStore) Delete(_ context.Context, id string) error {
	if _, ok := f.leads[id]; !ok {
		return repository.ErrLeadNotFound
	}
	delete(f.leads, id)
	return nil
}

type fakeDeduper struct {
	seen map[string]bool
	err  error
}

func (f *fakeDeduper) FirstSeen(_ context.Context, propertyID, visitorID string, _ time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	key := propertyID + "|" + visitorID
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

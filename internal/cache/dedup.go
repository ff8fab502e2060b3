package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewDeduper suppresses repeat view events for a property+visitor pair inside
// a rolling window. SET NX PX gives atomic first-seen semantics; the key
// expires on its own, so there is nothing to clean up.
type ViewDeduper struct {
	client *redis.Client
}

func NewViewDeduper(client *redis.Client) *ViewDeduper {
	return &ViewDeduper{client: client}
}

// FirstSeen reports whether this is the first view of propertyID by visitorID
// within the window. Errors are returned so the caller can decide to count the
// view anyway; losing the dedup window must never lose the event.
func (d *ViewDeduper) FirstSeen(ctx context.Context, propertyID, visitorID string, window time.Duration) (bool, error) {
	key := fmt.Sprintf("views:dedup:%s:%s", propertyID, visitorID)
	ok, err := d.client.SetNX(ctx, key, 1, window).Result()
	if err != nil {
		return false, fmt.Errorf("dedup setnx: %w", err)
	}
	return ok, nil
}

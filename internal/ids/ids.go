package ids

import (
	"fmt"

	"github.com/segmentio/ksuid"
)

const (
	PrefixProperty = "prop"
	PrefixView     = "view"
	PrefixLead     = "lead"
	PrefixUser     = "user"
)

// New returns a k-sortable identifier with an entity prefix, e.g. "prop_2bYx...".
func New(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, ksuid.New().String())
}

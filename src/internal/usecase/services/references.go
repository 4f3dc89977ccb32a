package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// newReference mints a ledger reference like FDACR-20260301-9F2C41AB.
// The tag names the event family; the UUID fragment keeps retried runs
// from colliding on reference alone.
func newReference(tag string, date time.Time) string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("FD%s-%s-%s", strings.ToUpper(tag), date.Format("20060102"), fragment)
}

// periodKeyFor is the canonical daily period key for idempotency
// markers.
func periodKeyFor(date time.Time) string {
	return date.Format(dateLayout)
}

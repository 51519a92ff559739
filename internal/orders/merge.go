package orders

import (
	"strings"
	"time"

	"github.com/velureshop/velure-backend/pkg/db/models"
)

const (
	orderDateLayout = "2006-01-02"
	orderTimeLayout = "15:04:05"
)

// parseOrderTimestamp combines the stored date and time-of-day columns
// into a single instant. ok is false when either part is malformed.
func parseOrderTimestamp(date, timeOfDay string) (time.Time, bool) {
	raw := strings.TrimSpace(date) + " " + strings.TrimSpace(timeOfDay)
	ts, err := time.ParseInLocation(orderDateLayout+" "+orderTimeLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// findMergeTarget picks the order a new purchase intent should fold into:
// the first candidate placed within the closed window [now-window, now].
// Candidates are expected most recent first. Rows whose stored timestamp
// does not parse are skipped so dirty historical data never blocks
// checkout, and future-dated rows are ignored rather than matched.
func findMergeTarget(candidates []models.Order, now time.Time, window time.Duration) *models.Order {
	for i := range candidates {
		ts, ok := parseOrderTimestamp(candidates[i].OrderDate, candidates[i].OrderTime)
		if !ok {
			continue
		}
		if ts.After(now) {
			continue
		}
		if now.Sub(ts) > window {
			continue
		}
		return &candidates[i]
	}
	return nil
}

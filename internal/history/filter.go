package history

import (
	"time"

	"github.com/pr-poehali-dev/planeval/internal/model"
)

// Criteria narrows a history list. Every field is independently optional;
// nil / zero values impose no constraint.
type Criteria struct {
	Score      *int
	DateFrom   time.Time // inclusive, compared from start of day
	DateTo     time.Time // inclusive, compared to end of day
	PercentMin *float64
	PercentMax *float64
}

// IsZero reports whether no criterion is active.
func (c Criteria) IsZero() bool {
	return c.Score == nil && c.DateFrom.IsZero() && c.DateTo.IsZero() &&
		c.PercentMin == nil && c.PercentMax == nil
}

// Apply returns the records matching all active criteria, preserving the
// original most-recent-first order. Filters are pure: applying the same
// criteria to the output yields the same output.
func Apply(records []model.Record, c Criteria) []model.Record {
	if c.IsZero() {
		out := make([]model.Record, len(records))
		copy(out, records)
		return out
	}

	var from, to time.Time
	if !c.DateFrom.IsZero() {
		from = startOfDay(c.DateFrom)
	}
	if !c.DateTo.IsZero() {
		to = endOfDay(c.DateTo)
	}

	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if c.Score != nil && r.Score != *c.Score {
			continue
		}
		if !from.IsZero() && r.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && r.CreatedAt.After(to) {
			continue
		}
		pct := r.EffectivePercentage()
		if c.PercentMin != nil && pct < *c.PercentMin {
			continue
		}
		if c.PercentMax != nil && pct > *c.PercentMax {
			continue
		}
		out = append(out, r)
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_999_999, t.Location())
}

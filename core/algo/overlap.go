package algo

import (
	"slices"
	"time"

	"github.com/huangsam/timelane/schema"
)

// event is a single step of the sweep: +1 when an item starts, -1 when it ends.
type event struct {
	at    time.Time
	delta int
}

// MaxOverlap returns the peak number of items active on the same day.
// Empty input returns 0.
func MaxOverlap(items []schema.TimelineItem) int {
	if len(items) == 0 {
		return 0
	}

	events := make([]event, 0, 2*len(items))
	for _, item := range items {
		span := NewSpan(item.StartDate, item.EndDate)
		events = append(events,
			event{at: span.Start, delta: 1},
			event{at: span.ExclusiveEnd(), delta: -1},
		)
	}

	// Ends sort before starts on the same day.
	slices.SortFunc(events, func(a, b event) int {
		if c := a.at.Compare(b.at); c != 0 {
			return c
		}
		return a.delta - b.delta
	})

	active, peak := 0, 0
	for _, e := range events {
		active += e.delta
		peak = max(peak, active)
	}
	return peak
}

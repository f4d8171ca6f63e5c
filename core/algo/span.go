// Package algo has the layout algorithms: grouping, lane placement and overlap counting.
package algo

import (
	"time"

	"github.com/huangsam/timelane/core/calendar"
)

// Span is the day-normalized, half-open range [Start, End) covered by an item.
// End is the day after the item's last day.
type Span struct {
	Start time.Time
	End   time.Time
}

// NewSpan builds the span of an inclusive date range.
func NewSpan(start, end time.Time) Span {
	return Span{
		Start: calendar.Midnight(start),
		End:   calendar.AddDays(end, 1),
	}
}

// Overlaps reports whether the two spans share at least one day.
// Items that touch on a boundary day overlap; items on consecutive days do not.
func (s Span) Overlaps(other Span) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

// ExclusiveEnd returns the first day not covered by the span.
func (s Span) ExclusiveEnd() time.Time {
	return s.End
}

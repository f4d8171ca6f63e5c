package algo

import (
	"time"

	"github.com/huangsam/timelane/schema"
)

// FindPlacement returns the lowest lane in which an item spanning start..end
// overlaps no existing placement. When every used lane is taken it opens a
// new one right after the highest.
func FindPlacement(existing []schema.Placement, start, end time.Time) int {
	if len(existing) == 0 {
		return 0
	}

	maxColumn := 0
	for _, p := range existing {
		maxColumn = max(maxColumn, p.Column)
	}

	candidate := NewSpan(start, end)
	for col := 0; col <= maxColumn; col++ {
		if columnFree(existing, col, candidate) {
			return col
		}
	}
	return maxColumn + 1
}

func columnFree(existing []schema.Placement, col int, candidate Span) bool {
	for _, p := range existing {
		if p.Column != col {
			continue
		}
		if candidate.Overlaps(NewSpan(p.StartDate, p.EndDate)) {
			return false
		}
	}
	return true
}

// PlaceGroup assigns lanes to items in the order given. It never sorts, so
// callers pass items already ordered by start date.
func PlaceGroup(items []schema.TimelineItem) []schema.Placement {
	placements := make([]schema.Placement, 0, len(items))
	for _, item := range items {
		placements = append(placements, schema.Placement{
			Column:    FindPlacement(placements, item.StartDate, item.EndDate),
			Item:      item,
			StartDate: item.StartDate,
			EndDate:   item.EndDate,
		})
	}
	return placements
}

// LaneCount returns the number of lanes used by the placements.
func LaneCount(placements []schema.Placement) int {
	if len(placements) == 0 {
		return 0
	}
	highest := 0
	for _, p := range placements {
		highest = max(highest, p.Column)
	}
	return highest + 1
}

package algo

import (
	"fmt"
	"testing"

	"github.com/huangsam/timelane/schema"
)

// FuzzPlaceGroup decodes pairs of bytes into (start, length) items and checks
// that no two items sharing a lane overlap and that the lane count never drops
// below the peak overlap.
func FuzzPlaceGroup(f *testing.F) {
	f.Add([]byte{0, 2, 1, 2, 2, 2})
	f.Add([]byte{0, 4, 5, 4})
	f.Add([]byte{3, 0, 3, 0, 3, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 256 {
			t.Skip()
		}
		base := day("2024-01-01")
		var items []schema.TimelineItem
		for i := 0; i+1 < len(data); i += 2 {
			start := base.AddDate(0, 0, int(data[i]))
			items = append(items, schema.TimelineItem{
				ID:        fmt.Sprint(i),
				StartDate: start,
				EndDate:   start.AddDate(0, 0, int(data[i+1]%32)),
			})
		}
		groups := GroupBy(items, func(schema.TimelineItem) (string, bool) { return "g", true }, func(a, b string) int { return 0 })
		if len(items) == 0 {
			if len(groups) != 0 {
				t.Fatalf("expected no groups, got %d", len(groups))
			}
			return
		}

		placements := PlaceGroup(groups[0].GroupItems)
		for i := range placements {
			for j := i + 1; j < len(placements); j++ {
				a, b := placements[i], placements[j]
				if a.Column == b.Column && NewSpan(a.StartDate, a.EndDate).Overlaps(NewSpan(b.StartDate, b.EndDate)) {
					t.Fatalf("items %s and %s overlap in lane %d", a.Item.ID, b.Item.ID, a.Column)
				}
			}
		}
		peak := MaxOverlap(items)
		if peak > len(items) || LaneCount(placements) < peak {
			t.Fatalf("peak %d, lanes %d, items %d", peak, LaneCount(placements), len(items))
		}
	})
}

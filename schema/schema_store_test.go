package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, _ := time.Parse(DateFormat, s)
	return t
}

func TestPlacementRecordsFrom(t *testing.T) {
	result := LayoutResult{
		TotalItems: 3,
		Groups: []GroupLayout{
			{
				Title: "core",
				Placements: []PlacedItem{
					{Placement: Placement{Column: 0, Item: TimelineItem{ID: "a"}, StartDate: day("2024-01-01"), EndDate: day("2024-01-05")}, StartOffset: 0, DurationDays: 5},
					{Placement: Placement{Column: 1, Item: TimelineItem{ID: "b"}, StartDate: day("2024-01-03"), EndDate: day("2024-01-03")}, StartOffset: 2, DurationDays: 1},
				},
			},
			{
				Title: UnknownGroup,
				Placements: []PlacedItem{
					{Placement: Placement{Column: 0, Item: TimelineItem{ID: "c"}, StartDate: day("2024-02-01"), EndDate: day("2024-02-10")}, StartOffset: 31, DurationDays: 10},
				},
			},
		},
	}

	records := PlacementRecordsFrom(7, result)
	assert.Len(t, records, 3)
	assert.Equal(t, PlacementRecord{
		RunID:        7,
		ItemID:       "b",
		GroupTitle:   "core",
		Lane:         1,
		StartDate:    "2024-01-03",
		EndDate:      "2024-01-03",
		StartOffset:  2,
		DurationDays: 1,
	}, records[1])
	assert.Equal(t, UnknownGroup, records[2].GroupTitle)
	assert.Equal(t, 31, records[2].StartOffset)
}

func TestPlacementRecordsFromEmpty(t *testing.T) {
	records := PlacementRecordsFrom(1, LayoutResult{})
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

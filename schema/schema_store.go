package schema

import "time"

// RunRecord represents a row from the timelane_layout_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int64
	TotalItems    *int
	TotalGroups   *int
	ConfigParams  *string
}

// PlacementRecord represents a row from the timelane_placements table.
type PlacementRecord struct {
	RunID        int64
	ItemID       string
	GroupTitle   string
	Lane         int
	StartDate    string // YYYY-MM-DD
	EndDate      string // YYYY-MM-DD
	StartOffset  int
	DurationDays int
}

// PlacementRecordsFrom flattens a layout into placement rows for a run.
func PlacementRecordsFrom(runID int64, result LayoutResult) []PlacementRecord {
	records := make([]PlacementRecord, 0, result.TotalItems)
	for _, g := range result.Groups {
		for _, p := range g.Placements {
			records = append(records, PlacementRecord{
				RunID:        runID,
				ItemID:       p.Item.ID,
				GroupTitle:   g.Title,
				Lane:         p.Column,
				StartDate:    p.StartDate.Format(DateFormat),
				EndDate:      p.EndDate.Format(DateFormat),
				StartOffset:  p.StartOffset,
				DurationDays: p.DurationDays,
			})
		}
	}
	return records
}

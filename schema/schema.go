// Package schema has models, constants and records shared by all parts of timelane.
package schema

import "time"

// TimelineItem is a single date-ranged entry on the timeline, such as a project
// or a milestone on a roadmap. Only ID and the two dates matter to the layout
// engine; every other field exists for grouping and display.
type TimelineItem struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	StartDate  time.Time         `json:"start_date"`
	EndDate    time.Time         `json:"end_date"`
	Team       string            `json:"team,omitempty"`
	Status     string            `json:"status,omitempty"`
	Priority   string            `json:"priority,omitempty"`
	Category   string            `json:"category,omitempty"`
	Progress   *float64          `json:"progress,omitempty"` // nil when not given
	Attributes map[string]string `json:"attributes,omitempty"` // Extra fields, opaque to layout
}

// Group is a bucket of items sharing the same value of the grouping field.
type Group struct {
	GroupTitle string         `json:"group_title"`
	GroupItems []TimelineItem `json:"group_items"`
}

// Placement assigns an item to a lane within its group.
type Placement struct {
	Column    int          `json:"column"` // 0-based lane index within the group
	Item      TimelineItem `json:"item"`
	StartDate time.Time    `json:"start_date"`
	EndDate   time.Time    `json:"end_date"`
}

// TimelineInterval is the contiguous list of years spanned by a data set,
// plus the 0-based month of the first year at which the timeline begins.
type TimelineInterval struct {
	Years      []int `json:"years"`
	StartMonth int   `json:"start_month"`
}

// Origin is day-offset zero of a timeline: day 1 of Month (0-based) in Year.
type Origin struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// PlacedItem is a placement enriched with its position on the day axis.
type PlacedItem struct {
	Placement
	StartOffset  int `json:"start_offset"`  // Days from the origin to the start date
	EndOffset    int `json:"end_offset"`    // Days from the origin to the end date
	DurationDays int `json:"duration_days"` // Inclusive day count
}

// GroupLayout is the computed layout for a single group.
type GroupLayout struct {
	Title      string       `json:"title"`
	Lanes      int          `json:"lanes"`       // Number of lanes used by the placements
	MaxOverlap int          `json:"max_overlap"` // Peak number of simultaneously active items
	Placements []PlacedItem `json:"placements"`
}

// LayoutResult is the complete layout of a timeline.
type LayoutResult struct {
	GroupBy    string           `json:"group_by"`
	Origin     Origin           `json:"origin"`
	Interval   TimelineInterval `json:"interval"`
	TotalDays  int              `json:"total_days"`
	TotalItems int              `json:"total_items"`
	Groups     []GroupLayout    `json:"groups"`
}

// OffsetResult is the answer of a single date/offset conversion.
type OffsetResult struct {
	Date   string   `json:"date"`
	Origin string   `json:"origin"`
	Offset int      `json:"offset"`
	Pixels *float64 `json:"pixels,omitempty"` // Set only when a day width is configured
}

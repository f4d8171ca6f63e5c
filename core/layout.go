package core

import (
	"time"

	"github.com/huangsam/timelane/core/algo"
	"github.com/huangsam/timelane/core/calendar"
	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/schema"
)

// LayoutOptions controls how items are grouped and positioned.
type LayoutOptions struct {
	GroupBy  string         // Field used to bucket items
	Locale   string         // Collation language for group titles
	PadYears int            // Trailing years added to the interval
	Now      time.Time      // Interval fallback when there are no items
	Origin   *schema.Origin // Day zero; derived from the interval when nil
}

// OptionsFromConfig returns the layout options carried by cfg.
func OptionsFromConfig(cfg *contract.Config) LayoutOptions {
	opts := LayoutOptions{
		GroupBy:  cfg.GroupBy,
		Locale:   cfg.Locale,
		PadYears: cfg.PadYears,
		Now:      cfg.Today,
	}
	if cfg.HasOrigin {
		origin := cfg.Origin
		opts.Origin = &origin
	}
	return opts
}

// BuildLayout validates the items, groups them, assigns every item a lane in
// its group and positions it on the day axis.
func BuildLayout(items []schema.TimelineItem, opts LayoutOptions) (schema.LayoutResult, error) {
	if err := algo.ValidateItems(items); err != nil {
		return schema.LayoutResult{}, err
	}

	groupBy := opts.GroupBy
	if groupBy == "" {
		groupBy = schema.DefaultGroupField
	}
	cmp, err := algo.NewComparer(opts.Locale)
	if err != nil {
		return schema.LayoutResult{}, err
	}
	groups := algo.GroupBy(items, algo.FieldKey(groupBy), cmp)

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	interval := calendar.Interval(items, now, opts.PadYears)
	origin := calendar.OriginOf(interval)
	if opts.Origin != nil {
		origin = *opts.Origin
	}

	result := schema.LayoutResult{
		GroupBy:    groupBy,
		Origin:     origin,
		Interval:   interval,
		TotalDays:  calendar.TotalDaysFrom(interval, origin),
		TotalItems: len(items),
		Groups:     make([]schema.GroupLayout, 0, len(groups)),
	}
	for _, g := range groups {
		result.Groups = append(result.Groups, layoutGroup(g, origin))
	}
	return result, nil
}

func layoutGroup(g schema.Group, origin schema.Origin) schema.GroupLayout {
	placements := algo.PlaceGroup(g.GroupItems)
	placed := make([]schema.PlacedItem, len(placements))
	for i, p := range placements {
		placed[i] = schema.PlacedItem{
			Placement:    p,
			StartOffset:  calendar.DateToDayOffset(p.StartDate, origin),
			EndOffset:    calendar.DateToDayOffset(p.EndDate, origin),
			DurationDays: calendar.DurationDays(p.StartDate, p.EndDate),
		}
	}
	return schema.GroupLayout{
		Title:      g.GroupTitle,
		Lanes:      algo.LaneCount(placements),
		MaxOverlap: algo.MaxOverlap(g.GroupItems),
		Placements: placed,
	}
}

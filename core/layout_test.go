package core

import (
	"testing"
	"time"

	"github.com/huangsam/timelane/core/algo"
	"github.com/huangsam/timelane/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func item(id, team string, start, end time.Time) schema.TimelineItem {
	return schema.TimelineItem{ID: id, Name: id, Team: team, StartDate: start, EndDate: end}
}

// roadmap has two teams, one of them with three chained overlaps.
func roadmap() []schema.TimelineItem {
	return []schema.TimelineItem{
		item("C", "core", day(2024, time.January, 4), day(2024, time.January, 5)),
		item("A", "core", day(2024, time.January, 1), day(2024, time.January, 3)),
		item("D", "infra", day(2024, time.February, 1), day(2024, time.February, 1)),
		item("B", "core", day(2024, time.January, 2), day(2024, time.January, 4)),
	}
}

func lanesByID(g schema.GroupLayout) map[string]int {
	lanes := make(map[string]int, len(g.Placements))
	for _, p := range g.Placements {
		lanes[p.Item.ID] = p.Column
	}
	return lanes
}

func TestBuildLayout(t *testing.T) {
	result, err := BuildLayout(roadmap(), LayoutOptions{GroupBy: "team", Locale: "en", PadYears: 1})
	require.NoError(t, err)

	assert.Equal(t, "team", result.GroupBy)
	assert.Equal(t, schema.Origin{Year: 2024, Month: 0}, result.Origin)
	assert.Equal(t, []int{2024, 2025}, result.Interval.Years)
	assert.Equal(t, 0, result.Interval.StartMonth)
	assert.Equal(t, 366+365, result.TotalDays)
	assert.Equal(t, 4, result.TotalItems)
	require.Len(t, result.Groups, 2)

	core := result.Groups[0]
	assert.Equal(t, "core", core.Title)
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 0}, lanesByID(core))
	assert.Equal(t, 2, core.Lanes)
	assert.Equal(t, 2, core.MaxOverlap)

	// Placements follow start date order within a group
	ids := make([]string, 0, len(core.Placements))
	for _, p := range core.Placements {
		ids = append(ids, p.Item.ID)
	}
	assert.Equal(t, []string{"A", "B", "C"}, ids)

	infra := result.Groups[1]
	assert.Equal(t, "infra", infra.Title)
	require.Len(t, infra.Placements, 1)
	assert.Equal(t, 31, infra.Placements[0].StartOffset)
	assert.Equal(t, 31, infra.Placements[0].EndOffset)
	assert.Equal(t, 1, infra.Placements[0].DurationDays)
	assert.Equal(t, 1, infra.Lanes)
	assert.Equal(t, 1, infra.MaxOverlap)
}

func TestBuildLayoutOffsets(t *testing.T) {
	items := []schema.TimelineItem{item("A", "core", day(2024, time.March, 10), day(2024, time.March, 12))}

	tests := []struct {
		name        string
		origin      *schema.Origin
		wantStart   int
		wantEnd     int
		wantOrigin  schema.Origin
		wantDaysMin int
	}{
		{"derived origin", nil, 9, 11, schema.Origin{Year: 2024, Month: 2}, 1},
		{"explicit earlier origin", &schema.Origin{Year: 2024, Month: 0}, 31 + 29 + 9, 31 + 29 + 11, schema.Origin{Year: 2024, Month: 0}, 1},
		{"origin after the item clamps to 0", &schema.Origin{Year: 2024, Month: 5}, 0, 0, schema.Origin{Year: 2024, Month: 5}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := BuildLayout(items, LayoutOptions{Origin: tt.origin})
			require.NoError(t, err)
			assert.Equal(t, tt.wantOrigin, result.Origin)
			p := result.Groups[0].Placements[0]
			assert.Equal(t, tt.wantStart, p.StartOffset)
			assert.Equal(t, tt.wantEnd, p.EndOffset)
			assert.Equal(t, 3, p.DurationDays)
			assert.GreaterOrEqual(t, result.TotalDays, tt.wantDaysMin)
		})
	}
}

func TestBuildLayoutGrouping(t *testing.T) {
	items := []schema.TimelineItem{
		item("1", "zeta", day(2024, time.January, 1), day(2024, time.January, 1)),
		item("2", "", day(2024, time.January, 1), day(2024, time.January, 1)),
		item("3", "Alpha", day(2024, time.January, 1), day(2024, time.January, 1)),
		{ID: "4", StartDate: day(2024, time.January, 1), EndDate: day(2024, time.January, 1), Attributes: map[string]string{"region": "emea"}},
	}

	t.Run("by team", func(t *testing.T) {
		result, err := BuildLayout(items, LayoutOptions{GroupBy: "team", Locale: "en"})
		require.NoError(t, err)
		var titles []string
		for _, g := range result.Groups {
			titles = append(titles, g.Title)
		}
		assert.Equal(t, []string{"Alpha", schema.UnknownGroup, "zeta"}, titles)
	})

	t.Run("by attribute", func(t *testing.T) {
		result, err := BuildLayout(items, LayoutOptions{GroupBy: "region"})
		require.NoError(t, err)
		require.Len(t, result.Groups, 2)
		assert.Equal(t, "emea", result.Groups[0].Title)
		assert.Len(t, result.Groups[1].Placements, 3)
	})

	t.Run("default field", func(t *testing.T) {
		result, err := BuildLayout(items, LayoutOptions{})
		require.NoError(t, err)
		assert.Equal(t, schema.DefaultGroupField, result.GroupBy)
	})
}

func TestBuildLayoutEmpty(t *testing.T) {
	now := day(2026, time.October, 18)
	result, err := BuildLayout(nil, LayoutOptions{Now: now, PadYears: 1})
	require.NoError(t, err)

	assert.NotNil(t, result.Groups)
	assert.Empty(t, result.Groups)
	assert.Equal(t, 0, result.TotalItems)
	assert.Equal(t, []int{2026, 2027}, result.Interval.Years)
	assert.Equal(t, 9, result.Interval.StartMonth)
	assert.Equal(t, schema.Origin{Year: 2026, Month: 9}, result.Origin)
}

func TestBuildLayoutErrors(t *testing.T) {
	tests := []struct {
		name  string
		items []schema.TimelineItem
		opts  LayoutOptions
		want  error
	}{
		{
			name:  "end before start",
			items: []schema.TimelineItem{item("A", "core", day(2024, time.January, 5), day(2024, time.January, 1))},
			want:  algo.ErrInvalidRange,
		},
		{
			name: "duplicate id",
			items: []schema.TimelineItem{
				item("A", "core", day(2024, time.January, 1), day(2024, time.January, 1)),
				item("A", "infra", day(2024, time.January, 2), day(2024, time.January, 2)),
			},
			want: algo.ErrDuplicateID,
		},
		{
			name:  "missing id",
			items: []schema.TimelineItem{item("", "core", day(2024, time.January, 1), day(2024, time.January, 1))},
			want:  algo.ErrEmptyID,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildLayout(tt.items, tt.opts)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("invalid locale", func(t *testing.T) {
		_, err := BuildLayout(roadmap(), LayoutOptions{Locale: "not a locale!"})
		assert.Error(t, err)
	})
}

func TestBuildLayoutNoLaneConflicts(t *testing.T) {
	var items []schema.TimelineItem
	base := day(2024, time.January, 1)
	for i := range 40 {
		start := base.AddDate(0, 0, (i*7)%30)
		items = append(items, item(string(rune('a'+i%26))+string(rune('0'+i/26)), "core", start, start.AddDate(0, 0, i%5)))
	}

	result, err := BuildLayout(items, LayoutOptions{})
	require.NoError(t, err)
	placements := result.Groups[0].Placements
	for i, a := range placements {
		for _, b := range placements[i+1:] {
			if a.Column != b.Column {
				continue
			}
			sa := algo.NewSpan(a.StartDate, a.EndDate)
			sb := algo.NewSpan(b.StartDate, b.EndDate)
			assert.False(t, sa.Overlaps(sb), "%s and %s share lane %d", a.Item.ID, b.Item.ID, a.Column)
		}
	}
	assert.GreaterOrEqual(t, result.Groups[0].Lanes, result.Groups[0].MaxOverlap)
}

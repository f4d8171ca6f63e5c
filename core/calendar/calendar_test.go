package calendar

import (
	"testing"
	"time"

	"github.com/huangsam/timelane/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func item(id string, start, end time.Time) schema.TimelineItem {
	return schema.TimelineItem{ID: id, Name: id, StartDate: start, EndDate: end}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		want  int
	}{
		{"january", 2024, 0, 31},
		{"leap february", 2024, 1, 29},
		{"common february", 2023, 1, 28},
		{"century non-leap february", 1900, 1, 28},
		{"quadricentennial leap february", 2000, 1, 29},
		{"april", 2024, 3, 30},
		{"december", 2024, 11, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestMidnight(t *testing.T) {
	t.Run("drops time of day", func(t *testing.T) {
		in := time.Date(2024, time.March, 10, 23, 59, 59, 999, time.Local)
		assert.True(t, date(2024, time.March, 10).Equal(Midnight(in)))
	})

	t.Run("keeps calendar date from another zone", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*60*60)
		in := time.Date(2024, time.March, 10, 1, 0, 0, 0, tokyo)
		got := Midnight(in)
		assert.Equal(t, 10, got.Day())
		assert.Equal(t, time.March, got.Month())
		assert.Equal(t, time.UTC, got.Location())
	})
}

func TestDurationDays(t *testing.T) {
	d := date(2024, time.January, 15)

	t.Run("same day is one", func(t *testing.T) {
		assert.Equal(t, 1, DurationDays(d, d))
	})

	t.Run("consecutive days is two", func(t *testing.T) {
		assert.Equal(t, 2, DurationDays(d, d.AddDate(0, 0, 1)))
	})

	t.Run("ignores time of day", func(t *testing.T) {
		start := time.Date(2024, time.January, 15, 23, 0, 0, 0, time.Local)
		end := time.Date(2024, time.January, 16, 1, 0, 0, 0, time.Local)
		assert.Equal(t, 2, DurationDays(start, end))
	})

	t.Run("spans leap day", func(t *testing.T) {
		assert.Equal(t, 3, DurationDays(date(2024, time.February, 28), date(2024, time.March, 1)))
		assert.Equal(t, 2, DurationDays(date(2023, time.February, 28), date(2023, time.March, 1)))
	})

	t.Run("full leap year", func(t *testing.T) {
		assert.Equal(t, 366, DurationDays(date(2024, time.January, 1), date(2024, time.December, 31)))
	})

	t.Run("across a DST change", func(t *testing.T) {
		ny, err := time.LoadLocation("America/New_York")
		if err != nil {
			t.Skip("tzdata not available")
		}
		start := time.Date(2024, time.March, 9, 0, 0, 0, 0, ny)
		end := time.Date(2024, time.March, 11, 0, 0, 0, 0, ny)
		assert.Equal(t, 3, DurationDays(start, end))
	})
}

func TestInterval(t *testing.T) {
	now := date(2026, time.October, 18)

	t.Run("empty falls back to now", func(t *testing.T) {
		got := Interval(nil, now, 1)
		assert.Equal(t, []int{2026, 2027}, got.Years)
		assert.Equal(t, 9, got.StartMonth)
	})

	t.Run("single year without padding", func(t *testing.T) {
		items := []schema.TimelineItem{
			item("a", date(2024, time.March, 5), date(2024, time.April, 1)),
			item("b", date(2024, time.February, 10), date(2024, time.June, 1)),
		}
		got := Interval(items, now, 0)
		assert.Equal(t, []int{2024}, got.Years)
		assert.Equal(t, 1, got.StartMonth)
	})

	t.Run("multi year with padding", func(t *testing.T) {
		items := []schema.TimelineItem{
			item("a", date(2023, time.November, 5), date(2024, time.April, 1)),
			item("b", date(2024, time.February, 10), date(2025, time.January, 3)),
		}
		got := Interval(items, now, 2)
		assert.Equal(t, []int{2023, 2024, 2025, 2026, 2027}, got.Years)
		assert.Equal(t, 10, got.StartMonth)
	})

	t.Run("negative padding is ignored", func(t *testing.T) {
		items := []schema.TimelineItem{item("a", date(2024, time.May, 1), date(2024, time.May, 2))}
		got := Interval(items, now, -3)
		assert.Equal(t, []int{2024}, got.Years)
	})
}

func TestDateToDayOffset(t *testing.T) {
	origin := schema.Origin{Year: 2024, Month: 0}

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"origin day", date(2024, time.January, 1), 0},
		{"end of january", date(2024, time.January, 31), 30},
		{"leap day", date(2024, time.February, 29), 59},
		{"march first of leap year", date(2024, time.March, 1), 60},
		{"next year", date(2025, time.January, 1), 366},
		{"before origin clamps", date(2023, time.December, 31), 0},
		{"far before origin clamps", date(1999, time.June, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateToDayOffset(tt.date, origin))
		})
	}

	t.Run("mid-year origin", func(t *testing.T) {
		o := schema.Origin{Year: 2023, Month: 10}
		assert.Equal(t, 30, DateToDayOffset(date(2023, time.December, 1), o))
		assert.Equal(t, 61, DateToDayOffset(date(2024, time.January, 1), o))
	})
}

func TestDayOffsetToDate(t *testing.T) {
	origin := schema.Origin{Year: 2024, Month: 0}

	assert.True(t, date(2024, time.January, 1).Equal(DayOffsetToDate(0, origin)))
	assert.True(t, date(2024, time.February, 29).Equal(DayOffsetToDate(59, origin)))
	assert.True(t, date(2024, time.March, 1).Equal(DayOffsetToDate(60, origin)))
	assert.True(t, date(2025, time.January, 1).Equal(DayOffsetToDate(366, origin)))

	t.Run("negative clamps to origin", func(t *testing.T) {
		assert.True(t, date(2024, time.January, 1).Equal(DayOffsetToDate(-10, origin)))
	})

	t.Run("origin month out of range is normalized", func(t *testing.T) {
		got := DayOffsetToDate(0, schema.Origin{Year: 2023, Month: 12})
		assert.True(t, date(2024, time.January, 1).Equal(got))
	})
}

func TestDateOffsetRoundTrip(t *testing.T) {
	origins := []schema.Origin{
		{Year: 2024, Month: 0},
		{Year: 2023, Month: 1},
		{Year: 1999, Month: 11},
	}

	for _, o := range origins {
		start := OriginDate(o)
		for i := range 1200 {
			d := start.AddDate(0, 0, i)
			offset := DateToDayOffset(d, o)
			require.Equal(t, i, offset, "offset for %s from %v", d.Format(schema.DateFormat), o)
			require.True(t, Midnight(d).Equal(DayOffsetToDate(offset, o)), "round trip for %s", d.Format(schema.DateFormat))
		}
	}
}

func TestTotalDays(t *testing.T) {
	assert.Equal(t, 366, TotalDays(schema.TimelineInterval{Years: []int{2024}, StartMonth: 0}))
	assert.Equal(t, 366+365, TotalDays(schema.TimelineInterval{Years: []int{2024, 2025}, StartMonth: 0}))
	assert.Equal(t, 31, TotalDays(schema.TimelineInterval{Years: []int{2023}, StartMonth: 11}))
	assert.Equal(t, 0, TotalDays(schema.TimelineInterval{}))
}

func TestAddDays(t *testing.T) {
	assert.True(t, date(2024, time.March, 1).Equal(AddDays(date(2024, time.February, 29), 1)))
	assert.True(t, date(2023, time.December, 31).Equal(AddDays(date(2024, time.January, 1), -1)))
}

func TestTotalDaysFrom(t *testing.T) {
	interval := schema.TimelineInterval{Years: []int{2024}, StartMonth: 0}
	assert.Equal(t, 366-31, TotalDaysFrom(interval, schema.Origin{Year: 2024, Month: 1}))
	assert.Equal(t, 366+365, TotalDaysFrom(interval, schema.Origin{Year: 2023, Month: 0}))
	assert.Equal(t, 0, TotalDaysFrom(interval, schema.Origin{Year: 2025, Month: 0}), "origin after the interval")
}

func TestPixelMath(t *testing.T) {
	tests := []struct {
		name     string
		px       float64
		dayWidth float64
		want     int
	}{
		{"exact day boundary", 40, 4, 10},
		{"floors inside a day", 43.9, 4, 10},
		{"fractional width", 10, 2.5, 4},
		{"zero width", 10, 0, 0},
		{"negative position", -3, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OffsetAtPixel(tt.px, tt.dayWidth))
		})
	}

	assert.InDelta(t, 25.0, PixelOffset(10, 2.5), 1e-9)
	for offset := range 500 {
		assert.Equal(t, offset, OffsetAtPixel(PixelOffset(offset, 3)+1, 3))
	}
}

// withLocal runs the rest of the test with time.Local set to the named zone.
func withLocal(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("tzdata for %s not available", name)
	}
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })
	return loc
}

func TestMidnightDSTZones(t *testing.T) {
	// Sao Paulo started DST at 00:00 on 2018-11-04, so that local midnight never happened.
	sp := withLocal(t, "America/Sao_Paulo")
	origin := schema.Origin{Year: 2018, Month: 10}
	nov3, nov4 := date(2018, time.November, 3), date(2018, time.November, 4)

	t.Run("calendar date of a zoned time", func(t *testing.T) {
		got := Midnight(time.Date(2018, time.November, 4, 12, 0, 0, 0, sp))
		assert.True(t, nov4.Equal(got))
		assert.Equal(t, 4, got.Day())
	})

	t.Run("add days crosses the gap", func(t *testing.T) {
		next := AddDays(nov3, 1)
		assert.True(t, nov4.Equal(next))
		assert.True(t, next.After(nov3))
	})

	t.Run("duration", func(t *testing.T) {
		assert.Equal(t, 2, DurationDays(nov3, nov4))
	})

	t.Run("offsets", func(t *testing.T) {
		assert.Equal(t, 3, DateToDayOffset(nov4, origin))
		assert.Equal(t, "2018-11-04", DayOffsetToDate(3, origin).Format(schema.DateFormat))
		assert.Equal(t, "2018-11-03", DayOffsetToDate(2, origin).Format(schema.DateFormat))
	})
}

func TestDayWalkAcrossZones(t *testing.T) {
	for _, zone := range []string{"America/Sao_Paulo", "Pacific/Apia", "Asia/Tehran", "America/Santiago"} {
		t.Run(zone, func(t *testing.T) {
			withLocal(t, zone)
			origin := schema.Origin{Year: 1970, Month: 0}
			d := OriginDate(origin)
			for offset := range 40000 {
				require.Equal(t, offset, DateToDayOffset(d, origin), "offset of %s", d.Format(schema.DateFormat))
				require.True(t, d.Equal(DayOffsetToDate(offset, origin)), "date at offset %d", offset)
				next := AddDays(d, 1)
				require.Equal(t, 2, DurationDays(d, next), "duration from %s", d.Format(schema.DateFormat))
				d = next
			}
		})
	}
}

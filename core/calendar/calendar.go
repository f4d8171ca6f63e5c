// Package calendar converts between calendar dates and day offsets on a timeline.
// All math walks real months, so month lengths and leap years are always exact.
//
// A calendar day is represented as UTC midnight of that date. Local midnight
// does not exist on days where DST starts at 00:00, so it is never used.
package calendar

import (
	"math"
	"time"

	"github.com/huangsam/timelane/schema"
)

const monthsPerYear = 12

// Midnight returns UTC midnight of t's calendar date, where the calendar
// date is read in t's own location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the 0-based month of year.
// Day 0 of the following month is the last day of this one.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// civilDay is the number of days from the Unix epoch to t's calendar date.
func civilDay(t time.Time) int64 {
	return Midnight(t).Unix() / 86400
}

// DurationDays returns the inclusive number of calendar days from start to end.
// The same day counts as 1 and consecutive days as 2.
func DurationDays(start, end time.Time) int {
	return int(civilDay(end)-civilDay(start)) + 1
}

// AddDays moves t by n calendar days and returns UTC midnight of the result.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, time.UTC)
}

// Interval returns the contiguous years spanned by the items, from the year of
// the earliest start through the year of the latest end plus padYears trailing
// years, along with the 0-based month of the earliest start.
//
// An empty item list falls back to the year and month of now.
func Interval(items []schema.TimelineItem, now time.Time, padYears int) schema.TimelineInterval {
	if padYears < 0 {
		padYears = 0
	}

	if len(items) == 0 {
		return schema.TimelineInterval{
			Years:      yearRange(now.Year(), now.Year()+padYears),
			StartMonth: int(now.Month()) - 1,
		}
	}

	earliest := Midnight(items[0].StartDate)
	latest := Midnight(items[0].EndDate)
	for _, item := range items[1:] {
		if s := Midnight(item.StartDate); s.Before(earliest) {
			earliest = s
		}
		if e := Midnight(item.EndDate); e.After(latest) {
			latest = e
		}
	}

	return schema.TimelineInterval{
		Years:      yearRange(earliest.Year(), latest.Year()+padYears),
		StartMonth: int(earliest.Month()) - 1,
	}
}

func yearRange(from, to int) []int {
	if to < from {
		to = from
	}
	years := make([]int, 0, to-from+1)
	for y := from; y <= to; y++ {
		years = append(years, y)
	}
	return years
}

// OriginOf returns the origin at which the interval begins.
func OriginOf(interval schema.TimelineInterval) schema.Origin {
	if len(interval.Years) == 0 {
		return schema.Origin{}
	}
	return schema.Origin{Year: interval.Years[0], Month: interval.StartMonth}
}

// OriginDate returns UTC midnight of day 1 of the origin month.
func OriginDate(origin schema.Origin) time.Time {
	y, m := normalize(origin.Year, origin.Month)
	return time.Date(y, time.Month(m+1), 1, 0, 0, 0, 0, time.UTC)
}

// normalize folds an out of range 0-based month into its year.
func normalize(year, month int) (int, int) {
	year += month / monthsPerYear
	month %= monthsPerYear
	if month < 0 {
		month += monthsPerYear
		year--
	}
	return year, month
}

// DateToDayOffset returns the number of whole days from day 1 of the origin
// month to date, counted by walking whole months.
//
// Dates before the origin clamp to 0.
func DateToDayOffset(date time.Time, origin schema.Origin) int {
	y, m := normalize(origin.Year, origin.Month)
	d := Midnight(date)
	if d.Before(OriginDate(origin)) {
		return 0
	}

	offset := 0
	targetYear, targetMonth := d.Year(), int(d.Month())-1
	for y < targetYear || (y == targetYear && m < targetMonth) {
		offset += DaysInMonth(y, m)
		m++
		if m == monthsPerYear {
			m = 0
			y++
		}
	}
	return offset + d.Day() - 1
}

// DayOffsetToDate is the inverse of DateToDayOffset. It walks forward month by
// month consuming offset days and returns UTC midnight of the landing date.
//
// Negative offsets clamp to the origin date.
func DayOffsetToDate(offset int, origin schema.Origin) time.Time {
	y, m := normalize(origin.Year, origin.Month)
	if offset < 0 {
		offset = 0
	}

	for {
		dim := DaysInMonth(y, m)
		if offset < dim {
			break
		}
		offset -= dim
		m++
		if m == monthsPerYear {
			m = 0
			y++
		}
	}
	return time.Date(y, time.Month(m+1), offset+1, 0, 0, 0, 0, time.UTC)
}

// TotalDays returns the number of days covered by the interval, from its
// start month through December 31 of its last year.
func TotalDays(interval schema.TimelineInterval) int {
	return TotalDaysFrom(interval, OriginOf(interval))
}

// TotalDaysFrom is TotalDays measured from an explicit origin.
func TotalDaysFrom(interval schema.TimelineInterval, origin schema.Origin) int {
	if len(interval.Years) == 0 {
		return 0
	}
	last := interval.Years[len(interval.Years)-1]
	end := time.Date(last, time.December, 31, 0, 0, 0, 0, time.UTC)
	if end.Before(OriginDate(origin)) {
		return 0
	}
	return DateToDayOffset(end, origin) + 1
}

// PixelOffset scales a day offset by the width of one day.
func PixelOffset(offset int, dayWidth float64) float64 {
	return float64(offset) * dayWidth
}

// OffsetAtPixel returns the day offset under a pixel position, rounding down.
// A non-positive day width or a negative position yields 0.
func OffsetAtPixel(px, dayWidth float64) int {
	if dayWidth <= 0 || px <= 0 {
		return 0
	}
	return int(math.Floor(px / dayWidth))
}

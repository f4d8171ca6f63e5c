package calendar

import (
	"testing"

	"github.com/huangsam/timelane/schema"
)

// FuzzDateOffsetRoundTrip checks that converting a date on or after the origin
// to an offset and back lands on the same calendar day.
func FuzzDateOffsetRoundTrip(f *testing.F) {
	f.Add(2024, 0, 0)
	f.Add(2024, 1, 59)
	f.Add(1999, 11, 400)
	f.Add(2100, 1, 3650)

	f.Fuzz(func(t *testing.T, year, month, days int) {
		if year < 1900 || year > 2200 || days < 0 || days > 20000 {
			t.Skip()
		}
		origin := schema.Origin{Year: year, Month: ((month % 12) + 12) % 12}
		d := OriginDate(origin).AddDate(0, 0, days)

		offset := DateToDayOffset(d, origin)
		if offset != days {
			t.Fatalf("DateToDayOffset(%s) = %d, want %d", d.Format(schema.DateFormat), offset, days)
		}
		back := DayOffsetToDate(offset, origin)
		if !back.Equal(Midnight(d)) {
			t.Fatalf("round trip of %s gave %s", d.Format(schema.DateFormat), back.Format(schema.DateFormat))
		}
		if DurationDays(OriginDate(origin), d) != days+1 {
			t.Fatalf("DurationDays from origin to %s != %d", d.Format(schema.DateFormat), days+1)
		}
	})
}

package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/timelane/schema"
)

// ParseDate parses an ISO YYYY-MM-DD date as UTC midnight of that day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(schema.DateFormat, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// FormatDate renders the calendar date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(schema.DateFormat)
}

// ParseOrigin parses a YYYY-MM timeline origin.
func ParseOrigin(s string) (schema.Origin, error) {
	t, err := time.Parse(schema.MonthFormat, strings.TrimSpace(s))
	if err != nil {
		return schema.Origin{}, fmt.Errorf("invalid origin %q, expected YYYY-MM: %w", s, err)
	}
	return schema.Origin{Year: t.Year(), Month: int(t.Month()) - 1}, nil
}

// FormatOrigin renders an origin as YYYY-MM.
func FormatOrigin(o schema.Origin) string {
	return time.Date(o.Year, time.Month(o.Month+1), 1, 0, 0, 0, 0, time.UTC).Format(schema.MonthFormat)
}

package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/schema"
)

// intervalSummary is the interval plus the values derived from it.
type intervalSummary struct {
	schema.TimelineInterval
	StartMonthName string `json:"start_month_name"`
	Origin         string `json:"origin"`
	TotalDays      int    `json:"total_days"`
}

func newIntervalSummary(result schema.LayoutResult) intervalSummary {
	return intervalSummary{
		TimelineInterval: result.Interval,
		StartMonthName:   time.Month(result.Interval.StartMonth + 1).String(),
		Origin:           contract.FormatOrigin(result.Origin),
		TotalDays:        result.TotalDays,
	}
}

// writeCSVInterval writes the interval as a single CSV row with years joined by "|".
func writeCSVInterval(w io.Writer, s intervalSummary) error {
	header := []string{"years", "start_month", "origin", "total_days"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		years := make([]string, len(s.Years))
		for i, y := range s.Years {
			years[i] = strconv.Itoa(y)
		}
		return cw.Write([]string{
			strings.Join(years, "|"),
			strconv.Itoa(s.StartMonth),
			s.Origin,
			strconv.Itoa(s.TotalDays),
		})
	})
}

// writeCSVOffset writes a conversion result as a single CSV row.
func writeCSVOffset(w io.Writer, r schema.OffsetResult, fmtFloat func(float64) string) error {
	header := []string{"date", "origin", "offset", "pixels"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		pixels := ""
		if r.Pixels != nil {
			pixels = fmtFloat(*r.Pixels)
		}
		return cw.Write([]string{r.Date, r.Origin, strconv.Itoa(r.Offset), pixels})
	})
}

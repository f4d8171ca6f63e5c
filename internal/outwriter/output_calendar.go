package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/schema"
)

// PrintIntervalResult outputs the interval of a layout.
func PrintIntervalResult(result schema.LayoutResult, cfg *contract.Config) error {
	summary := newIntervalSummary(result)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVInterval(w, summary)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported("interval")
	default:
		writeIntervalText(os.Stdout, summary, cfg)
		return nil
	}
}

// PrintOffsetResult outputs the answer of a date or offset conversion.
func PrintOffsetResult(result schema.OffsetResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVOffset(w, result, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported("offset and date")
	default:
		writeOffsetText(os.Stdout, result, cfg, fmtFloat)
		return nil
	}
}

func writeIntervalText(w io.Writer, s intervalSummary, cfg *contract.Config) {
	years := "none"
	if n := len(s.Years); n > 0 {
		years = fmt.Sprintf("%d → %d (%d years)", s.Years[0], s.Years[n-1], n)
	}
	_, _ = fmt.Fprintf(w, "%sYears: %s\n", emoji(cfg, "📆 "), years)
	_, _ = fmt.Fprintf(w, "Start month: %s\n", s.StartMonthName)
	_, _ = fmt.Fprintf(w, "Origin: %s\n", s.Origin)
	_, _ = fmt.Fprintf(w, "Total days: %d\n", s.TotalDays)
}

func writeOffsetText(w io.Writer, r schema.OffsetResult, cfg *contract.Config, fmtFloat func(float64) string) {
	_, _ = fmt.Fprintf(w, "%s%s is day %d from origin %s", emoji(cfg, "📍 "), r.Date, r.Offset, r.Origin)
	if r.Pixels != nil {
		_, _ = fmt.Fprintf(w, " (%s px)", fmtFloat(*r.Pixels))
	}
	_, _ = fmt.Fprintln(w)
}

package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/timelane/core/calendar"
	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintLayoutResults outputs the layout, dispatching based on the output format configured.
func PrintLayoutResults(result schema.LayoutResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONLayout(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVLayout(w, result, cfg, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeParquetLayout(w, result)
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := WriteLayoutTable(os.Stdout, result, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// WriteLayoutTable prints one row per placement, grouped and ordered the
// way the layout was computed, using the tablewriter API.
func WriteLayoutTable(w io.Writer, result schema.LayoutResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Group", "Lane", "Item", "Start", "End", "Days", "Offset"}
	if cfg.DayWidth > 0 {
		headers = append(headers, "X (px)")
	}
	headers = append(headers, cfg.Attributes...)
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, g := range result.Groups {
		for _, p := range g.Placements {
			row := []string{
				contract.TruncateText(g.Title, nameWidth),
				strconv.Itoa(p.Column),
				contract.TruncateText(p.Item.Name, nameWidth),
				contract.FormatDate(p.StartDate),
				contract.FormatDate(p.EndDate),
				strconv.Itoa(p.DurationDays),
				strconv.Itoa(p.StartOffset),
			}
			if cfg.DayWidth > 0 {
				row = append(row, fmtFloat(calendar.PixelOffset(p.StartOffset, cfg.DayWidth)))
			}
			row = append(row, attributeCells(p.Item, cfg.Attributes)...)
			data = append(data, row)
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	lanes := 0
	for _, g := range result.Groups {
		lanes += g.Lanes
	}
	_, _ = fmt.Fprintf(w, "Laid out %d items in %d groups using %d lanes (origin: %s, %d days)\n",
		result.TotalItems, len(result.Groups), lanes, contract.FormatOrigin(result.Origin), result.TotalDays)
	_, _ = fmt.Fprintf(w, "Layout completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return nil
}

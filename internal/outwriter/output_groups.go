package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintGroupResults outputs one summary per group, dispatching based on the output format configured.
func PrintGroupResults(result schema.LayoutResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONGroups(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVGroups(w, result)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported("groups")
	default:
		if err := WriteGroupTable(os.Stdout, result, cfg, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// WriteGroupTable prints the group summaries using the tablewriter API.
func WriteGroupTable(w io.Writer, result schema.LayoutResult, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Group", "Items", "Lanes", "Max Overlap", "Density", "First Start", "Last End"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, s := range summarizeGroups(result) {
		data = append(data, []string{
			contract.TruncateText(s.Title, nameWidth),
			strconv.Itoa(s.Items),
			strconv.Itoa(s.Lanes),
			strconv.Itoa(s.MaxOverlap),
			densityLabel(cfg, s.MaxOverlap),
			s.FirstStart,
			s.LastEnd,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Showing %d groups of %d items (grouped by %s)\n", len(result.Groups), result.TotalItems, result.GroupBy)
	_, _ = fmt.Fprintf(w, "Layout completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return nil
}

// errParquetUnsupported reports a command that has no Parquet form.
func errParquetUnsupported(command string) error {
	return fmt.Errorf("parquet output is not supported by the %s command. Use text, csv or json", command)
}

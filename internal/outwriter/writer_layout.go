package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/timelane/core/calendar"
	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/internal/parquet"
	"github.com/huangsam/timelane/schema"
)

// writeJSONLayout writes the full layout as JSON.
func writeJSONLayout(w io.Writer, result schema.LayoutResult) error {
	return writeJSON(w, result)
}

// writeCSVLayout writes one CSV row per placement. Requested attributes
// become trailing columns.
func writeCSVLayout(w io.Writer, result schema.LayoutResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"group",
		"lane",
		"item_id",
		"item_name",
		"start_date",
		"end_date",
		"duration_days",
		"start_offset",
		"end_offset",
	}
	if cfg.DayWidth > 0 {
		header = append(header, "x_px", "width_px")
	}
	header = append(header, cfg.Attributes...)

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, g := range result.Groups {
			for _, p := range g.Placements {
				row := []string{
					g.Title,
					strconv.Itoa(p.Column),
					p.Item.ID,
					p.Item.Name,
					contract.FormatDate(p.StartDate),
					contract.FormatDate(p.EndDate),
					fmt.Sprintf(intFmt, p.DurationDays),
					fmt.Sprintf(intFmt, p.StartOffset),
					fmt.Sprintf(intFmt, p.EndOffset),
				}
				if cfg.DayWidth > 0 {
					row = append(row,
						fmtFloat(calendar.PixelOffset(p.StartOffset, cfg.DayWidth)),
						fmtFloat(calendar.PixelOffset(p.DurationDays, cfg.DayWidth)),
					)
				}
				row = append(row, attributeCells(p.Item, cfg.Attributes)...)
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeParquetLayout writes the placements as Parquet rows with run ID 0.
func writeParquetLayout(w io.Writer, result schema.LayoutResult) error {
	records := schema.PlacementRecordsFrom(0, result)
	return parquet.WritePlacements(w, parquet.ConvertPlacementRecords(records))
}

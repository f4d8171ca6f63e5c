// Package parquet provides data structures and functions for exporting timelane
// layout data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/timelane/schema"
	"github.com/parquet-go/parquet-go"
)

// LayoutRun represents a single layout run with metadata.
// This struct maps to the timelane_layout_runs database table.
type LayoutRun struct {
	// RunID is the unique identifier for this layout run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// TotalItems is the number of items laid out (nullable)
	TotalItems *int32 `parquet:"total_items,optional,snappy"`

	// TotalGroups is the number of groups produced (nullable)
	TotalGroups *int32 `parquet:"total_groups,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// Placement represents one item's lane and position in a run.
// This struct maps to the timelane_placements database table.
type Placement struct {
	RunID        int64  `parquet:"run_id,snappy"`
	ItemID       string `parquet:"item_id,snappy"`
	GroupTitle   string `parquet:"group_title,snappy"`
	Lane         int32  `parquet:"lane,snappy"`
	StartDate    string `parquet:"start_date,snappy"`
	EndDate      string `parquet:"end_date,snappy"`
	StartOffset  int32  `parquet:"start_offset,snappy"`
	DurationDays int32  `parquet:"duration_days,snappy"`
}

// WriteLayoutRunsParquet writes a slice of LayoutRun structs to a Parquet file.
func WriteLayoutRunsParquet(data []LayoutRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WritePlacementsParquet writes a slice of Placement structs to a Parquet file.
func WritePlacementsParquet(data []Placement, outputPath string) error {
	return writeFile(data, outputPath)
}

// WritePlacements writes a slice of Placement structs as Parquet to w.
func WritePlacements(w io.Writer, data []Placement) error {
	return write(w, data)
}

func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return write(file, data)
}

// write encodes rows with a schema inferred from T's struct tags.
func write[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts schema.RunRecord to LayoutRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []LayoutRun {
	result := make([]LayoutRun, len(records))
	for i, record := range records {
		result[i] = LayoutRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalItems:    toInt32Ptr(record.TotalItems),
			TotalGroups:   toInt32Ptr(record.TotalGroups),
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertPlacementRecords converts schema.PlacementRecord to Placement for Parquet export.
func ConvertPlacementRecords(records []schema.PlacementRecord) []Placement {
	result := make([]Placement, len(records))
	for i, record := range records {
		result[i] = Placement{
			RunID:        record.RunID,
			ItemID:       record.ItemID,
			GroupTitle:   record.GroupTitle,
			Lane:         int32(record.Lane),
			StartDate:    record.StartDate,
			EndDate:      record.EndDate,
			StartOffset:  int32(record.StartOffset),
			DurationDays: int32(record.DurationDays),
		}
	}
	return result
}

func toInt32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v)
	return &n
}

package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/schema"
)

// columnAliases maps accepted header spellings to item fields.
var columnAliases = map[string]string{
	"id":         "id",
	"name":       "name",
	"title":      "name",
	"start":      "start",
	"start_date": "start",
	"startdate":  "start",
	"end":        "end",
	"end_date":   "end",
	"enddate":    "end",
	"team":       "team",
	"status":     "status",
	"priority":   "priority",
	"category":   "category",
	"progress":   "progress",
}

// decodeCSV reads a header row and one item per following row. Columns that
// are not item fields land in the item's attributes under their header name.
func decodeCSV(r io.Reader) ([]schema.TimelineItem, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []schema.TimelineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	fields := make([]string, len(header))
	present := make(map[string]bool)
	for i, col := range header {
		col = strings.TrimSpace(col)
		if field, ok := columnAliases[strings.ToLower(col)]; ok {
			fields[i] = field
			present[field] = true
			continue
		}
		fields[i] = col
	}
	for _, required := range []string{"id", "start", "end"} {
		if !present[required] {
			return nil, fmt.Errorf("column '%s' not found in CSV. Available columns: %v", required, header)
		}
	}

	items := []schema.TimelineItem{}
	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}

		item, err := parseCSVRow(record, fields)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// parseCSVRow maps one record onto an item using the resolved header fields.
func parseCSVRow(record, fields []string) (schema.TimelineItem, error) {
	var item schema.TimelineItem
	for i, value := range record {
		if i >= len(fields) {
			break
		}
		value = strings.TrimSpace(value)

		var err error
		switch fields[i] {
		case "id":
			item.ID = value
		case "name":
			item.Name = value
		case "start":
			item.StartDate, err = contract.ParseDate(value)
		case "end":
			item.EndDate, err = contract.ParseDate(value)
		case "team":
			item.Team = value
		case "status":
			item.Status = value
		case "priority":
			item.Priority = value
		case "category":
			item.Category = value
		case "progress":
			if value != "" {
				var p float64
				if p, err = strconv.ParseFloat(value, 64); err == nil {
					item.Progress = &p
				}
			}
		default:
			if value == "" {
				continue
			}
			if item.Attributes == nil {
				item.Attributes = make(map[string]string)
			}
			item.Attributes[fields[i]] = value
		}
		if err != nil {
			return schema.TimelineItem{}, fmt.Errorf("column %s: %w", fields[i], err)
		}
	}
	if item.Name == "" {
		item.Name = item.ID
	}
	return item, nil
}

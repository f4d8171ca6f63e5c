package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/schema"
	"gopkg.in/yaml.v3"
)

// record is the document shape shared by the JSON, YAML and TOML decoders.
// Dates are either YYYY-MM-DD strings or native TOML dates.
type record struct {
	ID         string            `json:"id" yaml:"id" toml:"id"`
	Name       string            `json:"name" yaml:"name" toml:"name"`
	Start      any               `json:"start" yaml:"start" toml:"start"`
	End        any               `json:"end" yaml:"end" toml:"end"`
	Team       string            `json:"team" yaml:"team" toml:"team"`
	Status     string            `json:"status" yaml:"status" toml:"status"`
	Priority   string            `json:"priority" yaml:"priority" toml:"priority"`
	Category   string            `json:"category" yaml:"category" toml:"category"`
	Progress   *float64          `json:"progress" yaml:"progress" toml:"progress"`
	Attributes map[string]string `json:"attributes" yaml:"attributes" toml:"attributes"`
}

// document wraps records under an "items" key.
type document struct {
	Items []record `json:"items" yaml:"items" toml:"items"`
}

func decodeJSON(r io.Reader) ([]schema.TimelineItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		var doc document
		if docErr := json.Unmarshal(data, &doc); docErr != nil {
			return nil, fmt.Errorf("error parsing JSON: %w", err)
		}
		records = doc.Items
	}
	return toItems(records)
}

func decodeYAML(r io.Reader) ([]schema.TimelineItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		var doc document
		if docErr := yaml.Unmarshal(data, &doc); docErr != nil {
			return nil, fmt.Errorf("error parsing YAML: %w", err)
		}
		records = doc.Items
	}
	return toItems(records)
}

func decodeTOML(r io.Reader) ([]schema.TimelineItem, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("error parsing TOML: %w", err)
	}
	return toItems(doc.Items)
}

func toItems(records []record) ([]schema.TimelineItem, error) {
	items := make([]schema.TimelineItem, 0, len(records))
	for i, rec := range records {
		item, err := rec.toItem()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (rec record) toItem() (schema.TimelineItem, error) {
	start, err := toDate(rec.Start)
	if err != nil {
		return schema.TimelineItem{}, fmt.Errorf("start: %w", err)
	}
	end, err := toDate(rec.End)
	if err != nil {
		return schema.TimelineItem{}, fmt.Errorf("end: %w", err)
	}

	name := rec.Name
	if name == "" {
		name = rec.ID
	}
	return schema.TimelineItem{
		ID:         rec.ID,
		Name:       name,
		StartDate:  start,
		EndDate:    end,
		Team:       rec.Team,
		Status:     rec.Status,
		Priority:   rec.Priority,
		Category:   rec.Category,
		Progress:   rec.Progress,
		Attributes: rec.Attributes,
	}, nil
}

// toDate accepts a YYYY-MM-DD string or a decoded date value and returns UTC
// midnight of its calendar date.
func toDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case string:
		return contract.ParseDate(d)
	case time.Time:
		y, m, day := d.Date()
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), nil
	case nil:
		return time.Time{}, fmt.Errorf("missing date")
	}
	return time.Time{}, fmt.Errorf("unsupported date value %v (%T)", v, v)
}

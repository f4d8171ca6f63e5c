package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

// Calendar dates travel through JSON as YYYY-MM-DD and decode to UTC midnight.

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

func parseDays(start, end string) (time.Time, time.Time, error) {
	s, err := parseDay(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := parseDay(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return s, e, nil
}

// timelineItemFields has the fields of TimelineItem without its JSON methods.
type timelineItemFields TimelineItem

type timelineItemJSON struct {
	timelineItemFields
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// MarshalJSON writes the item with YYYY-MM-DD dates.
func (i TimelineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(timelineItemJSON{
		timelineItemFields: timelineItemFields(i),
		StartDate:          formatDay(i.StartDate),
		EndDate:            formatDay(i.EndDate),
	})
}

// UnmarshalJSON reads an item written by MarshalJSON.
func (i *TimelineItem) UnmarshalJSON(data []byte) error {
	var aux timelineItemJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	start, end, err := parseDays(aux.StartDate, aux.EndDate)
	if err != nil {
		return err
	}
	*i = TimelineItem(aux.timelineItemFields)
	i.StartDate, i.EndDate = start, end
	return nil
}

// placementJSON is the wire shape of Placement and PlacedItem. The offsets
// are left out for a bare Placement.
type placementJSON struct {
	Column       int          `json:"column"`
	Item         TimelineItem `json:"item"`
	StartDate    string       `json:"start_date"`
	EndDate      string       `json:"end_date"`
	StartOffset  *int         `json:"start_offset,omitempty"`
	EndOffset    *int         `json:"end_offset,omitempty"`
	DurationDays *int         `json:"duration_days,omitempty"`
}

func (p Placement) toJSON() placementJSON {
	return placementJSON{
		Column:    p.Column,
		Item:      p.Item,
		StartDate: formatDay(p.StartDate),
		EndDate:   formatDay(p.EndDate),
	}
}

func (w placementJSON) toPlacement() (Placement, error) {
	start, end, err := parseDays(w.StartDate, w.EndDate)
	if err != nil {
		return Placement{}, err
	}
	return Placement{Column: w.Column, Item: w.Item, StartDate: start, EndDate: end}, nil
}

// MarshalJSON writes the placement with YYYY-MM-DD dates.
func (p Placement) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.toJSON())
}

// UnmarshalJSON reads a placement written by MarshalJSON.
func (p *Placement) UnmarshalJSON(data []byte) error {
	var aux placementJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	placement, err := aux.toPlacement()
	if err != nil {
		return err
	}
	*p = placement
	return nil
}

// MarshalJSON writes the placement fields and the day offsets side by side.
// PlacedItem needs its own methods, since the ones of the embedded Placement
// would drop the offsets.
func (p PlacedItem) MarshalJSON() ([]byte, error) {
	aux := p.Placement.toJSON()
	aux.StartOffset = &p.StartOffset
	aux.EndOffset = &p.EndOffset
	aux.DurationDays = &p.DurationDays
	return json.Marshal(aux)
}

// UnmarshalJSON reads a placed item written by MarshalJSON.
func (p *PlacedItem) UnmarshalJSON(data []byte) error {
	var aux placementJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	placement, err := aux.toPlacement()
	if err != nil {
		return err
	}
	*p = PlacedItem{Placement: placement}
	if aux.StartOffset != nil {
		p.StartOffset = *aux.StartOffset
	}
	if aux.EndOffset != nil {
		p.EndOffset = *aux.EndOffset
	}
	if aux.DurationDays != nil {
		p.DurationDays = *aux.DurationDays
	}
	return nil
}

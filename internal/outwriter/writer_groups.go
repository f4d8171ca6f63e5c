package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/schema"
)

// groupSummary is the per-group row shared by every groups output.
type groupSummary struct {
	Title      string              `json:"title"`
	Items      int                 `json:"items"`
	Lanes      int                 `json:"lanes"`
	MaxOverlap int                 `json:"max_overlap"`
	Label      schema.DensityLabel `json:"label"`
	FirstStart string              `json:"first_start,omitempty"`
	LastEnd    string              `json:"last_end,omitempty"`
}

// summarizeGroups reduces each group of a layout to a summary row.
func summarizeGroups(result schema.LayoutResult) []groupSummary {
	summaries := make([]groupSummary, 0, len(result.Groups))
	for _, g := range result.Groups {
		s := groupSummary{
			Title:      g.Title,
			Items:      len(g.Placements),
			Lanes:      g.Lanes,
			MaxOverlap: g.MaxOverlap,
			Label:      contract.GetPlainLabel(g.MaxOverlap),
		}
		var first, last time.Time
		for i, p := range g.Placements {
			if i == 0 || p.StartDate.Before(first) {
				first = p.StartDate
			}
			if i == 0 || p.EndDate.After(last) {
				last = p.EndDate
			}
		}
		if len(g.Placements) > 0 {
			s.FirstStart = contract.FormatDate(first)
			s.LastEnd = contract.FormatDate(last)
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// writeJSONGroups writes the group summaries as JSON.
func writeJSONGroups(w io.Writer, result schema.LayoutResult) error {
	return writeJSON(w, summarizeGroups(result))
}

// writeCSVGroups writes one CSV row per group.
func writeCSVGroups(w io.Writer, result schema.LayoutResult) error {
	header := []string{"group", "items", "lanes", "max_overlap", "label", "first_start", "last_end"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range summarizeGroups(result) {
			row := []string{
				s.Title,
				strconv.Itoa(s.Items),
				strconv.Itoa(s.Lanes),
				strconv.Itoa(s.MaxOverlap),
				string(s.Label),
				s.FirstStart,
				s.LastEnd,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

//go:build integration

// Package integration contains end-to-end tests for the timelane binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placedRow mirrors the fields of the layout JSON checked here.
type placedRow struct {
	Column    int       `json:"column"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Item      struct {
		ID string `json:"id"`
	} `json:"item"`
	StartOffset  int `json:"start_offset"`
	DurationDays int `json:"duration_days"`
}

type layoutDoc struct {
	TotalItems int `json:"total_items"`
	Groups     []struct {
		Title      string      `json:"title"`
		Lanes      int         `json:"lanes"`
		MaxOverlap int         `json:"max_overlap"`
		Placements []placedRow `json:"placements"`
	} `json:"groups"`
}

func layoutJSON(t *testing.T, itemsFile string, extra ...string) layoutDoc {
	t.Helper()
	outFile := filepath.Join(t.TempDir(), "layout.json")
	args := append([]string{"layout", itemsFile, "--cache-backend", "none", "--output", "json", "--output-file", outFile}, extra...)
	_, err := runTimelane(t, args...)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var doc layoutDoc
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

// TestLayoutVerification checks the lane invariants on the CLI's JSON output.
func TestLayoutVerification(t *testing.T) {
	doc := layoutJSON(t, writeRoadmap(t))
	require.Equal(t, 6, doc.TotalItems)

	titles := make([]string, 0, len(doc.Groups))
	for _, g := range doc.Groups {
		titles = append(titles, g.Title)
		assert.GreaterOrEqual(t, g.Lanes, g.MaxOverlap, "group %s", g.Title)
		verifyLanes(t, g.Title, g.Placements)
	}
	assert.Equal(t, []string{"core", "infra", "Unknown"}, titles)
}

// TestLargeRoadmapVerification lays out a generated roadmap of 300 items.
func TestLargeRoadmapVerification(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,start,end,team\n")
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := range 300 {
		start := base.AddDate(0, 0, (i*37)%365)
		end := start.AddDate(0, 0, (i*11)%45)
		fmt.Fprintf(&b, "item-%03d,%s,%s,team-%d\n", i, start.Format("2006-01-02"), end.Format("2006-01-02"), i%4)
	}
	path := filepath.Join(t.TempDir(), "large.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	doc := layoutJSON(t, path)
	require.Equal(t, 300, doc.TotalItems)
	require.Len(t, doc.Groups, 4)
	for _, g := range doc.Groups {
		verifyLanes(t, g.Title, g.Placements)
		assert.Equal(t, g.MaxOverlap, g.Lanes, "greedy packing of sorted intervals is optimal for group %s", g.Title)
	}
}

// TestOffsetDateRoundTrip converts dates through both CLI commands.
func TestOffsetDateRoundTrip(t *testing.T) {
	for _, date := range []string{"2024-01-01", "2024-02-29", "2024-12-31", "2025-03-01"} {
		t.Run(date, func(t *testing.T) {
			out, err := runTimelane(t, "offset", "--cache-backend", "none", "--origin", "2024-01", "--date", date, "--output", "csv")
			require.NoError(t, err)
			offset := lastCSVField(t, out, 2)

			out, err = runTimelane(t, "date", "--cache-backend", "none", "--origin", "2024-01", "--offset", offset, "--output", "csv")
			require.NoError(t, err)
			assert.Equal(t, date, lastCSVField(t, out, 0))
		})
	}
}

// lastCSVField returns column idx of the last non-empty output line.
func lastCSVField(t *testing.T, out string, idx int) string {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	fields := strings.Split(lines[len(lines)-1], ",")
	require.Greater(t, len(fields), idx, "unexpected output: %s", out)
	return fields[idx]
}

// verifyLanes fails when two placements in the same lane share a day.
func verifyLanes(t *testing.T, group string, placements []placedRow) {
	t.Helper()
	for i, a := range placements {
		for _, b := range placements[i+1:] {
			if a.Column != b.Column {
				continue
			}
			aEnd := a.StartOffset + a.DurationDays
			bEnd := b.StartOffset + b.DurationDays
			overlap := a.StartOffset < bEnd && b.StartOffset < aEnd
			assert.False(t, overlap, "group %s: %s and %s share lane %d", group, a.Item.ID, b.Item.ID, a.Column)
		}
	}
}

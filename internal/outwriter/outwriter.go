// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/schema"
)

// LogLayoutHeader prints a concise, 2-line header before a layout is computed.
// Machine-readable outputs on stdout get no header.
func LogLayoutHeader(cfg *contract.Config, itemCount int) {
	logLayoutHeader(os.Stdout, cfg, itemCount)
}

func logLayoutHeader(w io.Writer, cfg *contract.Config, itemCount int) {
	if cfg.Output != schema.TextOut {
		return
	}

	source := cfg.InputFile
	if source == "" {
		source = "stdin"
	}
	origin := "auto"
	if cfg.HasOrigin {
		origin = contract.FormatOrigin(cfg.Origin)
	}

	_, _ = fmt.Fprintf(w, "%sItems: %s (%d items, group by %s)\n", emoji(cfg, "🗂️  "), source, itemCount, cfg.GroupBy)
	_, _ = fmt.Fprintf(w, "%sOrigin: %s (locale: %s, pad years: %d)\n", emoji(cfg, "📅 "), origin, cfg.Locale, cfg.PadYears)
}

// emoji returns the prefix when emojis are enabled.
func emoji(cfg *contract.Config, prefix string) string {
	if cfg.UseEmojis {
		return prefix
	}
	return ""
}

// densityLabel returns the table label for a group's peak overlap.
func densityLabel(cfg *contract.Config, maxOverlap int) string {
	if cfg.UseColors {
		return contract.GetColorLabel(maxOverlap)
	}
	return string(contract.GetPlainLabel(maxOverlap))
}

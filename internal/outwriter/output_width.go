package outwriter

import (
	"os"

	"github.com/huangsam/timelane/internal/contract"
	"golang.org/x/term"
)

// Bounds of the item name column in table output.
const (
	minNameWidth = 15
	maxNameWidth = 60
)

// GetMaxTableNameWidth calculates the maximum width for item names in the
// layout table based on terminal width and the columns being shown.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width // Absolute override from flag/env

	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Group + Lane + Start + End + Days + Offset with borders/padding
	baseWidth := 70

	if cfg.DayWidth > 0 {
		baseWidth += 12 // X column
	}
	baseWidth += 15 * len(cfg.Attributes)

	available := termWidth - baseWidth
	if available < minNameWidth {
		return minNameWidth
	}
	if available > maxNameWidth {
		return maxNameWidth
	}
	return available
}

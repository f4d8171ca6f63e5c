package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/timelane/schema"
)

// Color variables for console output.
var (
	PackedColor  = color.New(color.FgRed, color.Bold)     // PackedColor flags groups that need many lanes.
	CrowdedColor = color.New(color.FgMagenta, color.Bold) // CrowdedColor is a strong, distinct warning.
	BusyColor    = color.New(color.FgYellow)              // BusyColor is standard caution, not bold.
	SparseColor  = color.New(color.FgCyan)                // SparseColor is an informational signal.
)

// GetPlainLabel returns a plain text label describing how crowded a group is,
// based on its peak overlap, which is also its lane count. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainLabel(maxOverlap int) schema.DensityLabel {
	switch {
	case maxOverlap >= 8:
		return schema.PackedDensity
	case maxOverlap >= 5:
		return schema.CrowdedDensity
	case maxOverlap >= 3:
		return schema.BusyDensity
	default:
		return schema.SparseDensity
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(maxOverlap int) string {
	text := GetPlainLabel(maxOverlap)

	switch text {
	case schema.PackedDensity:
		return PackedColor.Sprint(text)
	case schema.CrowdedDensity:
		return CrowdedColor.Sprint(text)
	case schema.BusyDensity:
		return BusyColor.Sprint(text)
	default:
		return SparseColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncateText shortens text to maxWidth runes with an ellipsis suffix.
// Requires maxWidth > 3 so the ellipsis leaves room for at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

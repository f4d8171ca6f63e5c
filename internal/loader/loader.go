// Package loader reads timeline items from CSV, JSON, YAML and TOML files.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/timelane/schema"
)

// Format identifies an items file encoding.
type Format string

// All item file formats supported.
const (
	CSVFormat  Format = "csv"
	JSONFormat Format = "json"
	YAMLFormat Format = "yaml"
	TOMLFormat Format = "toml"
)

// ErrUnsupportedFormat is returned for files whose extension has no decoder.
var ErrUnsupportedFormat = errors.New("unsupported items file format")

// FormatFromPath picks the decoder for a file by its extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSVFormat, nil
	case ".json":
		return JSONFormat, nil
	case ".yaml", ".yml":
		return YAMLFormat, nil
	case ".toml":
		return TOMLFormat, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads all items from the file at path.
func Load(path string) ([]schema.TimelineItem, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening items file: %w", err)
	}
	defer func() { _ = file.Close() }()

	items, err := Decode(file, format)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return items, nil
}

// Decode reads all items from r in the given format.
func Decode(r io.Reader, format Format) ([]schema.TimelineItem, error) {
	switch format {
	case CSVFormat:
		return decodeCSV(r)
	case JSONFormat:
		return decodeJSON(r)
	case YAMLFormat:
		return decodeYAML(r)
	case TOMLFormat:
		return decodeTOML(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

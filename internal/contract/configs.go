package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/timelane/schema"
	"golang.org/x/text/language"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	MaxPadYears      = 50
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a layout.
// This struct remains the "final, validated" config.
type Config struct {
	InputFile string // Items file (csv, json, yaml, toml)

	GroupBy   string
	Locale    string
	PadYears  int
	Origin    schema.Origin
	HasOrigin bool      // Origin was given explicitly instead of derived from the items
	Today     time.Time // Injected "now" for interval fallback

	DayWidth   float64 // Pixels per day (0 = off)
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	Date   time.Time // Target of the offset command
	Offset int       // Target of the date command

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext

	// Attributes lists extra columns to show for each placement in table output
	Attributes []string

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	GroupBy        string  `mapstructure:"group-by"`
	Locale         string  `mapstructure:"locale"`
	PadYears       int     `mapstructure:"pad-years"`
	Origin         string  `mapstructure:"origin"`
	Today          string  `mapstructure:"today"`
	DayWidth       float64 `mapstructure:"day-width"`
	Precision      int     `mapstructure:"precision"`
	Output         string  `mapstructure:"output"`
	OutputFile     string  `mapstructure:"output-file"`
	Width          int     `mapstructure:"width"`
	Attributes     string  `mapstructure:"attributes"`
	CacheBackend   string  `mapstructure:"cache-backend"`
	CacheDBConnect string  `mapstructure:"cache-db-connect"`
	RunsBackend    string  `mapstructure:"runs-backend"`
	RunsDBConnect  string  `mapstructure:"runs-db-connect"`
	Emoji          string  `mapstructure:"emoji"`
	Color          string  `mapstructure:"color"`

	// --- Fields from offsetCmd.Flags() ---
	Date string `mapstructure:"date"`

	// --- Fields from dateCmd.Flags() ---
	Offset int `mapstructure:"offset"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Attributes != nil {
		clone.Attributes = make([]string, len(c.Attributes))
		copy(clone.Attributes, c.Attributes)
	}
	return &clone
}

// Params returns the configuration values recorded with each layout run.
func (c *Config) Params() map[string]any {
	params := map[string]any{
		"input_file": c.InputFile,
		"group_by":   c.GroupBy,
		"locale":     c.Locale,
		"pad_years":  c.PadYears,
		"today":      FormatDate(c.Today),
	}
	if c.HasOrigin {
		params["origin"] = FormatOrigin(c.Origin)
	}
	return params
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processGrouping(cfg, input); err != nil {
		return err
	}
	if err := processDates(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.InputFile = strings.TrimSpace(input.InputPathStr)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Offset = input.Offset

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	// --- 2. Scale Validation ---
	if input.DayWidth < 0 {
		return fmt.Errorf("day-width cannot be negative (received %g)", input.DayWidth)
	}
	cfg.DayWidth = input.DayWidth

	// --- 3. Extra Columns ---
	cfg.Attributes = nil
	if input.Attributes != "" {
		for p := range strings.SplitSeq(input.Attributes, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.Attributes = append(cfg.Attributes, trimmed)
			}
		}
	}

	return nil
}

// processGrouping validates the grouping field, locale and padding.
func processGrouping(cfg *Config, input *ConfigRawInput) error {
	groupBy, err := ValidateGroupBy(input.GroupBy)
	if err != nil {
		return err
	}
	cfg.GroupBy = groupBy

	locale, err := ValidateLocale(input.Locale)
	if err != nil {
		return err
	}
	cfg.Locale = locale

	if input.PadYears < 0 || input.PadYears > MaxPadYears {
		return fmt.Errorf("pad-years must be between 0 and %d (received %d)", MaxPadYears, input.PadYears)
	}
	cfg.PadYears = input.PadYears
	return nil
}

// processDates parses the origin, the injected "today" and the offset command's date.
func processDates(cfg *Config, input *ConfigRawInput) error {
	cfg.HasOrigin = false
	cfg.Origin = schema.Origin{}
	if input.Origin != "" {
		origin, err := ParseOrigin(input.Origin)
		if err != nil {
			return err
		}
		cfg.Origin = origin
		cfg.HasOrigin = true
	}

	cfg.Today = time.Now()
	if input.Today != "" {
		today, err := ParseDate(input.Today)
		if err != nil {
			return fmt.Errorf("invalid --today value: %w", err)
		}
		cfg.Today = today
	}

	cfg.Date = time.Time{}
	if input.Date != "" {
		d, err := ParseDate(input.Date)
		if err != nil {
			return fmt.Errorf("invalid --date value: %w", err)
		}
		cfg.Date = d
	}
	return nil
}

// ValidateGroupBy normalizes a grouping field name. Built-in fields are
// lowercased; any other name is kept as an attribute key.
func ValidateGroupBy(field string) (string, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return schema.DefaultGroupField, nil
	}
	if strings.ContainsAny(field, " \t,") {
		return "", fmt.Errorf("invalid group-by field %q: must be a single field name", field)
	}
	for _, known := range schema.KnownGroupFields {
		if strings.EqualFold(field, known) {
			return known, nil
		}
	}
	return field, nil
}

// ValidateLocale checks that locale is a well-formed BCP 47 tag.
func ValidateLocale(locale string) (string, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return schema.DefaultLocale, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("invalid locale '%s': %w", locale, err)
	}
	return tag.String(), nil
}

// validateBackendConfigs validates cache and run store backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Runs Backend Validation ---
	cfg.RunsBackend = schema.DatabaseBackend(strings.ToLower(input.RunsBackend))
	if cfg.RunsBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.RunsBackend]; !ok {
		return fmt.Errorf("invalid runs backend '%s'. must be sqlite, mysql, postgresql, none", input.RunsBackend)
	}
	cfg.RunsDBConnect = input.RunsDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
		return err
	}

	// Cache and runs must not share a SQLite file
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.RunsBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		runsDBPath := cfg.RunsDBConnect
		if runsDBPath == "" {
			runsDBPath = GetRunsDBFilePath()
		}
		if cacheDBPath == runsDBPath {
			return fmt.Errorf("cache and run storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

package contract

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/timelane/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns the raw input produced by viper's defaults.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		InputPathStr: "items.csv",
		GroupBy:      "team",
		Locale:       "en",
		PadYears:     1,
		Precision:    1,
		Output:       "text",
		CacheBackend: "sqlite",
		Emoji:        "no",
		Color:        "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError string
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "invalid precision", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: "precision must be 1 or 2"},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "svg" }, expectError: "invalid output format"},
		{name: "parquet needs a file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: "--output-file is required"},
		{name: "negative day width", mutate: func(in *ConfigRawInput) { in.DayWidth = -1 }, expectError: "day-width cannot be negative"},
		{name: "negative padding", mutate: func(in *ConfigRawInput) { in.PadYears = -1 }, expectError: "pad-years must be between"},
		{name: "bad locale", mutate: func(in *ConfigRawInput) { in.Locale = "not a locale!" }, expectError: "invalid locale"},
		{name: "bad group field", mutate: func(in *ConfigRawInput) { in.GroupBy = "team,status" }, expectError: "invalid group-by field"},
		{name: "bad origin", mutate: func(in *ConfigRawInput) { in.Origin = "2024-13" }, expectError: "invalid origin"},
		{name: "bad today", mutate: func(in *ConfigRawInput) { in.Today = "yesterday" }, expectError: "invalid --today value"},
		{name: "bad date", mutate: func(in *ConfigRawInput) { in.Date = "2024/01/01" }, expectError: "invalid --date value"},
		{name: "bad emoji", mutate: func(in *ConfigRawInput) { in.Emoji = "maybe" }, expectError: "invalid --emoji value"},
		{name: "bad color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: "invalid --color value"},
		{name: "bad cache backend", mutate: func(in *ConfigRawInput) { in.CacheBackend = "redis" }, expectError: "invalid cache backend"},
		{name: "bad runs backend", mutate: func(in *ConfigRawInput) { in.RunsBackend = "redis" }, expectError: "invalid runs backend"},
		{
			name: "mysql cache without connection",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = "mysql"
			},
			expectError: "connection string is required",
		},
		{
			name: "shared sqlite file",
			mutate: func(in *ConfigRawInput) {
				in.RunsBackend = "sqlite"
				in.CacheDBConnect = "/tmp/same.db"
				in.RunsDBConnect = "/tmp/same.db"
			},
			expectError: "different SQLite database files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProcessAndValidateFields(t *testing.T) {
	input := validInput()
	input.GroupBy = "Status"
	input.Locale = "fr-ca"
	input.PadYears = 2
	input.Origin = "2024-03"
	input.Today = "2026-10-18"
	input.Date = "2024-05-01"
	input.Offset = 42
	input.DayWidth = 4.5
	input.Output = "JSON"
	input.Attributes = "region, owner ,"
	input.RunsBackend = "sqlite"
	input.RunsDBConnect = filepath.Join(t.TempDir(), "runs.db")

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, "items.csv", cfg.InputFile)
	assert.Equal(t, "status", cfg.GroupBy)
	assert.Equal(t, "fr-CA", cfg.Locale)
	assert.Equal(t, 2, cfg.PadYears)
	assert.True(t, cfg.HasOrigin)
	assert.Equal(t, schema.Origin{Year: 2024, Month: 2}, cfg.Origin)
	assert.Equal(t, "2026-10-18", FormatDate(cfg.Today))
	assert.Equal(t, "2024-05-01", FormatDate(cfg.Date))
	assert.Equal(t, 42, cfg.Offset)
	assert.InDelta(t, 4.5, cfg.DayWidth, 1e-9)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, []string{"region", "owner"}, cfg.Attributes)
	assert.False(t, cfg.UseEmojis)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, schema.SQLiteBackend, cfg.RunsBackend)
}

func TestProcessAndValidateDefaultsToday(t *testing.T) {
	cfg := &Config{}
	before := time.Now()
	require.NoError(t, ProcessAndValidate(cfg, validInput()))
	assert.False(t, cfg.Today.Before(before))
	assert.False(t, cfg.HasOrigin)
	assert.True(t, cfg.Date.IsZero())
}

func TestValidateGroupBy(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", schema.DefaultGroupField},
		{"TEAM", "team"},
		{" priority ", "priority"},
		{"Region", "Region"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ValidateGroupBy(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateLocale(t *testing.T) {
	got, err := ValidateLocale("")
	require.NoError(t, err)
	assert.Equal(t, schema.DefaultLocale, got)

	got, err = ValidateLocale("sv")
	require.NoError(t, err)
	assert.Equal(t, "sv", got)

	_, err = ValidateLocale("@@")
	assert.Error(t, err)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{GroupBy: "team", Attributes: []string{"region"}}
	clone := cfg.Clone()
	clone.GroupBy = "status"
	clone.Attributes[0] = "owner"

	assert.Equal(t, "team", cfg.GroupBy)
	assert.Equal(t, []string{"region"}, cfg.Attributes)
}

func TestConfigParams(t *testing.T) {
	cfg := &Config{
		InputFile: "items.yaml",
		GroupBy:   "team",
		Locale:    "en",
		PadYears:  1,
		Today:     time.Date(2026, time.October, 18, 0, 0, 0, 0, time.Local),
	}
	params := cfg.Params()
	assert.Equal(t, "items.yaml", params["input_file"])
	assert.Equal(t, "2026-10-18", params["today"])
	assert.NotContains(t, params, "origin")

	cfg.HasOrigin = true
	cfg.Origin = schema.Origin{Year: 2024, Month: 0}
	assert.Equal(t, "2024-01", cfg.Params()["origin"])
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "timelane"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "timelane", profile.Prefix)
}

package cmd

import (
	"github.com/huangsam/timelane/core"
	"github.com/huangsam/timelane/internal/contract"
	"github.com/spf13/cobra"
)

// layoutCmd lays out every item of a timeline file.
var layoutCmd = &cobra.Command{
	Use:   "layout <items-file>",
	Short: "Assign every item a lane and a position on the day axis.",
	Long: `Group the items of a timeline file and pack each group into lanes.

Items in the same lane never share a day. Within a group, items are placed in
start date order into the lowest free lane, so a group needs at most as many
lanes as items and usually far fewer.

Reads csv, json, yaml and toml files. Dates are YYYY-MM-DD.

Examples:
  # Lay out a roadmap grouped by team
  timelane layout roadmap.csv

  # Group by status and show an extra attribute column
  timelane layout roadmap.yaml --group-by status --attributes owner

  # Add pixel positions for a 4px-per-day canvas
  timelane layout roadmap.json --day-width 4

  # Export placements for analytics
  timelane layout roadmap.csv --output parquet --output-file placements.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLayout(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot lay out timeline", err)
		}
	},
}

// groupsCmd summarizes each group of a timeline file.
var groupsCmd = &cobra.Command{
	Use:   "groups <items-file>",
	Short: "Show how crowded each group of the timeline is.",
	Long: `Summarize each group of a timeline file: item count, lanes used, peak
overlap and a density label (Sparse, Busy, Crowded, Packed).

Examples:
  # Which teams have the most parallel work?
  timelane groups roadmap.csv

  # Compare by priority instead
  timelane groups roadmap.csv --group-by priority --output csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGroups(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot summarize groups", err)
		}
	},
}

// intervalCmd prints the years covered by a timeline file.
var intervalCmd = &cobra.Command{
	Use:   "interval [items-file]",
	Short: "Show the years and start month covered by the timeline.",
	Long: `Print the contiguous years spanned by the items plus --pad-years trailing
years, the month the timeline starts in and its total number of days.

Without an items file the interval starts at --today (default: the real date).

Examples:
  timelane interval roadmap.csv
  timelane interval --today 2026-10-18 --pad-years 2`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteInterval(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot compute interval", err)
		}
	},
}

// offsetCmd converts a date into a day offset.
var offsetCmd = &cobra.Command{
	Use:   "offset [items-file] --date YYYY-MM-DD",
	Short: "Convert a date into a day offset from the timeline origin.",
	Long: `Count the days from the timeline origin to --date.

The origin is --origin when given, else the start of the items file, else the
month of --today. Dates before the origin map to 0.

Examples:
  timelane offset --origin 2024-01 --date 2024-03-01
  timelane offset roadmap.csv --date 2024-06-15 --day-width 4`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOffset(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot convert date", err)
		}
	},
}

// dateCmd converts a day offset into a date.
var dateCmd = &cobra.Command{
	Use:   "date [items-file] --offset N",
	Short: "Convert a day offset from the timeline origin into a date.",
	Long: `Walk --offset days forward from the timeline origin and print the date.

The origin is resolved like the offset command. Negative offsets map to the
origin itself.

Examples:
  timelane date --origin 2024-01 --offset 59
  timelane date roadmap.csv --offset 120 --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDate(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot convert offset", err)
		}
	},
}

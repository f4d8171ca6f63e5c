// Package cmd defines the command-line interface for timelane.
package cmd

import (
	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(intervalCmd)
	rootCmd.AddCommand(offsetCmd)
	rootCmd.AddCommand(dateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("group-by", "g", schema.DefaultGroupField, "Item field to group by: team or status or priority or category or an attribute name")
	rootCmd.PersistentFlags().String("locale", schema.DefaultLocale, "BCP 47 language used to order group titles")
	rootCmd.PersistentFlags().Int("pad-years", schema.DefaultPadYears, "Trailing years added after the last item")
	rootCmd.PersistentFlags().String("origin", "", "Day zero of the timeline as YYYY-MM (default: start of the items)")
	rootCmd.PersistentFlags().String("today", "", "Date used as today when there are no items, as YYYY-MM-DD")
	rootCmd.PersistentFlags().Float64("day-width", 0, "Pixels per day; adds pixel positions to the output (0 = off)")
	rootCmd.PersistentFlags().String("attributes", "", "Comma-separated list of item attributes to show as extra columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("runs-backend", "", "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("runs-db-connect", "", "Database connection string for run tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of offsetCmd to Viper
	offsetCmd.Flags().String("date", "", "Date to convert, as YYYY-MM-DD")
	if err := viper.BindPFlags(offsetCmd.Flags()); err != nil {
		contract.LogFatal("Error binding offset flags", err)
	}

	// Bind all flags of dateCmd to Viper
	dateCmd.Flags().Int("offset", 0, "Day offset to convert")
	if err := viper.BindPFlags(dateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding date flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}

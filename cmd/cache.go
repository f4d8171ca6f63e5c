package cmd

import (
	"fmt"

	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/internal/iocache"
	"github.com/huangsam/timelane/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := readConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize caching with the loaded config (no run tracking for cache commands)
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by layout commands. This avoids loading items
// and complex config processing for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the layout cache",
	Long: `Manage the cache of computed layouts.

Timelane caches each layout keyed by the items and the grouping options, so
laying out an unchanged file again skips the placement pass. Entries expire
after 7 days.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  # Check cache status
  timelane cache status

  # Clear cache
  timelane cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached layouts",
	Long: `Delete all cached layouts from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  timelane cache clear

  # Clear MySQL cache (set connection string via env variable)
  TIMELANE_CACHE_BACKEND=mysql TIMELANE_CACHE_DB_CONNECT="..." timelane cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// The open store holds the SQLite file, so release it first
		iocache.CloseStores()
		if err := iocache.ClearCache(cfg.CacheBackend, cacheFilePath(cfg.CacheDBConnect), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the layout cache.

Displays:
- Backend type and connection status
- Total number of cached layouts
- Last and oldest cache entry timestamps
- Cache database size

Examples:
  # Check cache status
  timelane cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetLayoutStore()
		if store == nil {
			contract.LogFatal("Failed to get cache status", fmt.Errorf("cache is not configured"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}

// cacheFilePath returns the SQLite file backing the cache.
func cacheFilePath(connStr string) string {
	if connStr != "" {
		return connStr
	}
	return contract.GetCacheDBFilePath()
}

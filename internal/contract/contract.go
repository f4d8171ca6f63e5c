// Package contract provides interfaces and shared utilities for timelane's internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/timelane/schema"
)

// CacheManager defines the interface for managing the layout cache and the run store.
// This allows the persistence layer to be mocked for testing.
type CacheManager interface {
	GetLayoutStore() CacheStore
	GetRunStore() RunStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// RunStore defines the interface for tracking layout runs and the placements they produced.
type RunStore interface {
	// BeginRun creates a new layout run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the layout run with completion data
	EndRun(runID int64, endTime time.Time, totalItems, totalGroups int) error

	// RecordPlacements stores the placements computed by a run
	RecordPlacements(runID int64, records []schema.PlacementRecord) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// GetAllRuns retrieves every recorded layout run
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllPlacements retrieves every recorded placement
	GetAllPlacements() ([]schema.PlacementRecord, error)

	// Close closes the underlying connection
	Close() error
}

package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/schema"
)

// currentCacheVersion defines the version of the cache schema.
// Version 2 stores calendar dates as YYYY-MM-DD.
const currentCacheVersion = 2

// maxCacheAge is how long a cached layout stays valid.
const maxCacheAge = 7 * 24 * time.Hour

// cachedBuildLayout returns the layout for items, reusing a cached copy when
// the same items were laid out with the same options recently.
func cachedBuildLayout(items []schema.TimelineItem, opts LayoutOptions, mgr contract.CacheManager) (schema.LayoutResult, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetLayoutStore()
	}
	if store == nil {
		// Fallback to direct computation
		return BuildLayout(items, opts)
	}

	key := generateCacheKey(items, opts)

	// Check for cache hit
	if result, ok := checkCacheHit(store, key); ok {
		return result, nil
	}

	// Cache miss: compute and store
	return computeAndStore(items, opts, store, key)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string) (schema.LayoutResult, bool) {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return schema.LayoutResult{}, false // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= maxCacheAge {
			var result schema.LayoutResult
			if err := json.Unmarshal(data, &result); err == nil {
				return result, true // Cache hit
			}
		}
	}

	return schema.LayoutResult{}, false // Cache miss (stale or version mismatch)
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(items []schema.TimelineItem, opts LayoutOptions, store contract.CacheStore, key string) (schema.LayoutResult, error) {
	result, err := BuildLayout(items, opts)
	if err != nil {
		return schema.LayoutResult{}, err
	}

	// Store in cache
	if data, err := json.Marshal(result); err == nil {
		_ = store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}

	return result, nil
}

// cacheKeyItem is the part of an item that can change a layout.
type cacheKeyItem struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Start      string            `json:"start"`
	End        string            `json:"end"`
	Team       string            `json:"team"`
	Status     string            `json:"status"`
	Priority   string            `json:"priority"`
	Category   string            `json:"category"`
	Progress   *float64          `json:"progress"`
	Attributes map[string]string `json:"attributes"`
}

// cacheKeyInput holds every input of BuildLayout. Items keep their input
// order since ties in start date are placed in that order.
type cacheKeyInput struct {
	GroupBy  string         `json:"group_by"`
	Locale   string         `json:"locale"`
	PadYears int            `json:"pad_years"`
	Origin   string         `json:"origin,omitempty"`
	Today    string         `json:"today,omitempty"`
	Items    []cacheKeyItem `json:"items"`
}

// generateCacheKey creates a unique key based on layout parameters
func generateCacheKey(items []schema.TimelineItem, opts LayoutOptions) string {
	input := cacheKeyInput{
		GroupBy:  opts.GroupBy,
		Locale:   opts.Locale,
		PadYears: opts.PadYears,
		Items:    make([]cacheKeyItem, len(items)),
	}
	if opts.Origin != nil {
		input.Origin = contract.FormatOrigin(*opts.Origin)
	}
	// The clock only matters when there is nothing to derive an interval from
	if len(items) == 0 {
		input.Today = contract.FormatDate(opts.Now)
	}
	for i, item := range items {
		input.Items[i] = cacheKeyItem{
			ID:         item.ID,
			Name:       item.Name,
			Start:      contract.FormatDate(item.StartDate),
			End:        contract.FormatDate(item.EndDate),
			Team:       item.Team,
			Status:     item.Status,
			Priority:   item.Priority,
			Category:   item.Category,
			Progress:   item.Progress,
			Attributes: item.Attributes,
		}
	}

	data, _ := json.Marshal(input)
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

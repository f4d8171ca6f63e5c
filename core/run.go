package core

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/internal/loader"
	"github.com/huangsam/timelane/internal/outwriter"
	"github.com/huangsam/timelane/schema"
)

// ErrNoInputFile is returned when a layout is requested without an items file.
var ErrNoInputFile = errors.New("an items file is required")

// GetLayoutResult loads the configured items file and returns its layout,
// recording the run when a run store is configured.
func GetLayoutResult(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.LayoutResult, error) {
	if cfg.InputFile == "" {
		return schema.LayoutResult{}, ErrNoInputFile
	}
	items, err := loader.Load(cfg.InputFile)
	if err != nil {
		return schema.LayoutResult{}, err
	}

	if !shouldSuppressHeader(ctx) {
		outwriter.LogLayoutHeader(cfg, len(items))
	}

	// --- 0. Begin Run Tracking (if configured) ---
	var runs contract.RunStore
	if mgr != nil {
		runs = mgr.GetRunStore()
	}
	if runs != nil {
		runID, err := runs.BeginRun(time.Now(), cfg.Params())
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		} else if runID > 0 {
			ctx = withRunID(ctx, runID)
		}
	}

	// --- 1. Layout Phase (with caching) ---
	result, err := cachedBuildLayout(items, OptionsFromConfig(cfg), mgr)
	if err != nil {
		abortRun(ctx, runs)
		return schema.LayoutResult{}, err
	}

	// --- 2. End Run Tracking ---
	recordRun(ctx, runs, result)

	return result, nil
}

// recordRun stores the placements of result and closes the tracked run.
// Tracking failures are logged and never fail the layout.
func recordRun(ctx context.Context, runs contract.RunStore, result schema.LayoutResult) {
	runID, ok := getRunID(ctx)
	if runs == nil || !ok {
		return
	}
	if err := runs.RecordPlacements(runID, schema.PlacementRecordsFrom(runID, result)); err != nil {
		contract.LogWarn("Failed to record placements", err)
	}
	if err := runs.EndRun(runID, time.Now(), result.TotalItems, len(result.Groups)); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}

// abortRun closes a tracked run whose layout failed, with zero totals and no
// placements, so no run is left without an end time.
func abortRun(ctx context.Context, runs contract.RunStore) {
	runID, ok := getRunID(ctx)
	if runs == nil || !ok {
		return
	}
	if err := runs.EndRun(runID, time.Now(), 0, 0); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}

// Package core has the layout orchestration: it loads items, builds and
// caches their layout, tracks runs and hands results to the output layer.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/timelane/core/calendar"
	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/internal/loader"
	"github.com/huangsam/timelane/internal/outwriter"
	"github.com/huangsam/timelane/schema"
)

// ErrNoDate is returned by ExecuteOffset when no date was given.
var ErrNoDate = errors.New("--date is required")

// ExecutorFunc defines the function signature for executing the commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteLayout lays out the items file and prints one row per placement.
// It serves as the main entry point for the 'layout' command.
func ExecuteLayout(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	result, err := GetLayoutResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintLayoutResults(result, cfg, duration)
}

// ExecuteGroups lays out the items file and prints one row per group.
func ExecuteGroups(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	result, err := GetLayoutResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintGroupResults(result, cfg, duration)
}

// ExecuteInterval prints the years and start month covered by the items file.
// Without an items file the interval starts at the configured today.
func ExecuteInterval(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	result, err := GetIntervalResult(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintIntervalResult(result, cfg)
}

// GetIntervalResult returns a layout holding only the interval, origin and
// day count of the configured items.
func GetIntervalResult(_ context.Context, cfg *contract.Config) (schema.LayoutResult, error) {
	items, err := loadOptional(cfg)
	if err != nil {
		return schema.LayoutResult{}, err
	}
	opts := OptionsFromConfig(cfg)
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	interval := calendar.Interval(items, opts.Now, opts.PadYears)
	origin := calendar.OriginOf(interval)
	if opts.Origin != nil {
		origin = *opts.Origin
	}
	return schema.LayoutResult{
		GroupBy:    cfg.GroupBy,
		Origin:     origin,
		Interval:   interval,
		TotalDays:  calendar.TotalDaysFrom(interval, origin),
		TotalItems: len(items),
		Groups:     []schema.GroupLayout{},
	}, nil
}

// ExecuteOffset prints the day offset of the configured date.
func ExecuteOffset(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	result, err := DateToOffset(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintOffsetResult(result, cfg)
}

// ExecuteDate prints the date at the configured day offset.
func ExecuteDate(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	result, err := OffsetToDate(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintOffsetResult(result, cfg)
}

// DateToOffset converts cfg.Date into a day offset from the resolved origin.
func DateToOffset(ctx context.Context, cfg *contract.Config) (schema.OffsetResult, error) {
	if cfg.Date.IsZero() {
		return schema.OffsetResult{}, ErrNoDate
	}
	origin, err := ResolveOrigin(ctx, cfg)
	if err != nil {
		return schema.OffsetResult{}, err
	}
	offset := calendar.DateToDayOffset(cfg.Date, origin)
	return newOffsetResult(cfg, calendar.Midnight(cfg.Date), origin, offset), nil
}

// OffsetToDate converts cfg.Offset into a date counted from the resolved origin.
// Negative offsets clamp to the origin.
func OffsetToDate(ctx context.Context, cfg *contract.Config) (schema.OffsetResult, error) {
	origin, err := ResolveOrigin(ctx, cfg)
	if err != nil {
		return schema.OffsetResult{}, err
	}
	offset := max(cfg.Offset, 0)
	return newOffsetResult(cfg, calendar.DayOffsetToDate(offset, origin), origin, offset), nil
}

// ResolveOrigin returns the explicit origin, else the origin of the items
// file, else the month of the configured today.
func ResolveOrigin(ctx context.Context, cfg *contract.Config) (schema.Origin, error) {
	if cfg.HasOrigin {
		return cfg.Origin, nil
	}
	result, err := GetIntervalResult(ctx, cfg)
	if err != nil {
		return schema.Origin{}, err
	}
	return result.Origin, nil
}

func newOffsetResult(cfg *contract.Config, date time.Time, origin schema.Origin, offset int) schema.OffsetResult {
	result := schema.OffsetResult{
		Date:   contract.FormatDate(date),
		Origin: contract.FormatOrigin(origin),
		Offset: offset,
	}
	if cfg.DayWidth > 0 {
		px := calendar.PixelOffset(offset, cfg.DayWidth)
		result.Pixels = &px
	}
	return result
}

func loadOptional(cfg *contract.Config) ([]schema.TimelineItem, error) {
	if cfg.InputFile == "" {
		return nil, nil
	}
	return loader.Load(cfg.InputFile)
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/timelane/core"
	"github.com/huangsam/timelane/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

func (h *toolHandler) handleLayoutTimeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputFile = request.GetString("items_file", "")
	if cfg.InputFile == "" {
		return mcp.NewToolResultError("items_file is required"), nil
	}
	if g := request.GetString("group_by", ""); g != "" {
		groupBy, err := contract.ValidateGroupBy(g)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cfg.GroupBy = groupBy
	}
	if l := request.GetString("locale", ""); l != "" {
		locale, err := contract.ValidateLocale(l)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cfg.Locale = locale
	}
	if o := request.GetString("origin", ""); o != "" {
		origin, err := contract.ParseOrigin(o)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cfg.Origin = origin
		cfg.HasOrigin = true
	}

	result, err := core.GetLayoutResult(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("layout failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleTimelineInterval(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputFile = request.GetString("items_file", "")
	if cfg.InputFile == "" {
		return mcp.NewToolResultError("items_file is required"), nil
	}
	if p := request.GetInt("pad_years", -1); p >= 0 {
		if p > contract.MaxPadYears {
			return mcp.NewToolResultError(fmt.Sprintf("pad_years must be between 0 and %d", contract.MaxPadYears)), nil
		}
		cfg.PadYears = p
	}

	result, err := core.GetIntervalResult(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("interval failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(map[string]any{
		"years":       result.Interval.Years,
		"start_month": result.Interval.StartMonth,
		"origin":      contract.FormatOrigin(result.Origin),
		"total_days":  result.TotalDays,
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDateToOffset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyOrigin(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := contract.ParseDate(request.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg.Date = date

	result, err := core.DateToOffset(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("conversion failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleOffsetToDate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyOrigin(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	offset, err := request.RequireInt("offset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if offset < 0 {
		return mcp.NewToolResultError("offset must not be negative"), nil
	}
	cfg.Offset = offset

	result, err := core.OffsetToDate(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("conversion failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// applyOrigin sets the required origin argument on cfg. Conversions never
// read an items file.
func applyOrigin(cfg *contract.Config, request mcp.CallToolRequest) error {
	origin, err := contract.ParseOrigin(request.GetString("origin", ""))
	if err != nil {
		return err
	}
	cfg.Origin = origin
	cfg.HasOrigin = true
	cfg.InputFile = ""
	return nil
}

// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/timelane/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the timelane MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Timelane Layout Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: layout_timeline ---
	s.AddTool(mcp.NewTool("layout_timeline",
		mcp.WithDescription("Group the items of a timeline file and assign each item a lane so that no two items in a lane overlap."),
		mcp.WithString("items_file", mcp.Description("Path to the items file (csv, json, yaml or toml)."), mcp.Required()),
		mcp.WithString("group_by", mcp.Description("Item field to group by (team, status, priority, category or an attribute name). Defaults to 'team'.")),
		mcp.WithString("locale", mcp.Description("BCP 47 language used to order group titles. Defaults to 'en'.")),
		mcp.WithString("origin", mcp.Description("Day zero of the timeline as YYYY-MM. Defaults to the start of the items.")),
	), h.handleLayoutTimeline)

	// --- 2. Tool: timeline_interval ---
	s.AddTool(mcp.NewTool("timeline_interval",
		mcp.WithDescription("Return the contiguous years and start month covered by a timeline file."),
		mcp.WithString("items_file", mcp.Description("Path to the items file (csv, json, yaml or toml)."), mcp.Required()),
		mcp.WithNumber("pad_years", mcp.Description("Trailing years added after the last item. Defaults to the server setting.")),
	), h.handleTimelineInterval)

	// --- 3. Tool: date_to_offset ---
	s.AddTool(mcp.NewTool("date_to_offset",
		mcp.WithDescription("Convert a calendar date into a day offset from a timeline origin."),
		mcp.WithString("date", mcp.Description("Date as YYYY-MM-DD."), mcp.Required()),
		mcp.WithString("origin", mcp.Description("Day zero of the timeline as YYYY-MM."), mcp.Required()),
	), h.handleDateToOffset)

	// --- 4. Tool: offset_to_date ---
	s.AddTool(mcp.NewTool("offset_to_date",
		mcp.WithDescription("Convert a day offset from a timeline origin back into a calendar date."),
		mcp.WithNumber("offset", mcp.Description("Number of days after the origin."), mcp.Required()),
		mcp.WithString("origin", mcp.Description("Day zero of the timeline as YYYY-MM."), mcp.Required()),
	), h.handleOffsetToDate)

	return s
}

// StartMCPServer starts the timelane MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

// tools_init.go implements the MCP tool for initialising a new catalogue.
//
// This tool works without an existing catalogue, allowing LLMs to bootstrap
// a new tagidx repository. Other catalogue tools require initialisation first.

package mcp

import (
	"context"
	"log/slog"

	"github.com/jpl-au/tagidx/internal/catalog"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/jpl-au/tagidx/internal/repo"
	"github.com/mark3labs/mcp-go/mcp"
)

// initCatalogue handles tagidx_init tool calls.
func (h *handlers) initCatalogue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.svc != nil {
		return mcp.NewToolResultError("catalogue already initialised"), nil
	}

	local := getBool(req, "local", false)
	limits, err := requestLimits(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	err = repo.Init(ctx, repo.InitOptions{DB: h.db, Local: local, Limits: limits})

	log.Event("mcp:init", "init").Author("mcp").
		Detail("local", local).
		Detail("max_tags", limits.MaxTags).
		Detail("max_tag_len", limits.MaxTagLen).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc, err := catalog.New(h.db)
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open catalogue: " + err.Error()), nil
	}
	if err := h.attach(svc); err != nil {
		svc.Close()
		return mcp.NewToolResultError("init succeeded but failed to load extensions: " + err.Error()), nil
	}

	slog.Info("catalogue initialised", "local", local, "max_tags", limits.MaxTags, "max_tag_len", limits.MaxTagLen)

	if local {
		return mcp.NewToolResultText("catalogue initialised (local - gitignored)"), nil
	}
	return mcp.NewToolResultText("catalogue initialised"), nil
}

// tools_config.go implements MCP tools for configuration management.
//
// Separated because config operations modify persistent settings rather
// than the catalogue. They work without an initialised catalogue.
//
// Design: The limits.* keys only shape catalogues created afterwards. An
// open catalogue keeps the limits recorded in its database, so a change here
// never reinterprets stored tags.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/tagidx/internal/config"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles tagidx_config_get tool calls.
func (h *handlers) configGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	cfg, err := config.Load()
	if err != nil {
		log.Event("mcp:config_get", "get").Author("mcp").Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:config_get", "list").Author("mcp").Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)

	log.Event("mcp:config_get", "get").Author("mcp").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]string{key: v})
}

// configSet handles tagidx_config_set tool calls.
func (h *handlers) configSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}

	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	cfg, err := config.Load()
	if err != nil {
		log.Event("mcp:config_set", "set").Author("mcp").Detail("key", key).Detail("value", value).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := cfg.Set(key, value); err != nil {
		log.Event("mcp:config_set", "set").Author("mcp").Detail("key", key).Detail("value", value).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	err = cfg.Save()

	log.Event("mcp:config_set", "set").Author("mcp").Detail("key", key).Detail("value", value).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if h.svc != nil && (key == "limits.max_tags" || key == "limits.max_tag_len") {
		l := h.svc.Limits()
		return mcp.NewToolResultText(fmt.Sprintf("%s = %s (open catalogue keeps max_tags=%d max_tag_len=%d)", key, value, l.MaxTags, l.MaxTagLen)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s = %s", key, value)), nil
}

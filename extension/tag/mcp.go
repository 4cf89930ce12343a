// mcp.go implements the tagidx_tag_log MCP tool.

package tag

import (
	"context"
	"encoding/json"

	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

func logTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("tagidx_tag_log",
			mcp.WithDescription("Show the tag history of an index: its tags at creation and every tag added or removed since, oldest first."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Index id or unique prefix (at least 4 hex digits)")),
		),
		Handler: handleLog,
	}
}

func handleLog(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}

	e, err := extCtx.Service().Resolve(ctx, id, true)
	if err != nil {
		log.Event("mcp:tag_log", "history").Author("mcp").Index(id).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	changes, err := history(ctx, extCtx.DB(), e.Index.ID.String())

	log.Event("mcp:tag_log", "history").Author("mcp").Index(id).Resolved(e.Index.ID.String()).Detail("count", len(changes)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if changes == nil {
		changes = []change{}
	}
	b, err := json.MarshalIndent(changes, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(b)), nil
}

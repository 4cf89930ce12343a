// tools_tags.go implements MCP tools for index tagging operations.
//
// Separated from tools_indices.go because tags have their own query patterns
// (list all tags, compare tag sets of two indices).
//
// Design: Tag changes are all-or-nothing. Adding tags that would overflow the
// set, or removing a tag the index lacks, fails without touching the index,
// so an LLM retrying a call never leaves a half-applied change.

package mcp

import (
	"context"

	"github.com/jpl-au/tagidx/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// tagAdd handles tagidx_tag_add tool calls.
func (h *handlers) tagAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}
	tags, err := req.RequireString("tags")
	if err != nil {
		return mcp.NewToolResultError("tags is required"), nil //nolint:nilerr
	}

	e, err := h.svc.Tag(ctx, id, tags, "mcp")

	entry := log.Event("mcp:tag_add", "tag").Author("mcp").Index(id).Tags(tags)
	if e != nil {
		entry.Resolved(e.Index.ID.String()).Result(e.Index.Tags.String())
	}
	entry.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(e.ToJSON())
}

// tagRemove handles tagidx_tag_remove tool calls.
func (h *handlers) tagRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}
	tags, err := req.RequireString("tags")
	if err != nil {
		return mcp.NewToolResultError("tags is required"), nil //nolint:nilerr
	}

	e, err := h.svc.Untag(ctx, id, tags, "mcp")

	entry := log.Event("mcp:tag_remove", "untag").Author("mcp").Index(id).Tags(tags)
	if e != nil {
		entry.Resolved(e.Index.ID.String()).Result(e.Index.Tags.String())
	}
	entry.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(e.ToJSON())
}

// listTags handles tagidx_tags tool calls.
func (h *handlers) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	id := getString(req, "id", "")
	if id != "" {
		e, err := h.svc.Resolve(ctx, id, false)
		log.Event("mcp:tags", "list").Author("mcp").Index(id).Write(err)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(e.Index.Tags.Tags())
	}

	tags, err := h.svc.Tags(ctx)

	log.Event("mcp:tags", "list").Author("mcp").Detail("count", len(tags)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(tags)
}

// commonTags handles tagidx_common tool calls.
func (h *handlers) commonTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	a, err := req.RequireString("a")
	if err != nil {
		return mcp.NewToolResultError("a is required"), nil //nolint:nilerr
	}
	b, err := req.RequireString("b")
	if err != nil {
		return mcp.NewToolResultError("b is required"), nil //nolint:nilerr
	}

	common, err := h.svc.Common(ctx, a, b)

	log.Event("mcp:common", "read").Author("mcp").Index(a).Detail("other", b).Result(common.String()).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(common.Tags())
}

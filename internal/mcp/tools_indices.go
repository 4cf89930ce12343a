// tools_indices.go implements MCP tools for catalogue index operations.
//
// These tools mirror the CLI's index commands: create, link, sim, get, list,
// prime, delete and restore. Results are returned as EntryJSON so the LLM
// sees the same shape as "tagidx -o json".

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/tagidx/internal/diff"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/jpl-au/tagidx/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// createIndex handles tagidx_create tool calls.
func (h *handlers) createIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	dim := getInt(req, "dim", 0)
	tags := getString(req, "tags", "")
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}

	e, err := h.svc.Create(ctx, dim, tags, author)

	entry := log.Event("mcp:create", "create").Author(author).Tags(tags).Detail("dim", dim)
	if e != nil {
		entry.Resolved(e.Index.ID.String()).Result(e.Index.Tags.String())
	}
	entry.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(e.ToJSON())
}

// linkIndex handles tagidx_link tool calls.
func (h *handlers) linkIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	dim := getInt(req, "dim", 0)
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}

	e, err := h.svc.Link(ctx, dim, author)

	entry := log.Event("mcp:link", "create").Author(author).Detail("dim", dim)
	if e != nil {
		entry.Resolved(e.Index.ID.String())
	}
	entry.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(e.ToJSON())
}

// simIndex handles tagidx_sim tool calls.
func (h *handlers) simIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}

	e, err := h.svc.Sim(ctx, id, author)

	entry := log.Event("mcp:sim", "create").Author(author).Index(id)
	if e != nil {
		entry.Resolved(e.Index.ID.String()).Result(e.Index.Tags.String())
	}
	entry.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(e.ToJSON())
}

// getIndex handles tagidx_get tool calls.
func (h *handlers) getIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}
	includeDeleted := getBool(req, "include_deleted", false)

	e, err := h.svc.Resolve(ctx, id, includeDeleted)

	entry := log.Event("mcp:get", "read").Author("mcp").Index(id)
	if e != nil {
		entry.Resolved(e.Index.ID.String())
	}
	entry.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(e.ToJSON())
}

// listIndices handles tagidx_list tool calls.
func (h *handlers) listIndices(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	opts := service.ListOptions{
		Tags:           getString(req, "tags", ""),
		IncludeDeleted: getBool(req, "include_deleted", false),
		DeletedOnly:    getBool(req, "deleted_only", false),
	}

	entries, err := h.svc.List(ctx, opts)

	log.Event("mcp:list", "list").Author("mcp").
		Tags(opts.Tags).
		Detail("include_deleted", opts.IncludeDeleted).
		Detail("deleted_only", opts.DeletedOnly).
		Detail("count", len(entries)).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := make([]service.EntryJSON, len(entries))
	for i := range entries {
		result[i] = entries[i].ToJSON()
	}
	return jsonResult(result)
}

// primeIndex handles tagidx_prime tool calls.
func (h *handlers) primeIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}
	n := getInt(req, "n", 1)

	e, err := h.svc.Prime(ctx, id, n)

	entry := log.Event("mcp:prime", "prime").Author("mcp").Index(id).Detail("n", n)
	if e != nil {
		entry.Resolved(e.Index.ID.String()).Detail("plev", e.Index.Plev)
	}
	entry.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(e.ToJSON())
}

// deleteIndex handles tagidx_delete tool calls.
func (h *handlers) deleteIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}

	e, err := h.svc.Delete(ctx, id)

	entry := log.Event("mcp:delete", "delete").Author("mcp").Index(id)
	if e != nil {
		entry.Resolved(e.Index.ID.String())
	}
	entry.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted %s", e.Index)), nil
}

// restoreIndex handles tagidx_restore tool calls.
func (h *handlers) restoreIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}

	e, err := h.svc.Restore(ctx, id)

	entry := log.Event("mcp:restore", "restore").Author("mcp").Index(id)
	if e != nil {
		entry.Resolved(e.Index.ID.String())
	}
	entry.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("restored %s", e.Index)), nil
}

// diffIndices handles tagidx_diff tool calls.
func (h *handlers) diffIndices(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	r, err := h.diff(ctx, a, b)

	log.Event("mcp:diff", "diff").Author("mcp").Index(a).Detail("other", b).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(r)
}

func (h *handlers) diff(ctx context.Context, a, b string) (diff.Result, error) {
	x, err := h.svc.Resolve(ctx, a, false)
	if err != nil {
		return diff.Result{}, err
	}
	y, err := h.svc.Resolve(ctx, b, false)
	if err != nil {
		return diff.Result{}, err
	}
	return diff.Compute(x.Index.Tags, y.Index.Tags, x.Index.String(), y.Index.String()), nil
}

// stats handles tagidx_stats tool calls.
func (h *handlers) stats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	st, err := h.svc.Stats(ctx)

	log.Event("mcp:stats", "read").Author("mcp").Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(st)
}

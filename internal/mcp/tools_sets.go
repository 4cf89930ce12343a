// tools_sets.go implements MCP tools that work on tag text alone.
//
// Separated from the catalogue tools because these never touch the
// database: parse and compare run under the open catalogue's limits when one
// exists, and under the configured limits otherwise.

package mcp

import (
	"context"
	"errors"

	"github.com/jpl-au/tagidx/internal/config"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/jpl-au/tagidx/tagset"
	"github.com/mark3labs/mcp-go/mcp"
)

// setJSON describes a parsed tag set.
type setJSON struct {
	Tags []string `json:"tags"`
	Text string   `json:"text"`
	Len  int      `json:"len"`
	Cap  int      `json:"cap"`
}

func toSetJSON(s tagset.Set) setJSON {
	return setJSON{Tags: s.Tags(), Text: s.String(), Len: s.Len(), Cap: s.Cap()}
}

// limits returns the bounds tag text is parsed under.
func (h *handlers) limits() (tagset.Limits, error) {
	if h.svc != nil {
		return h.svc.Limits(), nil
	}
	cfg, err := config.Load()
	if err != nil {
		return tagset.Limits{}, err
	}
	return cfg.TagLimits(), nil
}

// requestLimits returns the configured limits with any max_tags and
// max_tag_len arguments applied on top.
func requestLimits(req mcp.CallToolRequest) (tagset.Limits, error) {
	cfg, err := config.Load()
	if err != nil {
		return tagset.Limits{}, err
	}
	l := cfg.TagLimits()
	l.MaxTags = getInt(req, "max_tags", l.MaxTags)
	l.MaxTagLen = getInt(req, "max_tag_len", l.MaxTagLen)
	return l, l.Validate()
}

// parseTags handles tagidx_parse tool calls.
func (h *handlers) parseTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	tags, err := req.RequireString("tags")
	if err != nil {
		return mcp.NewToolResultError("tags is required"), nil //nolint:nilerr
	}

	l, err := h.limits()
	if err == nil {
		l.MaxTags = getInt(req, "max_tags", l.MaxTags)
		l.MaxTagLen = getInt(req, "max_tag_len", l.MaxTagLen)
		err = l.Validate()
	}
	var s tagset.Set
	if err == nil {
		s, err = l.Parse(tags)
	}

	log.Event("mcp:parse", "parse").Author("mcp").Tags(tags).Result(s.String()).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(toSetJSON(s))
}

// compareJSON is the tagidx_compare result. Union is omitted, with
// UnionError set, when the two sets do not fit in one.
type compareJSON struct {
	A          setJSON  `json:"a"`
	B          setJSON  `json:"b"`
	Common     []string `json:"common"`
	OnlyA      []string `json:"only_a"`
	OnlyB      []string `json:"only_b"`
	Union      []string `json:"union,omitempty"`
	UnionError string   `json:"union_error,omitempty"`
	AHasAllB   bool     `json:"a_has_all_b"`
	BHasAllA   bool     `json:"b_has_all_a"`
}

// compareTags handles tagidx_compare tool calls.
func (h *handlers) compareTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	a, err := req.RequireString("a")
	if err != nil {
		return mcp.NewToolResultError("a is required"), nil //nolint:nilerr
	}
	b, err := req.RequireString("b")
	if err != nil {
		return mcp.NewToolResultError("b is required"), nil //nolint:nilerr
	}

	res, err := h.compare(a, b)

	log.Event("mcp:compare", "compare").Author("mcp").Detail("a", a).Detail("b", b).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func (h *handlers) compare(a, b string) (compareJSON, error) {
	l, err := h.limits()
	if err != nil {
		return compareJSON{}, err
	}
	sa, err := l.Parse(a)
	if err != nil {
		return compareJSON{}, err
	}
	sb, err := l.Parse(b)
	if err != nil {
		return compareJSON{}, err
	}

	res := compareJSON{
		A:        toSetJSON(sa),
		B:        toSetJSON(sb),
		Common:   sa.Common(sb).Tags(),
		OnlyA:    sa.Difference(sb).Tags(),
		OnlyB:    sb.Difference(sa).Tags(),
		AHasAllB: sa.HasAll(sb),
		BHasAllA: sb.HasAll(sa),
	}
	u, err := sa.Union(sb)
	switch {
	case err == nil:
		res.Union = u.Tags()
	case errors.Is(err, tagset.ErrTooManyTags):
		res.UnionError = err.Error()
	default:
		return compareJSON{}, err
	}
	return res, nil
}

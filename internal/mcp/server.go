// Package mcp implements the Model Context Protocol server, exposing tagidx
// operations to LLMs. This lets AI assistants parse tag sets and manage a
// catalogue of indices through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/catalog"
	"github.com/jpl-au/tagidx/internal/config"
	"github.com/jpl-au/tagidx/internal/repo"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when the catalogue has not been initialised.
// The LLM should call tagidx_init to create one before using other tools.
const ErrNotInitialised = "catalogue not initialised - call tagidx_init first"

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other MCP clients.
//
// Design: The server starts successfully even if no catalogue exists. This
// allows LLMs to call tagidx_init to create one, rather than failing with an
// opaque error. Tools that require a catalogue return ErrNotInitialised.
func Serve(db string) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{db: db}

	svc, err := catalog.New(db)
	if err != nil && !errors.Is(err, repo.ErrNotInitialised) {
		slog.Error("failed to open catalogue", "error", err)
		return err
	}
	if err == nil {
		if err := h.attach(svc); err != nil {
			svc.Close()
			return err
		}
		defer svc.Close()
	} else {
		slog.Info("tagidx not initialised, starting in uninitialised mode - call tagidx_init to create a catalogue")
	}

	s := newServer(h)

	slog.Info("tagidx MCP server ready", "version", Version, "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// newServer builds the MCP server with every resource and tool registered.
func newServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"tagidx",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, h)
	return s
}

// handlers provides MCP request handlers with access to the catalogue.
// The svc field may be nil if the catalogue has not been initialised.
type handlers struct {
	db     string           // database name for init
	svc    *catalog.Service // nil if not initialised
	extCtx extension.Context
}

// attach installs svc as the handlers' catalogue and wires extensions to it,
// the same way the CLI does before running a command.
func (h *handlers) attach(svc *catalog.Service) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	h.svc = svc
	h.extCtx = extension.NewContext(svc, svc.DB(), cfg)
	svc.SetExtensionContext(h.extCtx)

	for _, ext := range extension.All() {
		if init, ok := ext.(extension.Initializable); ok {
			if err := init.Init(h.extCtx); err != nil {
				return fmt.Errorf("init extension %s: %w", ext.Name(), err)
			}
		}
	}
	return nil
}

// requireInit returns an error result if the catalogue is not initialised.
// Tools that require a catalogue should call this first.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

// registerResources adds URI-based resource access for direct index reading.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"tagidx://indices/{id}",
			"Index",
			mcp.WithTemplateDescription("Read an index by id or unique id prefix"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readIndex,
	)
}

// registerTools exposes tagidx operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// Init - works without existing catalogue
	s.AddTool(
		mcp.NewTool("tagidx_init",
			mcp.WithDescription("Initialise a new tagidx catalogue. Call this first if other tools return 'catalogue not initialised'."),
			mcp.WithBoolean("local", mcp.Description("If true, database is gitignored (not committed to version control)")),
			mcp.WithNumber("max_tags", mcp.Description("Maximum tags per index (default from config, else 4)")),
			mcp.WithNumber("max_tag_len", mcp.Description("Maximum characters per tag (default from config, else 16)")),
		),
		h.initCatalogue,
	)

	// Parse - works without existing catalogue
	s.AddTool(
		mcp.NewTool("tagidx_parse",
			mcp.WithDescription("Parse comma-separated tags into a canonical tag set (whitespace removed, sorted, deduplicated)"),
			mcp.WithString("tags", mcp.Required(), mcp.Description("Comma-separated tags, e.g. 'Site, n=1'")),
			mcp.WithNumber("max_tags", mcp.Description("Override the maximum number of tags")),
			mcp.WithNumber("max_tag_len", mcp.Description("Override the maximum tag length in characters")),
		),
		h.parseTags,
	)

	// Compare - works without existing catalogue
	s.AddTool(
		mcp.NewTool("tagidx_compare",
			mcp.WithDescription("Compare two tag lists: common tags, union, and tags only in one side"),
			mcp.WithString("a", mcp.Required(), mcp.Description("First comma-separated tag list")),
			mcp.WithString("b", mcp.Required(), mcp.Description("Second comma-separated tag list")),
		),
		h.compareTags,
	)

	// Create
	s.AddTool(
		mcp.NewTool("tagidx_create",
			mcp.WithDescription("Catalogue a new index with a dimension and tags"),
			mcp.WithNumber("dim", mcp.Required(), mcp.Description("Index dimension (at least 1)")),
			mcp.WithString("tags", mcp.Description("Comma-separated tags")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.createIndex,
	)

	// Link
	s.AddTool(
		mcp.NewTool("tagidx_link",
			mcp.WithDescription("Catalogue a new index tagged only 'Link'"),
			mcp.WithNumber("dim", mcp.Required(), mcp.Description("Index dimension (at least 1)")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.linkIndex,
	)

	// Sim
	s.AddTool(
		mcp.NewTool("tagidx_sim",
			mcp.WithDescription("Catalogue a copy of an index with a fresh id"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Index id or unique prefix")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.simIndex,
	)

	// Get
	s.AddTool(
		mcp.NewTool("tagidx_get",
			mcp.WithDescription("Read an index by id or unique id prefix (at least 4 hex digits)"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Index id or unique prefix")),
			mcp.WithBoolean("include_deleted", mcp.Description("Allow reading deleted indices")),
		),
		h.getIndex,
	)

	// List
	s.AddTool(
		mcp.NewTool("tagidx_list",
			mcp.WithDescription("List indices in creation order"),
			mcp.WithString("tags", mcp.Description("Only indices carrying all of these comma-separated tags")),
			mcp.WithBoolean("include_deleted", mcp.Description("Include soft-deleted indices")),
			mcp.WithBoolean("deleted_only", mcp.Description("Show only deleted indices")),
		),
		h.listIndices,
	)

	// Prime
	s.AddTool(
		mcp.NewTool("tagidx_prime",
			mcp.WithDescription("Raise (or with a negative n, lower) the prime level of an index"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Index id or unique prefix")),
			mcp.WithNumber("n", mcp.Description("Levels to add (default 1)")),
		),
		h.primeIndex,
	)

	// Delete
	s.AddTool(
		mcp.NewTool("tagidx_delete",
			mcp.WithDescription("Soft delete an index (recoverable via tagidx_restore)"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Index id or unique prefix")),
		),
		h.deleteIndex,
	)

	// Restore
	s.AddTool(
		mcp.NewTool("tagidx_restore",
			mcp.WithDescription("Restore a soft-deleted index"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Index id or unique prefix")),
		),
		h.restoreIndex,
	)

	// Tag Add
	s.AddTool(
		mcp.NewTool("tagidx_tag_add",
			mcp.WithDescription("Add tags to an index. All tags are added or, if the set would overflow, none are"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Index id or unique prefix")),
			mcp.WithString("tags", mcp.Required(), mcp.Description("Comma-separated tags to add")),
		),
		h.tagAdd,
	)

	// Tag Remove
	s.AddTool(
		mcp.NewTool("tagidx_tag_remove",
			mcp.WithDescription("Remove tags from an index. Fails without changes if any tag is absent"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Index id or unique prefix")),
			mcp.WithString("tags", mcp.Required(), mcp.Description("Comma-separated tags to remove")),
		),
		h.tagRemove,
	)

	// List Tags
	s.AddTool(
		mcp.NewTool("tagidx_tags",
			mcp.WithDescription("List tags for an index, or every tag in use with its count"),
			mcp.WithString("id", mcp.Description("Index id (optional, list all if empty)")),
		),
		h.listTags,
	)

	// Common
	s.AddTool(
		mcp.NewTool("tagidx_common",
			mcp.WithDescription("Tags shared by two catalogued indices"),
			mcp.WithString("a", mcp.Required(), mcp.Description("First index id or prefix")),
			mcp.WithString("b", mcp.Required(), mcp.Description("Second index id or prefix")),
		),
		h.commonTags,
	)

	// Diff
	s.AddTool(
		mcp.NewTool("tagidx_diff",
			mcp.WithDescription("Show the tag differences between two catalogued indices"),
			mcp.WithString("a", mcp.Required(), mcp.Description("First index id or prefix")),
			mcp.WithString("b", mcp.Required(), mcp.Description("Second index id or prefix")),
		),
		h.diffIndices,
	)

	// Stats
	s.AddTool(
		mcp.NewTool("tagidx_stats",
			mcp.WithDescription("Catalogue statistics"),
		),
		h.stats,
	)

	// Config Get
	s.AddTool(
		mcp.NewTool("tagidx_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (author.name, author.email, limits.max_tags, limits.max_tag_len) or empty for all")),
		),
		h.configGet,
	)

	// Config Set
	s.AddTool(
		mcp.NewTool("tagidx_config_set",
			mcp.WithDescription("Set a configuration value"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key (author.name, author.email, limits.max_tags, limits.max_tag_len)")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)

	// Guide
	s.AddTool(
		mcp.NewTool("tagidx_guide",
			mcp.WithDescription("Get help/guide content for tagidx commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'tags', 'index', 'limits') or empty for index")),
		),
		h.getGuide,
	)
}

// registerExtensionTools adds the MCP tools contributed by extensions. Their
// handlers receive the shared extension context once a catalogue is open.
func registerExtensionTools(s *server.MCPServer, h *handlers) {
	for _, ext := range extension.All() {
		for _, t := range ext.MCPTools() {
			s.AddTool(t.Tool, h.extensionHandler(t.Handler))
		}
	}
}

func (h *handlers) extensionHandler(fn extension.MCPHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := h.requireInit(); err != nil {
			return err, nil
		}
		return fn(ctx, h.extCtx, req)
	}
}

// readIndex handles tagidx://indices/{id} resource requests.
func (h *handlers) readIndex(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.readIndexResource(ctx, req.Params.URI)
}

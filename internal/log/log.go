// Package log provides centralised audit logging for tagidx operations.
// Logs are stored in ~/.tagidx/log/tagidx-log.db and track all CLI commands
// and MCP tool invocations across catalogues.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("index:show", "read").
//		Author(cmd.Author()).
//		Index(prefix).
//		Resolved(idx.ID.String()).
//		Write(err)
//
//	log.Event("tag:add", "tag").
//		Author(cmd.Author()).
//		Index(prefix).
//		Tags("Site").
//		Result(idx.Tags.String()).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "index:new",
// "tag:rm", "mcp:tagidx_create".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "index:new", "mcp:tagidx_get"
	Author string // who performed the action
	Action string // verb: create, read, tag, untag, delete, etc.
	Index  string // input: index id or prefix requested
	Tags   string // input: tag text supplied

	// Output fields, populated after the operation succeeds
	Resolved string // output: full index id (if the input was a prefix)
	Result   string // output: canonical tag set after the operation

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "index:new", "tag:add")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:tagidx_create")
//
// The action describes what operation was performed:
//   - "create", "read", "list", "tag", "untag", "delete", "restore", etc.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
//
// For CLI commands, use cmd.Author() which returns the configured author.
// For MCP tools, use "mcp" as the author.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Index sets the index id or id prefix this operation targets.
func (b *Builder) Index(id string) *Builder {
	b.entry.Index = id
	return b
}

// Tags sets the tag text supplied to the operation.
func (b *Builder) Tags(tags string) *Builder {
	b.entry.Tags = tags
	return b
}

// Resolved sets the full index id the input resolved to (output).
//
// Use after a prefix lookup succeeds, so that the log records which index
// was actually affected.
func (b *Builder) Resolved(id string) *Builder {
	b.entry.Resolved = id
	return b
}

// Result sets the canonical tag set produced by the operation (output).
func (b *Builder) Result(tags string) *Builder {
	b.entry.Result = tags
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// dimensions, prime levels, result counts and so on.
//
//	log.Event("index:ls", "list").
//		Detail("filter", tags).
//		Detail("count", len(indices))
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
//	idx, err := svc.Get(ctx, prefix)
//	log.Event("index:show", "read").Index(prefix).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path to the .tagidx directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}

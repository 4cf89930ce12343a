// context.go defines the Context interface for extension access to tagidx internals.
//
// Extensions receive a Context in Init(), after registration, because the
// catalogue is only opened once the command line has been parsed. The
// interface keeps extensions off the store and lets tests pass their own.

package extension

import (
	"database/sql"

	"github.com/jpl-au/tagidx/internal/config"
	"github.com/jpl-au/tagidx/internal/service"
	"github.com/jpl-au/tagidx/tagset"
)

// Context provides extensions controlled access to tagidx internals.
type Context interface {
	// Service returns the catalogue service.
	Service() service.Service

	// DB exposes the catalogue database for extension-owned tables.
	// Extensions create their own tables and never write core ones.
	DB() *sql.DB

	// Config returns the loaded user configuration.
	Config() *config.Config

	// Limits returns the tag limits recorded in the open catalogue. They
	// can differ from the limits.* config keys, which only shape
	// catalogues created later.
	Limits() tagset.Limits
}

type extContext struct {
	svc service.Service
	db  *sql.DB
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, db *sql.DB, cfg *config.Config) Context {
	return &extContext{svc: svc, db: db, cfg: cfg}
}

func (c *extContext) Service() service.Service { return c.svc }

func (c *extContext) DB() *sql.DB { return c.db }

func (c *extContext) Config() *config.Config { return c.cfg }

func (c *extContext) Limits() tagset.Limits { return c.svc.Limits() }

// resources.go implements MCP resource handlers for index access.
//
// MCP resources provide read-only access to indices via a URI scheme, so an
// LLM client can load an index into context without calling a tool.
//
// Design: Resource URIs follow the pattern tagidx://indices/{id}, where id
// is a full id or unique prefix, the same forms the "show" command accepts.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/tagidx/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI, helping clients
	// debug URI construction issues.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyID indicates a missing index id in a resource URI.
	ErrEmptyID = errors.New("empty index id")
)

const indexURIPrefix = "tagidx://indices/"

// readIndexResource reads an index and returns it as JSON resource contents.
func (h *handlers) readIndexResource(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
	if h.svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}

	id, err := parseIndexURI(uri)
	if err != nil {
		return nil, err
	}

	e, err := h.svc.Resolve(ctx, id, false)
	if err != nil {
		return nil, err
	}
	data, err := store.MarshalJSON(e.ToJSON())
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// parseIndexURI extracts the id from tagidx://indices/{id}.
func parseIndexURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, indexURIPrefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	id := strings.TrimPrefix(uri, indexURIPrefix)
	if id == "" {
		return "", ErrEmptyID
	}
	if strings.Contains(id, "/") {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return id, nil
}

// Package store defines index persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface.
package store

import (
	"encoding/json"
	"strings"
	"time"
)

// Record is a stored index. Tags holds the elements of the index's tag set
// in ascending order; the store does not interpret them beyond that.
type Record struct {
	ID        string   // Full UUID string
	Dim       int      // Dimension, at least 1
	Plev      int      // Prime level, at least 0
	Tags      []string // Sorted, unique tag elements
	Author    string   // Who created the index
	CreatedAt int64    // Unix timestamp of creation
	UpdatedAt int64    // Unix timestamp of the last tag or prime change
	DeletedAt *int64   // Unix timestamp of deletion, nil if not deleted
}

// TagText returns the canonical comma-joined form of r.Tags.
func (r *Record) TagText() string {
	return strings.Join(r.Tags, ",")
}

// RecordJSON is the API-friendly representation of a Record with RFC3339
// timestamps.
type RecordJSON struct {
	ID        string   `json:"id"`
	Dim       int      `json:"dim"`
	Plev      int      `json:"plev"`
	Tags      []string `json:"tags"`
	Author    string   `json:"author,omitempty"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
	Deleted   bool     `json:"deleted,omitempty"`
}

// ToJSON converts a Record to its API representation.
func (r *Record) ToJSON() RecordJSON {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return RecordJSON{
		ID:        r.ID,
		Dim:       r.Dim,
		Plev:      r.Plev,
		Tags:      tags,
		Author:    r.Author,
		CreatedAt: time.Unix(r.CreatedAt, 0).UTC().Format(time.RFC3339),
		UpdatedAt: time.Unix(r.UpdatedAt, 0).UTC().Format(time.RFC3339),
		Deleted:   r.DeletedAt != nil,
	}
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
// Use this instead of json.Marshal when the output will be displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// ListOptions configures a List query.
type ListOptions struct {
	Tags           []string // Only indices carrying all of these tags
	IncludeDeleted bool     // Include soft-deleted indices
	DeletedOnly    bool     // Only soft-deleted indices (trash listing)
}

// TagCount pairs a tag with the number of active indices carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// Stats provides aggregate catalogue statistics.
type Stats struct {
	Indices         int64 `json:"indices"`           // Active (non-deleted) index count
	Deleted         int64 `json:"deleted"`           // Soft-deleted indices pending vacuum
	Tags            int64 `json:"tags"`              // Distinct tags on active indices
	Untagged        int64 `json:"untagged"`          // Active indices with an empty tag set
	Authors         int64 `json:"authors"`           // Distinct authors who have created indices
	Oldest          int64 `json:"oldest"`            // Unix timestamp of earliest index
	Newest          int64 `json:"newest"`            // Unix timestamp of most recent index
	OldestDeletedAt int64 `json:"oldest_deleted_at"` // Unix timestamp of earliest soft-delete (0 if none)
}

// Package exporter writes a catalogue's indices to a portable YAML or JSON
// file, which "tagidx import" can load into another catalogue.
package exporter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jpl-au/tagidx/internal/progress"
	"github.com/jpl-au/tagidx/internal/service"
	"gopkg.in/yaml.v3"
)

// FormatVersion is written to every export file.
const FormatVersion = 1

// File is the on-disk layout of an export.
type File struct {
	Version int    `yaml:"version" json:"version"`
	Limits  Limits `yaml:"limits" json:"limits"`
	Indices []Item `yaml:"indices" json:"indices"`
}

// Limits records the tag bounds of the exporting catalogue.
type Limits struct {
	MaxTags   int `yaml:"max_tags" json:"max_tags"`
	MaxTagLen int `yaml:"max_tag_len" json:"max_tag_len"`
}

// Item is one exported index.
type Item struct {
	ID        string   `yaml:"id" json:"id"`
	Dim       int      `yaml:"dim" json:"dim"`
	Plev      int      `yaml:"plev,omitempty" json:"plev,omitempty"`
	Tags      []string `yaml:"tags,flow" json:"tags"`
	Author    string   `yaml:"author,omitempty" json:"author,omitempty"`
	CreatedAt string   `yaml:"created_at,omitempty" json:"created_at,omitempty"`
}

// Options configures an export.
type Options struct {
	Tags  string // only indices carrying all of these tags
	Force bool   // overwrite an existing file
}

// Result contains the outcome of an export.
type Result struct {
	Exported int    `json:"exported"`
	Path     string `json:"path"`
}

// IsJSON reports whether path selects the JSON encoding. Anything else is
// written as YAML.
func IsJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Run writes the active indices of svc to dst.
func Run(ctx context.Context, w io.Writer, svc service.Service, dst string, opts Options) (Result, error) {
	var result Result

	if !opts.Force {
		if _, err := os.Stat(dst); err == nil {
			return result, fmt.Errorf("%s already exists (use --force to overwrite)", dst)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return result, err
		}
	}

	entries, err := svc.List(ctx, service.ListOptions{Tags: opts.Tags})
	if err != nil {
		return result, err
	}

	f := Build(svc, entries)
	data, err := Encode(f, IsJSON(dst))
	if err != nil {
		return result, err
	}

	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return result, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return result, fmt.Errorf("writing %s: %w", dst, err)
	}

	result.Exported = len(f.Indices)
	result.Path = dst
	fmt.Fprintf(w, "Exported %d index(es) to %s\n", result.Exported, dst)
	return result, nil
}

// Build converts entries to an export file under svc's limits.
func Build(svc service.Service, entries []service.Entry) File {
	l := svc.Limits()
	f := File{
		Version: FormatVersion,
		Limits:  Limits{MaxTags: l.MaxTags, MaxTagLen: l.MaxTagLen},
		Indices: make([]Item, 0, len(entries)),
	}

	prog := progress.New("Exporting", len(entries))
	defer prog.Done()

	for _, e := range entries {
		f.Indices = append(f.Indices, Item{
			ID:        e.Index.ID.String(),
			Dim:       e.Index.Dim,
			Plev:      e.Index.Plev,
			Tags:      e.Index.Tags.Tags(),
			Author:    e.Author,
			CreatedAt: time.Unix(e.CreatedAt, 0).UTC().Format(time.RFC3339),
		})
		prog.Increment()
		prog.Print()
	}
	return f
}

// Encode renders f as indented JSON or as YAML.
func Encode(f File, asJSON bool) ([]byte, error) {
	if asJSON {
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
		return append(data, '\n'), nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses an export file in either encoding.
func Decode(data []byte, asJSON bool) (File, error) {
	var f File
	var err error
	if asJSON {
		err = json.Unmarshal(data, &f)
	} else {
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return File{}, fmt.Errorf("malformed export file: %w", err)
	}
	if f.Version != FormatVersion {
		return File{}, fmt.Errorf("unsupported export version %d (want %d)", f.Version, FormatVersion)
	}
	return f, nil
}

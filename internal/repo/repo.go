// Package repo provides catalogue initialisation and discovery for tagidx.
//
// A tagidx repository is a .tagidx directory holding one or more SQLite
// catalogues of indices (tagidx.db, tagidx-mps.db, ...). Init creates them,
// Discover finds them by walking up from the working directory the way git
// finds .git, and the gitignore helpers mark a catalogue as local or shared.
package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jpl-au/tagidx/internal/store"
	"github.com/jpl-au/tagidx/tagset"
)

const (
	// Dir is the directory name for the tagidx repository.
	Dir = ".tagidx"
	// DBFile is the default database filename.
	DBFile = "tagidx.db"
	// dbPrefix starts the filename of every named database.
	dbPrefix = "tagidx-"
)

// DBFileName returns the database filename for a given name.
// Empty name returns the default "tagidx.db".
// A name like "mps" returns "tagidx-mps.db".
// A name already ending in ".db" is returned as-is.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return dbPrefix + name + ".db"
}

// ErrNotInitialised is returned when no tagidx repository is found.
var ErrNotInitialised = errors.New("tagidx not initialised (run 'tagidx init')")

// InitOptions configures Init.
type InitOptions struct {
	Force  bool          // reinitialise an existing database
	DB     string        // database name (empty for default "tagidx.db")
	Local  bool          // add the database to .gitignore (not committed)
	Dir    string        // target directory (empty for current directory)
	Limits tagset.Limits // tag bounds recorded in the new catalogue
}

// Init initialises a new tagidx repository.
//
// Following the git model, init creates the database and records the tag
// limits it will enforce. Settings such as the author are managed with
// "tagidx config". A zero Limits records tagset.DefaultLimits.
func Init(ctx context.Context, opts InitOptions) error {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	limits := opts.Limits
	if limits == (tagset.Limits{}) {
		limits = tagset.DefaultLimits
	}
	if err := limits.Validate(); err != nil {
		return err
	}

	tagidxDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(tagidxDir, DBFileName(opts.DB))

	if _, err := os.Stat(dbPath); err == nil {
		if !opts.Force {
			return fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFileName(opts.DB))
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove database: %w", err)
		}
	}

	if err := os.MkdirAll(tagidxDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	if err := s.SetMeta(ctx, store.MetaMaxTags, strconv.Itoa(limits.MaxTags)); err != nil {
		return err
	}
	if err := s.SetMeta(ctx, store.MetaMaxTagLen, strconv.Itoa(limits.MaxTagLen)); err != nil {
		return err
	}

	// Only create .gitignore on first init so that later inits (for
	// additional databases) keep local database markers.
	gitignore := filepath.Join(tagidxDir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		s := `# tagidx - ignore local config
# Database files (*.db) are the source of truth and should be committed
config.yaml
`
		if err := os.WriteFile(gitignore, []byte(s), 0644); err != nil {
			return fmt.Errorf("write gitignore: %w", err)
		}
	}

	if opts.Local {
		if err := IgnoreDB(opts.DB, tagidxDir); err != nil {
			return fmt.Errorf("ignore database: %w", err)
		}
	}

	return nil
}

// Discover walks up the directory tree looking for a .tagidx database.
// The db parameter specifies which database to find (empty for default).
// Returns the full path to the database if found.
func Discover(db string) (string, error) {
	dbFile := DBFileName(db)
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dbPath := filepath.Join(dir, Dir, dbFile)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DiscoverDir finds the .tagidx directory, walking up the tree.
// Returns the full path to the .tagidx directory.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		tagidxDir := filepath.Join(dir, Dir)
		if info, err := os.Stat(tagidxDir); err == nil && info.IsDir() {
			return tagidxDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DBInfo holds database metadata.
type DBInfo struct {
	Name  string // Short name (empty for default, "mps" for tagidx-mps.db)
	File  string // Filename (tagidx.db, tagidx-mps.db)
	Path  string // Full path
	Local bool   // True if gitignored
}

// ListDBs returns all databases in the .tagidx directory with their status.
// If dir is empty, discovers the .tagidx directory from the working directory.
func ListDBs(dir string) ([]DBInfo, error) {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return nil, fmt.Errorf("discover .tagidx directory: %w", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read .tagidx directory: %w", err)
	}

	var dbs []DBInfo
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".db") {
			continue
		}

		var name string
		switch {
		case e.Name() == DBFile:
		case strings.HasPrefix(e.Name(), dbPrefix):
			name = strings.TrimSuffix(strings.TrimPrefix(e.Name(), dbPrefix), ".db")
		default:
			continue
		}

		// An unreadable .gitignore counts as shared.
		ignored, _ := IsIgnored(name, dir)
		dbs = append(dbs, DBInfo{
			Name:  name,
			File:  e.Name(),
			Path:  filepath.Join(dir, e.Name()),
			Local: ignored,
		})
	}

	return dbs, nil
}

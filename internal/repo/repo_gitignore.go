// repo_gitignore.go marks catalogues local or shared through .gitignore.
//
// A shared catalogue is committed alongside the code whose tensor networks
// it describes. A local one is listed in .tagidx/.gitignore under a marker
// comment. Only those entries are ever rewritten; everything else in the
// file keeps its text and order.

package repo

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const localDBHeader = "# Local databases (not committed)"

// gitignore holds the lines of a .tagidx/.gitignore file.
type gitignore struct {
	path  string
	lines []string
}

// loadGitignore reads the .gitignore in dir, discovering the .tagidx
// directory when dir is empty. A missing file reads as empty.
func loadGitignore(dir string) (*gitignore, error) {
	if dir == "" {
		var err error
		if dir, err = DiscoverDir(); err != nil {
			return nil, err
		}
	}
	g := &gitignore{path: filepath.Join(dir, ".gitignore")}
	data, err := os.ReadFile(g.path)
	if errors.Is(err, fs.ErrNotExist) {
		return g, nil
	}
	if err != nil {
		return nil, err
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text != "" {
		g.lines = strings.Split(text, "\n")
	}
	return g, nil
}

// index returns the position of entry, ignoring surrounding whitespace.
func (g *gitignore) index(entry string) int {
	return slices.IndexFunc(g.lines, func(l string) bool { return strings.TrimSpace(l) == entry })
}

func (g *gitignore) save() error {
	return os.WriteFile(g.path, []byte(strings.Join(g.lines, "\n")+"\n"), 0644)
}

// IgnoreDB lists a catalogue in .gitignore, marking it local.
// If dir is empty, the .tagidx directory is discovered.
func IgnoreDB(name, dir string) error {
	g, err := loadGitignore(dir)
	if err != nil {
		return err
	}
	file := DBFileName(name)
	if g.index(file) >= 0 {
		return nil
	}
	if g.index(localDBHeader) < 0 {
		if len(g.lines) > 0 {
			g.lines = append(g.lines, "")
		}
		g.lines = append(g.lines, localDBHeader)
	}
	g.lines = append(g.lines, file)
	return g.save()
}

// UnignoreDB removes a catalogue from .gitignore, marking it shared. The
// marker comment goes too once no catalogue follows it.
// If dir is empty, the .tagidx directory is discovered.
func UnignoreDB(name, dir string) error {
	g, err := loadGitignore(dir)
	if err != nil {
		return err
	}
	i := g.index(DBFileName(name))
	if i < 0 {
		return nil
	}
	g.lines = slices.Delete(g.lines, i, i+1)

	if h := g.index(localDBHeader); h >= 0 {
		rest := g.lines[h+1:]
		if !slices.ContainsFunc(rest, isDBEntry) {
			g.lines = g.lines[:h]
			for len(g.lines) > 0 && strings.TrimSpace(g.lines[len(g.lines)-1]) == "" {
				g.lines = g.lines[:len(g.lines)-1]
			}
		}
	}
	return g.save()
}

// IsIgnored reports whether a catalogue is listed in .gitignore.
// If dir is empty, the .tagidx directory is discovered.
func IsIgnored(name, dir string) (bool, error) {
	g, err := loadGitignore(dir)
	if err != nil {
		return false, err
	}
	return g.index(DBFileName(name)) >= 0, nil
}

func isDBEntry(line string) bool {
	return strings.HasSuffix(strings.TrimSpace(line), ".db")
}

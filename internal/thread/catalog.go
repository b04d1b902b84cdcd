package thread

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one thread file found in a threads directory.
type Entry struct {
	ID    int64
	HasID bool
	Name  string
	File  string
	Path  string
}

// Catalog lists the thread files stored in a directory. Files are expected to
// be named "<id>#<name>.json" (or .db); files without the id prefix are still
// listed, after the numbered ones.
type Catalog struct {
	root string
}

// NewCatalog creates a catalog over the provided directory.
func NewCatalog(root string) *Catalog {
	return &Catalog{root: root}
}

// Root returns the directory the catalog reads.
func (c *Catalog) Root() string {
	return c.root
}

// List returns the thread files of the directory ordered by id. A missing
// directory is an empty catalog.
func (c *Catalog) List() ([]Entry, error) {
	if c.root == "" {
		return nil, nil
	}
	dirEntries, err := os.ReadDir(c.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || strings.HasPrefix(name, ".") || !isThreadFile(name) {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		id, display, ok := splitID(base)
		entries = append(entries, Entry{
			ID:    id,
			HasID: ok,
			Name:  display,
			File:  name,
			Path:  filepath.Join(c.root, name),
		})
	}
	sortEntries(entries)
	return entries, nil
}

// Find returns the entry whose file name or display name equals name.
func (c *Catalog) Find(name string) (Entry, bool, error) {
	entries, err := c.List()
	if err != nil {
		return Entry{}, false, err
	}
	for _, e := range entries {
		if e.File == name || strings.EqualFold(e.Name, name) {
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ei, ej := entries[i], entries[j]
		switch {
		case ei.HasID && ej.HasID:
			if ei.ID != ej.ID {
				return ei.ID < ej.ID
			}
			return strings.ToLower(ei.Name) < strings.ToLower(ej.Name)
		case ei.HasID:
			return true
		case ej.HasID:
			return false
		default:
			return strings.ToLower(ei.Name) < strings.ToLower(ej.Name)
		}
	})
}

func isThreadFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return isJSON(ext) || isSQLite(ext)
}

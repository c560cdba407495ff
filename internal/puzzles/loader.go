package puzzles

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Loader handles loading puzzles from a file system tree.
type Loader struct {
	FS   fs.FS
	Root string
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(dir string) *Loader {
	return &Loader{FS: os.DirFS(dir), Root: "."}
}

// Builtin returns a loader over the puzzles shipped with the binary.
func Builtin() *Loader {
	return &Loader{FS: builtinFS, Root: "builtin"}
}

// LoadAll recursively scans and loads all puzzle files.
// Invalid files are skipped. Returns puzzles sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Puzzle, error) {
	var puzzles []Puzzle

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(path.Ext(p)) {
			return nil
		}

		pz, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}
		puzzles = append(puzzles, pz)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("puzzles: cannot walk %s: %w", l.Root, err)
	}

	sort.Slice(puzzles, func(i, j int) bool {
		return puzzles[i].ID < puzzles[j].ID
	})

	return puzzles, nil
}

// LoadFile loads a single puzzle file relative to the loader's file system.
func (l *Loader) LoadFile(name string) (Puzzle, error) {
	data, err := fs.ReadFile(l.FS, name)
	if err != nil {
		return Puzzle{}, fmt.Errorf("puzzles: cannot read %s: %w", name, err)
	}

	pz, err := Parse(data)
	if err != nil {
		return Puzzle{}, fmt.Errorf("puzzles: %s: %w", name, err)
	}
	pz.FilePath = name
	return pz, nil
}

// LoadByID loads a specific puzzle by ID.
func (l *Loader) LoadByID(id string) (Puzzle, error) {
	puzzles, err := l.LoadAll()
	if err != nil {
		return Puzzle{}, err
	}

	for _, pz := range puzzles {
		if pz.ID == id {
			return pz, nil
		}
	}

	return Puzzle{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// ListIDs returns all puzzle IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	puzzles, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(puzzles))
	for i, pz := range puzzles {
		ids[i] = pz.ID
	}
	return ids, nil
}

// Resolve finds a puzzle by built-in ID, or reads it from a file path
// when ref names a YAML file.
func Resolve(ref string) (Puzzle, error) {
	if isSupportedExtension(path.Ext(ref)) {
		data, err := os.ReadFile(ref)
		if err != nil {
			return Puzzle{}, fmt.Errorf("puzzles: cannot read %s: %w", ref, err)
		}
		pz, err := Parse(data)
		if err != nil {
			return Puzzle{}, fmt.Errorf("puzzles: %s: %w", ref, err)
		}
		pz.FilePath = ref
		return pz, nil
	}
	return Builtin().LoadByID(ref)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

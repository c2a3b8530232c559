// Package levels finds and parses level packs and world maps.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/board"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/levels/formats"
)

// ErrLevelNotFound is returned by LoadByID.
var ErrLevelNotFound = errors.New("level not found")

// Level is one parsed level of a pack.
type Level struct {
	ID       string
	Name     string
	Grid     *board.Grid // shared; clone before mutating
	Goal     *board.Coord
	Links    map[board.Dir]string
	Metadata map[string]string
	FilePath string
}

// Loader reads level files under Root of FS.
type Loader struct {
	FS          fs.FS
	Root        string
	MaxStrength int
}

// NewLoader reads levels from a directory on disk.
func NewLoader(root string, maxStrength int) *Loader {
	return NewFSLoader(os.DirFS(root), ".", maxStrength)
}

func NewFSLoader(fsys fs.FS, dir string, maxStrength int) *Loader {
	return &Loader{FS: fsys, Root: dir, MaxStrength: maxStrength}
}

// LoadAll parses every level file below Root, ordered by level ID.
// Files that fail to parse are left out.
func (l *Loader) LoadAll() ([]Level, error) {
	var files []string
	walk := func(p string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && supported(p) {
			files = append(files, p)
		}
		return err
	}
	if err := fs.WalkDir(l.FS, l.Root, walk); err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	parsed := make([]*Level, len(files))
	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for i, p := range files {
		eg.Go(func() error {
			if lvl, err := l.LoadFile(p); err == nil {
				parsed[i] = &lvl
			}
			return nil
		})
	}
	_ = eg.Wait()

	out := make([]Level, 0, len(parsed))
	for _, lvl := range parsed {
		if lvl != nil {
			out = append(out, *lvl)
		}
	}
	slices.SortFunc(out, func(a, b Level) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

// LoadFile parses the level at p, relative to the loader's FS.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	var parsed formats.Level
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".yaml", ".yml":
		parsed, err = formats.ParseYAML(data, l.MaxStrength)
	default:
		err = fmt.Errorf("unsupported extension: %s", ext)
	}
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Grid:     parsed.Grid,
		Goal:     parsed.Goal,
		Links:    parsed.Links,
		Metadata: parsed.Metadata,
		FilePath: p,
	}, nil
}

// LoadByID loads the whole pack and returns the level named id.
func (l *Loader) LoadByID(id string) (Level, error) {
	lvls, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	if i := IndexOf(lvls, id); i >= 0 {
		return lvls[i], nil
	}
	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// IndexOf returns the position of level id in lvls, or -1.
func IndexOf(lvls []Level, id string) int {
	return slices.IndexFunc(lvls, func(l Level) bool { return l.ID == id })
}

func supported(p string) bool {
	return slices.Contains(formats.FormatExtensions(), strings.ToLower(path.Ext(p)))
}

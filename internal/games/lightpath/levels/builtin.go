package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/board"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/levels/formats"
)

// Built-in pack names.
const (
	PackSequence = "levels"
	PackChain    = "chain"
	worldFile    = "world.txt"
)

//go:embed builtin
var builtinFS embed.FS

func builtinRoot() fs.FS {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err) // embedded directory is always present
	}
	return sub
}

// Builtin loads one of the embedded level packs.
func Builtin(pack string, maxStrength int) ([]Level, error) {
	lvls, err := NewFSLoader(builtinRoot(), pack, maxStrength).LoadAll()
	if err != nil {
		return nil, fmt.Errorf("builtin pack %s: %w", pack, err)
	}
	return lvls, nil
}

// BuiltinWorld parses the embedded world map.
func BuiltinWorld(maxStrength int) (*board.Grid, error) {
	data, err := fs.ReadFile(builtinRoot(), worldFile)
	if err != nil {
		return nil, fmt.Errorf("builtin world: %w", err)
	}
	return formats.ParseText(data, maxStrength)
}

// LoadWorld parses a world map file from disk.
func LoadWorld(path string, maxStrength int) (*board.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world %s: %w", path, err)
	}
	g, err := formats.ParseText(data, maxStrength)
	if err != nil {
		return nil, fmt.Errorf("parsing world %s: %w", path, err)
	}
	return g, nil
}

// LoadPack loads levels from a directory, or a single level file.
func LoadPack(path string, maxStrength int) ([]Level, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("level pack %s: %w", path, err)
	}
	if info.IsDir() {
		return NewLoader(path, maxStrength).LoadAll()
	}
	lvl, err := NewLoader(filepath.Dir(path), maxStrength).LoadFile(filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return []Level{lvl}, nil
}

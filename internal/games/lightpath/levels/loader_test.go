package levels_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/board"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/levels"
)

const testMax = 252

// getTestdataPath returns path to testdata.
func getTestdataPath(parts ...string) string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	return filepath.Join(append([]string{dir, "testdata"}, parts...)...)
}

func TestLoaderLoadAll(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath("pack"), testMax)

	lvls, err := loader.LoadAll()
	require.NoError(t, err)

	// broken.yaml is skipped, notes.md is ignored.
	require.Len(t, lvls, 2)
	assert.Equal(t, "a-first", lvls[0].ID)
	assert.Equal(t, "b-second", lvls[1].ID)
}

func TestLoaderLevelContents(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath("pack"), testMax)

	lvl, err := loader.LoadByID("b-second")
	require.NoError(t, err)

	assert.Equal(t, "Second", lvl.Name)
	assert.Equal(t, 4, lvl.Grid.W)
	assert.Equal(t, 1, lvl.Grid.H)
	require.NotNil(t, lvl.Goal)
	assert.Equal(t, board.C(3, 0), *lvl.Goal)
	assert.Equal(t, testMax, lvl.Grid.Get(board.C(0, 0)).Strength)

	first, err := loader.LoadByID("a-first")
	require.NoError(t, err)
	assert.Equal(t, "a-first", first.Name, "name defaults to id")
	assert.Nil(t, first.Goal)
	assert.True(t, first.Grid.Get(board.C(0, 1)).Open, "valve listed under open starts open")
}

func TestLoaderLoadByIDMissing(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath("pack"), testMax)

	_, err := loader.LoadByID("nope")
	assert.ErrorIs(t, err, levels.ErrLevelNotFound)
}

func TestLoaderSkipsBrokenFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"pack/ok.yaml":     {Data: []byte("id: ok\nname: Fine\ngoal: {x: 2, y: 0}\nmap: |\n  LPP\n")},
		"pack/broken.yaml": {Data: []byte("id: [\n")},
		"pack/notes.txt":   {Data: []byte("not a level")},
	}
	lvls, err := levels.NewFSLoader(fsys, "pack", testMax).LoadAll()
	require.NoError(t, err)
	require.Len(t, lvls, 1)
	assert.Equal(t, "ok", lvls[0].ID)
	assert.Equal(t, "pack/ok.yaml", lvls[0].FilePath)
}

func TestLoaderMissingRoot(t *testing.T) {
	_, err := levels.NewLoader(getTestdataPath("does-not-exist"), testMax).LoadAll()
	assert.Error(t, err)
}

func TestLoadPackSingleFile(t *testing.T) {
	lvls, err := levels.LoadPack(getTestdataPath("pack", "b.yaml"), testMax)
	require.NoError(t, err)
	require.Len(t, lvls, 1)
	assert.Equal(t, "b-second", lvls[0].ID)
}

func TestLoadWorld(t *testing.T) {
	g, err := levels.LoadWorld(getTestdataPath("world.txt"), testMax)
	require.NoError(t, err)

	assert.Equal(t, 4, g.W)
	assert.Equal(t, 3, g.H)
	assert.Equal(t, board.KindValve, g.Kind(board.C(3, 0)))
	assert.Equal(t, board.KindPoweredValve, g.Kind(board.C(2, 1)))
	assert.Equal(t, board.KindFork, g.Kind(board.C(0, 2)))
	assert.Equal(t, board.DefaultForkChannels, g.Get(board.C(0, 2)).Channels)
}

func TestBuiltinPacks(t *testing.T) {
	seq, err := levels.Builtin(levels.PackSequence, testMax)
	require.NoError(t, err)
	require.NotEmpty(t, seq)
	for _, lvl := range seq {
		assert.NotNil(t, lvl.Goal, "sequence level %s needs a goal", lvl.ID)
		assert.NotEmpty(t, lvl.Grid.Lights(), "level %s has no light", lvl.ID)
	}

	chain, err := levels.Builtin(levels.PackChain, testMax)
	require.NoError(t, err)
	require.Len(t, chain, 3)
	for _, lvl := range chain {
		for d, target := range lvl.Links {
			assert.GreaterOrEqual(t, levels.IndexOf(chain, target), 0,
				"level %s links %v to unknown %s", lvl.ID, d, target)
		}
	}
}

func TestBuiltinWorld(t *testing.T) {
	g, err := levels.BuiltinWorld(testMax)
	require.NoError(t, err)

	assert.Equal(t, 60, g.W)
	assert.Equal(t, 36, g.H)
	assert.Equal(t, board.KindLight, g.Kind(board.C(2, 30)))
	assert.Equal(t, board.KindPath, g.Kind(board.C(55, 31)))
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.txt")
	require.NoError(t, os.WriteFile(path, []byte("LP\n"), 0o644))

	w, err := levels.NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	go w.Run(ctx, func() { changed <- struct{}{} }, nil)

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("LPP\n"), 0o644))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}
}

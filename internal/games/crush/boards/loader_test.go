package boards_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-crush/internal/games/crush/boards"
	"github.com/vovakirdan/tui-crush/internal/games/crush/core"
)

func writeBoard(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestBuiltinBoards(t *testing.T) {
	ids, err := boards.Builtin().ListIDs()
	require.NoError(t, err)

	assert.Equal(t, []string{"cascade", "classic", "deadlock", "tutorial"}, ids)
}

func TestBuiltinBoardsApply(t *testing.T) {
	all, err := boards.Builtin().LoadAll()
	require.NoError(t, err)

	for _, b := range all {
		t.Run(b.ID, func(t *testing.T) {
			r := core.NewRules(core.NewGrid(b.Size), rand.New(rand.NewSource(1)))
			require.NoError(t, b.Apply(r))
			assert.Equal(t, b.Rows, r.Grid().Rows())
		})
	}
}

func TestBuiltinBoardProperties(t *testing.T) {
	loader := boards.Builtin()
	load := func(id string) *core.Rules {
		b, err := loader.LoadByID(id)
		require.NoError(t, err)
		r := core.NewRules(core.NewGrid(b.Size), rand.New(rand.NewSource(1)))
		require.NoError(t, b.Apply(r))
		return r
	}

	classic := load("classic")
	assert.Empty(t, classic.FindCrushGroups())
	assert.True(t, classic.HasLegalMove())

	cascade := load("cascade")
	assert.Len(t, cascade.FindCrushGroups(), 1)

	deadlock := load("deadlock")
	assert.Empty(t, deadlock.FindCrushGroups())
	assert.False(t, deadlock.HasLegalMove())

	tutorial := load("tutorial")
	assert.True(t, tutorial.IsMoveLegal(tutorial.Grid().TokenAt(0, 2), core.DirRight))
}

func TestLoadByIDNotFound(t *testing.T) {
	_, err := boards.Builtin().LoadByID("nope")
	require.ErrorIs(t, err, boards.ErrNotFound)
}

func TestLoaderSkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	writeBoard(t, dir, "good.yaml", "id: good\nrows: [rgb, gbr, brg]\n")
	writeBoard(t, dir, "nested/also.yml", "id: also\nname: Also Good\nrows: [rgb, gbr, brg]\n")
	writeBoard(t, dir, "ragged.yaml", "id: ragged\nrows: [rgb, gb, brg]\n")
	writeBoard(t, dir, "readme.txt", "not a board")

	loader := boards.NewLoader(dir)
	all, err := loader.LoadAll()
	require.NoError(t, err)

	require.Len(t, all, 2)
	assert.Equal(t, "also", all[0].ID)
	assert.Equal(t, "Also Good", all[0].Name)
	assert.Equal(t, "good", all[1].ID)
	assert.Equal(t, "good", all[1].Name, "name defaults to id")
}

func TestParseYAML(t *testing.T) {
	b, err := boards.ParseYAML([]byte("id: mixed\nrows:\n  - RGB\n  - ' gbr '\n  - brg\nmetadata:\n  author: me\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, b.Size)
	assert.Equal(t, []string{"rgb", "gbr", "brg"}, b.Rows)
	assert.Equal(t, "me", b.Metadata["author"])
}

func TestParseYAMLRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{"missing id", "rows: [rgb, gbr, brg]\n", boards.ErrMissingID},
		{"too small", "id: x\nrows: [rg, gb]\n", boards.ErrInvalidSize},
		{"not square", "id: x\nrows: [rgb, gbr, brgb]\n", boards.ErrNotSquare},
		{"bad code", "id: x\nrows: [rgb, gxr, brg]\n", boards.ErrBadColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := boards.ParseYAML([]byte(tt.data))
			require.ErrorIs(t, err, tt.err)
		})
	}

	_, err := boards.ParseYAML([]byte("id: [unclosed\n"))
	assert.Error(t, err)
}

func TestApplyRejectsSizeMismatch(t *testing.T) {
	b, err := boards.Builtin().LoadByID("tutorial")
	require.NoError(t, err)

	r := core.NewRules(core.NewGrid(5), nil)
	assert.Error(t, b.Apply(r))
	assert.Equal(t, 0, r.Grid().Count())
}

func TestResolve(t *testing.T) {
	b, err := boards.Resolve("classic")
	require.NoError(t, err)
	assert.Equal(t, 8, b.Size)

	p := writeBoard(t, t.TempDir(), "mine.yaml", "id: mine\nrows: [rgb, gbr, brg]\n")
	b, err = boards.Resolve(p)
	require.NoError(t, err)
	assert.Equal(t, "mine", b.ID)
	assert.Equal(t, p, b.FilePath)

	_, err = boards.Resolve(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

package model_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/mazescape/model"
)

func TestParseLayout(t *testing.T) {
	w, err := model.ParseLayout(strings.NewReader(`
#@.K
.X#B
D..d
`))
	require.NoError(t, err)
	assert.Equal(t, 4, w.Grid.Cols)
	assert.Equal(t, 3, w.Grid.Rows)
	assert.Equal(t, model.Position{Row: 0, Col: 1}, w.Origin)
	assert.True(t, w.Grid.Wall(model.Position{Row: 0, Col: 0}))
	assert.True(t, w.Grid.Wall(model.Position{Row: 1, Col: 2}))
	assert.True(t, w.Grid.Open(model.Position{Row: 1, Col: 1}))

	require.Len(t, w.Keys, 1)
	require.Len(t, w.Doors, 2)
	assert.Equal(t, model.Position{Row: 2, Col: 0}, w.Doors[0].Pos)
	assert.True(t, w.Doors[1].Unlocked)
	assert.Len(t, w.Decoys, 1)
	assert.Len(t, w.Boosts, 1)
}

func TestParseLayoutErrors(t *testing.T) {
	_, err := model.ParseLayout(strings.NewReader("...\n..\n"))
	assert.ErrorContains(t, err, "line 2")

	_, err = model.ParseLayout(strings.NewReader("..?\n"))
	assert.ErrorContains(t, err, "unknown rune")

	_, err = model.ParseLayout(strings.NewReader("\n\n...\n\n.?.\n"))
	assert.ErrorContains(t, err, "line 5 col 2: unknown rune")

	_, err = model.ParseLayout(strings.NewReader("\n\n"))
	assert.Error(t, err)
}

func TestRenderRoundTrip(t *testing.T) {
	w := placedWorld(t, model.DefaultConfig(), 17)

	text := w.Render(w.Origin)
	back, err := model.ParseLayout(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, w.Grid.Walls, back.Grid.Walls)
	assert.Equal(t, w.Origin, back.Origin)
	assert.ElementsMatch(t, w.Positions(), back.Positions())
	assert.Equal(t, text, back.Render(back.Origin))
}

func TestGridString(t *testing.T) {
	w, err := model.ParseLayout(strings.NewReader("@#\n.K\n"))
	require.NoError(t, err)
	assert.Equal(t, ".#\n..\n", w.Grid.String())
	assert.Equal(t, ".#\n@K\n", w.Render(model.Position{Row: 1, Col: 0}))
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.txt")
	require.NoError(t, os.WriteFile(path, []byte("@K\n#D\n"), 0o644))
	w, err := model.LoadLayout(path)
	require.NoError(t, err)
	assert.Equal(t, model.Position{Row: 1, Col: 1}, w.Doors[0].Pos)

	_, err = model.LoadLayout(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "open layout")

	require.NoError(t, os.WriteFile(path, []byte("@?\n"), 0o644))
	_, err = model.LoadLayout(path)
	assert.ErrorContains(t, err, "line 1")
}

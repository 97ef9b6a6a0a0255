package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/mazescape/model"
)

func assertWalk(t *testing.T, g *model.Grid, path []model.Position) {
	t.Helper()
	for i, p := range path {
		require.True(t, g.Open(p), "step %d %v is not open", i, p)
		if i > 0 {
			require.True(t, path[i-1].Adjacent(p), "step %d %v -> %v is not adjacent", i, path[i-1], p)
		}
	}
}

func TestShortestPathOptimal(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 99} {
		g := model.Generate(11, 11, model.NewRand(seed))
		cells := g.OpenCells()
		for _, start := range cells[:10] {
			dist := model.Distances(g, start)
			for _, goal := range cells {
				path, err := model.ShortestPath(g, start, goal)
				require.NoError(t, err)
				require.NotEmpty(t, path)
				assert.Equal(t, start, path[0])
				assert.Equal(t, goal, path[len(path)-1])
				assert.Equal(t, dist[g.Index(goal)], len(path)-1, "%v -> %v", start, goal)
				assertWalk(t, g, path)
			}
		}
	}
}

func TestShortestPathOpenRoom(t *testing.T) {
	w, err := model.ParseLayout(strings.NewReader(`
.....
.###.
.#...
.#.#.
...#.
`))
	require.NoError(t, err)

	path, err := model.ShortestPath(w.Grid, model.Position{Row: 4, Col: 0}, model.Position{Row: 2, Col: 2})
	require.NoError(t, err)
	assertWalk(t, w.Grid, path)
	assert.Len(t, path, 5)
}

func TestShortestPathSameCell(t *testing.T) {
	g := model.Generate(5, 5, model.NewRand(1))
	path, err := model.ShortestPath(g, model.Position{}, model.Position{})
	require.NoError(t, err)
	assert.Equal(t, []model.Position{{}}, path)
}

func TestShortestPathInvalidEndpoints(t *testing.T) {
	w, err := model.ParseLayout(strings.NewReader(`
..#
...
`))
	require.NoError(t, err)

	tests := []struct {
		name        string
		start, goal model.Position
		reason      string
	}{
		{"start wall", model.Position{Row: 0, Col: 2}, model.Position{}, "wall"},
		{"goal wall", model.Position{}, model.Position{Row: 0, Col: 2}, "wall"},
		{"start outside", model.Position{Row: -1, Col: 0}, model.Position{}, "out of bounds"},
		{"goal outside", model.Position{}, model.Position{Row: 2, Col: 0}, "out of bounds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := model.ShortestPath(w.Grid, tt.start, tt.goal)
			assert.Nil(t, path)
			var invalid *model.InvalidGridError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.reason, invalid.Reason)
		})
	}
}

func TestShortestPathDisconnected(t *testing.T) {
	w, err := model.ParseLayout(strings.NewReader(`
..#..
..#..
`))
	require.NoError(t, err)
	path, err := model.ShortestPath(w.Grid, model.Position{}, model.Position{Row: 1, Col: 4})
	require.NoError(t, err)
	assert.Empty(t, path)

	composite, err := model.CompositePath(w.Grid, []model.Position{{}, {Row: 1, Col: 1}, {Row: 0, Col: 4}})
	require.NoError(t, err)
	assert.Empty(t, composite)
}

func TestCompositePathContinuous(t *testing.T) {
	for _, seed := range []int64{5, 60, 700, 8000} {
		cfg := model.DefaultConfig()
		w := placedWorld(t, cfg, seed)

		waypoints := w.Waypoints()
		require.Len(t, waypoints, cfg.Counts.Pairs+2)

		path, err := model.CompositePath(w.Grid, waypoints)
		require.NoError(t, err)
		require.NotEmpty(t, path)
		assertWalk(t, w.Grid, path)
		assert.Equal(t, waypoints[0], path[0])
		assert.Equal(t, waypoints[len(waypoints)-1], path[len(path)-1])
		for i := 1; i < len(path); i++ {
			assert.NotEqual(t, path[i-1], path[i], "repeated cell at %d", i)
		}

		// length is the sum of the legs
		want := 0
		for i := 1; i < len(waypoints); i++ {
			want += model.Distances(w.Grid, waypoints[i-1])[w.Grid.Index(waypoints[i])]
		}
		assert.Equal(t, want, len(path)-1)

		// every waypoint is visited in order
		next := 0
		for _, p := range path {
			if next < len(waypoints) && p == waypoints[next] {
				next++
			}
		}
		assert.Equal(t, len(waypoints), next)
	}
}

func TestCompositePathShortInputs(t *testing.T) {
	g := model.Generate(5, 5, model.NewRand(1))

	path, err := model.CompositePath(g, nil)
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = model.CompositePath(g, []model.Position{{Row: 2, Col: 2}})
	require.NoError(t, err)
	assert.Equal(t, []model.Position{{Row: 2, Col: 2}}, path)

	_, err = model.CompositePath(g, []model.Position{{}, {Row: 1, Col: 1}})
	var invalid *model.InvalidGridError
	assert.True(t, errors.As(err, &invalid))
}

func TestDistancesFromWall(t *testing.T) {
	g := model.Generate(5, 5, model.NewRand(1))
	for _, d := range model.Distances(g, model.Position{Row: 1, Col: 1}) {
		assert.Equal(t, -1, d)
	}
}

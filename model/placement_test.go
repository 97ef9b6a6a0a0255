package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/mazescape/model"
)

type placed struct {
	kind model.EntityKind
	pos  model.Position
}

// placementOrder lists entities the way they are placed: key/door pairs,
// then decoys, then boosts.
func placementOrder(w *model.World) []placed {
	var all []placed
	for i := range w.Keys {
		all = append(all, placed{model.KEY, w.Keys[i].Pos}, placed{model.DOOR, w.Doors[i].Pos})
	}
	for _, d := range w.Decoys {
		all = append(all, placed{model.DECOY, d.Pos})
	}
	for _, b := range w.Boosts {
		all = append(all, placed{model.BOOST, b.Pos})
	}
	return all
}

// placedSeed is the first seed from from on whose default world places
// without a PlacementError.
func placedSeed(t *testing.T, cfg model.Config, from int64) int64 {
	t.Helper()
	for seed := from; seed < from+50; seed++ {
		if _, err := model.NewWorld(cfg, model.NewRand(seed)); err == nil {
			return seed
		}
	}
	require.FailNow(t, "no seed places", "from %d", from)
	return 0
}

func placedWorld(t *testing.T, cfg model.Config, from int64) *model.World {
	t.Helper()
	w, err := model.NewWorld(cfg, model.NewRand(placedSeed(t, cfg, from)))
	require.NoError(t, err)
	return w
}

func TestPlaceEntitiesSeparation(t *testing.T) {
	cfg := model.DefaultConfig()
	placedCount := 0
	for seed := int64(1); seed <= 50; seed++ {
		w, err := model.NewWorld(cfg, model.NewRand(seed))
		var perr *model.PlacementError
		if errors.As(err, &perr) {
			continue
		}
		require.NoError(t, err)
		placedCount++

		assert.Len(t, w.Keys, cfg.Counts.Pairs)
		assert.Len(t, w.Doors, cfg.Counts.Pairs)
		assert.Len(t, w.Decoys, cfg.Counts.Decoys)
		assert.Len(t, w.Boosts, cfg.Counts.Boosts)

		earlier := []model.Position{w.Origin}
		var boosts []model.Position
		for _, e := range placementOrder(w) {
			assert.True(t, w.Grid.Open(e.pos), "seed %d: %s at %v on a wall", seed, e.kind.Name(), e.pos)
			min := cfg.Separation.For(e.kind)
			for _, o := range earlier {
				assert.GreaterOrEqual(t, e.pos.Manhattan(o), min, "seed %d: %s at %v too close to %v", seed, e.kind.Name(), e.pos, o)
			}
			if e.kind == model.BOOST {
				assert.NotContains(t, boosts, e.pos, "seed %d: boosts share a cell", seed)
				boosts = append(boosts, e.pos)
				continue
			}
			earlier = append(earlier, e.pos)
		}
	}
	assert.GreaterOrEqual(t, placedCount, 40)
}

func TestDefaultPlacementRarelyFails(t *testing.T) {
	cfg := model.DefaultConfig()
	failures := map[model.EntityKind]int{}
	total := 0
	for seed := int64(1); seed <= 1000; seed++ {
		_, err := model.NewWorld(cfg, model.NewRand(seed))
		if err == nil {
			continue
		}
		var perr *model.PlacementError
		require.True(t, errors.As(err, &perr), "seed %d: %v", seed, err)
		failures[perr.Kind]++
		total++
	}
	assert.LessOrEqual(t, total, 150, "failures by kind: %v", failures)
}

func TestBoostsIgnoreEachOther(t *testing.T) {
	grid := model.NewGrid(8, 1)
	for c := 0; c < 8; c++ {
		grid.SetOpen(model.Position{Col: c}, true)
	}
	counts := model.Counts{Boosts: 2}
	sep := model.Separation{Boost: 6}

	w, err := model.PlaceEntities(grid, counts, sep, 200, model.NewRand(3))
	require.NoError(t, err)
	require.Len(t, w.Boosts, 2)
	assert.ElementsMatch(t,
		[]model.Position{{Col: 6}, {Col: 7}},
		[]model.Position{w.Boosts[0].Pos, w.Boosts[1].Pos})
}

func TestPlacementSamplesOpenCells(t *testing.T) {
	grid := model.NewGrid(20, 20)
	grid.SetOpen(model.Position{}, true)
	far := model.Position{Row: 19, Col: 19}
	grid.SetOpen(far, true)

	w, err := model.PlaceEntities(grid, model.Counts{Decoys: 1}, model.Separation{Decoy: 1}, 40, model.NewRand(5))
	require.NoError(t, err)
	assert.Equal(t, far, w.Decoys[0].Pos)

	_, err = model.PlaceEntities(model.NewGrid(4, 4), model.Counts{Pairs: 1}, model.Separation{}, 40, model.NewRand(5))
	var perr *model.PlacementError
	assert.True(t, errors.As(err, &perr), "a grid without open cells cannot place")
}

func TestPlaceEntitiesDoorAwayFromItsKey(t *testing.T) {
	cfg := model.DefaultConfig()
	for seed := int64(1); seed <= 20; seed++ {
		w, err := model.NewWorld(cfg, model.NewRand(seed))
		if err != nil {
			continue
		}
		for i := range w.Keys {
			assert.GreaterOrEqual(t, w.Doors[i].Pos.Manhattan(w.Keys[i].Pos), cfg.Separation.Door)
		}
	}
}

func TestPlaceEntitiesFlagsStartClean(t *testing.T) {
	w := placedWorld(t, model.DefaultConfig(), 11)
	for _, k := range w.Keys {
		assert.False(t, k.Collected)
	}
	for _, d := range w.Doors {
		assert.False(t, d.Unlocked)
	}
	for _, d := range w.Decoys {
		assert.True(t, d.Visible)
	}
	for _, b := range w.Boosts {
		assert.False(t, b.Consumed)
	}
}

func TestPlaceEntitiesGivesUp(t *testing.T) {
	grid := model.Generate(5, 5, model.NewRand(1))
	counts := model.Counts{Pairs: 1}
	sep := model.Separation{Key: 20, Door: 1}

	w, err := model.PlaceEntities(grid, counts, sep, 300, model.NewRand(1))
	assert.Nil(t, w)
	var perr *model.PlacementError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, model.KEY, perr.Kind)
	assert.Equal(t, 0, perr.Index)
	assert.Equal(t, 300, perr.Attempts)
}

func TestNewSessionSurfacesPlacementError(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Width, cfg.Height = 5, 5
	cfg.MaxAttempts = 100

	s, err := model.NewSession(cfg, model.NewRand(1), &model.ManualClock{})
	assert.Nil(t, s)
	var perr *model.PlacementError
	assert.True(t, errors.As(err, &perr))
}

func TestPlaceEntitiesDeterministic(t *testing.T) {
	cfg := model.DefaultConfig()
	seed := placedSeed(t, cfg, 9)
	a, err := model.NewWorld(cfg, model.NewRand(seed))
	require.NoError(t, err)
	b, err := model.NewWorld(cfg, model.NewRand(seed))
	require.NoError(t, err)
	assert.Equal(t, a.Positions(), b.Positions())
}

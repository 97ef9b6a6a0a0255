package model

import (
	"fmt"
)

type Counts struct {
	// Pairs is the number of key/door pairs.
	Pairs  int `yaml:"pairs"`
	Decoys int `yaml:"decoys"`
	Boosts int `yaml:"boosts"`
}

// Separation is the minimum Manhattan distance from an entity of each kind
// to everything placed before it, origin included. Boosts are not held
// apart from each other.
type Separation struct {
	Key   int `yaml:"key"`
	Door  int `yaml:"door"`
	Decoy int `yaml:"decoy"`
	Boost int `yaml:"boost"`
}

func (s Separation) For(kind EntityKind) int {
	switch kind {
	case KEY:
		return s.Key
	case DOOR:
		return s.Door
	case DECOY:
		return s.Decoy
	case BOOST:
		return s.Boost
	}
	return 0
}

// PlacementError means no acceptable cell was found in time. It is fatal to
// the session being built.
type PlacementError struct {
	Kind     EntityKind
	Index    int
	Attempts int
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("placing %s %d: no cell found after %d attempts", e.Kind.Name(), e.Index, e.Attempts)
}

type placer struct {
	cells       []Position
	taken       []Position
	maxAttempts int
	rng         Rand
}

// pick samples open cells until one is at least minDist from everything
// taken and not in avoid. It does not take the cell.
func (p *placer) pick(kind EntityKind, index, minDist int, avoid []Position) (Position, error) {
	if len(p.cells) > 0 {
		for attempt := 0; attempt < p.maxAttempts; attempt++ {
			c := p.cells[p.rng.Intn(len(p.cells))]
			if p.clear(c, minDist) && !contains(avoid, c) {
				return c, nil
			}
		}
	}
	return Position{}, &PlacementError{Kind: kind, Index: index, Attempts: p.maxAttempts}
}

func (p *placer) place(kind EntityKind, index, minDist int) (Position, error) {
	c, err := p.pick(kind, index, minDist, nil)
	if err != nil {
		return c, err
	}
	p.taken = append(p.taken, c)
	return c, nil
}

func (p *placer) clear(c Position, minDist int) bool {
	for _, t := range p.taken {
		if c.Manhattan(t) < minDist {
			return false
		}
	}
	return true
}

func contains(ps []Position, c Position) bool {
	for _, p := range ps {
		if p == c {
			return true
		}
	}
	return false
}

// PlaceEntities scatters keys, doors, decoys and boosts over random open
// cells of grid by rejection sampling. Each door is placed right after its
// key, so it keeps its distance from it too. Boosts keep their distance
// from everything placed before them but only need distinct cells among
// themselves.
func PlaceEntities(grid *Grid, counts Counts, sep Separation, maxAttempts int, rng Rand) (*World, error) {
	w := &World{Grid: grid}
	p := &placer{cells: grid.OpenCells(), taken: []Position{w.Origin}, maxAttempts: maxAttempts, rng: rng}

	for i := 0; i < counts.Pairs; i++ {
		k, err := p.place(KEY, i, sep.Key)
		if err != nil {
			return nil, err
		}
		d, err := p.place(DOOR, i, sep.Door)
		if err != nil {
			return nil, err
		}
		w.Keys = append(w.Keys, Key{Pos: k})
		w.Doors = append(w.Doors, Door{Pos: d})
	}
	for i := 0; i < counts.Decoys; i++ {
		d, err := p.place(DECOY, i, sep.Decoy)
		if err != nil {
			return nil, err
		}
		w.Decoys = append(w.Decoys, Decoy{Pos: d, Visible: true})
	}
	boosts := make([]Position, 0, counts.Boosts)
	for i := 0; i < counts.Boosts; i++ {
		b, err := p.pick(BOOST, i, sep.Boost, boosts)
		if err != nil {
			return nil, err
		}
		boosts = append(boosts, b)
		w.Boosts = append(w.Boosts, Boost{Pos: b})
	}
	return w, nil
}

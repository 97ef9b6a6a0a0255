package model

import (
	"fmt"
)

type EntityKind int

const (
	KEY EntityKind = iota + 1
	DOOR
	DECOY
	BOOST
)

func (k EntityKind) Name() string {
	switch k {
	case KEY:
		return "KEY"
	case DOOR:
		return "DOOR"
	case DECOY:
		return "DECOY"
	case BOOST:
		return "BOOST"
	default:
		return fmt.Sprintf("N/A(%d)", k)
	}
}

type Key struct {
	Pos       Position
	Collected bool
}

type Door struct {
	Pos      Position
	Unlocked bool
}

// Decoy looks like a locked door and does nothing but vanish when stepped on.
type Decoy struct {
	Pos     Position
	Visible bool
}

type Boost struct {
	Pos      Position
	Consumed bool
}

// World is the maze with everything placed in it. Positions never change
// after placement, only the flags do.
type World struct {
	Grid   *Grid
	Origin Position
	Keys   []Key
	Doors  []Door
	Decoys []Decoy
	Boosts []Boost
}

// NewWorld carves a maze and places entities on it as cfg describes.
func NewWorld(cfg Config, rng Rand) (*World, error) {
	grid := Generate(cfg.Width, cfg.Height, rng)
	return PlaceEntities(grid, cfg.Counts, cfg.Separation, cfg.MaxAttempts, rng)
}

// Exit is the last door. Reaching it unlocked wins.
func (w *World) Exit() (Door, bool) {
	if len(w.Doors) == 0 {
		return Door{}, false
	}
	return w.Doors[len(w.Doors)-1], true
}

// Waypoints lists the ideal visiting order: origin, each key by index, exit.
func (w *World) Waypoints() []Position {
	points := make([]Position, 0, len(w.Keys)+2)
	points = append(points, w.Origin)
	for _, k := range w.Keys {
		points = append(points, k.Pos)
	}
	if exit, ok := w.Exit(); ok {
		points = append(points, exit.Pos)
	}
	return points
}

// Positions returns every placed entity position, origin first.
func (w *World) Positions() []Position {
	all := []Position{w.Origin}
	for _, k := range w.Keys {
		all = append(all, k.Pos)
	}
	for _, d := range w.Doors {
		all = append(all, d.Pos)
	}
	for _, d := range w.Decoys {
		all = append(all, d.Pos)
	}
	for _, b := range w.Boosts {
		all = append(all, b.Pos)
	}
	return all
}

// DoorUnlocked is the sequencing rule: door i opens once more than i keys
// were collected, whichever keys they were.
func DoorUnlocked(index, collected int) bool {
	return collected > index
}

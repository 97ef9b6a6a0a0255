package model

// ClientMessage is what a remote player sends: the directions held now, or
// a request for a new maze.
type ClientMessage struct {
	Input   Input
	Restart bool
	Menu    bool
}

func (s *Session) Snapshot() Snapshot {
	w := s.World
	views := make([]EntityView, 0, len(w.Keys)+len(w.Doors)+len(w.Decoys)+len(w.Boosts))
	for i, k := range w.Keys {
		views = append(views, EntityView{Kind: KEY, Index: i, Pos: k.Pos, Active: !k.Collected})
	}
	for i, d := range w.Doors {
		views = append(views, EntityView{Kind: DOOR, Index: i, Pos: d.Pos, Active: d.Unlocked})
	}
	for i, d := range w.Decoys {
		views = append(views, EntityView{Kind: DECOY, Index: i, Pos: d.Pos, Active: d.Visible})
	}
	for i, b := range w.Boosts {
		views = append(views, EntityView{Kind: BOOST, Index: i, Pos: b.Pos, Active: !b.Consumed})
	}
	walls := make([]bool, len(w.Grid.Walls))
	copy(walls, w.Grid.Walls)
	return Snapshot{
		State:            s.State,
		Cols:             w.Grid.Cols,
		Rows:             w.Grid.Rows,
		Walls:            walls,
		Player:           s.Player.Pos,
		Facing:           s.Player.Facing,
		Transit:          s.Player.Transit,
		Entities:         views,
		RemainingSeconds: s.RemainingSeconds(),
		Collected:        s.Collected,
		TotalKeys:        len(w.Keys),
	}
}

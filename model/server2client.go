package model

// EntityView is one entity as a renderer sees it. Active means the entity
// still shows in its first form: key lying around, door unlocked, decoy
// visible, boost unused.
type EntityView struct {
	Kind   EntityKind
	Index  int
	Pos    Position
	Active bool
}

// Snapshot is everything needed to draw one frame.
type Snapshot struct {
	State            GameState
	Cols, Rows       int
	Walls            []bool
	Player           Position
	Facing           Dir
	Transit          int
	Entities         []EntityView
	RemainingSeconds int
	Collected        int
	TotalKeys        int
}

func (s *Snapshot) Wall(p Position) bool {
	if p.Row < 0 || p.Row >= s.Rows || p.Col < 0 || p.Col >= s.Cols {
		return true
	}
	return s.Walls[p.Row*s.Cols+p.Col]
}

// ServerMessage is sent to remote players once per tick. Walls travel only
// in the first snapshot of a session.
type ServerMessage struct {
	Session  string
	Snapshot Snapshot
	Phase    Phase
	Hint     []Position
	Error    string
}

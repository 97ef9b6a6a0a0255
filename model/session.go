package model

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type GameState int

const (
	PLAYING GameState = iota + 1
	WON
	TIMED_OUT
)

func (s GameState) Name() string {
	switch s {
	case PLAYING:
		return "PLAYING"
	case WON:
		return "WON"
	case TIMED_OUT:
		return "TIMED_OUT"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

func (s GameState) Terminal() bool {
	return s == WON || s == TIMED_OUT
}

// Input is the set of directions held during one tick.
type Input struct {
	Up, Down, Left, Right bool
}

// Dir picks one held direction. Vertical wins over horizontal, up over
// down, left over right.
func (in Input) Dir() (Dir, bool) {
	switch {
	case in.Up:
		return UP, true
	case in.Down:
		return DOWN, true
	case in.Left:
		return LEFT, true
	case in.Right:
		return RIGHT, true
	}
	return 0, false
}

func InputFor(d Dir) Input {
	switch d {
	case UP:
		return Input{Up: true}
	case DOWN:
		return Input{Down: true}
	case LEFT:
		return Input{Left: true}
	default:
		return Input{Right: true}
	}
}

// Session is one run through one maze. It is owned by a single loop and is
// not safe for concurrent use.
type Session struct {
	State     GameState
	World     *World
	Player    Player
	Collected int
	// EndedAt is the clock reading when the session became terminal.
	EndedAt time.Duration

	cfg      Config
	clock    Clock
	startRef time.Duration
}

// NewSession builds a fresh world. A placement failure is returned as is,
// wrapped, and no session is created.
func NewSession(cfg Config, rng Rand, clock Clock) (*Session, error) {
	world, err := NewWorld(cfg, rng)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	return NewSessionWithWorld(cfg, world, clock), nil
}

func NewSessionWithWorld(cfg Config, world *World, clock Clock) *Session {
	s := &Session{
		State:    PLAYING,
		World:    world,
		Player:   Player{Pos: world.Origin, Facing: RIGHT},
		cfg:      cfg,
		clock:    clock,
		startRef: clock.Elapsed(),
	}
	s.updateDoors()
	return s
}

func (s *Session) Config() Config {
	return s.cfg
}

// Elapsed is the session time with boosts already subtracted. It goes
// negative when boosts outweigh the time played.
func (s *Session) Elapsed() time.Duration {
	return s.clock.Elapsed() - s.startRef
}

// Remaining is the time left, clamped at zero.
func (s *Session) Remaining() time.Duration {
	r := s.cfg.TimeLimit - s.Elapsed()
	if r < 0 {
		return 0
	}
	return r
}

// RemainingSeconds is the countdown shown to the player: the limit minus
// whole elapsed seconds, clamped at zero.
func (s *Session) RemainingSeconds() int {
	limit := int(s.cfg.TimeLimit / time.Second)
	left := limit - floorSeconds(s.Elapsed())
	if left < 0 {
		return 0
	}
	return left
}

func floorSeconds(d time.Duration) int {
	sec := d / time.Second
	if d < 0 && d%time.Second != 0 {
		sec--
	}
	return int(sec)
}

func (s *Session) expired() bool {
	return s.cfg.TimeLimit-s.Elapsed() <= 0
}

// Tick advances the session by one frame: movement from in, cell effects,
// door flags, then the win and timeout checks. Terminal sessions do not
// change.
func (s *Session) Tick(in Input) GameState {
	if s.State.Terminal() {
		return s.State
	}
	if !s.expired() {
		s.move(in)
	}
	if exit, ok := s.World.Exit(); ok && exit.Unlocked && s.Player.Pos == exit.Pos {
		s.finish(WON)
	} else if s.expired() {
		s.finish(TIMED_OUT)
	}
	return s.State
}

func (s *Session) finish(state GameState) {
	s.State = state
	s.EndedAt = s.clock.Elapsed()
	log.WithFields(log.Fields{
		"state":     state.Name(),
		"collected": s.Collected,
		"remaining": s.RemainingSeconds(),
	}).Info("session over")
}

func (s *Session) move(in Input) {
	if s.Player.Transit > 0 {
		s.Player.Transit--
		return
	}
	d, ok := in.Dir()
	if !ok {
		return
	}
	next := s.Player.Pos.Step(d)
	if !s.World.Grid.Open(next) {
		return
	}
	s.Player.Pos = next
	if d.Horizontal() {
		s.Player.Facing = d
	}
	if s.cfg.MoveTicks > 1 {
		s.Player.Transit = s.cfg.MoveTicks - 1
	}
	s.enter(next)
	s.updateDoors()
}

func (s *Session) enter(p Position) {
	w := s.World
	for i := range w.Boosts {
		if !w.Boosts[i].Consumed && w.Boosts[i].Pos == p {
			w.Boosts[i].Consumed = true
			s.startRef += s.cfg.BoostBonus
			log.WithField("bonus", s.cfg.BoostBonus).Debug("boost consumed")
		}
	}
	for i := range w.Keys {
		if !w.Keys[i].Collected && w.Keys[i].Pos == p {
			w.Keys[i].Collected = true
			s.Collected++
			log.WithField("collected", s.Collected).Debug("key collected")
		}
	}
	for i := range w.Decoys {
		if w.Decoys[i].Visible && w.Decoys[i].Pos == p {
			w.Decoys[i].Visible = false
		}
	}
}

func (s *Session) updateDoors() {
	for i := range s.World.Doors {
		s.World.Doors[i].Unlocked = DoorUnlocked(i, s.Collected)
	}
}

// Hint is the ideal route through the keys to the exit. It plays no part in
// the game rules.
func (s *Session) Hint() ([]Position, error) {
	return CompositePath(s.World.Grid, s.World.Waypoints())
}

// Epilogue describes the post-game sequence. Its phase is PHASE_PLAY while
// the session is still running.
func (s *Session) Epilogue() Epilogue {
	return NewEpilogue(s.State, s.EndedAt)
}

func (s *Session) Phase() Phase {
	return s.Epilogue().Phase(s.clock.Elapsed())
}

package model

import (
	"fmt"
	"time"
)

type Phase int

const (
	PHASE_PLAY Phase = iota + 1
	// PHASE_SETTLE keeps the final board on screen after a win.
	PHASE_SETTLE
	// PHASE_HINT shows the ideal path. Input is ignored until it ends.
	PHASE_HINT
	PHASE_END
)

const (
	SettleDelay = 500 * time.Millisecond
	HintDelay   = 3 * time.Second
	HintHold    = 3 * time.Second
)

func (p Phase) Name() string {
	switch p {
	case PHASE_PLAY:
		return "PLAY"
	case PHASE_SETTLE:
		return "SETTLE"
	case PHASE_HINT:
		return "HINT"
	case PHASE_END:
		return "END"
	default:
		return fmt.Sprintf("N/A(%d)", p)
	}
}

// Epilogue times the screens that follow a finished session.
type Epilogue struct {
	State GameState
	At    time.Duration
}

func NewEpilogue(state GameState, at time.Duration) Epilogue {
	return Epilogue{State: state, At: at}
}

func (e Epilogue) settle() time.Duration {
	if e.State == WON {
		return SettleDelay
	}
	return 0
}

func (e Epilogue) Phase(now time.Duration) Phase {
	if !e.State.Terminal() {
		return PHASE_PLAY
	}
	t := now - e.At
	switch {
	case t < e.settle():
		return PHASE_SETTLE
	case t < e.settle()+HintDelay+HintHold:
		return PHASE_HINT
	default:
		return PHASE_END
	}
}

// Length is the time from the end of play to the end screen.
func (e Epilogue) Length() time.Duration {
	return e.settle() + HintDelay + HintHold
}

func (e Epilogue) Title() string {
	switch e.State {
	case WON:
		return "Maze Escaped!"
	case TIMED_OUT:
		return "Time's Up!"
	default:
		return "MAZE ESCAPE"
	}
}

type Action int

const (
	ACTION_NONE Action = iota
	ACTION_RESTART
	ACTION_MENU
	ACTION_PLAY
	ACTION_EXIT
)

const (
	ButtonWidth  = 200
	ButtonHeight = 60
)

// Region is a clickable rectangle in screen pixels.
type Region struct {
	X, Y, W, H int
	Label      string
	Action     Action
}

func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Screen is a title with two stacked buttons centred on a window of the
// given width.
type Screen struct {
	Title   string
	TitleY  int
	Buttons [2]Region
}

func (s Screen) Hit(x, y int) Action {
	for _, b := range s.Buttons {
		if b.Contains(x, y) {
			return b.Action
		}
	}
	return ACTION_NONE
}

func twoButtons(width int, first, second Region) [2]Region {
	x := (width - ButtonWidth) / 2
	first.X, first.Y, first.W, first.H = x, 180, ButtonWidth, ButtonHeight
	second.X, second.Y, second.W, second.H = x, 280, ButtonWidth, ButtonHeight
	return [2]Region{first, second}
}

func MenuScreen(width int) Screen {
	return Screen{
		Title:  "MAZE ESCAPE",
		TitleY: 60,
		Buttons: twoButtons(width,
			Region{Label: "Play Game", Action: ACTION_PLAY},
			Region{Label: "Exit", Action: ACTION_EXIT}),
	}
}

func (e Epilogue) EndScreen(width int) Screen {
	return Screen{
		Title:  e.Title(),
		TitleY: 80,
		Buttons: twoButtons(width,
			Region{Label: "Play Again", Action: ACTION_RESTART},
			Region{Label: "Main Menu", Action: ACTION_MENU}),
	}
}

package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/zucenko/mazescape/model"
)

// mazeTop is the screen row of the first maze row; row 0 is the HUD.
const mazeTop = 1

var (
	styleFloor  = tcell.StyleDefault
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorGray)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleKey    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleDoor   = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleOpen   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBoost  = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleHint   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleText   = tcell.StyleDefault
	styleWarn   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

type Renderer struct {
	screen tcell.Screen
	// Notice is drawn on the menu and end screens until cleared.
	Notice string
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, c := range s {
		r.screen.SetContent(x, y, c, nil, style)
		x++
	}
}

func (r *Renderer) centred(y int, s string, style tcell.Style) {
	w, _ := r.screen.Size()
	r.text((w-len(s))/2, y, s, style)
}

func (r *Renderer) Menu() {
	r.screen.Clear()
	r.centred(3, "MAZE ESCAPE", styleText.Bold(true))
	r.centred(6, "[enter] Play Game", styleText)
	r.centred(8, "[q] Exit", styleText)
	if r.Notice != "" {
		r.centred(10, r.Notice, styleWarn)
	}
	r.screen.Show()
}

// Frame draws one snapshot. The hint shows from PHASE_HINT on and the end
// screen text only in PHASE_END.
func (r *Renderer) Frame(snap *model.Snapshot, phase model.Phase, hint []model.Position, title string) {
	r.screen.Clear()
	r.hud(snap)

	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Cols; col++ {
			if snap.Wall(model.Position{Row: row, Col: col}) {
				r.screen.SetContent(col, row+mazeTop, ' ', nil, styleWall)
			} else {
				r.screen.SetContent(col, row+mazeTop, ' ', nil, styleFloor)
			}
		}
	}
	if phase >= model.PHASE_HINT {
		for _, p := range hint {
			r.screen.SetContent(p.Col, p.Row+mazeTop, '·', nil, styleHint)
		}
	}
	for _, e := range snap.Entities {
		if c, style, ok := entityCell(e); ok {
			r.screen.SetContent(e.Pos.Col, e.Pos.Row+mazeTop, c, nil, style)
		}
	}
	player := '>'
	if snap.Facing == model.LEFT {
		player = '<'
	}
	r.screen.SetContent(snap.Player.Col, snap.Player.Row+mazeTop, player, nil, stylePlayer)

	if phase == model.PHASE_END {
		y := snap.Rows + mazeTop + 1
		r.text(0, y, title, styleText.Bold(true))
		r.text(0, y+1, "[r] Play Again  [m] Main Menu", styleText)
		if r.Notice != "" {
			r.text(0, y+2, r.Notice, styleWarn)
		}
	}
	r.screen.Show()
}

func (r *Renderer) hud(snap *model.Snapshot) {
	style := styleText
	if snap.RemainingSeconds <= 10 {
		style = styleWarn
	}
	timeLeft := fmt.Sprintf("Time Left: %ds", snap.RemainingSeconds)
	r.text(0, 0, timeLeft, style)
	r.text(len(timeLeft)+3, 0, fmt.Sprintf("Keys: %d/%d", snap.Collected, snap.TotalKeys), styleText)
}

// entityCell picks the rune for an entity. A visible decoy is drawn exactly
// like a locked door.
func entityCell(e model.EntityView) (rune, tcell.Style, bool) {
	switch e.Kind {
	case model.KEY:
		return model.RuneKey, styleKey, e.Active
	case model.DOOR:
		if e.Active {
			return model.RuneOpened, styleOpen, true
		}
		return model.RuneDoor, styleDoor, true
	case model.DECOY:
		return model.RuneDoor, styleDoor, e.Active
	case model.BOOST:
		return model.RuneBoost, styleBoost, e.Active
	}
	return 0, styleText, false
}

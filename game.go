package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/zucenko/mazescape/model"
)

type ClientState int

const (
	MENU ClientState = iota + 1
	PLAY
)

func (s ClientState) Name() string {
	switch s {
	case MENU:
		return "MENU"
	case PLAY:
		return "PLAY"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

var errQuit = errors.New("quit")

type Game struct {
	State   ClientState
	Config  model.Config
	Rand    model.Rand
	Session *model.Session
	Frame   *Nine
	Tweens  map[*gween.Tween]*Action

	board      Board
	phase      model.Phase
	hint       []model.Position
	from       model.Position
	progress   float64
	moveTween  *gween.Tween
	hintAlpha  float64
	titleScale float64
	titles     map[string]*ebiten.Image
	// notice is shown under the current screen after a failed start.
	notice string
}

func NewGame(cfg model.Config) (*Game, error) {
	frame, err := NewFrame(24, 3)
	if err != nil {
		return nil, err
	}
	return &Game{
		State:  MENU,
		Config: cfg,
		Rand:   model.NewRand(cfg.Seed),
		Frame:  frame,
		Tweens: make(map[*gween.Tween]*Action),
		titles: make(map[string]*ebiten.Image),
	}, nil
}

// startSession leaves the client on its current screen when no world can
// be built, so the next click retries with fresh randomness.
func (g *Game) startSession() {
	world, err := g.newWorld()
	if err != nil {
		log.WithError(err).Error("start session")
		g.notice = "Could not build a maze, try again"
		return
	}
	g.notice = ""
	g.Session = model.NewSessionWithWorld(g.Config, world, model.NewWallClock())
	g.State = PLAY
	g.phase = model.PHASE_PLAY
	g.hint = nil
	g.from = world.Origin
	g.progress = 1
	g.moveTween = nil
	g.Tweens = make(map[*gween.Tween]*Action)
	log.WithFields(log.Fields{
		"cols": world.Grid.Cols,
		"rows": world.Grid.Rows,
		"keys": len(world.Keys),
	}).Info("session started")
}

func readInput() model.Input {
	return model.Input{
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight),
	}
}

func clicked() (int, int, bool) {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return 0, 0, false
	}
	x, y := ebiten.CursorPosition()
	return x, y, true
}

func (g *Game) update(screen *ebiten.Image) error {
	g.updateTweens(1 / float32(g.Config.FPS))
	w, h := screen.Size()

	switch g.State {
	case MENU:
		if x, y, ok := clicked(); ok {
			switch model.MenuScreen(w).Hit(x, y) {
			case model.ACTION_PLAY:
				g.startSession()
			case model.ACTION_EXIT:
				return errQuit
			}
		}
	case PLAY:
		g.play(w)
	}

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	g.draw(screen, w, h)
	return nil
}

func (g *Game) play(width int) {
	s := g.Session
	if g.phase == model.PHASE_PLAY {
		before := s.Player.Pos
		s.Tick(readInput())
		if s.Player.Pos != before {
			g.from = before
			g.slide(float32(g.Config.MoveTicks) / float32(g.Config.FPS))
		}
	}

	if phase := s.Phase(); phase != g.phase {
		g.enterPhase(phase)
	}
	if g.phase != model.PHASE_END {
		return
	}
	if x, y, ok := clicked(); ok {
		switch s.Epilogue().EndScreen(width).Hit(x, y) {
		case model.ACTION_RESTART:
			g.startSession()
		case model.ACTION_MENU:
			g.State = MENU
			g.Session = nil
			g.notice = ""
			g.Tweens = make(map[*gween.Tween]*Action)
		}
	}
}

// enterPhase may skip phases when frames are dropped, so each step checks
// with >=.
func (g *Game) enterPhase(phase model.Phase) {
	log.WithFields(log.Fields{"from": g.phase.Name(), "to": phase.Name()}).Debug("phase")
	if phase >= model.PHASE_HINT && g.hint == nil {
		hint, err := g.Session.Hint()
		if err != nil {
			log.WithError(err).Warn("hint")
		}
		g.hint = hint
		g.revealHint()
	}
	if phase == model.PHASE_END {
		g.popTitle()
	}
	g.phase = phase
}

func (g *Game) draw(screen *ebiten.Image, w, h int) {
	if err := screen.Fill(COLOR_BACKGROUND.RGBA(1)); err != nil {
		log.WithError(err).Warn("fill")
	}

	switch g.State {
	case MENU:
		g.drawScreen(screen, model.MenuScreen(w), w, 1)
	case PLAY:
		snap := g.Session.Snapshot()
		g.board = NewBoard(w, h, snap.Cols, snap.Rows)
		g.drawMaze(screen, &snap)
		g.drawHud(screen, &snap, w)
		if g.phase >= model.PHASE_HINT {
			g.drawHint(screen)
		}
		if g.phase == model.PHASE_END {
			ebitenutil.DrawRect(screen, 0, 0, float64(w), float64(h), color.RGBA{0, 0, 0, 160})
			g.drawScreen(screen, g.Session.Epilogue().EndScreen(w), w, g.titleScale)
		}
	}

	if g.notice != "" {
		nw := textWidth(HudFont, g.notice)
		text.Draw(screen, g.notice, HudFont, (w-nw)/2, h-40, COLOR_WARN.RGBA(1))
	}

	if *debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %s TPS:%0.0f", g.State.Name(), g.phase.Name(), ebiten.CurrentTPS()), 5, h-20)
	}
}

func (g *Game) drawMaze(screen *ebiten.Image, snap *model.Snapshot) {
	t := float64(g.board.Tile)
	for r := 0; r < snap.Rows; r++ {
		for c := 0; c < snap.Cols; c++ {
			x, y := g.board.Corner(float64(r), float64(c))
			clr := COLOR_FLOOR
			if snap.Wall(model.Position{Row: r, Col: c}) {
				clr = COLOR_WALL
			}
			ebitenutil.DrawRect(screen, x, y, t, t, clr.RGBA(1))
		}
	}

	for _, e := range snap.Entities {
		g.drawEntity(screen, e)
	}

	// player slides between cells while a move tween runs
	p := g.progress
	row := float64(g.from.Row) + float64(snap.Player.Row-g.from.Row)*p
	col := float64(g.from.Col) + float64(snap.Player.Col-g.from.Col)*p
	x, y := g.board.Corner(row, col)
	inset := t * 0.15
	ebitenutil.DrawRect(screen, x+inset, y+inset, t-2*inset, t-2*inset, COLOR_PLAYER.RGBA(1))
	eye := t * 0.15
	ex := x + t - 2*inset - eye/2
	if snap.Facing == model.LEFT {
		ex = x + 2*inset - eye/2
	}
	ebitenutil.DrawRect(screen, ex, y+2*inset, eye, eye, COLOR_BACKGROUND.RGBA(1))
}

func (g *Game) drawEntity(screen *ebiten.Image, e model.EntityView) {
	t := float64(g.board.Tile)
	x, y := g.board.Corner(float64(e.Pos.Row), float64(e.Pos.Col))
	box := func(inset float64, c GameColor) {
		ebitenutil.DrawRect(screen, x+t*inset, y+t*inset, t*(1-2*inset), t*(1-2*inset), c.RGBA(1))
	}
	switch e.Kind {
	case model.KEY:
		if e.Active {
			box(0.3, COLOR_KEY)
		}
	case model.DOOR:
		if e.Active {
			box(0.1, COLOR_OPEN_DOOR)
		} else {
			box(0.1, COLOR_DOOR)
		}
	case model.DECOY:
		// looks exactly like a locked door until stepped on
		if e.Active {
			box(0.1, COLOR_DOOR)
		}
	case model.BOOST:
		if e.Active {
			box(0.32, COLOR_BOOST)
		}
	}
}

func (g *Game) drawHud(screen *ebiten.Image, snap *model.Snapshot, w int) {
	clr := COLOR_TEXT
	if snap.RemainingSeconds <= 10 {
		clr = COLOR_WARN
	}
	text.Draw(screen, fmt.Sprintf("Time Left: %ds", snap.RemainingSeconds), HudFont, 10, 28, clr.RGBA(1))
	keys := fmt.Sprintf("Keys: %d/%d", snap.Collected, snap.TotalKeys)
	text.Draw(screen, keys, HudFont, w-textWidth(HudFont, keys)-10, 28, COLOR_TEXT.RGBA(1))
}

func (g *Game) drawHint(screen *ebiten.Image) {
	clr := COLOR_HINT.RGBA(g.hintAlpha)
	for i := 1; i < len(g.hint); i++ {
		x1, y1 := g.board.Centre(g.hint[i-1])
		x2, y2 := g.board.Centre(g.hint[i])
		ebitenutil.DrawLine(screen, x1, y1, x2, y2, clr)
	}
}

func (g *Game) title(s string) *ebiten.Image {
	img, ok := g.titles[s]
	if !ok {
		img = prepareTextImage(s, TitleFont, COLOR_TEXT)
		g.titles[s] = img
	}
	return img
}

func (g *Game) drawScreen(screen *ebiten.Image, sc model.Screen, w int, scale float64) {
	title := g.title(sc.Title)
	tw, th := title.Size()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(tw)/2, -float64(th)/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(w)/2, float64(sc.TitleY))
	screen.DrawImage(title, op)

	for _, b := range sc.Buttons {
		g.Frame.Place(b.X, b.Y, b.W, b.H)
		g.Frame.Draw(screen)
		lw := textWidth(HudFont, b.Label)
		text.Draw(screen, b.Label, HudFont, b.X+(b.W-lw)/2, b.Y+b.H/2+7, COLOR_TEXT.RGBA(1))
	}
}

func main() {
	flag.Parse()
	if *debug {
		log.SetLevel(log.DebugLevel)
	}
	cfg, err := loadConfig()
	if err != nil {
		log.WithError(err).Fatal("config")
	}
	if err := loadFonts(); err != nil {
		log.WithError(err).Fatal("fonts")
	}
	game, err := NewGame(cfg)
	if err != nil {
		log.WithError(err).Fatal("new game")
	}
	ebiten.SetMaxTPS(cfg.FPS)
	if err := ebiten.Run(game.update, screenWidth, screenHeight, 1, "Maze Escape"); err != nil && err != errQuit {
		log.WithError(err).Fatal("game")
	}
}

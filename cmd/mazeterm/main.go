package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/mazescape/model"
)

type TermState int

const (
	T_MENU TermState = iota + 1
	T_PLAY
	T_QUIT
)

// Term is the terminal game. Terminals report key presses, not held keys,
// so a press is kept until the move it asks for is taken.
type Term struct {
	State    TermState
	Config   model.Config
	Rand     model.Rand
	Session  *model.Session
	Layout   string
	renderer *Renderer
	clock    func() model.Clock
	pending  *model.Dir
	hint     []model.Position
}

func NewTerm(screen tcell.Screen, cfg model.Config) *Term {
	return &Term{
		State:    T_MENU,
		Config:   cfg,
		Rand:     model.NewRand(cfg.Seed),
		renderer: NewRenderer(screen),
		clock:    func() model.Clock { return model.NewWallClock() },
	}
}

func (t *Term) start() error {
	var world *model.World
	var err error
	if t.Layout != "" {
		world, err = model.LoadLayout(t.Layout)
	} else {
		world, err = model.NewWorld(t.Config, t.Rand)
	}
	if err != nil {
		return err
	}
	t.renderer.Notice = ""
	t.Session = model.NewSessionWithWorld(t.Config, world, t.clock())
	t.State = T_PLAY
	t.pending = nil
	t.hint = nil
	return nil
}

var keyDirs = map[tcell.Key]model.Dir{
	tcell.KeyUp:    model.UP,
	tcell.KeyDown:  model.DOWN,
	tcell.KeyLeft:  model.LEFT,
	tcell.KeyRight: model.RIGHT,
}

var runeDirs = map[rune]model.Dir{
	'w': model.UP,
	's': model.DOWN,
	'a': model.LEFT,
	'd': model.RIGHT,
}

// handleKey returns an error only when a new maze cannot be built.
func (t *Term) handleKey(key tcell.Key, r rune) error {
	if key == tcell.KeyCtrlC || key == tcell.KeyEscape {
		t.State = T_QUIT
		return nil
	}
	switch t.State {
	case T_MENU:
		switch {
		case key == tcell.KeyEnter:
			return t.start()
		case key == tcell.KeyRune && r == 'q':
			t.State = T_QUIT
		}
	case T_PLAY:
		phase := t.Session.Phase()
		if phase == model.PHASE_PLAY {
			if d, ok := keyDirs[key]; ok {
				t.pending = &d
			} else if d, ok := runeDirs[r]; ok && key == tcell.KeyRune {
				t.pending = &d
			}
			return nil
		}
		if phase != model.PHASE_END || key != tcell.KeyRune {
			return nil
		}
		switch r {
		case 'r':
			return t.start()
		case 'm':
			t.State = T_MENU
			t.Session = nil
			t.renderer.Notice = ""
		case 'q':
			t.State = T_QUIT
		}
	}
	return nil
}

// press handles a key. A maze that cannot be built leaves the player on
// the current screen with a notice, and the next try draws fresh randomness.
func (t *Term) press(key tcell.Key, r rune) {
	if err := t.handleKey(key, r); err != nil {
		log.WithError(err).Error("start session")
		t.renderer.Notice = "Could not build a maze, try again"
	}
}

func (t *Term) tick() {
	if t.State != T_PLAY {
		t.renderer.Menu()
		return
	}
	s := t.Session
	in := model.Input{}
	if t.pending != nil {
		in = model.InputFor(*t.pending)
		if s.Player.Transit == 0 {
			t.pending = nil
		}
	}
	s.Tick(in)

	phase := s.Phase()
	if phase >= model.PHASE_HINT && t.hint == nil {
		hint, err := s.Hint()
		if err != nil {
			log.WithError(err).Warn("hint")
		}
		t.hint = hint
	}
	snap := s.Snapshot()
	t.renderer.Frame(&snap, phase, t.hint, s.Epilogue().Title())
}

func (t *Term) run(screen tcell.Screen) {
	ticker := time.NewTicker(t.Config.TickInterval())
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- screen.PollEvent()
		}
	}()

	for t.State != T_QUIT {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				t.press(ev.Key(), ev.Rune())
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			t.tick()
		}
	}
}

func main() {
	configPath := flag.String("config", "", "yaml config file")
	seed := flag.Int64("seed", 0, "maze seed, 0 picks one from the clock")
	layout := flag.String("layout", "", "play a fixed maze from a layout file")
	logFile := flag.String("log", "", "write logs to this file, the terminal is busy")
	flag.Parse()

	log.SetOutput(os.Stderr)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.ErrorLevel)
	}

	cfg := model.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = model.LoadConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	term := NewTerm(screen, cfg)
	term.Layout = *layout
	term.run(screen)
	screen.Fini()
}

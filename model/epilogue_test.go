package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zucenko/mazescape/model"
)

func TestEpiloguePhases(t *testing.T) {
	at := 42 * time.Second
	tests := []struct {
		state model.GameState
		after time.Duration
		want  model.Phase
	}{
		{model.PLAYING, time.Hour, model.PHASE_PLAY},
		{model.WON, 0, model.PHASE_SETTLE},
		{model.WON, 499 * time.Millisecond, model.PHASE_SETTLE},
		{model.WON, 500 * time.Millisecond, model.PHASE_HINT},
		{model.WON, 6499 * time.Millisecond, model.PHASE_HINT},
		{model.WON, 6500 * time.Millisecond, model.PHASE_END},
		{model.TIMED_OUT, 0, model.PHASE_HINT},
		{model.TIMED_OUT, 5999 * time.Millisecond, model.PHASE_HINT},
		{model.TIMED_OUT, 6 * time.Second, model.PHASE_END},
	}
	for _, tt := range tests {
		t.Run(tt.state.Name()+"/"+tt.after.String(), func(t *testing.T) {
			e := model.NewEpilogue(tt.state, at)
			assert.Equal(t, tt.want, e.Phase(at+tt.after))
		})
	}
}

func TestEpilogueLength(t *testing.T) {
	assert.Equal(t, 6500*time.Millisecond, model.NewEpilogue(model.WON, 0).Length())
	assert.Equal(t, 6*time.Second, model.NewEpilogue(model.TIMED_OUT, 0).Length())
}

func TestEndScreenRegions(t *testing.T) {
	screen := model.NewEpilogue(model.WON, 0).EndScreen(800)
	assert.Equal(t, "Maze Escaped!", screen.Title)

	tests := []struct {
		name string
		x, y int
		want model.Action
	}{
		{"restart top left", 300, 180, model.ACTION_RESTART},
		{"restart bottom right", 499, 239, model.ACTION_RESTART},
		{"restart right edge", 500, 200, model.ACTION_NONE},
		{"gap", 400, 260, model.ACTION_NONE},
		{"menu", 400, 300, model.ACTION_MENU},
		{"menu bottom edge", 400, 340, model.ACTION_NONE},
		{"outside", 10, 10, model.ACTION_NONE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, screen.Hit(tt.x, tt.y))
		})
	}
}

func TestEndScreenTitles(t *testing.T) {
	assert.Equal(t, "Time's Up!", model.NewEpilogue(model.TIMED_OUT, 0).EndScreen(640).Title)
	menu := model.MenuScreen(640)
	assert.Equal(t, model.ACTION_PLAY, menu.Hit(320, 200))
	assert.Equal(t, model.ACTION_EXIT, menu.Hit(320, 300))
}

func TestSessionPhase(t *testing.T) {
	s, clock := newLayoutSession(t, `
@KD
`)
	assert.Equal(t, model.PHASE_PLAY, s.Phase())
	clock.Now = 10 * time.Second
	walk(s, model.RIGHT, model.RIGHT)
	assert.Equal(t, model.PHASE_SETTLE, s.Phase())
	clock.Advance(time.Second)
	assert.Equal(t, model.PHASE_HINT, s.Phase())
	clock.Advance(6 * time.Second)
	assert.Equal(t, model.PHASE_END, s.Phase())
}

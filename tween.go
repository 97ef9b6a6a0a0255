package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type Action struct {
	nexts    []func(g *Game)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	a.onFinish = append(a.onFinish, f)
}

// next queues t to start when the current tween finishes.
func (a *Action) next(t *gween.Tween, onChange func(float32)) *Action {
	action := &Action{onChange: onChange}
	a.nexts = append(a.nexts,
		func(g *Game) {
			g.Tweens[t] = action
		})
	return action
}

func (g *Game) tween(begin, end, seconds float32, easing ease.TweenFunc, onChange func(float32)) (*gween.Tween, *Action) {
	t := gween.New(begin, end, seconds, easing)
	action := &Action{onChange: onChange}
	g.Tweens[t] = action
	return t, action
}

func (g *Game) updateTweens(dt float32) {
	for t, a := range g.Tweens {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			for _, next := range a.nexts {
				next(g)
			}
			delete(g.Tweens, t)
		}
	}
}

// slide moves the player sprite from the cell it was drawn in to the
// session's cell over one move's worth of ticks.
func (g *Game) slide(seconds float32) {
	if g.moveTween != nil {
		delete(g.Tweens, g.moveTween)
	}
	g.progress = 0
	t, a := g.tween(0, 1, seconds, ease.OutQuad, func(v float32) { g.progress = float64(v) })
	a.addOnFinish(func() {
		g.from = g.Session.Player.Pos
		g.moveTween = nil
	})
	g.moveTween = t
}

func (g *Game) revealHint() {
	g.hintAlpha = 0
	g.tween(0, 1, 0.5, ease.Linear, func(v float32) { g.hintAlpha = float64(v) })
}

// popTitle grows the end-screen title past its size and settles it back.
func (g *Game) popTitle() {
	g.titleScale = 0.6
	_, a := g.tween(0.6, 1.1, 0.2, ease.OutQuad, func(v float32) { g.titleScale = float64(v) })
	a.next(gween.New(1.1, 1, 0.1, ease.Linear), func(v float32) { g.titleScale = float64(v) })
}

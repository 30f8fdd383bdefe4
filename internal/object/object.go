// Package object holds the game entities: thrown fruit, visual effects and the spawner.
package object

import (
	"github.com/tomz197/fruitslice/internal/draw"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas
}

// Screen represents the logical play area in pixels.
type Screen struct {
	Width  int
	Height int
}

// Center returns the middle of the screen.
func (s Screen) Center() (float64, float64) {
	return float64(s.Width) / 2, float64(s.Height) / 2
}

// Effect is a timed visual that is drawn until its countdown runs out.
type Effect interface {
	// Update advances the countdown and any per-particle state.
	Update(dt float64)

	// Draw renders the effect for the current timer value without mutating it.
	Draw(ctx DrawContext)

	// Finished reports whether the countdown has reached zero.
	Finished() bool
}

// TickEffects updates every effect and drops the ones that finished.
// The backing array of effects is reused.
func TickEffects[E Effect](effects []E, dt float64) []E {
	kept := effects[:0]
	for _, e := range effects {
		e.Update(dt)
		if !e.Finished() {
			kept = append(kept, e)
		}
	}
	clear(effects[len(kept):])
	return kept
}

// DrawEffects draws effects in slice order.
func DrawEffects[E Effect](effects []E, ctx DrawContext) {
	for _, e := range effects {
		e.Draw(ctx)
	}
}

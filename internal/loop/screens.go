package loop

import (
	"fmt"

	"github.com/tomz197/fruitslice/internal/draw"
	"github.com/tomz197/fruitslice/internal/loop/config"
	"github.com/tomz197/fruitslice/internal/object"
	"github.com/tomz197/fruitslice/internal/tracker"
)

// Board and text colours.
var (
	colorBoard     = draw.RGB(54, 39, 18)
	colorGrid      = draw.RGB(154, 123, 79)
	colorText      = draw.RGB(255, 255, 255)
	colorModeText  = draw.RGB(200, 200, 200)
	colorGameOver  = draw.RGB(255, 0, 0)
	colorBlack     = draw.RGB(0, 0, 0)
	colorCursorEye = draw.RGB(0, 255, 255)
)

// Draw renders the board: background, stains, objects, bursts, splashes,
// the cursor marker and the HUD, in that order.
func (s *Session) Draw(canvas *draw.Canvas) {
	canvas.Clear(colorBoard)
	for i := 1; i <= config.GridLines; i++ {
		canvas.VLine(float64(i*s.screen.Width/(config.GridLines+1)), colorGrid)
	}

	ctx := object.DrawContext{Canvas: canvas}
	object.DrawEffects(s.stains, ctx)
	for _, f := range s.fruits {
		f.Draw(ctx)
	}
	object.DrawEffects(s.bursts, ctx)
	object.DrawEffects(s.splashes, ctx)

	if cur, ok := s.tracker.Cursor(); ok {
		col := colorText
		if s.tracker.Mode() == tracker.Eye {
			col = colorCursorEye
		}
		canvas.FillCircle(float64(cur.X), float64(cur.Y), config.CursorRadius, col, 1)
	}

	s.drawHUD(canvas)
}

// drawHUD queues the score, timer and, with more than one mode, the mode hint.
func (s *Session) drawHUD(canvas *draw.Canvas) {
	m := float64(config.HUDMargin)
	canvas.Label(m, m, fmt.Sprintf("Score: %d", s.score), colorText, draw.AnchorLeft)
	canvas.Label(float64(s.screen.Width-config.HUDTimeOffset), m,
		fmt.Sprintf("Time: %d", s.remaining), colorText, draw.AnchorLeft)

	if len(s.tracker.Modes()) > 1 {
		hint := fmt.Sprintf("Mode: %s (Press M to toggle)", s.tracker.Mode())
		canvas.Label(m, config.HUDModeY, hint, colorModeText, draw.AnchorLeft)
	}
}

// DrawGameOver renders the final screen with the score.
func (s *Session) DrawGameOver(canvas *draw.Canvas) {
	canvas.Clear(colorBlack)
	cx, cy := s.screen.Center()
	canvas.Label(cx, cy-config.GameOverOffsetY, "Game Over!", colorGameOver, draw.AnchorCenter)
	canvas.Label(cx, cy, fmt.Sprintf("Final Score: %d", s.score), colorText, draw.AnchorCenter)
}

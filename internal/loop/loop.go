// Package loop runs a fruit slicing session: per-frame state updates,
// collision and scoring, rendering and the terminal driver.
package loop

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/fruitslice/internal/audio"
	appconfig "github.com/tomz197/fruitslice/internal/config"
	"github.com/tomz197/fruitslice/internal/draw"
	"github.com/tomz197/fruitslice/internal/input"
	"github.com/tomz197/fruitslice/internal/loop/config"
	"github.com/tomz197/fruitslice/internal/tracker"
	"github.com/tomz197/fruitslice/internal/vision"
)

// TerminalOptions configures the terminal driver.
type TerminalOptions struct {
	TermSizeFunc    draw.TermSizeFunc // nil reads os.Stdout
	Cues            audio.Cues        // nil opens the configured audio
	GameOverDisplay time.Duration     // zero shows the final screen for config.GameOverDisplay
}

// Detectors creates one spot detector per enabled mode.
func Detectors(s appconfig.Settings) (map[tracker.Mode]vision.Detector, error) {
	detectors := make(map[tracker.Mode]vision.Detector, len(s.Modes))
	for _, name := range s.Modes {
		m, err := tracker.ParseMode(name)
		if err != nil {
			return nil, err
		}
		detectors[m] = &vision.SpotDetector{
			Threshold: s.Detector.Threshold,
			MinArea:   s.Detector.MinArea,
		}
	}
	return detectors, nil
}

// terminalPointer feeds mouse reports into the pointer camera.
type terminalPointer struct {
	col, row   int // 1-based cell of the last report
	cols, rows int
	seen       bool
	closed     bool
}

func (p *terminalPointer) update(ev input.Events, cols, rows int) {
	p.cols, p.rows = cols, rows
	if ev.PointerSeen {
		p.col, p.row = ev.PointerCol, ev.PointerRow
		p.seen = true
	}
	if ev.Closed {
		p.closed = true
	}
}

func (p *terminalPointer) Pointer() (vision.Pointer, error) {
	if p.closed {
		return vision.Pointer{}, io.EOF
	}
	if !p.seen || p.cols <= 0 || p.rows <= 0 {
		return vision.Pointer{}, nil
	}
	return vision.Pointer{
		X:       (float64(p.col) - 0.5) / float64(p.cols),
		Y:       (float64(p.row) - 0.5) / float64(p.rows),
		Visible: true,
	}, nil
}

// Run plays one session in the terminal with the standard Input → Update →
// Draw cycle, then shows the final score.
func Run(r *bufio.Reader, w io.Writer, settings appconfig.Settings, logger *log.Logger, opts TerminalOptions) error {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	cues := opts.Cues
	if cues == nil {
		cues = audio.Open(settings.Audio, logger)
	}
	gameOverDisplay := opts.GameOverDisplay
	if gameOverDisplay <= 0 {
		gameOverDisplay = config.GameOverDisplay
	}

	cols, rows, err := termSizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}

	pointer := &terminalPointer{cols: cols, rows: rows}
	camera, err := vision.OpenPointerCamera(pointer, settings.Camera.Width, settings.Camera.Height)
	if err != nil {
		return err
	}
	detectors, err := Detectors(settings)
	if err != nil {
		camera.Close()
		return err
	}

	session, err := NewSession(Options{
		Settings:  settings,
		Camera:    camera,
		Detectors: detectors,
		Cues:      cues,
		Logger:    logger,
	})
	if err != nil {
		camera.Close()
		return err
	}
	defer session.Close()

	logger.Info("session started",
		"profile", settings.Profile,
		"modes", settings.Modes,
		"duration", settings.Duration,
		"screen", fmt.Sprintf("%dx%d", settings.Screen.Width, settings.Screen.Height))

	stream := input.StartStream(r)
	canvas := draw.NewTerminalCanvas(cols, rows,
		float64(settings.Screen.Width), float64(settings.Screen.Height))

	draw.HideCursor(w)
	draw.EnableMouse(w)
	defer draw.ShowCursor(w)
	defer draw.DisableMouse(w)
	draw.ClearScreen(w)

	for session.Running() {
		frameStart := time.Now()

		// ===== INPUT PHASE =====
		ev := input.ReadEvents(stream)
		if nc, nr, err := termSizeFunc(); err == nil && (nc != cols || nr != rows) {
			cols, rows = nc, nr
			canvas.ResizeTerminal(cols, rows)
			draw.ClearScreen(w)
		}
		pointer.update(ev, cols, rows)

		// ===== UPDATE PHASE =====
		ctrl := Controls{
			Quit:       ev.Quit || ev.Escape || ev.Closed,
			ToggleMode: ev.ToggleMode,
		}

		// ===== DRAW PHASE =====
		if session.Step(ctrl) {
			session.Draw(canvas)
			if err := canvas.Render(w); err != nil {
				return err
			}
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	logger.Info("session over", "score", session.Score(), "bomb", session.GameOver())

	session.DrawGameOver(canvas)
	if err := canvas.Render(w); err != nil {
		return err
	}
	time.Sleep(gameOverDisplay)
	draw.ClearScreen(w)

	return session.Close()
}

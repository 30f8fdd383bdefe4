package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/mattn/go-runewidth"
	"github.com/tomz197/fruitslice/internal/audio"
	"github.com/tomz197/fruitslice/internal/config"
	"github.com/tomz197/fruitslice/internal/draw"
	"github.com/tomz197/fruitslice/internal/loop"
	tuning "github.com/tomz197/fruitslice/internal/loop/config"
	"github.com/tomz197/fruitslice/internal/vision"
)

// debugGlyphWidth is the advance of ebitenutil's debug font.
const debugGlyphWidth = 6

// Game adapts a session to ebiten's Update/Draw cycle.
type Game struct {
	session *loop.Session
	logger  *log.Logger
	width   int
	height  int

	canvas *draw.Canvas
	pixels []byte
	frame  *ebiten.Image
	dirty  bool

	overSince time.Time
}

// cursorPointer reports the mouse cursor as a normalised pointer.
type cursorPointer struct {
	width, height int
}

func (p cursorPointer) Pointer() (vision.Pointer, error) {
	x, y := ebiten.CursorPosition()
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return vision.Pointer{}, nil
	}
	return vision.Pointer{
		X:       (float64(x) + 0.5) / float64(p.width),
		Y:       (float64(y) + 0.5) / float64(p.height),
		Visible: true,
	}, nil
}

func newGame(settings config.Settings, logger *log.Logger) (*Game, error) {
	w, h := settings.Screen.Width, settings.Screen.Height

	camera, err := vision.OpenPointerCamera(cursorPointer{width: w, height: h},
		settings.Camera.Width, settings.Camera.Height)
	if err != nil {
		return nil, err
	}
	detectors, err := loop.Detectors(settings)
	if err != nil {
		camera.Close()
		return nil, err
	}
	session, err := loop.NewSession(loop.Options{
		Settings:  settings,
		Camera:    camera,
		Detectors: detectors,
		Cues:      audio.Open(settings.Audio, logger),
		Logger:    logger,
	})
	if err != nil {
		camera.Close()
		return nil, err
	}

	return &Game{
		session: session,
		logger:  logger,
		width:   w,
		height:  h,
		canvas:  draw.NewCanvas(w, h),
		frame:   ebiten.NewImage(w, h),
	}, nil
}

func (g *Game) Update() error {
	if !g.session.Running() {
		if time.Since(g.overSince) < tuning.GameOverDisplay {
			return nil
		}
		if err := g.session.Close(); err != nil {
			g.logger.Warn("release devices", "err", err)
		}
		return ebiten.Termination
	}

	ctrl := loop.Controls{
		Quit: inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
			inpututil.IsKeyJustPressed(ebiten.KeyQ),
		ToggleMode: inpututil.IsKeyJustPressed(ebiten.KeyM),
	}
	if g.session.Step(ctrl) {
		g.session.Draw(g.canvas)
		g.dirty = true
	}

	if !g.session.Running() {
		g.logger.Info("session over", "score", g.session.Score(), "bomb", g.session.GameOver())
		g.overSince = time.Now()
		g.session.DrawGameOver(g.canvas)
		g.dirty = true
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.dirty {
		g.pixels = g.canvas.RGBA(g.pixels)
		g.frame.WritePixels(g.pixels)
		g.dirty = false
	}
	screen.DrawImage(g.frame, nil)

	for _, l := range g.canvas.Labels() {
		x := int(l.X)
		switch l.Anchor {
		case draw.AnchorCenter:
			x -= runewidth.StringWidth(l.Text) * debugGlyphWidth / 2
		case draw.AnchorRight:
			x -= runewidth.StringWidth(l.Text) * debugGlyphWidth
		}
		ebitenutil.DebugPrintAt(screen, l.Text, x, int(l.Y))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load settings: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "fruitslice",
		Level:           settings.Level(),
	})

	game, err := newGame(settings, logger)
	if err != nil {
		logger.Fatal("failed to start", "err", err)
	}
	logger.Info("session started", "profile", settings.Profile, "modes", settings.Modes)

	ebiten.SetWindowSize(settings.Screen.Width, settings.Screen.Height)
	ebiten.SetWindowTitle("Fruit Slice")
	ebiten.SetFullscreen(settings.Window.Fullscreen)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game error", "err", err)
	}
	logger.Info("final score", "score", game.session.Score())
}

package loop

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/fruitslice/internal/audio"
	appconfig "github.com/tomz197/fruitslice/internal/config"
	"github.com/tomz197/fruitslice/internal/object"
	"github.com/tomz197/fruitslice/internal/tracker"
	"github.com/tomz197/fruitslice/internal/vision"
)

// Clock returns the current time. Sessions read time only through it.
type Clock func() time.Time

// Options wires a session to its collaborators.
type Options struct {
	Settings  appconfig.Settings
	Camera    vision.Camera
	Detectors map[tracker.Mode]vision.Detector
	Cues      audio.Cues  // nil plays nothing
	Logger    *log.Logger // nil discards
	Clock     Clock       // nil uses time.Now
	Rand      *rand.Rand  // nil seeds from the settings
}

// Controls are the player commands for one frame.
type Controls struct {
	Quit       bool // ends the session, like Escape
	ToggleMode bool
}

// Session is one timed round: the objects in play, the effects, the score and
// the cursor. It is driven one frame at a time by Step.
type Session struct {
	settings  appconfig.Settings
	screen    object.Screen
	camera    vision.Camera
	detectors map[tracker.Mode]vision.Detector
	cues      audio.Cues
	logger    *log.Logger
	clock     Clock
	rng       *rand.Rand

	tracker *tracker.Tracker
	spawner *object.Spawner

	fruits   []*object.Fruit
	bursts   []*object.SliceBurst
	splashes []*object.ParticleSplash
	stains   []*object.Stain

	score     int
	start     time.Time
	lastStep  time.Time
	lastSpawn time.Time
	elapsed   float64
	remaining int
	gameOver  bool
	running   bool
	closed    bool
}

// NewSession starts a session at the current clock time.
func NewSession(opts Options) (*Session, error) {
	if opts.Camera == nil {
		return nil, errors.New("new session: no camera")
	}
	tr, err := tracker.FromSettings(opts.Settings)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	for _, m := range tr.Modes() {
		if opts.Detectors[m] == nil {
			return nil, fmt.Errorf("new session: no detector for mode %v", m)
		}
	}

	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Cues == nil {
		opts.Cues = audio.Silent{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(opts.Settings.SessionSeed(func() int64 {
			return opts.Clock().UnixNano()
		})))
	}

	screen := object.Screen{Width: opts.Settings.Screen.Width, Height: opts.Settings.Screen.Height}
	spawner := object.NewSpawner(opts.Rand, screen, opts.Settings.Duration, opts.Settings.BombBase)
	first, last := spawner.Odds(0), spawner.Odds(opts.Settings.Duration)
	opts.Logger.Debug("spawn odds",
		"bomb_start", first.Bomb, "bomb_end", last.Bomb,
		"watermelon_start", first.Watermelon, "watermelon_end", last.Watermelon)

	now := opts.Clock()

	return &Session{
		settings:  opts.Settings,
		screen:    screen,
		camera:    opts.Camera,
		detectors: opts.Detectors,
		cues:      opts.Cues,
		logger:    opts.Logger,
		clock:     opts.Clock,
		rng:       opts.Rand,
		tracker:   tr,
		spawner:   spawner,
		start:     now,
		lastStep:  now,
		lastSpawn: now,
		remaining: max(0, int(opts.Settings.Duration)),
		running:   true,
	}, nil
}

// Running reports whether the session still accepts frames.
func (s *Session) Running() bool { return s.running }

// Score returns the points collected so far.
func (s *Session) Score() int { return s.score }

// Remaining returns the whole seconds left, as shown on the HUD.
func (s *Session) Remaining() int { return s.remaining }

// GameOver reports whether a bomb was sliced.
func (s *Session) GameOver() bool { return s.gameOver }

// Mode returns the active tracking mode.
func (s *Session) Mode() tracker.Mode { return s.tracker.Mode() }

// Cursor returns the smoothed cursor, if one has been seen.
func (s *Session) Cursor() (image.Point, bool) { return s.tracker.Cursor() }

// Fruits returns the objects in play in storage order.
func (s *Session) Fruits() []*object.Fruit { return s.fruits }

// Screen returns the logical play area.
func (s *Session) Screen() object.Screen { return s.screen }

// Close releases the camera, every detector and the audio cues. It is safe to
// call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.running = false

	var errs []error
	if err := s.camera.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close camera: %w", err))
	}
	for m, d := range s.detectors {
		if err := d.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %v detector: %w", m, err))
		}
	}
	if err := s.cues.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close audio: %w", err))
	}
	return errors.Join(errs...)
}

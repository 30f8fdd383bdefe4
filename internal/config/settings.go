package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Environment variables read by Load.
const (
	EnvConfig   = "FRUITSLICE_CONFIG"
	EnvProfile  = "FRUITSLICE_PROFILE"
	EnvSeed     = "FRUITSLICE_SEED"
	EnvDuration = "FRUITSLICE_DURATION"
	EnvLogLevel = "FRUITSLICE_LOG_LEVEL"
	EnvLogFile  = "FRUITSLICE_LOG_FILE"
)

// Profile names.
const (
	ProfileClassic = "classic"
	ProfileDual    = "dual"
)

// Tracking modes accepted in Settings.Modes.
const (
	ModeHand = "hand"
	ModeEye  = "eye"
)

// Cursor transforms accepted in Tracking.Transform.
const (
	TransformOffset = "offset"
	TransformScale  = "scale"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid settings")

// Size is a width/height pair in pixels.
type Size struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Tracking configures how one mode maps detections to the cursor.
// Sensitivity is the scale factor when Transform is "scale".
type Tracking struct {
	Transform   string  `toml:"transform"`
	Sensitivity float64 `toml:"sensitivity"`
	Smoothing   float64 `toml:"smoothing"`
}

// Detector configures the bright spot detector.
type Detector struct {
	Threshold uint8 `toml:"threshold"`
	MinArea   int   `toml:"min_area"`
}

// Audio points at the cue assets.
type Audio struct {
	Enabled   bool   `toml:"enabled"`
	Slice     string `toml:"slice"`
	Explosion string `toml:"explosion"`
}

// Window configures the ebiten frontend.
type Window struct {
	Fullscreen bool `toml:"fullscreen"`
}

// Settings is everything a session needs to start.
type Settings struct {
	Profile  string   `toml:"-"`
	Duration float64  `toml:"duration"`
	Seed     int64    `toml:"seed"`
	Modes    []string `toml:"modes"`
	BombBase float64  `toml:"bomb_base"`

	Screen   Size     `toml:"screen"`
	Camera   Size     `toml:"camera"`
	Hand     Tracking `toml:"hand"`
	Eye      Tracking `toml:"eye"`
	Detector Detector `toml:"detector"`
	Audio    Audio    `toml:"audio"`
	Window   Window   `toml:"window"`

	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

func base() Settings {
	return Settings{
		Duration: 60,
		Screen:   Size{Width: 1280, Height: 720},
		Camera:   Size{Width: 640, Height: 480},
		Detector: Detector{Threshold: 200, MinArea: 4},
		Audio: Audio{
			Enabled:   true,
			Slice:     "slice.mp3",
			Explosion: "explosion.mp3",
		},
		Window:   Window{Fullscreen: true},
		LogLevel: "info",
		LogFile:  "fruitslice.log",
	}
}

// Classic is the single-mode hand game.
func Classic() Settings {
	s := base()
	s.Profile = ProfileClassic
	s.Modes = []string{ModeHand}
	s.BombBase = 0.1
	s.Hand = Tracking{Transform: TransformScale, Sensitivity: 1.2, Smoothing: 0.8}
	s.Eye = Tracking{Transform: TransformOffset, Sensitivity: 3.5, Smoothing: 0.5}
	return s
}

// Dual is the hand and eye game with a mode toggle.
func Dual() Settings {
	s := base()
	s.Profile = ProfileDual
	s.Modes = []string{ModeHand, ModeEye}
	s.BombBase = 0.2
	s.Hand = Tracking{Transform: TransformOffset, Sensitivity: 1.45, Smoothing: 0.5}
	s.Eye = Tracking{Transform: TransformOffset, Sensitivity: 3.5, Smoothing: 0.5}
	return s
}

// ForProfile returns the defaults for a named profile.
func ForProfile(name string) (Settings, error) {
	switch name {
	case ProfileClassic:
		return Classic(), nil
	case ProfileDual, "":
		return Dual(), nil
	default:
		return Settings{}, fmt.Errorf("%w: unknown profile %q", ErrInvalid, name)
	}
}

// Load builds settings from the selected profile, the optional TOML file and
// environment overrides, in that order, and validates the result.
func Load() (Settings, error) {
	s, err := ForProfile(GetEnv(EnvProfile, ProfileDual))
	if err != nil {
		return Settings{}, err
	}

	if path := GetEnv(EnvConfig, ""); path != "" {
		if err := s.DecodeFile(path); err != nil {
			return Settings{}, err
		}
	}

	if err := s.applyEnv(); err != nil {
		return Settings{}, err
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// DecodeFile overlays the TOML file at path onto s. Keys missing from the
// file keep their current values.
func (s *Settings) DecodeFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	md, err := toml.DecodeFile(path, s)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %q in %s", ErrInvalid, undecoded[0].String(), path)
	}
	return nil
}

func (s *Settings) applyEnv() error {
	var err error
	if s.Seed, err = GetEnvInt64(EnvSeed, s.Seed); err != nil {
		return err
	}
	if s.Duration, err = GetEnvFloat(EnvDuration, s.Duration); err != nil {
		return err
	}
	if v := GetEnv(EnvLogLevel, ""); v != "" {
		s.LogLevel = v
	}
	if v := GetEnv(EnvLogFile, ""); v != "" {
		s.LogFile = v
	}
	return nil
}

// Validate reports the first setting that cannot run a session.
func (s Settings) Validate() error {
	if !finite(s.Duration) || s.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %v", ErrInvalid, s.Duration)
	}
	if len(s.Modes) == 0 {
		return fmt.Errorf("%w: at least one mode is required", ErrInvalid)
	}
	seen := make(map[string]bool, len(s.Modes))
	for _, m := range s.Modes {
		if m != ModeHand && m != ModeEye {
			return fmt.Errorf("%w: unknown mode %q", ErrInvalid, m)
		}
		if seen[m] {
			return fmt.Errorf("%w: mode %q listed twice", ErrInvalid, m)
		}
		seen[m] = true
	}
	if !finite(s.BombBase) || s.BombBase < 0 || s.BombBase > 1 {
		return fmt.Errorf("%w: bomb_base must be within [0, 1], got %v", ErrInvalid, s.BombBase)
	}
	if s.Screen.Width < 200 || s.Screen.Height < 200 {
		return fmt.Errorf("%w: screen must be at least 200x200, got %dx%d", ErrInvalid, s.Screen.Width, s.Screen.Height)
	}
	if s.Camera.Width <= 0 || s.Camera.Height <= 0 {
		return fmt.Errorf("%w: camera size must be positive, got %dx%d", ErrInvalid, s.Camera.Width, s.Camera.Height)
	}
	if err := s.Hand.validate(ModeHand); err != nil {
		return err
	}
	if err := s.Eye.validate(ModeEye); err != nil {
		return err
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	return nil
}

func (t Tracking) validate(name string) error {
	if t.Transform != TransformOffset && t.Transform != TransformScale {
		return fmt.Errorf("%w: %s.transform %q is not offset or scale", ErrInvalid, name, t.Transform)
	}
	if !finite(t.Sensitivity) || t.Sensitivity <= 0 {
		return fmt.Errorf("%w: %s.sensitivity must be positive, got %v", ErrInvalid, name, t.Sensitivity)
	}
	if !finite(t.Smoothing) || t.Smoothing < 0 || t.Smoothing >= 1 {
		return fmt.Errorf("%w: %s.smoothing must be within [0, 1), got %v", ErrInvalid, name, t.Smoothing)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Level returns the parsed log level, falling back to info.
func (s Settings) Level() log.Level {
	lvl, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// SessionSeed returns the configured seed, or one derived from now when unset.
func (s Settings) SessionSeed(now func() int64) int64 {
	if s.Seed != 0 {
		return s.Seed
	}
	return now()
}

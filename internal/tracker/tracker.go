// Package tracker turns raw detections from a camera frame into a smoothed
// cursor position on the screen.
package tracker

import (
	"fmt"
	"image"

	"github.com/tomz197/fruitslice/internal/config"
)

// Mode selects which body feature drives the cursor.
type Mode int

const (
	Hand Mode = iota
	Eye
)

func (m Mode) String() string {
	switch m {
	case Hand:
		return "HAND"
	case Eye:
		return "EYE"
	default:
		return "UNKNOWN"
	}
}

// ParseMode maps a settings mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case config.ModeHand:
		return Hand, nil
	case config.ModeEye:
		return Eye, nil
	default:
		return 0, fmt.Errorf("unknown tracking mode %q", name)
	}
}

// Transform maps a detection in frame pixels to screen pixels.
type Transform interface {
	Apply(p image.Point, frame, screen image.Point) image.Point
}

// Offset amplifies the distance from the frame centre and re-centres it on
// the screen.
type Offset struct {
	Sensitivity float64
}

func (o Offset) Apply(p image.Point, frame, screen image.Point) image.Point {
	dx := float64(p.X) - float64(frame.X)/2
	dy := float64(p.Y) - float64(frame.Y)/2
	return image.Point{
		X: int(float64(screen.X)/2 + dx*o.Sensitivity),
		Y: int(float64(screen.Y)/2 + dy*o.Sensitivity),
	}
}

// Scale stretches the detection about the frame centre, then maps the frame
// onto the screen proportionally.
type Scale struct {
	Factor float64
}

func (s Scale) Apply(p image.Point, frame, screen image.Point) image.Point {
	cx, cy := float64(frame.X)/2, float64(frame.Y)/2
	x := (float64(p.X)-cx)*s.Factor + cx
	y := (float64(p.Y)-cy)*s.Factor + cy
	return image.Point{
		X: int(x * float64(screen.X) / float64(frame.X)),
		Y: int(y * float64(screen.Y) / float64(frame.Y)),
	}
}

// Profile is the per-mode cursor behaviour.
type Profile struct {
	Transform Transform
	Smoothing float64 // weight kept from the previous cursor, in [0, 1)
}

// ProfileFromSettings builds a Profile from one mode's settings.
func ProfileFromSettings(t config.Tracking) (Profile, error) {
	var tr Transform
	switch t.Transform {
	case config.TransformOffset:
		tr = Offset{Sensitivity: t.Sensitivity}
	case config.TransformScale:
		tr = Scale{Factor: t.Sensitivity}
	default:
		return Profile{}, fmt.Errorf("unknown transform %q", t.Transform)
	}
	return Profile{Transform: tr, Smoothing: t.Smoothing}, nil
}

// Tracker holds the current mode and the smoothed cursor.
type Tracker struct {
	modes    []Mode
	profiles map[Mode]Profile
	current  int

	cursor    image.Point
	hasCursor bool
}

// New creates a tracker over the enabled modes; the first one is active.
func New(modes []Mode, profiles map[Mode]Profile) (*Tracker, error) {
	if len(modes) == 0 {
		return nil, fmt.Errorf("no tracking modes enabled")
	}
	for _, m := range modes {
		if _, ok := profiles[m]; !ok {
			return nil, fmt.Errorf("no profile for mode %v", m)
		}
	}
	return &Tracker{
		modes:    modes,
		profiles: profiles,
	}, nil
}

// FromSettings creates a tracker for the modes and profiles in s.
func FromSettings(s config.Settings) (*Tracker, error) {
	modes := make([]Mode, 0, len(s.Modes))
	for _, name := range s.Modes {
		m, err := ParseMode(name)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}

	profiles := make(map[Mode]Profile, 2)
	for m, t := range map[Mode]config.Tracking{Hand: s.Hand, Eye: s.Eye} {
		p, err := ProfileFromSettings(t)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", m, err)
		}
		profiles[m] = p
	}
	return New(modes, profiles)
}

// Mode returns the active mode.
func (t *Tracker) Mode() Mode {
	return t.modes[t.current]
}

// Modes returns the enabled modes in toggle order.
func (t *Tracker) Modes() []Mode {
	return t.modes
}

// Toggle switches to the next enabled mode and forgets the cursor.
// With a single mode it does nothing.
func (t *Tracker) Toggle() {
	if len(t.modes) < 2 {
		return
	}
	t.current = (t.current + 1) % len(t.modes)
	t.Reset()
}

// Reset forgets the cursor.
func (t *Tracker) Reset() {
	t.cursor = image.Point{}
	t.hasCursor = false
}

// Observe feeds one frame's detection. Without a detection the cursor stays
// where it was.
func (t *Tracker) Observe(det image.Point, ok bool, frame, screen image.Point) {
	if !ok {
		return
	}
	p := t.profiles[t.Mode()]
	target := p.Transform.Apply(det, frame, screen)

	if !t.hasCursor {
		t.cursor = target
		t.hasCursor = true
		return
	}
	a := p.Smoothing
	t.cursor = image.Point{
		X: int(float64(t.cursor.X)*a + float64(target.X)*(1-a)),
		Y: int(float64(t.cursor.Y)*a + float64(target.Y)*(1-a)),
	}
}

// Cursor returns the smoothed cursor and whether one exists yet.
func (t *Tracker) Cursor() (image.Point, bool) {
	return t.cursor, t.hasCursor
}

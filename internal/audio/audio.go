// Package audio plays the one-shot slice and explosion cues.
package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/tomz197/fruitslice/internal/config"
)

const (
	sampleRate      = beep.SampleRate(44100)
	resampleQuality = 4
)

// Cues are fire-and-forget sound effects. Calls never block the frame.
type Cues interface {
	Slice()
	Explosion()
	Close() error
}

// Silent plays nothing.
type Silent struct{}

func (Silent) Slice()       {}
func (Silent) Explosion()   {}
func (Silent) Close() error { return nil }

// Player mixes decoded cues into the system speaker.
type Player struct {
	mixer     *beep.Mixer
	slice     *beep.Buffer
	explosion *beep.Buffer
}

// Open loads both cues and starts the speaker. Any failure is logged and
// yields Silent, since the game runs fine without sound.
func Open(s config.Audio, logger *log.Logger) Cues {
	if !s.Enabled {
		logger.Info("audio disabled")
		return Silent{}
	}

	slice, err := loadBuffer(s.Slice, sampleRate)
	if err != nil {
		logger.Warn("slice cue unavailable, audio off", "path", s.Slice, "err", err)
		return Silent{}
	}
	explosion, err := loadBuffer(s.Explosion, sampleRate)
	if err != nil {
		logger.Warn("explosion cue unavailable, audio off", "path", s.Explosion, "err", err)
		return Silent{}
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		logger.Warn("no audio device, audio off", "err", err)
		return Silent{}
	}

	p := &Player{
		mixer:     &beep.Mixer{},
		slice:     slice,
		explosion: explosion,
	}
	speaker.Play(p.mixer)
	logger.Debug("audio ready", "slice", s.Slice, "explosion", s.Explosion)
	return p
}

func (p *Player) Slice()     { p.play(p.slice) }
func (p *Player) Explosion() { p.play(p.explosion) }

func (p *Player) play(b *beep.Buffer) {
	speaker.Lock()
	p.mixer.Add(b.Streamer(0, b.Len()))
	speaker.Unlock()
}

// Close silences the mixer and releases the speaker.
func (p *Player) Close() error {
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	return nil
}

// loadBuffer decodes an mp3 or wav file, chosen by extension, into memory at
// the given sample rate.
func loadBuffer(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	var s beep.Streamer = stream
	if format.SampleRate != rate {
		s = beep.Resample(resampleQuality, format.SampleRate, rate, stream)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buf, nil
}

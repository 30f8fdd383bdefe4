package loop

import (
	"image"

	"github.com/tomz197/fruitslice/internal/object"
)

// Step runs one frame: controls, the end-of-round check, one camera frame,
// tracking, spawning, physics, slicing and effects. It reports whether the
// frame advanced and should be drawn. A frame whose camera read fails is
// skipped entirely; its time is not made up later.
func (s *Session) Step(ctrl Controls) bool {
	if !s.running {
		return false
	}

	now := s.clock()
	dt := now.Sub(s.lastStep).Seconds()
	s.lastStep = now
	s.elapsed = now.Sub(s.start).Seconds()
	s.remaining = max(0, int(s.settings.Duration-s.elapsed))

	// ===== CONTROLS =====
	if ctrl.Quit {
		s.logger.Info("session ended by player", "score", s.score)
		s.running = false
		return false
	}
	if ctrl.ToggleMode {
		s.tracker.Toggle()
		s.logger.Debug("tracking mode", "mode", s.tracker.Mode())
	}

	if s.gameOver || s.remaining <= 0 {
		s.running = false
		return false
	}

	// ===== TRACKING =====
	frame, err := s.camera.Read()
	if err != nil {
		s.logger.Debug("frame skipped", "err", err)
		return false
	}
	mode := s.tracker.Mode()
	p, ok := s.detectors[mode].Detect(frame)
	s.tracker.Observe(p, ok, frame.Bounds().Size(), image.Pt(s.screen.Width, s.screen.Height))

	// ===== UPDATE =====
	if now.Sub(s.lastSpawn).Seconds() > s.spawner.Interval(s.elapsed) {
		s.fruits = append(s.fruits, s.spawner.Spawn(s.elapsed))
		s.lastSpawn = now
	}
	s.updateFruits(dt)
	s.checkSlices()
	s.updateEffects(dt)

	return true
}

// updateFruits moves every object and drops the ones that fell out of view.
func (s *Session) updateFruits(dt float64) {
	kept := s.fruits[:0]
	for _, f := range s.fruits {
		f.Update(dt)
		if !f.Gone(s.screen) {
			kept = append(kept, f)
		}
	}
	clear(s.fruits[len(kept):])
	s.fruits = kept
}

// updateEffects ticks every effect list and drops finished effects.
func (s *Session) updateEffects(dt float64) {
	s.bursts = object.TickEffects(s.bursts, dt)
	s.splashes = object.TickEffects(s.splashes, dt)
	s.stains = object.TickEffects(s.stains, dt)
}

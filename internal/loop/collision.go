package loop

import (
	"slices"

	"github.com/tomz197/fruitslice/internal/loop/config"
	"github.com/tomz197/fruitslice/internal/object"
)

// checkSlices resolves the cursor against every object in storage order.
// A sliced object is removed at once so it cannot be hit twice. The first
// bomb ends the round and stops the scan.
func (s *Session) checkSlices() {
	cursor, ok := s.tracker.Cursor()
	if !ok {
		return
	}
	cx, cy := float64(cursor.X), float64(cursor.Y)

	for i := 0; i < len(s.fruits); {
		f := s.fruits[i]
		if !f.Hit(cx, cy) {
			i++
			continue
		}
		s.fruits = slices.Delete(s.fruits, i, i+1)

		x, y := float64(int(f.X)), float64(int(f.Y))
		juice := f.JuiceColor()
		s.bursts = append(s.bursts, object.NewSliceBurst(x, y, juice))

		if f.Kind() == object.KindBomb {
			s.cues.Explosion()
			s.gameOver = true
			s.logger.Warn("bomb sliced, game over", "score", s.score)
			return
		}

		s.splashes = append(s.splashes, object.NewParticleSplash(s.rng, x, y, juice))
		size := config.StainMinSize + s.rng.Intn(config.StainMaxSize-config.StainMinSize+1)
		s.stains = append(s.stains, object.NewStain(s.rng, x, y, juice, size))
		s.cues.Slice()
		s.score += f.Points()
		s.logger.Info("sliced", "kind", f.Kind(), "score", s.score)
	}
}

package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/fruitslice/internal/physics"
)

// Type selection thresholds for a single uniform draw.
const (
	appleOdds      = 0.6
	bananaOdds     = 0.15
	watermelonBase = 0.15
	bombRamp       = 0.1 // bomb odds added over the full session
)

// Spawn interval shrinks linearly from spawnIntervalStart to spawnIntervalMin.
const (
	spawnIntervalStart = 2.0
	spawnIntervalDrop  = 1.5
	spawnIntervalMin   = 0.5
)

// Odds holds the probability of each kind for one draw.
type Odds struct {
	Apple      float64
	Banana     float64
	Watermelon float64
	Bomb       float64
}

// Spawner throws new fruit in from below the screen. Bombs get more likely as
// the session goes on.
type Spawner struct {
	rng      *rand.Rand
	screen   Screen
	duration float64 // session length in seconds
	bombBase float64 // bomb probability at the start of the session
}

// NewSpawner creates a spawner for a session of the given length in seconds.
func NewSpawner(rng *rand.Rand, screen Screen, duration, bombBase float64) *Spawner {
	return &Spawner{
		rng:      rng,
		screen:   screen,
		duration: duration,
		bombBase: bombBase,
	}
}

// BombProbability is the nominal bomb chance after elapsed seconds.
func (s *Spawner) BombProbability(elapsed float64) float64 {
	return s.bombBase + bombRamp*(elapsed/s.duration)
}

// watermelonProbability shrinks as bombs become more likely and never goes negative.
func (s *Spawner) watermelonProbability(elapsed float64) float64 {
	return math.Max(0, watermelonBase-(s.BombProbability(elapsed)-0.1))
}

// Odds returns the effective probability of each kind after elapsed seconds.
// Bombs take whatever the other kinds leave.
func (s *Spawner) Odds(elapsed float64) Odds {
	wm := s.watermelonProbability(elapsed)
	return Odds{
		Apple:      appleOdds,
		Banana:     bananaOdds,
		Watermelon: wm,
		Bomb:       1 - appleOdds - bananaOdds - wm,
	}
}

// Pick maps a uniform draw r in [0, 1) to a kind.
func (s *Spawner) Pick(r, elapsed float64) Kind {
	switch {
	case r < appleOdds:
		return KindApple
	case r < appleOdds+bananaOdds:
		return KindBanana
	case r < appleOdds+bananaOdds+s.watermelonProbability(elapsed):
		return KindWatermelon
	default:
		return KindBomb
	}
}

// Interval is the gap between spawns after elapsed seconds.
func (s *Spawner) Interval(elapsed float64) float64 {
	return math.Max(spawnIntervalStart-(elapsed/s.duration)*spawnIntervalDrop, spawnIntervalMin)
}

// Spawn creates one fruit just below the bottom edge moving upward.
func (s *Spawner) Spawn(elapsed float64) *Fruit {
	x := 50 + s.rng.Intn(max(s.screen.Width-99, 1))
	body := physics.Body{
		X:  float64(x),
		Y:  float64(s.screen.Height + 30),
		VX: -100 + s.rng.Float64()*200,
		VY: -700 + s.rng.Float64()*300,
	}
	kind := s.Pick(s.rng.Float64(), elapsed)
	return NewFruit(s.rng, kind, body)
}

package object

import (
	"image"
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Effect defaults.
const (
	BurstDuration  = 0.3
	BurstMaxRadius = 50.0

	SplashParticles = 20
	SplashDuration  = 0.5

	StainDuration     = 10.0
	StainIrregularity = 0.2
	StainLayers       = 5
)

// SliceBurst is a disc that grows from nothing to its maximum radius while fading out.
type SliceBurst struct {
	X, Y      float64
	Color     colorful.Color
	Duration  float64
	Timer     float64
	MaxRadius float64
}

// NewSliceBurst creates a burst with the default duration and radius.
func NewSliceBurst(x, y float64, col colorful.Color) *SliceBurst {
	return &SliceBurst{
		X:         x,
		Y:         y,
		Color:     col,
		Duration:  BurstDuration,
		Timer:     BurstDuration,
		MaxRadius: BurstMaxRadius,
	}
}

func (b *SliceBurst) Update(dt float64) {
	b.Timer -= dt
}

func (b *SliceBurst) Finished() bool {
	return b.Timer <= 0
}

// Progress runs from 0 at creation to 1 when the timer expires.
func (b *SliceBurst) Progress() float64 {
	return 1 - b.Timer/b.Duration
}

// Radius is the current disc radius in pixels.
func (b *SliceBurst) Radius() int {
	return int(b.Progress() * b.MaxRadius)
}

// Alpha is the current opacity in [0, 255].
func (b *SliceBurst) Alpha() int {
	return max(255-int(b.Progress()*255), 0)
}

func (b *SliceBurst) Draw(ctx DrawContext) {
	r := b.Radius()
	if r <= 0 {
		return
	}
	ctx.Canvas.FillCircle(b.X, b.Y, float64(r), b.Color, float64(b.Alpha())/255)
}

// Particle is one droplet of a splash.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

// ParticleSplash throws droplets outward in random directions; they shrink
// every tick and the whole splash fades with the remaining time.
type ParticleSplash struct {
	Color     colorful.Color
	Duration  float64
	Timer     float64
	Particles []Particle
}

// NewParticleSplash creates the default splash of SplashParticles droplets at (x, y).
func NewParticleSplash(rng *rand.Rand, x, y float64, col colorful.Color) *ParticleSplash {
	particles := make([]Particle, SplashParticles)
	for i := range particles {
		angle := rng.Float64() * 2 * math.Pi
		speed := 50 + rng.Float64()*150
		particles[i] = Particle{
			X:      x,
			Y:      y,
			VX:     speed * math.Cos(angle),
			VY:     speed * math.Sin(angle),
			Radius: float64(2 + rng.Intn(4)),
		}
	}
	return &ParticleSplash{
		Color:     col,
		Duration:  SplashDuration,
		Timer:     SplashDuration,
		Particles: particles,
	}
}

// Update moves every droplet and shrinks it by a fixed step per tick.
func (s *ParticleSplash) Update(dt float64) {
	s.Timer -= dt
	for i := range s.Particles {
		p := &s.Particles[i]
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Radius = math.Max(p.Radius-0.1, 0)
	}
}

func (s *ParticleSplash) Finished() bool {
	return s.Timer <= 0
}

// Alpha is the current opacity, proportional to the remaining time.
func (s *ParticleSplash) Alpha() int {
	return int(255 * (s.Timer / s.Duration))
}

func (s *ParticleSplash) Draw(ctx DrawContext) {
	alpha := float64(max(s.Alpha(), 0)) / 255
	for _, p := range s.Particles {
		r := int(p.Radius)
		if r <= 0 {
			continue
		}
		ctx.Canvas.FillCircle(p.X, p.Y, float64(r), s.Color, alpha)
	}
}

// Stain is a long-lived translucent splash sprite left on the board.
type Stain struct {
	X, Y     float64
	Color    colorful.Color
	Size     int
	Duration float64
	Timer    float64
	Image    *image.NRGBA
}

// NewStain generates a fresh splash sprite of the given size for the stain.
func NewStain(rng *rand.Rand, x, y float64, col colorful.Color, size int) *Stain {
	return &Stain{
		X:        x,
		Y:        y,
		Color:    col,
		Size:     size,
		Duration: StainDuration,
		Timer:    StainDuration,
		Image:    GenerateSplash(rng, size, col, StainIrregularity, StainLayers),
	}
}

func (s *Stain) Update(dt float64) {
	s.Timer -= dt
}

func (s *Stain) Finished() bool {
	return s.Timer <= 0
}

// Alpha is the sprite-wide opacity, proportional to the remaining time.
func (s *Stain) Alpha() int {
	return int(255 * (s.Timer / s.Duration))
}

func (s *Stain) Draw(ctx DrawContext) {
	alpha := s.Alpha()
	if alpha <= 0 {
		return
	}
	ctx.Canvas.DrawSprite(s.Image, s.X, s.Y, float64(alpha)/255)
}

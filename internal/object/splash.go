package object

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/fruitslice/internal/draw"
)

const (
	splashPadding    = 1.5
	splashSpatter    = 15
	splashLayerAlpha = 150.0
)

// Chaikin smooths a closed polygon by corner cutting: every edge is replaced by
// the points at 25% and 75% along it. Each iteration doubles the point count.
func Chaikin(points []draw.Point, iterations int) []draw.Point {
	for it := 0; it < iterations; it++ {
		n := len(points)
		out := make([]draw.Point, 0, n*2)
		for i := 0; i < n; i++ {
			p0 := points[i]
			p1 := points[(i+1)%n]
			out = append(out,
				draw.Point{X: 0.75*p0.X + 0.25*p1.X, Y: 0.75*p0.Y + 0.25*p1.Y},
				draw.Point{X: 0.25*p0.X + 0.75*p1.X, Y: 0.25*p0.Y + 0.75*p1.Y},
			)
		}
		points = out
	}
	return points
}

// GenerateSplash builds an irregular translucent splash sprite.
//
// The canvas is padded to size*1.5. A jittered ring of 8-12 points is smoothed
// twice and filled layers times, each copy scaled towards the centre with a
// lower alpha. Fills overwrite rather than blend, so the centre ends up lighter
// than the rim. Fifteen faint spatter dots are then dropped on or beyond the rim,
// where the canvas edge may clip them.
func GenerateSplash(rng *rand.Rand, size int, base colorful.Color, irregularity float64, layers int) *image.NRGBA {
	side := int(float64(size) * splashPadding)
	if side < 1 {
		side = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	center := float64(side) / 2
	r8, g8, b8 := base.Clamped().RGB255()

	n := 8 + rng.Intn(5)
	ring := make([]draw.Point, n)
	for i := range ring {
		angle := 2*math.Pi*float64(i)/float64(n) + (rng.Float64()*2-1)*irregularity
		r := center * (0.7 + rng.Float64()*0.3)
		ring[i] = draw.Point{X: center + r*math.Cos(angle), Y: center + r*math.Sin(angle)}
	}
	smooth := Chaikin(ring, 2)

	var buf []float64
	scaled := make([]draw.Point, len(smooth))
	for layer := 0; layer < layers; layer++ {
		frac := float64(layer) / float64(layers)
		scale := 1 - frac*0.5
		for i, p := range smooth {
			scaled[i] = draw.Point{X: center + (p.X-center)*scale, Y: center + (p.Y-center)*scale}
		}
		c := color.NRGBA{R: r8, G: g8, B: b8, A: uint8(splashLayerAlpha * (1 - frac))}
		buf = draw.ScanPolygon(scaled, buf, func(x, y int) {
			if (image.Point{X: x, Y: y}).In(img.Rect) {
				img.SetNRGBA(x, y, c)
			}
		})
	}

	for i := 0; i < splashSpatter; i++ {
		angle := rng.Float64() * 2 * math.Pi
		dist := center * (1 + rng.Float64()*0.4)
		radius := 2 + rng.Intn(4)
		alpha := 50 + rng.Intn(51)
		cx := float64(int(center + dist*math.Cos(angle)))
		cy := float64(int(center + dist*math.Sin(angle)))
		fillDisc(img, cx, cy, float64(radius), color.NRGBA{R: r8, G: g8, B: b8, A: uint8(alpha)})
	}

	return img
}

// fillDisc overwrites every pixel whose centre lies within r of (cx, cy).
func fillDisc(img *image.NRGBA, cx, cy, r float64, c color.NRGBA) {
	b := img.Bounds()
	for y := int(cy - r - 1); y <= int(cy+r+1); y++ {
		for x := int(cx - r - 1); x <= int(cx+r+1); x++ {
			if !(image.Point{X: x, Y: y}).In(b) {
				continue
			}
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

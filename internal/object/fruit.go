package object

import (
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/fruitslice/internal/draw"
	"github.com/tomz197/fruitslice/internal/physics"
)

// CullMargin is how far below the bottom edge a fruit may fall before it is dropped.
const CullMargin = 50

// Kind identifies the variant of a thrown object.
type Kind int

const (
	KindApple Kind = iota
	KindBanana
	KindWatermelon
	KindBomb
)

func (k Kind) String() string {
	switch k {
	case KindApple:
		return "apple"
	case KindBanana:
		return "banana"
	case KindWatermelon:
		return "watermelon"
	case KindBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// Palette used by fruit bodies and juice.
var (
	colorRed       = draw.RGB(255, 0, 0)
	colorYellow    = draw.RGB(255, 255, 0)
	colorGreen     = draw.RGB(0, 255, 0)
	colorBanana    = draw.RGB(255, 215, 0)
	colorBananaLit = draw.RGB(255, 223, 100)
	colorBananaTip = draw.RGB(120, 100, 0)
	colorStem      = draw.RGB(139, 69, 19)
	colorLeaf      = draw.RGB(0, 128, 0)
	colorRind      = draw.RGB(0, 128, 0)
	colorSeed      = draw.RGB(0, 0, 0)
	colorBomb      = draw.RGB(30, 30, 30)
	colorFuse      = draw.RGB(255, 140, 0)
	colorSpark     = draw.RGB(255, 255, 0)
)

// Variant is the closed set of object types. Each variant carries only its
// own cosmetic fields.
type Variant interface {
	Kind() Kind
	sealed()
}

// Apple is a red fruit with a stem and a leaf.
type Apple struct {
	Color colorful.Color
	Stem  colorful.Color
	Leaf  colorful.Color
}

// Banana is drawn as two nested arcs with dark tips.
type Banana struct {
	Color colorful.Color
}

// Watermelon has a rind, red flesh and seeds at offsets scaled with the radius.
type Watermelon struct {
	Outer colorful.Color
	Inner colorful.Color
	Seed  colorful.Color
	Seeds []draw.Point
}

// Bomb ends the game when sliced.
type Bomb struct {
	Color colorful.Color
	Fuse  colorful.Color
}

func (Apple) Kind() Kind      { return KindApple }
func (Banana) Kind() Kind     { return KindBanana }
func (Watermelon) Kind() Kind { return KindWatermelon }
func (Bomb) Kind() Kind       { return KindBomb }

func (Apple) sealed()      {}
func (Banana) sealed()     {}
func (Watermelon) sealed() {}
func (Bomb) sealed()       {}

// watermelonSeeds are seed offsets before scaling.
var watermelonSeeds = []draw.Point{
	{X: -10, Y: -10}, {X: 10, Y: -10}, {X: -10, Y: 10}, {X: 10, Y: 10},
	{X: 0, Y: -15}, {X: 0, Y: 15}, {X: -15, Y: 0}, {X: 15, Y: 0},
}

// Fruit is a thrown object. Radius is fixed at creation; only physics moves it.
type Fruit struct {
	physics.Body
	Radius  int
	Variant Variant
}

// NewFruit creates a fruit of the given kind with a radius of the kind's base
// radius scaled by a random factor in [1.5, 1.8).
func NewFruit(rng *rand.Rand, kind Kind, body physics.Body) *Fruit {
	scale := 1.5 + rng.Float64()*0.3

	base := 20.0
	var v Variant
	switch kind {
	case KindBanana:
		v = Banana{Color: colorBanana}
	case KindWatermelon:
		base = 30
		seeds := make([]draw.Point, len(watermelonSeeds))
		for i, s := range watermelonSeeds {
			seeds[i] = draw.Point{X: float64(int(s.X * scale)), Y: float64(int(s.Y * scale))}
		}
		v = Watermelon{Outer: colorRind, Inner: colorRed, Seed: colorSeed, Seeds: seeds}
	case KindBomb:
		v = Bomb{Color: colorBomb, Fuse: colorFuse}
	default:
		v = Apple{Color: colorRed, Stem: colorStem, Leaf: colorLeaf}
	}

	return &Fruit{
		Body:    body,
		Radius:  int(base * scale),
		Variant: v,
	}
}

// Kind returns the variant's kind.
func (f *Fruit) Kind() Kind {
	return f.Variant.Kind()
}

// Update integrates the fruit's motion under gravity.
func (f *Fruit) Update(dt float64) {
	f.Body.Step(dt, physics.Gravity)
}

// Gone reports whether the fruit has fallen out of view.
func (f *Fruit) Gone(screen Screen) bool {
	return f.Y > float64(screen.Height+CullMargin)
}

// Hit reports whether the point is strictly inside the fruit.
func (f *Fruit) Hit(x, y float64) bool {
	return physics.PointInCircle(x, y, f.X, f.Y, float64(f.Radius))
}

// Points returns the score for slicing the fruit. Bombs are worth nothing.
func (f *Fruit) Points() int {
	switch f.Variant.(type) {
	case Apple:
		return 1
	case Banana:
		return 2
	case Watermelon:
		return 3
	default:
		return 0
	}
}

// JuiceColor is the colour of the burst and splash left when sliced.
func (f *Fruit) JuiceColor() colorful.Color {
	switch f.Variant.(type) {
	case Banana:
		return colorYellow
	case Watermelon:
		return colorGreen
	default:
		return colorRed
	}
}

// Draw renders the fruit according to its variant.
func (f *Fruit) Draw(ctx DrawContext) {
	c := ctx.Canvas
	x, y := float64(int(f.X)), float64(int(f.Y))
	r := float64(f.Radius)

	switch v := f.Variant.(type) {
	case Banana:
		c.Arc(x, y, 40, 20, 3.5, 5.9, 8, v.Color)
		c.Arc(x, y-0.5, 35, 17.5, 3.5, 5.9, 6, colorBananaLit)
		c.FillCircle(x-40, y, 5, colorBananaTip, 1)
		c.FillCircle(x+40, y, 5, colorBananaTip, 1)
	case Apple:
		c.FillCircle(x, y, r, v.Color, 1)
		c.Line(draw.Point{X: x, Y: y - r}, draw.Point{X: x, Y: y - r - 10}, 4, v.Stem)
		c.FillPolygon([]draw.Point{
			{X: x, Y: y - r - 10},
			{X: x + 10, Y: y - r - 5},
			{X: x + 5, Y: y - r},
		}, v.Leaf, 1)
	case Watermelon:
		c.FillCircle(x, y, r, v.Outer, 1)
		c.FillCircle(x, y, r-5, v.Inner, 1)
		for _, s := range v.Seeds {
			c.FillCircle(x+s.X, y+s.Y, 3, v.Seed, 1)
		}
	case Bomb:
		c.FillCircle(x, y, r, v.Color, 1)
		start := draw.Point{X: x, Y: y - r}
		mid := draw.Point{X: x - 10, Y: y - r - 15}
		end := draw.Point{X: x - 5, Y: y - r - 25}
		c.Line(start, mid, 3, v.Fuse)
		c.Line(mid, end, 3, v.Fuse)
		c.FillCircle(end.X, end.Y, 4, colorSpark, 1)
	}
}

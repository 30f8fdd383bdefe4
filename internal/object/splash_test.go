package object

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/fruitslice/internal/draw"
)

func TestChaikinCutsCorners(t *testing.T) {
	square := []draw.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}

	got := Chaikin(square, 1)
	want := []draw.Point{
		{X: 1, Y: 0}, {X: 3, Y: 0},
		{X: 4, Y: 1}, {X: 4, Y: 3},
		{X: 3, Y: 4}, {X: 1, Y: 4},
		{X: 0, Y: 3}, {X: 0, Y: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}

	if n := len(Chaikin(square, 3)); n != 32 {
		t.Errorf("three iterations gave %d points, want 32", n)
	}
	if n := len(Chaikin(square, 0)); n != 4 {
		t.Errorf("zero iterations gave %d points, want 4", n)
	}
}

func TestGenerateSplashShape(t *testing.T) {
	base := draw.RGB(255, 0, 0)

	for seed := int64(0); seed < 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		img := GenerateSplash(rng, 60, base, StainIrregularity, StainLayers)

		if b := img.Bounds(); b.Dx() != 90 || b.Dy() != 90 {
			t.Fatalf("bounds = %v, want 90x90", b)
		}

		centre := img.NRGBAAt(45, 45)
		if centre.A == 0 || centre.A >= 150 {
			t.Errorf("seed %d: centre alpha = %d, want within (0, 150)", seed, centre.A)
		}
		if centre.R != 255 || centre.G != 0 || centre.B != 0 {
			t.Errorf("seed %d: centre colour = %v, want base colour", seed, centre)
		}

	}
}

func TestGenerateSplashSpatterBeyondRim(t *testing.T) {
	base := draw.RGB(0, 0, 255)

	outside := 0
	for seed := int64(0); seed < 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		img := GenerateSplash(rng, 60, base, StainIrregularity, StainLayers)
		c := float64(img.Bounds().Dx()) / 2

		for y := 0; y < img.Bounds().Dy(); y++ {
			for x := 0; x < img.Bounds().Dx(); x++ {
				a := img.NRGBAAt(x, y).A
				if a == 0 {
					continue
				}
				dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
				if math.Hypot(dx, dy) <= c+1 {
					continue
				}
				outside++
				if a < 50 || a > 100 {
					t.Errorf("seed %d: pixel (%d, %d) beyond the rim has alpha %d, want spatter alpha in [50, 100]", seed, x, y, a)
				}
			}
		}
	}
	if outside == 0 {
		t.Error("no spatter landed beyond the rim")
	}
}

func TestGenerateSplashLayersFadeInward(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	img := GenerateSplash(rng, 80, draw.RGB(0, 255, 0), 0, StainLayers)

	minA, maxA := uint8(255), uint8(0)
	for i := 3; i < len(img.Pix); i += 4 {
		a := img.Pix[i]
		if a == 0 {
			continue
		}
		minA = min(minA, a)
		maxA = max(maxA, a)
	}

	centre := img.Bounds().Dx() / 2
	if got := img.NRGBAAt(centre, centre).A; got != minA {
		t.Errorf("centre alpha = %d, want the faintest alpha %d", got, minA)
	}
	if maxA != uint8(splashLayerAlpha) {
		t.Errorf("outer layer alpha = %d, want %v", maxA, splashLayerAlpha)
	}
}

func TestGenerateSplashTinySize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	img := GenerateSplash(rng, 0, draw.RGB(255, 255, 0), StainIrregularity, StainLayers)
	if b := img.Bounds(); b.Dx() < 1 || b.Dy() < 1 {
		t.Fatalf("bounds = %v, want at least one pixel", b)
	}
}

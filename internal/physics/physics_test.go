package physics

import (
	"math"
	"testing"
)

func TestBodyStepUsesPreUpdateVelocity(t *testing.T) {
	tests := []struct {
		name string
		body Body
		dt   float64
	}{
		{"rising", Body{X: 100, Y: 1110, VX: 50, VY: -600}, 1.0 / 60},
		{"falling", Body{X: 0, Y: 0, VX: -100, VY: 250}, 0.5},
		{"zero dt", Body{X: 3, Y: 4, VX: 5, VY: 6}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.body
			b.Step(tt.dt, Gravity)

			wantX := tt.body.X + tt.body.VX*tt.dt
			wantY := tt.body.Y + tt.body.VY*tt.dt
			wantVY := tt.body.VY + Gravity*tt.dt

			if math.Abs(b.X-wantX) > 1e-9 || math.Abs(b.Y-wantY) > 1e-9 {
				t.Errorf("position = (%v, %v), want (%v, %v)", b.X, b.Y, wantX, wantY)
			}
			if b.VX != tt.body.VX {
				t.Errorf("VX changed: %v -> %v", tt.body.VX, b.VX)
			}
			if math.Abs(b.VY-wantVY) > 1e-9 {
				t.Errorf("VY = %v, want %v", b.VY, wantVY)
			}
		})
	}
}

func TestBodyApexUnderGravity(t *testing.T) {
	b := Body{Y: 0, VY: -600}
	dt := 1.0 / 600
	for i := 0; i < 1200; i++ {
		b.Step(dt, Gravity)
	}
	// After two seconds the vertical velocity has been fully cancelled.
	if math.Abs(b.VY) > 1e-6 {
		t.Errorf("VY after 2s = %v, want 0", b.VY)
	}
	if b.Y > -590 || b.Y < -610 {
		t.Errorf("Y after 2s = %v, want about -600", b.Y)
	}
}

func TestDistanceSquared(t *testing.T) {
	if d := DistanceSquared(1, 1, 4, 5); d != 25 {
		t.Errorf("DistanceSquared = %v, want 25", d)
	}
}

func TestPointInCircleIsStrict(t *testing.T) {
	if PointInCircle(30, 0, 0, 0, 30) {
		t.Error("point on the rim should not be inside")
	}
	if !PointInCircle(29.999, 0, 0, 0, 30) {
		t.Error("point just inside the rim should be inside")
	}
}

// Package physics provides kinematics and distance utilities.
package physics

// Gravity is the constant downward acceleration applied to thrown objects, in px/s².
const Gravity = 300.0

// Body is a point mass with position and velocity in screen space.
// Y grows downward, so negative VY moves the body up.
type Body struct {
	X, Y   float64
	VX, VY float64
}

// Step advances the position by the current velocity, then applies
// the vertical acceleration to the velocity.
func (b *Body) Step(dt, gravity float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt
	b.VY += gravity * dt
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle reports whether a point lies strictly inside the circle.
// A point exactly on the rim is outside.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) < radius*radius
}

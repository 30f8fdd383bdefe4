package draw

import (
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// FillCircle fills a disc of logical radius r centred on (cx, cy).
// Pixels are covered when their centre lies inside the (possibly elliptical,
// after scaling) disc. A disc smaller than a pixel still marks its centre pixel.
func (c *Canvas) FillCircle(cx, cy, r float64, col colorful.Color, alpha float64) {
	if r <= 0 {
		return
	}
	px := cx * c.scaleX
	py := cy * c.scaleY
	rx := r * c.scaleX
	ry := r * c.scaleY

	if rx < 0.5 && ry < 0.5 {
		c.blendPixel(int(math.Floor(px)), int(math.Floor(py)), col, alpha)
		return
	}

	yStart := int(math.Floor(py - ry))
	yEnd := int(math.Ceil(py + ry))
	xStart := int(math.Floor(px - rx))
	xEnd := int(math.Ceil(px + rx))

	for y := yStart; y <= yEnd; y++ {
		dy := (float64(y) + 0.5 - py) / ry
		if dy*dy > 1 {
			continue
		}
		for x := xStart; x <= xEnd; x++ {
			dx := (float64(x) + 0.5 - px) / rx
			if dx*dx+dy*dy <= 1 {
				c.blendPixel(x, y, col, alpha)
			}
		}
	}
}

// FillPolygon fills a polygon given in logical coordinates using a scanline pass.
func (c *Canvas) FillPolygon(points []Point, col colorful.Color, alpha float64) {
	if len(points) < 3 {
		return
	}

	// Reuse or grow scaled points buffer
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	c.intersectionBuf = ScanPolygon(scaled, c.intersectionBuf, func(x, y int) {
		c.blendPixel(x, y, col, alpha)
	})
}

// ScanPolygon calls plot for every pixel whose centre lies inside the polygon.
// points are in pixel space. buf is scratch space that is returned for reuse.
func ScanPolygon(points []Point, buf []float64, plot func(x, y int)) []float64 {
	if len(points) < 3 {
		return buf
	}

	// Find bounding box
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := buf[:0]
		n := len(points)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		buf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i] - 0.5))
			xEnd := int(math.Floor(intersections[i+1] - 0.5))
			for x := xStart; x <= xEnd; x++ {
				plot(x, y)
			}
		}
	}
	return buf
}

// Line draws a segment of the given logical width by stamping discs along it.
func (c *Canvas) Line(p1, p2 Point, width float64, col colorful.Color) {
	dx := (p2.X - p1.X) * c.scaleX
	dy := (p2.Y - p1.Y) * c.scaleY
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps < 1 {
		steps = 1
	}
	r := width / 2
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.FillCircle(p1.X+(p2.X-p1.X)*t, p1.Y+(p2.Y-p1.Y)*t, r, col, 1)
	}
}

// VLine draws a one pixel wide vertical line across the whole canvas.
func (c *Canvas) VLine(x float64, col colorful.Color) {
	px := int(math.Floor(x * c.scaleX))
	for y := 0; y < c.height; y++ {
		c.blendPixel(px, y, col, 1)
	}
}

// Arc draws an elliptical arc inside the box centred on (cx, cy) with radii rx, ry.
// Angles are in radians, counter-clockwise with y pointing up, from start to end.
func (c *Canvas) Arc(cx, cy, rx, ry, start, end, width float64, col colorful.Color) {
	if end < start {
		start, end = end, start
	}
	span := (end - start) * math.Max(rx*c.scaleX, ry*c.scaleY)
	steps := int(math.Ceil(span))
	if steps < 2 {
		steps = 2
	}
	r := width / 2
	for i := 0; i <= steps; i++ {
		a := start + (end-start)*float64(i)/float64(steps)
		c.FillCircle(cx+rx*math.Cos(a), cy-ry*math.Sin(a), r, col, 1)
	}
}

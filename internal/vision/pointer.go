package vision

import (
	"fmt"
	"image"
)

const (
	pointerBackground = 24
	pointerMarker     = 255
	pointerRadius     = 6
)

// Pointer is a position normalised to [0, 1] on each axis of the screen.
type Pointer struct {
	X, Y    float64
	Visible bool
}

// PointerSource reports where the player is pointing. An error means the
// source has gone away.
type PointerSource interface {
	Pointer() (Pointer, error)
}

// PointerFunc adapts a function to PointerSource.
type PointerFunc func() (Pointer, error)

func (f PointerFunc) Pointer() (Pointer, error) { return f() }

// PointerCamera stands in for a webcam. Each frame is a dark grey image with a
// bright marker where the pointer is, captured unmirrored like a real sensor
// and mirrored before it is handed out.
type PointerCamera struct {
	src    PointerSource
	raw    *image.Gray
	frame  *image.Gray
	closed bool
}

// OpenPointerCamera opens a camera of the given frame size over src.
func OpenPointerCamera(src PointerSource, width, height int) (*PointerCamera, error) {
	if src == nil {
		return nil, fmt.Errorf("open pointer camera: no pointer source")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("open pointer camera: bad frame size %dx%d", width, height)
	}
	r := image.Rect(0, 0, width, height)
	return &PointerCamera{
		src:   src,
		raw:   image.NewGray(r),
		frame: image.NewGray(r),
	}, nil
}

// Size returns the frame size.
func (c *PointerCamera) Size() image.Point {
	return c.raw.Bounds().Size()
}

func (c *PointerCamera) Read() (image.Image, error) {
	if c.closed {
		return nil, ErrCameraClosed
	}
	p, err := c.src.Pointer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFrame, err)
	}

	for i := range c.raw.Pix {
		c.raw.Pix[i] = pointerBackground
	}
	if p.Visible {
		size := c.Size()
		// The sensor sees the scene from the front, so the marker lands mirrored.
		x := int((1 - p.X) * float64(size.X))
		y := int(p.Y * float64(size.Y))
		paintDisc(c.raw, x, y, pointerRadius, pointerMarker)
	}

	Mirror(c.frame, c.raw)
	return c.frame, nil
}

func (c *PointerCamera) Close() error {
	c.closed = true
	return nil
}

func paintDisc(img *image.Gray, cx, cy, r int, v uint8) {
	b := img.Bounds()
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > r*r || !(image.Point{X: x, Y: y}).In(b) {
				continue
			}
			img.Pix[img.PixOffset(x, y)] = v
		}
	}
}

package draw

import (
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// RGB builds a colour from 8-bit channels.
func RGB(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Anchor controls how a label is aligned to its position.
type Anchor int

const (
	AnchorLeft Anchor = iota
	AnchorCenter
	AnchorRight
)

// Label is a line of text placed in logical coordinates.
// Frontends render labels on top of the pixels after everything else.
type Label struct {
	X, Y   float64
	Text   string
	Color  colorful.Color
	Anchor Anchor
}

// Canvas is a colour framebuffer with a scale from logical coordinates to pixels.
// Game objects draw in logical units (the configured screen size); the canvas
// maps them onto whatever pixel resolution the frontend provides.
type Canvas struct {
	width  int // Pixel columns
	height int // Pixel rows
	pixels []colorful.Color

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // width / logicalWidth
	scaleY        float64 // height / logicalHeight

	labels []Label

	// Reusable buffers to reduce allocations
	scaledBuf       []Point
	intersectionBuf []float64
}

// NewCanvas creates a canvas with a 1:1 mapping between logical units and pixels.
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to pixels.
func NewScaledCanvas(width, height int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(width, height)
	return c
}

// Resize updates the pixel resolution while keeping the logical size.
func (c *Canvas) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width != c.width || height != c.height {
		c.pixels = make([]colorful.Color, width*height)
		c.width = width
		c.height = height
	}
	c.scaleX = float64(width) / c.logicalWidth
	c.scaleY = float64(height) / c.logicalHeight
}

// Clear fills every pixel with col and drops all labels.
func (c *Canvas) Clear(col colorful.Color) {
	for i := range c.pixels {
		c.pixels[i] = col
	}
	c.labels = c.labels[:0]
}

// At returns the pixel colour at pixel coordinates. Out of range reads are black.
func (c *Canvas) At(x, y int) colorful.Color {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return colorful.Color{}
	}
	return c.pixels[y*c.width+x]
}

// blendPixel composites col over the pixel with the given opacity in [0, 1].
func (c *Canvas) blendPixel(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height || alpha <= 0 {
		return
	}
	i := y*c.width + x
	if alpha >= 1 {
		c.pixels[i] = col
		return
	}
	c.pixels[i] = c.pixels[i].BlendRgb(col, alpha)
}

// DrawSprite composites img centred on the logical point (cx, cy). The sprite is
// measured in logical units; its per-pixel alpha is multiplied by alpha.
func (c *Canvas) DrawSprite(img *image.NRGBA, cx, cy, alpha float64) {
	if img == nil || alpha <= 0 {
		return
	}
	b := img.Bounds()
	left := math.Floor(cx) - float64(b.Dx()/2)
	top := math.Floor(cy) - float64(b.Dy()/2)

	x0 := int(math.Floor(left * c.scaleX))
	x1 := int(math.Ceil((left + float64(b.Dx())) * c.scaleX))
	y0 := int(math.Floor(top * c.scaleY))
	y1 := int(math.Ceil((top + float64(b.Dy())) * c.scaleY))

	for py := y0; py < y1; py++ {
		sy := int(math.Floor((float64(py)+0.5)/c.scaleY - top))
		if sy < 0 || sy >= b.Dy() {
			continue
		}
		for px := x0; px < x1; px++ {
			sx := int(math.Floor((float64(px)+0.5)/c.scaleX - left))
			if sx < 0 || sx >= b.Dx() {
				continue
			}
			p := img.NRGBAAt(b.Min.X+sx, b.Min.Y+sy)
			if p.A == 0 {
				continue
			}
			c.blendPixel(px, py, RGB(p.R, p.G, p.B), float64(p.A)/255*alpha)
		}
	}
}

// Label queues text at the logical point (x, y).
func (c *Canvas) Label(x, y float64, text string, col colorful.Color, anchor Anchor) {
	c.labels = append(c.labels, Label{X: x, Y: y, Text: text, Color: col, Anchor: anchor})
}

// Labels returns the text queued since the last Clear.
func (c *Canvas) Labels() []Label {
	return c.labels
}

// RGBA writes the framebuffer as packed 8-bit RGBA into dst, growing it if needed.
func (c *Canvas) RGBA(dst []byte) []byte {
	n := c.width * c.height * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, p := range c.pixels {
		r, g, b := p.Clamped().RGB255()
		dst[i*4] = r
		dst[i*4+1] = g
		dst[i*4+2] = b
		dst[i*4+3] = 255
	}
	return dst
}

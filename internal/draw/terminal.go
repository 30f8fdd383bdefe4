package draw

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// BlockUpperHalf renders the top sub-pixel in the foreground colour and the
// bottom one in the background colour.
const BlockUpperHalf = '▀'

// maxChunkSize is the maximum bytes to write at once.
const maxChunkSize = 1400

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[0m\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// EnableMouse turns on any-motion mouse reporting in SGR encoding.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1003h\033[?1006h")
}

// DisableMouse turns mouse reporting off again.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1006l\033[?1003l")
}

// NewTerminalCanvas creates a canvas whose pixels are terminal half-cells:
// one column per cell and two rows per cell.
func NewTerminalCanvas(cols, rows int, logicalWidth, logicalHeight float64) *Canvas {
	return NewScaledCanvas(cols, rows*2, logicalWidth, logicalHeight)
}

// ResizeTerminal updates a terminal canvas after the window changed size.
func (c *Canvas) ResizeTerminal(cols, rows int) {
	c.Resize(cols, rows*2)
}

// TerminalHeight returns the terminal row count the canvas covers.
func (c *Canvas) TerminalHeight() int {
	return (c.height + 1) / 2
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal position (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// cellWriter tracks the last emitted colours so escapes are only written on change.
type cellWriter struct {
	buf    strings.Builder
	numBuf [20]byte
	fg, bg [3]uint8
	hasFg  bool
	hasBg  bool
}

func (cw *cellWriter) move(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col), 10))
	cw.buf.WriteByte('H')
}

func (cw *cellWriter) color(code string, rgb [3]uint8) {
	cw.buf.WriteString("\033[")
	cw.buf.WriteString(code)
	cw.buf.WriteString(";2")
	for _, v := range rgb {
		cw.buf.WriteByte(';')
		cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(v), 10))
	}
	cw.buf.WriteByte('m')
}

func (cw *cellWriter) setFg(col colorful.Color) {
	r, g, b := col.Clamped().RGB255()
	rgb := [3]uint8{r, g, b}
	if cw.hasFg && cw.fg == rgb {
		return
	}
	cw.fg, cw.hasFg = rgb, true
	cw.color("38", rgb)
}

func (cw *cellWriter) setBg(col colorful.Color) {
	r, g, b := col.Clamped().RGB255()
	rgb := [3]uint8{r, g, b}
	if cw.hasBg && cw.bg == rgb {
		return
	}
	cw.bg, cw.hasBg = rgb, true
	cw.color("48", rgb)
}

// Render outputs the canvas as half-block cells with 24-bit colour, then writes
// the queued labels over the pixels.
func (c *Canvas) Render(w io.Writer) error {
	var cw cellWriter
	rows := c.TerminalHeight()
	cw.buf.Grow(c.width * rows * 8)

	for row := 0; row < rows; row++ {
		cw.move(1, row+1)
		for col := 0; col < c.width; col++ {
			top := c.At(col, row*2)
			bottom := top
			if row*2+1 < c.height {
				bottom = c.At(col, row*2+1)
			}
			cw.setFg(top)
			cw.setBg(bottom)
			cw.buf.WriteRune(BlockUpperHalf)
		}
	}

	for _, l := range c.labels {
		c.renderLabel(&cw, l)
	}
	cw.buf.WriteString("\033[0m")

	// Write output in chunks for smooth terminal flow
	data := cw.buf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// renderLabel writes one label, using the blended cell colour as its background.
func (c *Canvas) renderLabel(cw *cellWriter, l Label) {
	col, row := c.LogicalToTerminal(l.X, l.Y)
	width := runewidth.StringWidth(l.Text)
	switch l.Anchor {
	case AnchorCenter:
		col -= width / 2
	case AnchorRight:
		col -= width
	}
	if col < 1 {
		col = 1
	}
	if row < 1 || row > c.TerminalHeight() {
		return
	}

	cw.move(col, row)
	cw.setFg(l.Color)
	x := col - 1
	for _, r := range l.Text {
		if x >= c.width {
			break
		}
		top := c.At(x, (row-1)*2)
		bottom := c.At(x, (row-1)*2+1)
		cw.setBg(top.BlendRgb(bottom, 0.5))
		cw.buf.WriteRune(r)
		x += runewidth.RuneWidth(r)
	}
}

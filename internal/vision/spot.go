package vision

import (
	"image"
	"image/color"
)

// SpotDetector finds the centroid of the bright pixels in a frame.
type SpotDetector struct {
	Threshold uint8
	MinArea   int // fewer qualifying pixels than this means nothing was found
}

func (d *SpotDetector) Detect(frame image.Image) (image.Point, bool) {
	var sumX, sumY, n int

	b := frame.Bounds()
	if g, ok := frame.(*image.Gray); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := g.Pix[g.PixOffset(b.Min.X, y):]
			for i := 0; i < b.Dx(); i++ {
				if row[i] >= d.Threshold {
					sumX += i
					sumY += y - b.Min.Y
					n++
				}
			}
		}
	} else {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if color.GrayModel.Convert(frame.At(x, y)).(color.Gray).Y >= d.Threshold {
					sumX += x - b.Min.X
					sumY += y - b.Min.Y
					n++
				}
			}
		}
	}

	if n == 0 || n < d.MinArea {
		return image.Point{}, false
	}
	return image.Point{X: sumX / n, Y: sumY / n}, true
}

func (d *SpotDetector) Close() error {
	return nil
}

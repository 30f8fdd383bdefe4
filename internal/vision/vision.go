// Package vision defines the camera and detector collaborators of a session
// and ships a pointer-driven stand-in for a webcam with a bright spot detector.
package vision

import (
	"errors"
	"image"
)

var (
	// ErrNoFrame is returned when a camera could not produce a frame this time.
	ErrNoFrame = errors.New("no frame available")

	// ErrCameraClosed is returned by reads after Close.
	ErrCameraClosed = errors.New("camera closed")
)

// Camera produces frames that are already mirrored for display.
type Camera interface {
	// Read returns the next frame. The image may be reused by the next call.
	Read() (image.Image, error)

	// Close releases the device.
	Close() error
}

// Detector locates one tracked feature in a frame.
type Detector interface {
	// Detect returns the feature position in frame pixels, or false if the
	// feature is not visible.
	Detect(frame image.Image) (image.Point, bool)

	// Close releases any resources held by the detector.
	Close() error
}

// Mirror writes src flipped horizontally into dst. Both must have the same size.
func Mirror(dst, src *image.Gray) {
	b := src.Bounds()
	w := b.Dx()
	for y := 0; y < b.Dy(); y++ {
		s := src.Pix[y*src.Stride : y*src.Stride+w]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := 0; x < w; x++ {
			d[x] = s[w-1-x]
		}
	}
}

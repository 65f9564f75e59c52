// Package texture holds decoded surface images and the face-indexed banks
// that materials sample from.
package texture

import (
	"errors"
	"image"
	"math"

	"voxel-raytracer/internal/raster"
)

// ErrEmpty is returned when an image has no pixels.
var ErrEmpty = errors.New("texture: empty image")

// Texture is an immutable RGBA image, row-major with the origin at the top
// left. len(Pix) == 4*Width*Height. Safe for concurrent reads.
type Texture struct {
	Width  int
	Height int
	Pix    []uint8
}

// New wraps raw RGBA bytes. The slice is retained, not copied.
func New(width, height int, pix []uint8) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmpty
	}
	if len(pix) != 4*width*height {
		return nil, errors.New("texture: pixel buffer does not match dimensions")
	}
	return &Texture{Width: width, Height: height, Pix: pix}, nil
}

// FromImage copies an NRGBA image into a tightly packed Texture.
func FromImage(img *image.NRGBA) (*Texture, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, ErrEmpty
	}
	pix := make([]uint8, 4*w*h)
	for y := 0; y < h; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(pix[y*w*4:(y+1)*w*4], src[:w*4])
	}
	return &Texture{Width: w, Height: h, Pix: pix}, nil
}

// Solid returns a 1x1 texture of a single color.
func Solid(c raster.Color) *Texture {
	return &Texture{Width: 1, Height: 1, Pix: []uint8{c.R, c.G, c.B, 255}}
}

// Sample returns the nearest texel at (u, v). Coordinates wrap with period 1
// on both axes; v = 0 is the top row. Alpha is discarded.
func (t *Texture) Sample(u, v float32) raster.Color {
	x := wrapIndex(u, t.Width)
	y := wrapIndex(v, t.Height)
	i := (y*t.Width + x) * 4
	return raster.Color{R: t.Pix[i], G: t.Pix[i+1], B: t.Pix[i+2]}
}

// wrapIndex folds c into [0, 1) and maps it to a texel index in [0, n).
// Non-finite coordinates map to texel 0.
func wrapIndex(c float32, n int) int {
	f := float64(c)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f -= math.Floor(f)
	i := int(math.Floor(f*float64(n))) % n
	if i < 0 {
		i += n
	}
	return i
}

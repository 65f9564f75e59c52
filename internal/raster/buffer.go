package raster

import "image"

// FrameBuffer is the presentation target: one packed 0x00RRGGBB word per
// pixel, row-major, len = W*H.
type FrameBuffer struct {
	Width  int
	Height int
	Pixels []uint32

	current uint32
}

// NewFrameBuffer allocates a black frame buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Pixels: make([]uint32, w*h),
	}
}

// Clear fills every pixel with c.
func (fb *FrameBuffer) Clear(c Color) {
	p := c.Packed()
	for i := range fb.Pixels {
		fb.Pixels[i] = p
	}
}

// SetCurrentColor selects the color used by Point.
func (fb *FrameBuffer) SetCurrentColor(packed uint32) {
	fb.current = packed
}

// Point writes the current color at (x, y). Out-of-range coordinates are ignored.
func (fb *FrameBuffer) Point(x, y int) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = fb.current
}

// At returns the color stored at (x, y).
func (fb *FrameBuffer) At(x, y int) Color {
	return FromPacked(fb.Pixels[y*fb.Width+x])
}

// Commit copies a full frame of packed pixels into the buffer.
// Extra source pixels are ignored; a short source leaves the tail untouched.
func (fb *FrameBuffer) Commit(src []uint32) {
	copy(fb.Pixels, src)
}

// Image converts the buffer to an opaque NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, p := range fb.Pixels {
		o := i * 4
		img.Pix[o] = uint8(p >> 16)
		img.Pix[o+1] = uint8(p >> 8)
		img.Pix[o+2] = uint8(p)
		img.Pix[o+3] = 255
	}
	return img
}

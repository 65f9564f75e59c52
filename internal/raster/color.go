package raster

import "fmt"

// Color is an 8-bit-per-channel RGB triple. Every arithmetic result
// saturates to [0, 255] per channel, so chained operations clamp at each
// step rather than once at the end.
type Color struct {
	R, G, B uint8
}

// Black is the zero color.
var Black = Color{}

// NewColor builds a Color from its channels.
func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// FromPacked unpacks a 0x00RRGGBB word.
func FromPacked(p uint32) Color {
	return Color{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p)}
}

// Add returns the per-channel saturating sum.
func (c Color) Add(o Color) Color {
	return Color{addSat(c.R, o.R), addSat(c.G, o.G), addSat(c.B, o.B)}
}

// Sub returns the per-channel saturating difference.
func (c Color) Sub(o Color) Color {
	return Color{subSat(c.R, o.R), subSat(c.G, o.G), subSat(c.B, o.B)}
}

// Scale multiplies every channel by s. Results are truncated toward zero
// and clamped; a negative or NaN factor gives black.
func (c Color) Scale(s float32) Color {
	return Color{scaleSat(c.R, s), scaleSat(c.G, s), scaleSat(c.B, s)}
}

// Packed returns (R<<16)|(G<<8)|B.
func (c Color) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func subSat(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}

func scaleSat(a uint8, s float32) uint8 {
	v := float32(a) * s
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

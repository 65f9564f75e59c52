package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is the float32 vector used throughout the tracer.
type Vec3 = mgl32.Vec3

// MulElem returns the component-wise product a ⊙ b.
func MulElem(a, b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// DivElem returns the component-wise quotient a / b.
// A zero component in b yields ±Inf (or NaN for 0/0), never a panic.
func DivElem(a, b Vec3) Vec3 {
	return Vec3{a[0] / b[0], a[1] / b[1], a[2] / b[2]}
}

// Inverse returns 1/v per component.
func Inverse(v Vec3) Vec3 {
	return DivElem(Vec3{1, 1, 1}, v)
}

// Reflect mirrors incident about normal: I - 2(I·N)N.
func Reflect(incident, normal Vec3) Vec3 {
	return incident.Sub(normal.Mul(2 * incident.Dot(normal)))
}

// Normalize is mgl32's Normalize with a zero-length guard.
func Normalize(v Vec3) Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// Min returns the smaller of a and b. A NaN operand is ignored, so
// Min(NaN, x) == Min(x, NaN) == x; the builtin min propagates NaN instead.
func Min(a, b float32) float32 {
	if isNaN(a) {
		return b
	}
	if isNaN(b) {
		return a
	}
	if a < b {
		return a
	}
	return b
}

// Max is the NaN-ignoring counterpart of Min.
func Max(a, b float32) float32 {
	if isNaN(a) {
		return b
	}
	if isNaN(b) {
		return a
	}
	if a > b {
		return a
	}
	return b
}

// IsFinite reports whether every component of v is finite.
func IsFinite(v Vec3) bool {
	for _, c := range v {
		if isNaN(c) || math.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}

func isNaN(f float32) bool {
	return math.IsNaN(float64(f))
}

// Package camera implements the orbiting look-at camera.
package camera

import (
	"math"

	"voxel-raytracer/internal/mathutil"
)

const (
	// PitchEpsilon keeps orbit pitch away from the poles, where the
	// forward vector would become parallel to up.
	PitchEpsilon float32 = 0.1

	// Zoom limits on eye.z. MaxZoom is the closest the eye may get.
	MaxZoom float32 = 1.0
	MinZoom float32 = 10.0
)

// Camera looks from Eye toward Center. Up should be a unit vector not
// parallel to Center-Eye. Mutate only between frames.
type Camera struct {
	Eye    mathutil.Vec3
	Center mathutil.Vec3
	Up     mathutil.Vec3
}

// New returns a camera with the given eye, look-at point and up vector.
func New(eye, center, up mathutil.Vec3) *Camera {
	return &Camera{Eye: eye, Center: center, Up: up}
}

// Basis returns the orthonormal frame derived from (Eye, Center, Up).
func (c *Camera) Basis() (right, up, forward mathutil.Vec3) {
	forward = mathutil.Normalize(c.Center.Sub(c.Eye))
	right = mathutil.Normalize(forward.Cross(c.Up))
	up = right.Cross(forward)
	return right, up, forward
}

// BasisChange rewrites a camera-space direction in world space. The camera
// looks down -Z in its own frame.
func (c *Camera) BasisChange(v mathutil.Vec3) mathutil.Vec3 {
	right, up, forward := c.Basis()
	return right.Mul(v[0]).
		Add(up.Mul(v[1])).
		Add(forward.Mul(-v[2]))
}

// Orbit moves Eye around Center on a sphere of constant radius. Pitch is
// clamped to (-π/2+ε, π/2-ε); yaw wraps.
func (c *Camera) Orbit(deltaYaw, deltaPitch float32) {
	rv := c.Eye.Sub(c.Center)
	radius := float64(rv.Len())
	if radius == 0 {
		return
	}

	yaw := math.Atan2(float64(rv[2]), float64(rv[0]))
	radiusXZ := math.Hypot(float64(rv[0]), float64(rv[2]))
	pitch := math.Atan2(-float64(rv[1]), radiusXZ)

	yaw = math.Mod(yaw+float64(deltaYaw), 2*math.Pi)
	limit := math.Pi/2 - float64(PitchEpsilon)
	pitch = math.Max(-limit, math.Min(limit, pitch+float64(deltaPitch)))

	c.Eye = c.Center.Add(mathutil.Vec3{
		float32(radius * math.Cos(yaw) * math.Cos(pitch)),
		float32(-radius * math.Sin(pitch)),
		float32(radius * math.Sin(yaw) * math.Cos(pitch)),
	})
}

// Zoom translates Eye along Z by delta, clamped to [MaxZoom, MinZoom].
func (c *Camera) Zoom(delta float32) {
	c.Eye[2] = mathutil.Clamp(c.Eye[2]+delta, MaxZoom, MinZoom)
}

// Pitch returns the current elevation angle of Eye above Center, in radians.
func (c *Camera) Pitch() float32 {
	rv := c.Eye.Sub(c.Center)
	return float32(math.Atan2(float64(rv[1]), math.Hypot(float64(rv[0]), float64(rv[2]))))
}

package mathutil

import "math"

// Pi as float32, for angle arithmetic on the camera sphere.
const Pi = float32(math.Pi)

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float32) float32 {
	return d * Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float32) float32 {
	return r * 180 / Pi
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AngleDist returns the shortest angular distance between two angles in degrees (0–180).
func AngleDist(a, b float32) float32 {
	d := float32(math.Mod(float64(a-b), 360))
	if d < 0 {
		d += 360
	}
	if d > 180 {
		return 360 - d
	}
	return d
}

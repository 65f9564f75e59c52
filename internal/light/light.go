// Package light defines the single point light of a scene.
package light

import (
	"voxel-raytracer/internal/mathutil"
	"voxel-raytracer/internal/raster"
)

// Light is a point light. Intensity is a non-negative multiplier.
type Light struct {
	Position  mathutil.Vec3
	Color     raster.Color
	Intensity float32
}

// New creates a point light.
func New(position mathutil.Vec3, color raster.Color, intensity float32) Light {
	return Light{Position: position, Color: color, Intensity: intensity}
}

// Default returns the white light used by the viewer: just above and in
// front of the platform.
func Default() Light {
	return New(mathutil.Vec3{1, 1, 5}, raster.NewColor(255, 255, 255), 1)
}

// Toward returns the unit direction from p to the light and the distance
// between them.
func (l Light) Toward(p mathutil.Vec3) (dir mathutil.Vec3, dist float32) {
	d := l.Position.Sub(p)
	dist = d.Len()
	return mathutil.Normalize(d), dist
}

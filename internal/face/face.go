// Package face enumerates the six outward orientations of an axis-aligned box face.
package face

import "voxel-raytracer/internal/mathutil"

// Class is one of the six outward faces of an axis-aligned box.
type Class uint8

const (
	PosX Class = iota
	NegX
	Top    // +Y
	Bottom // -Y
	PosZ
	NegZ
)

// All lists every face class in axis order.
var All = [6]Class{PosX, NegX, Top, Bottom, PosZ, NegZ}

var normals = [6]mathutil.Vec3{
	PosX:   {1, 0, 0},
	NegX:   {-1, 0, 0},
	Top:    {0, 1, 0},
	Bottom: {0, -1, 0},
	PosZ:   {0, 0, 1},
	NegZ:   {0, 0, -1},
}

var names = [6]string{
	PosX:   "+X",
	NegX:   "-X",
	Top:    "+Y",
	Bottom: "-Y",
	PosZ:   "+Z",
	NegZ:   "-Z",
}

// Normal returns the outward unit normal of the face.
func (c Class) Normal() mathutil.Vec3 {
	return normals[c]
}

// Axis returns 0, 1 or 2 for the X, Y or Z axis the face is perpendicular to.
func (c Class) Axis() int {
	return int(c) / 2
}

func (c Class) String() string {
	if int(c) >= len(names) {
		return "invalid"
	}
	return names[c]
}

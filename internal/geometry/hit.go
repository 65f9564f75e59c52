package geometry

import (
	"voxel-raytracer/internal/face"
	"voxel-raytracer/internal/material"
	"voxel-raytracer/internal/mathutil"
)

// Hit describes where a ray met a box.
type Hit struct {
	Point    mathutil.Vec3
	Normal   mathutil.Vec3 // outward unit normal of Face
	T        float32       // ray parameter of Point
	Material *material.Material
	Face     face.Class
	U, V     float32 // face-local texture coordinates in [0,1]
	Object   int     // index of the box in its scene, -1 if not from a scene
}

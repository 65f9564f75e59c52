package shade

import (
	"math"

	"voxel-raytracer/internal/geometry"
	"voxel-raytracer/internal/mathutil"
)

// Reflect mirrors the incident direction about the normal.
func Reflect(incident, normal mathutil.Vec3) mathutil.Vec3 {
	return mathutil.Reflect(incident, normal)
}

// Refract bends incident (unit, pointing at the surface) through a surface
// with outward normal n and relative index etaT. When cos(θi) is negative
// the ray is leaving the medium and the normal is flipped. Total internal
// reflection returns the mirror direction about the oriented normal.
func Refract(incident, n mathutil.Vec3, etaT float32) mathutil.Vec3 {
	cosi := mathutil.Clamp(-incident.Dot(n), -1, 1)

	var eta float32
	if cosi < 0 {
		cosi = -cosi
		eta = etaT
		n = n.Mul(-1)
	} else {
		eta = 1 / etaT
	}

	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return Reflect(incident, n)
	}
	return incident.Mul(eta).Add(n.Mul(eta*cosi - float32(math.Sqrt(float64(k)))))
}

// OffsetOrigin moves hit.Point by OriginBias along the normal, on the side
// dir travels to.
func OffsetOrigin(hit geometry.Hit, dir mathutil.Vec3) mathutil.Vec3 {
	offset := hit.Normal.Mul(OriginBias)
	if dir.Dot(hit.Normal) < 0 {
		return hit.Point.Sub(offset)
	}
	return hit.Point.Add(offset)
}

// Package shade implements the recursive Whitted shader: direct light with
// attenuated shadows, Phong specular, mirror reflection and refraction.
package shade

import (
	"math"

	"voxel-raytracer/internal/geometry"
	"voxel-raytracer/internal/light"
	"voxel-raytracer/internal/material"
	"voxel-raytracer/internal/mathutil"
	"voxel-raytracer/internal/raster"
)

const (
	// MaxDepth is the deepest recursion level that still traces; deeper
	// calls return SkyboxColor.
	MaxDepth = 3

	// OriginBias is the distance secondary rays are pushed off a surface.
	OriginBias float32 = 1e-4
)

// SkyboxColor is returned for rays that escape the scene.
var SkyboxColor = raster.NewColor(68, 142, 228)

// World is the read-only scene query the shader needs. Both scans run in
// insertion order so results are reproducible.
type World interface {
	// Nearest returns the hit with the smallest non-negative t.
	Nearest(origin, dir mathutil.Vec3) (geometry.Hit, bool)
	// Occluder returns the first hit, in insertion order, with t < maxDist.
	Occluder(origin, dir mathutil.Vec3, maxDist float32) (geometry.Hit, bool)
}

// CastRay returns the color seen along dir from origin. depth counts the
// bounces already taken; primary rays pass 0.
func CastRay(origin, dir mathutil.Vec3, world World, l light.Light, depth int) raster.Color {
	if depth > MaxDepth {
		return SkyboxColor
	}

	hit, ok := world.Nearest(origin, dir)
	if !ok {
		return SkyboxColor
	}

	m := hit.Material
	if m == nil {
		m = material.Black()
	}
	props := m.Properties
	surface := m.SurfaceColor(hit.Face, hit.U, hit.V)

	lightDir, lightDist := l.Toward(hit.Point)
	viewDir := mathutil.Normalize(origin.Sub(hit.Point))
	reflectDir := mathutil.Normalize(mathutil.Reflect(lightDir.Mul(-1), hit.Normal))

	shadow := castShadow(hit, lightDir, lightDist, world)
	eff := l.Intensity * (1 - shadow)

	// Each factor is applied to the color separately; every step
	// saturates and truncates.
	ndl := min(max(0, hit.Normal.Dot(lightDir)), 1)
	diffuse := surface.Scale(props[material.Diffuse]).Scale(ndl).Scale(eff)

	vdr := max(0, viewDir.Dot(reflectDir))
	spec := float32(math.Pow(float64(vdr), float64(m.Shininess)))
	specular := l.Color.Scale(props[material.Specular]).Scale(spec).Scale(eff)

	reflected := raster.Black
	if kr := props[material.Reflect]; kr > 0 {
		rdir := mathutil.Normalize(mathutil.Reflect(dir, hit.Normal))
		reflected = CastRay(OffsetOrigin(hit, rdir), rdir, world, l, depth+1)
	}

	refracted := raster.Black
	if kt := props[material.Transparent]; kt > 0 {
		// Not renormalized.
		tdir := Refract(dir, hit.Normal, m.RefractiveIndex)
		refracted = CastRay(OffsetOrigin(hit, tdir), tdir, world, l, depth+1)
	}

	local := 1 - props[material.Reflect] - props[material.Transparent]
	return diffuse.Add(specular).Scale(local).
		Add(reflected.Scale(props[material.Reflect])).
		Add(refracted.Scale(props[material.Transparent]))
}

// castShadow returns the shadow intensity in [0,1] at hit. The first
// occluder found decides: the nearer it sits to the surface, the darker.
func castShadow(hit geometry.Hit, lightDir mathutil.Vec3, lightDist float32, world World) float32 {
	if lightDist == 0 {
		return 0
	}
	occ, ok := world.Occluder(OffsetOrigin(hit, lightDir), lightDir, lightDist)
	if !ok {
		return 0
	}
	ratio := occ.T / lightDist
	return 1 - min(ratio*ratio, 1)
}

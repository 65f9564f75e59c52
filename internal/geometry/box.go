// Package geometry implements the axis-aligned box primitive and its ray
// intersection.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"voxel-raytracer/internal/face"
	"voxel-raytracer/internal/material"
	"voxel-raytracer/internal/mathutil"
)

// ErrDegenerateBox is returned for boxes whose extent is not strictly
// positive and finite on every axis.
var ErrDegenerateBox = errors.New("geometry: degenerate box")

// Box is an axis-aligned box with Min[i] < Max[i] on every axis.
// The material is shared by reference.
type Box struct {
	Min      mathutil.Vec3
	Max      mathutil.Vec3
	Material *material.Material
}

// NewBox validates the corners and returns the box. A nil material is
// replaced by material.Black().
func NewBox(min, max mathutil.Vec3, m *material.Material) (Box, error) {
	if !mathutil.IsFinite(min) || !mathutil.IsFinite(max) {
		return Box{}, fmt.Errorf("%w: non-finite corner min=%v max=%v", ErrDegenerateBox, min, max)
	}
	for i := 0; i < 3; i++ {
		if !(min[i] < max[i]) {
			return Box{}, fmt.Errorf("%w: axis %d min %v >= max %v", ErrDegenerateBox, i, min[i], max[i])
		}
	}
	if m == nil {
		m = material.Black()
	}
	return Box{Min: min, Max: max, Material: m}, nil
}

// Center returns the midpoint of the box.
func (b Box) Center() mathutil.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent along each axis.
func (b Box) Size() mathutil.Vec3 {
	return b.Max.Sub(b.Min)
}

// Intersect runs the slab test. Rays starting inside the box, or whose
// entry lies behind the origin, miss. Rays parallel to a slab produce
// infinities that resolve to a consistent hit or miss.
func (b Box) Intersect(origin, dir mathutil.Vec3) (Hit, bool) {
	inv := mathutil.Inverse(dir)
	t1 := mathutil.MulElem(b.Min.Sub(origin), inv)
	t2 := mathutil.MulElem(b.Max.Sub(origin), inv)

	tEnter := mathutil.Max(mathutil.Max(
		mathutil.Min(t1[0], t2[0]),
		mathutil.Min(t1[1], t2[1])),
		mathutil.Min(t1[2], t2[2]))
	tExit := mathutil.Min(mathutil.Min(
		mathutil.Max(t1[0], t2[0]),
		mathutil.Max(t1[1], t2[1])),
		mathutil.Max(t1[2], t2[2]))

	if math.IsNaN(float64(tEnter)) || math.IsInf(float64(tEnter), 0) {
		return Hit{}, false
	}
	if tExit < tEnter || tEnter < 0 {
		return Hit{}, false
	}

	f := entryFace(tEnter, t1, t2)
	point := origin.Add(dir.Mul(tEnter))
	u, v := b.UV(f, point)

	return Hit{
		Point:    point,
		Normal:   f.Normal(),
		T:        tEnter,
		Material: b.Material,
		Face:     f,
		U:        u,
		V:        v,
		Object:   -1,
	}, true
}

// entryFace finds the plane whose parameter equals tEnter. Edge and corner
// hits match several planes; X beats Y beats Z, and the min plane beats
// the max plane.
func entryFace(tEnter float32, t1, t2 mathutil.Vec3) face.Class {
	switch tEnter {
	case t1[0]:
		return face.NegX
	case t2[0]:
		return face.PosX
	case t1[1]:
		return face.Bottom
	case t2[1]:
		return face.Top
	case t1[2]:
		return face.NegZ
	default:
		return face.PosZ
	}
}

// UV maps a point on face f to texture coordinates in [0,1]².
// Top/bottom use (x, z); ±X use (z, 1-y); ±Z use (x, 1-y), so side
// textures stay upright.
func (b Box) UV(f face.Class, point mathutil.Vec3) (u, v float32) {
	p := mathutil.DivElem(point.Sub(b.Min), b.Size())
	for i := range p {
		p[i] = mathutil.Clamp(p[i], 0, 1)
	}

	switch f {
	case face.Top, face.Bottom:
		return p[0], p[2]
	case face.PosX, face.NegX:
		return p[2], 1 - p[1]
	default:
		return p[0], 1 - p[1]
	}
}

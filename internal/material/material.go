// Package material describes how a box surface responds to light.
package material

import (
	"voxel-raytracer/internal/face"
	"voxel-raytracer/internal/raster"
	"voxel-raytracer/internal/texture"
)

// Indices into Material.Properties.
const (
	Diffuse = iota
	Specular
	Reflect
	Transparent
)

// Material holds surface parameters shared by any number of boxes.
// Immutable after construction; safe for concurrent reads.
type Material struct {
	BaseColor       raster.Color
	Shininess       float32    // Phong exponent, >= 0
	Properties      [4]float32 // k_diffuse, k_specular, k_reflect, k_transparent
	RefractiveIndex float32    // >= 1, air = 1
	Textures        texture.Bank
}

// New creates an untextured material.
// Reflect + Transparent should not exceed 1; larger sums only over-brighten.
func New(base raster.Color, shininess float32, properties [4]float32, refractiveIndex float32) *Material {
	return &Material{
		BaseColor:       base,
		Shininess:       shininess,
		Properties:      properties,
		RefractiveIndex: refractiveIndex,
	}
}

// Black returns the zero material used for placeholder geometry.
func Black() *Material {
	return New(raster.Black, 0, [4]float32{}, 1)
}

// WithTextures attaches a texture bank built from an ordered list
// (see texture.BankFromList) and returns m.
func (m *Material) WithTextures(list ...*texture.Texture) *Material {
	m.Textures = texture.BankFromList(list)
	return m
}

// WithBank attaches an explicit face → texture mapping and returns m.
func (m *Material) WithBank(b texture.Bank) *Material {
	m.Textures = b
	return m
}

// SurfaceColor returns the color seen at (u, v) on face f: the bank's
// texture when one applies, otherwise BaseColor.
func (m *Material) SurfaceColor(f face.Class, u, v float32) raster.Color {
	if m.Textures != nil {
		if tex := m.Textures.For(f); tex != nil {
			return tex.Sample(u, v)
		}
	}
	return m.BaseColor
}

// IsDiffuse reports a surface with no specular or mirror term.
func (m *Material) IsDiffuse() bool {
	return m.Properties[Specular] == 0 && m.Properties[Reflect] == 0
}

func (m *Material) IsReflective() bool {
	return m.Properties[Reflect] > 0
}

func (m *Material) IsTransparent() bool {
	return m.Properties[Transparent] > 0
}

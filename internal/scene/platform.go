package scene

import (
	"fmt"

	"voxel-raytracer/internal/geometry"
	"voxel-raytracer/internal/material"
	"voxel-raytracer/internal/mathutil"
	"voxel-raytracer/internal/raster"
	"voxel-raytracer/internal/texture"
)

// Grid describes the square platform of cubes.
type Grid struct {
	Size     int     // cubes per side
	CubeSize float32 // edge length
	BaseY    float32 // y of the platform bottom
}

// DefaultGrid is the 5×5 platform of half-unit cubes two units below the
// origin.
func DefaultGrid() Grid {
	return Grid{Size: 5, CubeSize: 0.5, BaseY: -2}
}

// GrassMaterial returns the grass block material: top texture on +Y, side
// texture on every other face. A nil texture falls back to base color.
func GrassMaterial(top, side *texture.Texture) *material.Material {
	m := material.New(raster.NewColor(0, 255, 0), 0, [4]float32{1, 0, 0, 0}, 1)
	return m.WithBank(texture.TopSides{Top: top, Sides: side})
}

// NewGrassPlatform builds a Size×Size layer of cubes centred on X and Z,
// all sharing one grass material. Cubes are added row by row along Z.
func NewGrassPlatform(g Grid, top, side *texture.Texture) (*Scene, error) {
	if g.Size <= 0 || !(g.CubeSize > 0) {
		return nil, fmt.Errorf("scene: invalid grid size=%d cube=%v", g.Size, g.CubeSize)
	}

	m := GrassMaterial(top, side)
	offset := float32(g.Size) * g.CubeSize / 2
	s := &Scene{boxes: make([]geometry.Box, 0, g.Size*g.Size)}

	for x := 0; x < g.Size; x++ {
		for z := 0; z < g.Size; z++ {
			min := mathutil.Vec3{
				float32(x)*g.CubeSize - offset,
				g.BaseY,
				float32(z)*g.CubeSize - offset,
			}
			max := mathutil.Vec3{
				float32(x+1)*g.CubeSize - offset,
				g.BaseY + g.CubeSize,
				float32(z+1)*g.CubeSize - offset,
			}
			b, err := geometry.NewBox(min, max, m)
			if err != nil {
				return nil, fmt.Errorf("scene: platform cube (%d,%d): %w", x, z, err)
			}
			if err := s.Add(b); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// AddShowcase places a mirror cube and a glass cube on top of the platform,
// left and right of centre.
func (s *Scene) AddShowcase(g Grid) error {
	top := g.BaseY + g.CubeSize
	edge := g.CubeSize * 2

	mirror := material.New(raster.NewColor(255, 255, 255), 50, [4]float32{0, 0, 1, 0}, 1)
	glass := material.New(raster.NewColor(200, 230, 255), 125, [4]float32{0, 0.3, 0, 0.7}, 1.5)

	boxes := []struct {
		min mathutil.Vec3
		m   *material.Material
	}{
		{mathutil.Vec3{-edge - 0.25, top, -edge / 2}, mirror},
		{mathutil.Vec3{0.25, top, -edge / 2}, glass},
	}
	for _, sb := range boxes {
		b, err := geometry.NewBox(sb.min, sb.min.Add(mathutil.Vec3{edge, edge, edge}), sb.m)
		if err != nil {
			return fmt.Errorf("scene: showcase: %w", err)
		}
		if err := s.Add(b); err != nil {
			return err
		}
	}
	return nil
}

// LoadPlatform resolves the top and side textures by name and builds the
// grass platform. A missing or undecodable texture is an error.
func LoadPlatform(res texture.Resolver, topName, sideName string, g Grid) (*Scene, error) {
	top, err := res.Resolve(topName)
	if err != nil {
		return nil, fmt.Errorf("scene: top texture: %w", err)
	}
	side, err := res.Resolve(sideName)
	if err != nil {
		return nil, fmt.Errorf("scene: side texture: %w", err)
	}
	return NewGrassPlatform(g, top, side)
}

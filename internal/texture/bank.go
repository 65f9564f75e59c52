package texture

import "voxel-raytracer/internal/face"

// Bank selects the texture drawn on each face of a box. For returns nil
// when the face is untextured.
type Bank interface {
	For(f face.Class) *Texture
}

// Uniform draws the same texture on every face.
type Uniform struct {
	Tex *Texture
}

func (u Uniform) For(face.Class) *Texture { return u.Tex }

// TopSides draws Top on the +Y face and Sides on the other five
// (grass on top, dirt around).
type TopSides struct {
	Top   *Texture
	Sides *Texture
}

func (b TopSides) For(f face.Class) *Texture {
	if f == face.Top {
		return b.Top
	}
	return b.Sides
}

// BankFromList builds a bank from an ordered texture list: none gives nil,
// one texture is used everywhere, two or more map list[0] to the top face
// and list[1] to the rest. Entries past the second are ignored.
func BankFromList(list []*Texture) Bank {
	switch len(list) {
	case 0:
		return nil
	case 1:
		return Uniform{Tex: list[0]}
	default:
		return TopSides{Top: list[0], Sides: list[1]}
	}
}

// Package scene holds the ordered list of boxes a frame is traced against.
package scene

import (
	"fmt"

	"voxel-raytracer/internal/geometry"
	"voxel-raytracer/internal/mathutil"
)

// Scene is an ordered box list. Build it before rendering and leave it
// untouched while frames are in flight; all query methods are read-only
// and safe for concurrent use.
type Scene struct {
	boxes []geometry.Box
}

// New returns a scene holding boxes in the given order. Every box is
// revalidated.
func New(boxes ...geometry.Box) (*Scene, error) {
	s := &Scene{boxes: make([]geometry.Box, 0, len(boxes))}
	for _, b := range boxes {
		if err := s.Add(b); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends b. Boxes built as struct literals bypass geometry.NewBox, so
// the corners are checked again here.
func (s *Scene) Add(b geometry.Box) error {
	checked, err := geometry.NewBox(b.Min, b.Max, b.Material)
	if err != nil {
		return fmt.Errorf("scene: box %d: %w", len(s.boxes), err)
	}
	s.boxes = append(s.boxes, checked)
	return nil
}

// Len returns the number of boxes.
func (s *Scene) Len() int {
	return len(s.boxes)
}

// Box returns the i-th box in insertion order.
func (s *Scene) Box(i int) geometry.Box {
	return s.boxes[i]
}

// Bounds returns the union of all boxes. ok is false for an empty scene.
func (s *Scene) Bounds() (min, max mathutil.Vec3, ok bool) {
	if len(s.boxes) == 0 {
		return min, max, false
	}
	min, max = s.boxes[0].Min, s.boxes[0].Max
	for _, b := range s.boxes[1:] {
		for i := 0; i < 3; i++ {
			min[i] = mathutil.Min(min[i], b.Min[i])
			max[i] = mathutil.Max(max[i], b.Max[i])
		}
	}
	return min, max, true
}

// Nearest returns the hit with the smallest non-negative t. Ties keep the
// earlier box.
func (s *Scene) Nearest(origin, dir mathutil.Vec3) (geometry.Hit, bool) {
	var best geometry.Hit
	found := false
	for i := range s.boxes {
		h, ok := s.boxes[i].Intersect(origin, dir)
		if !ok || (found && h.T >= best.T) {
			continue
		}
		h.Object = i
		best, found = h, true
	}
	return best, found
}

// Occluder returns the first box in insertion order whose hit lies closer
// than maxDist. It does not look for the nearest one.
func (s *Scene) Occluder(origin, dir mathutil.Vec3, maxDist float32) (geometry.Hit, bool) {
	for i := range s.boxes {
		if h, ok := s.boxes[i].Intersect(origin, dir); ok && h.T < maxDist {
			h.Object = i
			return h, true
		}
	}
	return geometry.Hit{}, false
}

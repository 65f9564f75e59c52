package shade

import (
	"math"
	"testing"

	"voxel-raytracer/internal/face"
	"voxel-raytracer/internal/geometry"
	"voxel-raytracer/internal/light"
	"voxel-raytracer/internal/material"
	"voxel-raytracer/internal/mathutil"
	"voxel-raytracer/internal/raster"
	"voxel-raytracer/internal/texture"
)

type vec = mathutil.Vec3

// boxList is a minimal World: a linear scan in insertion order.
type boxList struct {
	boxes   []geometry.Box
	nearest int
}

func (w *boxList) Nearest(origin, dir vec) (geometry.Hit, bool) {
	w.nearest++
	var best geometry.Hit
	found := false
	for i, b := range w.boxes {
		if h, ok := b.Intersect(origin, dir); ok && (!found || h.T < best.T) {
			h.Object = i
			best, found = h, true
		}
	}
	return best, found
}

func (w *boxList) Occluder(origin, dir vec, maxDist float32) (geometry.Hit, bool) {
	for i, b := range w.boxes {
		if h, ok := b.Intersect(origin, dir); ok && h.T < maxDist {
			h.Object = i
			return h, true
		}
	}
	return geometry.Hit{}, false
}

// mirrorHall always hits a surface one unit ahead, facing the ray.
type mirrorHall struct {
	m     *material.Material
	calls int
}

func (w *mirrorHall) Nearest(origin, dir vec) (geometry.Hit, bool) {
	w.calls++
	return geometry.Hit{
		Point:    origin.Add(dir),
		Normal:   dir.Mul(-1),
		T:        1,
		Material: w.m,
		Face:     face.PosZ,
		Object:   0,
	}, true
}

func (w *mirrorHall) Occluder(vec, vec, float32) (geometry.Hit, bool) {
	return geometry.Hit{}, false
}

func mustBox(t *testing.T, min, max vec, m *material.Material) geometry.Box {
	t.Helper()
	b, err := geometry.NewBox(min, max, m)
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}
	return b
}

func whiteLight(pos vec) light.Light {
	return light.New(pos, raster.NewColor(255, 255, 255), 1)
}

func solid(t *testing.T, c raster.Color) *texture.Texture {
	t.Helper()
	return texture.Solid(c)
}

func TestCastRayEmptySceneIsSky(t *testing.T) {
	w := &boxList{}
	got := CastRay(vec{}, vec{0, 0, -1}, w, light.Default(), 0)
	if got != SkyboxColor {
		t.Errorf("Expected skybox %v, got %v", SkyboxColor, got)
	}
}

func TestCastRayAxisHit(t *testing.T) {
	m := material.New(raster.NewColor(200, 50, 50), 0, [4]float32{1, 0, 0, 0}, 1)
	w := &boxList{boxes: []geometry.Box{mustBox(t, vec{-1, -1, -3}, vec{1, 1, -1}, m)}}

	got := CastRay(vec{}, vec{0, 0, -1}, w, light.Default(), 0)
	if got == SkyboxColor {
		t.Fatal("Expected a hit, got skybox")
	}
	if got.R <= got.G || got.R <= got.B {
		t.Errorf("Expected red-dominant color, got %v", got)
	}
}

func TestCastRayFaceSelection(t *testing.T) {
	green := raster.NewColor(0, 255, 0)
	brown := raster.NewColor(139, 69, 19)
	m := material.New(raster.NewColor(9, 9, 9), 0, [4]float32{1, 0, 0, 0}, 1).
		WithTextures(solid(t, green), solid(t, brown))
	box := mustBox(t, vec{-1, 0, -1}, vec{1, 2, 1}, m)
	w := &boxList{boxes: []geometry.Box{box}}

	tests := []struct {
		name      string
		origin    vec
		dir       vec
		lightPos  vec
		wantFace  face.Class
		wantColor raster.Color
	}{
		{"top from above", vec{0, 5, 0}, vec{0, -1, 0}, vec{0, 10, 0}, face.Top, green},
		{"side from +X", vec{5, 1, 0}, vec{-1, 0, 0}, vec{10, 1, 0}, face.PosX, brown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := w.Nearest(tt.origin, tt.dir)
			if !ok {
				t.Fatal("Expected a hit")
			}
			if hit.Face != tt.wantFace {
				t.Errorf("Expected face %v, got %v", tt.wantFace, hit.Face)
			}
			if got := CastRay(tt.origin, tt.dir, w, whiteLight(tt.lightPos), 0); got != tt.wantColor {
				t.Errorf("Expected color %v, got %v", tt.wantColor, got)
			}
		})
	}
}

func TestCastRayShadowAttenuation(t *testing.T) {
	m := material.New(raster.NewColor(200, 50, 50), 0, [4]float32{1, 0, 0, 0}, 1)
	target := mustBox(t, vec{-1, -1, -3}, vec{1, 1, -1}, m)
	blocker := mustBox(t, vec{-0.5, -0.5, 0.5}, vec{0.5, 0.5, 1}, m)
	l := whiteLight(vec{0, 0, 3})

	lit := CastRay(vec{}, vec{0, 0, -1}, &boxList{boxes: []geometry.Box{target}}, l, 0)
	shadowed := CastRay(vec{}, vec{0, 0, -1}, &boxList{boxes: []geometry.Box{target, blocker}}, l, 0)

	// Blocker entry is 1.5 from the hit point, light is 4 away.
	ratio := float32(1.5 / 4.0)
	want := lit.Scale(ratio * ratio)

	for _, ch := range []struct {
		name      string
		got, want uint8
	}{
		{"R", shadowed.R, want.R},
		{"G", shadowed.G, want.G},
		{"B", shadowed.B, want.B},
	} {
		if d := int(ch.got) - int(ch.want); d < -1 || d > 1 {
			t.Errorf("channel %s: Expected %d±1, got %d", ch.name, ch.want, ch.got)
		}
	}
	if shadowed.R >= lit.R {
		t.Errorf("Expected shadowed %v darker than lit %v", shadowed, lit)
	}
}

func TestCastRayOccluderBeyondLightIgnored(t *testing.T) {
	m := material.New(raster.NewColor(200, 50, 50), 0, [4]float32{1, 0, 0, 0}, 1)
	target := mustBox(t, vec{-1, -1, -3}, vec{1, 1, -1}, m)
	far := mustBox(t, vec{-0.5, -0.5, 5}, vec{0.5, 0.5, 6}, m)
	l := whiteLight(vec{0, 0, 3})

	a := CastRay(vec{}, vec{0, 0, -1}, &boxList{boxes: []geometry.Box{target}}, l, 0)
	b := CastRay(vec{}, vec{0, 0, -1}, &boxList{boxes: []geometry.Box{target, far}}, l, 0)
	if a != b {
		t.Errorf("Expected box behind the light to cast no shadow: %v vs %v", a, b)
	}
}

func TestCastRayMirror(t *testing.T) {
	mirror := material.New(raster.Black, 0, [4]float32{0, 0, 1, 0}, 1)
	paint := material.New(raster.NewColor(10, 200, 10), 0, [4]float32{1, 0, 0, 0}, 1)
	w := &boxList{boxes: []geometry.Box{
		mustBox(t, vec{-1, -1, -3}, vec{1, 1, -1}, mirror),
		mustBox(t, vec{-1, -1, 2}, vec{1, 1, 3}, paint),
	}}
	l := whiteLight(vec{0, 0, 1})

	got := CastRay(vec{}, vec{0, 0, -1}, w, l, 0)

	hit, _ := w.Nearest(vec{}, vec{0, 0, -1})
	rdir := mathutil.Normalize(Reflect(vec{0, 0, -1}, hit.Normal))
	want := CastRay(OffsetOrigin(hit, rdir), rdir, w, l, 1)

	if got != want {
		t.Errorf("Expected mirror to show %v, got %v", want, got)
	}
	if got.G <= got.R || got.G <= got.B {
		t.Errorf("Expected the green box in the mirror, got %v", got)
	}
}

func TestCastRayDepthBoundSingleChain(t *testing.T) {
	mirror := material.New(raster.Black, 0, [4]float32{0, 0, 1, 0}, 1)
	w := &boxList{boxes: []geometry.Box{
		mustBox(t, vec{-1, -1, -3}, vec{1, 1, -1}, mirror),
		mustBox(t, vec{-1, -1, 1}, vec{1, 1, 3}, mirror),
	}}

	got := CastRay(vec{}, vec{0, 0, -1}, w, whiteLight(vec{0, 5, 0}), 0)
	if w.nearest != MaxDepth+1 {
		t.Errorf("Expected %d scene queries, got %d", MaxDepth+1, w.nearest)
	}
	if got != SkyboxColor {
		t.Errorf("Expected skybox at the end of the mirror chain, got %v", got)
	}
}

func TestCastRayDepthBoundBranching(t *testing.T) {
	glass := material.New(raster.Black, 0, [4]float32{0, 0, 0.5, 0.5}, 1.5)
	w := &mirrorHall{m: glass}

	CastRay(vec{}, vec{0, 0, -1}, w, whiteLight(vec{0, 5, 0}), 0)

	// A full binary tree of depth MaxDepth.
	want := 1<<(MaxDepth+1) - 1
	if w.calls != want {
		t.Errorf("Expected %d scene queries, got %d", want, w.calls)
	}
}

func TestCastRayBeyondMaxDepth(t *testing.T) {
	w := &boxList{}
	if got := CastRay(vec{}, vec{0, 0, -1}, w, light.Default(), MaxDepth+1); got != SkyboxColor {
		t.Errorf("Expected skybox, got %v", got)
	}
	if w.nearest != 0 {
		t.Errorf("Expected no scene query past MaxDepth, got %d", w.nearest)
	}
}

func TestRefractTotalInternalReflection(t *testing.T) {
	n := vec{0, 1, 0}
	i := mathutil.Normalize(vec{0.99, 0.1, 0})

	got := Refract(i, n, 1.5)
	want := Reflect(i, n.Mul(-1))
	if got != want {
		t.Errorf("Expected TIR reflection %v, got %v", want, got)
	}
}

func TestRefract(t *testing.T) {
	tests := []struct {
		name string
		i, n vec
		eta  float32
		want vec
	}{
		{"normal incidence entering", vec{0, 0, -1}, vec{0, 0, 1}, 1.5, vec{0, 0, -1}},
		{"normal incidence leaving", vec{0, 0, 1}, vec{0, 0, 1}, 1.5, vec{0, 0, 1}},
		{"index 1 passes straight", mathutil.Normalize(vec{1, -1, 0}), vec{0, 1, 0}, 1, mathutil.Normalize(vec{1, -1, 0})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Refract(tt.i, tt.n, tt.eta)
			if got.Sub(tt.want).Len() > 1e-5 {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRefractBendsTowardNormal(t *testing.T) {
	n := vec{0, 1, 0}
	i := mathutil.Normalize(vec{1, -1, 0})
	got := Refract(i, n, 1.5)

	sinIn := math.Abs(float64(i[0]))
	sinOut := math.Abs(float64(got[0])) / float64(got.Len())
	if math.Abs(sinIn/sinOut-1.5) > 1e-3 {
		t.Errorf("Expected Snell ratio 1.5, got %v", sinIn/sinOut)
	}
	if got[1] >= 0 {
		t.Errorf("Expected transmitted ray to continue downward, got %v", got)
	}
}

func TestOffsetOriginAvoidsSelfIntersection(t *testing.T) {
	box := mustBox(t, vec{-1, -1, -1}, vec{1, 1, 1}, nil)
	origins := []vec{
		{5, 0.3, 0.2}, {-5, -0.4, 0.1}, {0.2, 5, -0.3},
		{0.1, -5, 0.6}, {-0.7, 0.2, 5}, {0.3, 0.8, -5},
		{4, 3, 2}, {-3, 4, -2},
	}

	for _, o := range origins {
		dir := mathutil.Normalize(o.Mul(-1))
		hit, ok := box.Intersect(o, dir)
		if !ok {
			t.Fatalf("Expected ray from %v to hit", o)
		}
		rdir := mathutil.Normalize(Reflect(dir, hit.Normal))
		if _, again := box.Intersect(OffsetOrigin(hit, rdir), rdir); again {
			t.Errorf("Reflected ray from face %v re-hit its own box", hit.Face)
		}

		_, lightDist := whiteLight(o).Toward(hit.Point)
		ldir := mathutil.Normalize(o.Sub(hit.Point))
		w := &boxList{boxes: []geometry.Box{box}}
		if _, blocked := w.Occluder(OffsetOrigin(hit, ldir), ldir, lightDist); blocked {
			t.Errorf("Shadow ray from face %v blocked by its own box", hit.Face)
		}
	}
}

func TestOffsetOriginSide(t *testing.T) {
	hit := geometry.Hit{Point: vec{0, 0, 0}, Normal: vec{0, 0, 1}}
	if got := OffsetOrigin(hit, vec{0, 0, 1}); got[2] <= 0 {
		t.Errorf("Expected offset outward, got %v", got)
	}
	if got := OffsetOrigin(hit, vec{0, 0, -1}); got[2] >= 0 {
		t.Errorf("Expected offset inward, got %v", got)
	}
}

func TestCastRaySpecularHighlight(t *testing.T) {
	shiny := material.New(raster.NewColor(100, 0, 0), 10, [4]float32{1, 1, 0, 0}, 1)
	matte := material.New(raster.NewColor(100, 0, 0), 10, [4]float32{1, 0, 0, 0}, 1)
	l := whiteLight(vec{0, 0, 3})

	a := CastRay(vec{}, vec{0, 0, -1}, &boxList{boxes: []geometry.Box{mustBox(t, vec{-1, -1, -3}, vec{1, 1, -1}, shiny)}}, l, 0)
	b := CastRay(vec{}, vec{0, 0, -1}, &boxList{boxes: []geometry.Box{mustBox(t, vec{-1, -1, -3}, vec{1, 1, -1}, matte)}}, l, 0)

	if a.G != 255 || a.B != 255 {
		t.Errorf("Expected white highlight head-on, got %v", a)
	}
	if b.G != 0 || b.B != 0 {
		t.Errorf("Expected no highlight on matte surface, got %v", b)
	}
}

func TestCastRayScalesColorPerFactor(t *testing.T) {
	tests := []struct {
		name      string
		props     [4]float32
		intensity float32
		want      raster.Color
	}{
		// 200*2 saturates to 255 before the light halves it.
		{"diffuse above one", [4]float32{2, 0, 0, 0}, 0.5, raster.NewColor(127, 50, 50)},
		{"unit diffuse", [4]float32{1, 0, 0, 0}, 1, raster.NewColor(200, 50, 50)},
		{"bright light", [4]float32{0.5, 0, 0, 0}, 3, raster.NewColor(255, 75, 75)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := material.New(raster.NewColor(200, 50, 50), 0, tt.props, 1)
			w := &boxList{boxes: []geometry.Box{mustBox(t, vec{-1, -1, -3}, vec{1, 1, -1}, m)}}
			l := light.New(vec{0, 0, 5}, raster.Black, tt.intensity)

			if got := CastRay(vec{}, vec{0, 0, -1}, w, l, 0); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCastRaySpecularScalesPerFactor(t *testing.T) {
	m := material.New(raster.Black, 10, [4]float32{0, 2, 0, 0}, 1)
	w := &boxList{boxes: []geometry.Box{mustBox(t, vec{-1, -1, -3}, vec{1, 1, -1}, m)}}
	l := light.New(vec{0, 0, 5}, raster.NewColor(200, 100, 0), 0.5)

	// (200,100,0)*2 saturates to (255,200,0), then halves.
	want := raster.NewColor(127, 100, 0)
	if got := CastRay(vec{}, vec{0, 0, -1}, w, l, 0); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestCastRayFollowsRefractedDirection(t *testing.T) {
	glass := material.New(raster.Black, 0, [4]float32{0, 0, 0, 1}, 1.5)
	paint := material.New(raster.NewColor(10, 200, 10), 0, [4]float32{1, 0, 0, 0}, 1)
	w := &boxList{boxes: []geometry.Box{
		mustBox(t, vec{-1, -1, -3}, vec{1, 1, -1}, glass),
		mustBox(t, vec{-4, -4, -9}, vec{4, 4, -8}, paint),
	}}
	l := whiteLight(vec{0, 0, 1})
	dir := mathutil.Normalize(vec{0.3, 0, -1})

	got := CastRay(vec{}, dir, w, l, 0)

	hit, _ := w.Nearest(vec{}, dir)
	tdir := Refract(dir, hit.Normal, 1.5)
	want := CastRay(OffsetOrigin(hit, tdir), tdir, w, l, 1)

	if got != want {
		t.Errorf("Expected refracted view %v, got %v", want, got)
	}
}

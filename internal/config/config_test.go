package config

import (
	"os"
	"path/filepath"
	"testing"

	"voxel-raytracer/internal/mathutil"
	"voxel-raytracer/internal/raster"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"width": 320, "light": {"intensity": 0.5}}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Width != 320 {
		t.Errorf("width = %d, want 320", cfg.Width)
	}
	if cfg.Light.Intensity != 0.5 {
		t.Errorf("intensity = %v, want 0.5", cfg.Light.Intensity)
	}
	if cfg.Light.Position != [3]float32{1, 1, 5} {
		t.Errorf("light position lost its default: %v", cfg.Light.Position)
	}
	if cfg.Camera.Eye != [3]float32{0, 0, 6.5} {
		t.Errorf("camera eye = %v", cfg.Camera.Eye)
	}
	if cfg.Grid.BaseY != -2 {
		t.Errorf("grid base_y = %v", cfg.Grid.BaseY)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected an error for a missing file")
	}
	if _, err := Load(writeConfig(t, `{"width": "wide"}`)); err == nil {
		t.Error("Expected an error for a bad value")
	}
}

func TestResolveDefaults(t *testing.T) {
	cfg := Default()
	cfg.Resolve(Flags{AssetDir: "somewhere"})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"asset dir", cfg.AssetDir, "somewhere"},
		{"output dir", cfg.OutputDir, "output"},
		{"width", cfg.Width, 800},
		{"height", cfg.Height, 600},
		{"views", cfg.Views, 12},
		{"upscale", cfg.Upscale, 1},
		{"supersample", cfg.Supersample, 1},
		{"half pixel", cfg.UseHalfPixel(), true},
		{"top texture", cfg.TopTexture, "up_grasstexture"},
		{"side texture", cfg.SideTexture, "side_grasstexture"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if cfg.Workers <= 0 {
		t.Errorf("workers = %d, want > 0", cfg.Workers)
	}
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"width": 320, "height": 200, "output_dir": "file-out", "half_pixel": true}`))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolve(Flags{
		AssetDir:     "a",
		OutputDir:    "flag-out",
		Width:        640,
		Views:        4,
		LegacyPixels: true,
		Showcase:     true,
	})

	if cfg.OutputDir != "flag-out" || cfg.Width != 640 || cfg.Height != 200 || cfg.Views != 4 {
		t.Errorf("unexpected resolve result %+v", cfg)
	}
	if cfg.UseHalfPixel() {
		t.Error("Expected legacy pixel flag to disable half-pixel sampling")
	}
	if !cfg.Showcase {
		t.Error("Expected showcase flag to apply")
	}
}

func TestResolveKeepsFileHalfPixelOff(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"half_pixel": false}`))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolve(Flags{AssetDir: "a"})
	if cfg.UseHalfPixel() {
		t.Error("Expected half_pixel=false from the file to survive Resolve")
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Resolve(Flags{AssetDir: "a"})

	g := cfg.SceneGrid()
	if g.Size != 5 || g.CubeSize != 0.5 || g.BaseY != -2 {
		t.Errorf("grid = %+v", g)
	}

	cam := cfg.NewCamera()
	if cam.Eye != (mathutil.Vec3{0, 0, 6.5}) || cam.Up != (mathutil.Vec3{0, 1, 0}) {
		t.Errorf("camera = %+v", cam)
	}

	l := cfg.NewLight()
	if l.Position != (mathutil.Vec3{1, 1, 5}) || l.Color != raster.NewColor(255, 255, 255) || l.Intensity != 1 {
		t.Errorf("light = %+v", l)
	}
}

func TestDetectAssetDirFromCwd(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "assets"), 0755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg := Default()
	cfg.Resolve(Flags{})
	if cfg.AssetDir != filepath.Join(dir, "assets") {
		t.Errorf("asset dir = %q, want %q", cfg.AssetDir, filepath.Join(dir, "assets"))
	}
}

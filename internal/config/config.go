package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"voxel-raytracer/internal/camera"
	"voxel-raytracer/internal/light"
	"voxel-raytracer/internal/mathutil"
	"voxel-raytracer/internal/raster"
	"voxel-raytracer/internal/scene"
)

// Config holds asset paths, viewport and scene settings.
type Config struct {
	// Paths
	AssetDir    string `json:"asset_dir"`
	TopTexture  string `json:"top_texture"`
	SideTexture string `json:"side_texture"`
	OutputDir   string `json:"output_dir"`

	// Render settings
	Width       int   `json:"width"`
	Height      int   `json:"height"`
	Workers     int   `json:"workers"`
	Views       int   `json:"views"`
	Upscale     int   `json:"upscale"`
	Supersample int   `json:"supersample"`
	HalfPixel   *bool `json:"half_pixel"`

	// Scene
	Showcase bool        `json:"showcase"`
	Grid     GridConfig  `json:"grid"`
	Camera   CameraSetup `json:"camera"`
	Light    LightSetup  `json:"light"`
}

// GridConfig mirrors scene.Grid.
type GridConfig struct {
	Size     int     `json:"size"`
	CubeSize float32 `json:"cube_size"`
	BaseY    float32 `json:"base_y"`
}

// CameraSetup is the initial camera placement.
type CameraSetup struct {
	Eye    [3]float32 `json:"eye"`
	Center [3]float32 `json:"center"`
	Up     [3]float32 `json:"up"`
}

// LightSetup describes the point light.
type LightSetup struct {
	Position  [3]float32 `json:"position"`
	Color     [3]uint8   `json:"color"`
	Intensity float32    `json:"intensity"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	AssetDir     string
	OutputDir    string
	Width        int
	Height       int
	Workers      int
	Views        int
	Upscale      int
	Supersample  int
	LegacyPixels bool
	Showcase     bool
}

// Default returns the built-in settings. Paths and worker count are left
// empty for Resolve to detect.
func Default() Config {
	return Config{
		TopTexture:  "up_grasstexture",
		SideTexture: "side_grasstexture",
		Grid:        GridConfig{Size: 5, CubeSize: 0.5, BaseY: -2},
		Camera: CameraSetup{
			Eye:    [3]float32{0, 0, 6.5},
			Center: [3]float32{0, 0, 0},
			Up:     [3]float32{0, 1, 0},
		},
		Light: LightSetup{
			Position:  [3]float32{1, 1, 5},
			Color:     [3]uint8{255, 255, 255},
			Intensity: 1,
		},
	}
}

// Load reads a JSON config file on top of Default.
// Fields not set in the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with auto-detected defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Views > 0 {
		c.Views = flags.Views
	}
	if flags.Upscale > 0 {
		c.Upscale = flags.Upscale
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.LegacyPixels {
		off := false
		c.HalfPixel = &off
	}
	if flags.Showcase {
		c.Showcase = true
	}

	// Auto-detect asset dir if still empty
	if c.AssetDir == "" {
		c.AssetDir = detectAssetDir()
	}

	if c.TopTexture == "" {
		c.TopTexture = "up_grasstexture"
	}
	if c.SideTexture == "" {
		c.SideTexture = "side_grasstexture"
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Views <= 0 {
		c.Views = 12
	}
	if c.Upscale <= 0 {
		c.Upscale = 1
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.HalfPixel == nil {
		on := true
		c.HalfPixel = &on
	}
	if c.Grid.Size <= 0 {
		c.Grid.Size = 5
	}
	if c.Grid.CubeSize <= 0 {
		c.Grid.CubeSize = 0.5
	}
}

// UseHalfPixel reports the resolved pixel-centre setting.
func (c Config) UseHalfPixel() bool {
	return c.HalfPixel == nil || *c.HalfPixel
}

// SceneGrid converts the grid section.
func (c Config) SceneGrid() scene.Grid {
	return scene.Grid{Size: c.Grid.Size, CubeSize: c.Grid.CubeSize, BaseY: c.Grid.BaseY}
}

// NewCamera builds the initial camera.
func (c Config) NewCamera() *camera.Camera {
	return camera.New(
		mathutil.Vec3(c.Camera.Eye),
		mathutil.Vec3(c.Camera.Center),
		mathutil.Vec3(c.Camera.Up),
	)
}

// NewLight builds the point light.
func (c Config) NewLight() light.Light {
	col := c.Light.Color
	return light.New(mathutil.Vec3(c.Light.Position), raster.NewColor(col[0], col[1], col[2]), c.Light.Intensity)
}

func detectAssetDir() string {
	// Try relative to executable
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir), filepath.Join(dir, "..", "..")} {
			if isDir(filepath.Join(base, "assets")) {
				return filepath.Join(base, "assets")
			}
		}
	}

	// Try current working directory
	cwd, _ := os.Getwd()
	if isDir(filepath.Join(cwd, "assets")) {
		return filepath.Join(cwd, "assets")
	}

	// Try parent of cwd (if we're in cmd/<tool>/)
	parent := filepath.Dir(cwd)
	if isDir(filepath.Join(parent, "assets")) {
		return filepath.Join(parent, "assets")
	}

	return "assets"
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

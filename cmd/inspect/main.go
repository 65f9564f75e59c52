package main

import (
	"flag"
	"fmt"
	"os"

	"voxel-raytracer/internal/config"
	"voxel-raytracer/internal/mathutil"
	"voxel-raytracer/internal/render"
	"voxel-raytracer/internal/scene"
	"voxel-raytracer/internal/shade"
	"voxel-raytracer/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	assetDir := flag.String("assets", "", "Path to texture directory (default: auto-detect)")
	x := flag.Int("x", -1, "Pixel column (default: centre)")
	y := flag.Int("y", -1, "Pixel row (default: centre)")
	yaw := flag.Float64("yaw", 0, "Orbit the camera by this many degrees first")
	pitch := flag.Float64("pitch", 0, "Tilt the camera by this many degrees first")
	untextured := flag.Bool("untextured", false, "Skip texture loading and use base colors")
	showcase := flag.Bool("showcase", false, "Add the mirror and glass boxes")
	legacy := flag.Bool("legacy-pixels", false, "Sample pixel corners instead of centres")
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{AssetDir: *assetDir, Workers: 1, LegacyPixels: *legacy, Showcase: *showcase})

	var world *scene.Scene
	var err error
	if *untextured {
		world, err = scene.NewGrassPlatform(cfg.SceneGrid(), nil, nil)
	} else {
		world, err = scene.LoadPlatform(texture.NewCache(texture.BuildIndex(cfg.AssetDir)),
			cfg.TopTexture, cfg.SideTexture, cfg.SceneGrid())
	}
	if err == nil && cfg.Showcase {
		err = world.AddShowcase(cfg.SceneGrid())
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cam := cfg.NewCamera()
	cam.Orbit(mathutil.Deg2Rad(float32(*yaw)), mathutil.Deg2Rad(float32(*pitch)))
	l := cfg.NewLight()

	px, py := *x, *y
	if px < 0 {
		px = cfg.Width / 2
	}
	if py < 0 {
		py = cfg.Height / 2
	}

	r := render.NewRenderer(1)
	defer r.Close()
	r.HalfPixel = cfg.UseHalfPixel()

	lo, hi, _ := world.Bounds()
	fmt.Printf("Scene: %d boxes, bounds (%.2f, %.2f, %.2f) .. (%.2f, %.2f, %.2f)\n",
		world.Len(), lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
	fmt.Printf("Camera: eye (%.3f, %.3f, %.3f) center (%.2f, %.2f, %.2f)\n",
		cam.Eye[0], cam.Eye[1], cam.Eye[2], cam.Center[0], cam.Center[1], cam.Center[2])
	fmt.Printf("Light: pos (%.2f, %.2f, %.2f) color %v intensity %.2f\n",
		l.Position[0], l.Position[1], l.Position[2], l.Color, l.Intensity)

	dir := r.PrimaryRay(cam, px, py, cfg.Width, cfg.Height)
	fmt.Printf("Pixel (%d, %d) of %dx%d: dir (%.4f, %.4f, %.4f)\n",
		px, py, cfg.Width, cfg.Height, dir[0], dir[1], dir[2])

	color := shade.CastRay(cam.Eye, dir, world, l, 0)

	hit, ok := world.Nearest(cam.Eye, dir)
	if !ok {
		fmt.Printf("  miss → sky %v\n", color)
		return
	}

	b := world.Box(hit.Object)
	m := hit.Material
	fmt.Printf("  Box[%d]: min (%.2f, %.2f, %.2f) max (%.2f, %.2f, %.2f)\n",
		hit.Object, b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
	fmt.Printf("  Face %v normal (%.0f, %.0f, %.0f) t=%.4f\n",
		hit.Face, hit.Normal[0], hit.Normal[1], hit.Normal[2], hit.T)
	fmt.Printf("  Point (%.4f, %.4f, %.4f) uv (%.4f, %.4f)\n",
		hit.Point[0], hit.Point[1], hit.Point[2], hit.U, hit.V)
	fmt.Printf("  Material: base %v props %v ior %.2f surface %v\n",
		m.BaseColor, m.Properties, m.RefractiveIndex, m.SurfaceColor(hit.Face, hit.U, hit.V))
	fmt.Printf("  Shaded: %v (0x%06x)\n", color, color.Packed())
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"voxel-raytracer/internal/config"
	"voxel-raytracer/internal/render"
	"voxel-raytracer/internal/scene"
	"voxel-raytracer/internal/texture"
	"voxel-raytracer/internal/viewer"
	"voxel-raytracer/internal/window"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	assetDir := flag.String("assets", "", "Path to texture directory (default: auto-detect)")
	outputDir := flag.String("output", "", "Snapshot directory (default: output)")
	width := flag.Int("width", 0, "Window width (default: 800)")
	height := flag.Int("height", 0, "Window height (default: 600)")
	workers := flag.Int("workers", 0, "Render workers (default: NumCPU)")
	upscale := flag.Int("upscale", 0, "Snapshot upscale factor (default: 1)")
	legacy := flag.Bool("legacy-pixels", false, "Sample pixel corners instead of centres")
	showcase := flag.Bool("showcase", false, "Add the mirror and glass boxes")
	quiet := flag.Bool("quiet", false, "Do not print frame statistics")

	flag.Parse()

	// Load config
	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		AssetDir:     *assetDir,
		OutputDir:    *outputDir,
		Width:        *width,
		Height:       *height,
		Workers:      *workers,
		Upscale:      *upscale,
		LegacyPixels: *legacy,
		Showcase:     *showcase,
	})

	texIndex := texture.BuildIndex(cfg.AssetDir)
	world, err := scene.LoadPlatform(texture.NewCache(texIndex), cfg.TopTexture, cfg.SideTexture, cfg.SceneGrid())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading textures from %s: %v\n", cfg.AssetDir, err)
		os.Exit(1)
	}
	if cfg.Showcase {
		if err := world.AddShowcase(cfg.SceneGrid()); err != nil {
			fmt.Fprintf(os.Stderr, "Error building scene: %v\n", err)
			os.Exit(1)
		}
	}

	win, err := window.Open("Voxel Raytracer", cfg.Width, cfg.Height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening window: %v\n", err)
		os.Exit(1)
	}
	defer win.Close()

	r := render.NewRenderer(cfg.Workers)
	defer r.Close()
	r.HalfPixel = cfg.UseHalfPixel()

	var logger viewer.Logger
	if !*quiet {
		logger = log.New(os.Stdout, "", log.Ltime)
	}

	fmt.Printf("Boxes: %d, Size: %dx%d, Workers: %d\n", world.Len(), cfg.Width, cfg.Height, r.Workers())
	fmt.Println("W/S zoom, arrows orbit, P snapshot, Esc quit")

	v := viewer.New(win, r, world, cfg.NewCamera(), cfg.NewLight(), cfg.Width, cfg.Height, viewer.Options{
		OutputDir: cfg.OutputDir,
		Upscale:   cfg.Upscale,
		Logger:    logger,
	})
	if err := v.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		win.Close()
		os.Exit(1)
	}
}

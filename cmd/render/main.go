package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"voxel-raytracer/internal/batch"
	"voxel-raytracer/internal/config"
	"voxel-raytracer/internal/scene"
	"voxel-raytracer/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	views := flag.Int("views", 0, "Number of turntable views (default: 12)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	assetDir := flag.String("assets", "", "Path to texture directory (default: auto-detect)")
	outputDir := flag.String("output", "", "Output directory (default: output)")
	width := flag.Int("width", 0, "Frame width (default: 800)")
	height := flag.Int("height", 0, "Frame height (default: 600)")
	supersample := flag.Int("supersample", 0, "Render at N× and downsample (default: 1)")
	upscale := flag.Int("upscale", 0, "Nearest-neighbour upscale of written frames (default: 1)")
	legacy := flag.Bool("legacy-pixels", false, "Sample pixel corners instead of centres")
	showcase := flag.Bool("showcase", false, "Add the mirror and glass boxes")

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
		Views:        *views,
		Upscale:      *upscale,
		Supersample:  *supersample,
		LegacyPixels: *legacy,
		Showcase:     *showcase,
	})

	// Build texture index
	texIndex := texture.BuildIndex(cfg.AssetDir)
	texCache := texture.NewCache(texIndex)
	fmt.Printf("Textures: %d indexed in %s\n", texIndex.Len(), cfg.AssetDir)

	world, err := scene.LoadPlatform(texCache, cfg.TopTexture, cfg.SideTexture, cfg.SceneGrid())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building scene: %v\n", err)
		os.Exit(1)
	}
	if cfg.Showcase {
		if err := world.AddShowcase(cfg.SceneGrid()); err != nil {
			fmt.Fprintf(os.Stderr, "Error building scene: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Voxel turntable → WebP\n")
	fmt.Printf("Boxes: %d, Views: %d, Size: %dx%d, Workers: %d\n",
		world.Len(), cfg.Views, cfg.Width, cfg.Height, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		World:       world,
		Camera:      *cfg.NewCamera(),
		Light:       cfg.NewLight(),
		OutputDir:   cfg.OutputDir,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Views:       cfg.Views,
		Supersample: cfg.Supersample,
		Upscale:     cfg.Upscale,
		HalfPixel:   cfg.UseHalfPixel(),
		Workers:     cfg.Workers,
	}

	results := batch.Run(batchCfg)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, e := range errors[:min(20, len(errors))] {
			fmt.Printf("  %s: %s\n", e.File, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, batchCfg, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

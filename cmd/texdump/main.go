package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"voxel-raytracer/internal/config"
	"voxel-raytracer/internal/postprocess"
	"voxel-raytracer/internal/texture"
)

// dumpTexture decodes one texture through the loader, prints its size and
// corner samples, and writes it back as WebP.
func dumpTexture(path, outDir string, upscale int) error {
	img, err := texture.LoadImage(path)
	if err != nil {
		return err
	}
	tex, err := texture.FromImage(img)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dst := filepath.Join(outDir, stem+"_dump.webp")
	if err := postprocess.WriteWebP(dst, postprocess.Upscale(img, upscale)); err != nil {
		return err
	}

	fmt.Printf("OK  %s -> %s  (%dx%d)\n", path, dst, tex.Width, tex.Height)
	fmt.Printf("    corners: TL %v  TR %v  BL %v  BR %v\n",
		tex.Sample(0, 0), tex.Sample(0.999, 0), tex.Sample(0, 0.999), tex.Sample(0.999, 0.999))
	return nil
}

func main() {
	assetDir := flag.String("assets", "", "Path to texture directory (default: auto-detect)")
	outDir := flag.String("output", "", "Output directory (default: output)")
	upscale := flag.Int("upscale", 1, "Nearest-neighbour upscale factor")
	flag.Parse()

	cfg := config.Default()
	cfg.Resolve(config.Flags{AssetDir: *assetDir, OutputDir: *outDir})

	// Names on the command line, or the two platform textures.
	names := flag.Args()
	if len(names) == 0 {
		names = []string{cfg.TopTexture, cfg.SideTexture}
	}

	idx := texture.BuildIndex(cfg.AssetDir)
	fmt.Printf("Textures: %d indexed in %s\n", idx.Len(), cfg.AssetDir)

	errors := 0
	for _, name := range names {
		path, ok := idx.ResolvePath(name)
		if !ok {
			// Allow direct file paths too.
			if _, err := os.Stat(name); err != nil {
				fmt.Fprintf(os.Stderr, "ERR %s: %v\n", name, texture.ErrNotFound)
				errors++
				continue
			}
			path = name
		}
		if err := dumpTexture(path, cfg.OutputDir, *upscale); err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			errors++
		}
	}
	if errors > 0 {
		fmt.Printf("\nDone with %d error(s).\n", errors)
		os.Exit(1)
	}
	fmt.Println("\nDone. All textures decoded.")
}

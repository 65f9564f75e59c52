// Package batch renders turntable sequences: the camera orbits the scene
// in equal yaw steps and every view is written as a WebP frame.
package batch

import (
	"fmt"
	"math"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"voxel-raytracer/internal/camera"
	"voxel-raytracer/internal/light"
	"voxel-raytracer/internal/mathutil"
	"voxel-raytracer/internal/postprocess"
	"voxel-raytracer/internal/raster"
	"voxel-raytracer/internal/render"
	"voxel-raytracer/internal/shade"
)

// Config holds all shared resources for a batch run.
type Config struct {
	World       shade.World
	Camera      camera.Camera
	Light       light.Light
	OutputDir   string
	Width       int
	Height      int
	Views       int
	Supersample int
	Upscale     int
	HalfPixel   bool
	Workers     int
	Quiet       bool
}

// Result holds the outcome of rendering one view.
type Result struct {
	Index   int
	File    string
	YawDeg  float32
	Success bool
	Error   string
}

// Run renders all views using a worker pool. Each worker owns a
// single-threaded renderer, so parallelism is across views.
func Run(cfg Config) []Result {
	total := cfg.Views
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if !cfg.Quiet {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Printf("  [%d/%d] %.2f views/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	workers := max(1, min(cfg.Workers, total))
	viewChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := render.NewRenderer(1)
			defer r.Close()
			r.HalfPixel = cfg.HalfPixel
			for idx := range viewChan {
				results[idx] = renderView(cfg, r, idx)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := 0; i < total; i++ {
		viewChan <- i
	}
	close(viewChan)

	wg.Wait()
	close(done)

	return results
}

// ViewCamera returns the base camera orbited by index·2π/views of yaw.
func ViewCamera(base camera.Camera, index, views int) camera.Camera {
	cam := base
	if index > 0 {
		cam.Orbit(float32(2*math.Pi*float64(index)/float64(views)), 0)
	}
	return cam
}

// Yaw returns the camera's yaw around its centre in degrees, in [0, 360).
func Yaw(cam camera.Camera) float32 {
	rv := cam.Eye.Sub(cam.Center)
	deg := mathutil.Rad2Deg(float32(math.Atan2(float64(rv[2]), float64(rv[0]))))
	if deg < 0 {
		deg += 360
	}
	return deg
}

func renderView(cfg Config, r *render.Renderer, idx int) Result {
	cam := ViewCamera(cfg.Camera, idx, cfg.Views)
	name := fmt.Sprintf("view_%03d.webp", idx)
	res := Result{Index: idx, File: name, YawDeg: Yaw(cam)}

	ss := max(1, cfg.Supersample)
	fb := raster.NewFrameBuffer(cfg.Width*ss, cfg.Height*ss)
	r.Render(fb, cfg.World, &cam, cfg.Light)

	img := fb.Image()
	if ss > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}
	img = postprocess.Upscale(img, cfg.Upscale)

	if err := postprocess.WriteWebP(filepath.Join(cfg.OutputDir, name), img); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Success = true
	return res
}

// Package render turns a scene into a frame: one primary ray per pixel,
// traced in parallel on a reusable worker pool.
package render

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"voxel-raytracer/internal/camera"
	"voxel-raytracer/internal/light"
	"voxel-raytracer/internal/mathutil"
	"voxel-raytracer/internal/raster"
	"voxel-raytracer/internal/shade"
)

// FOV is the vertical field of view in radians.
const FOV = math.Pi / 3

// bandsPerWorker splits a frame into more row bands than workers so a
// slow band (reflective boxes) does not leave the other workers idle.
const bandsPerWorker = 4

// Renderer owns the worker pool and scratch buffer reused across frames.
// Render is not safe for concurrent calls on the same Renderer.
type Renderer struct {
	// HalfPixel samples pixel centres. False reproduces the integer
	// corner mapping.
	HalfPixel bool

	workers int
	pool    worker.DynamicWorkerPool
	scratch []uint32
}

// NewRenderer starts a pool of the given size; workers <= 0 uses NumCPU.
func NewRenderer(workers int) *Renderer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Renderer{
		HalfPixel: true,
		workers:   workers,
		pool:      worker.NewDynamicWorkerPool(workers, 256, 1*time.Second),
	}
}

// Workers returns the pool size.
func (r *Renderer) Workers() int {
	return r.workers
}

// Close stops the pool. The renderer must not be used afterwards.
func (r *Renderer) Close() {
	r.pool.Stop()
}

// PrimaryRay returns the world-space direction through pixel (x, y) of a
// w×h viewport.
func (r *Renderer) PrimaryRay(cam *camera.Camera, x, y, w, h int) mathutil.Vec3 {
	aspect := float32(w) / float32(h)
	scale := float32(math.Tan(FOV / 2))

	px, py := float32(x), float32(y)
	if r.HalfPixel {
		px += 0.5
		py += 0.5
	}
	sx := (2*px/float32(w) - 1) * aspect * scale
	sy := (1 - 2*py/float32(h)) * scale

	return cam.BasisChange(mathutil.Normalize(mathutil.Vec3{sx, sy, -1}))
}

// Render traces every pixel of fb and commits the frame once all bands are
// done. Each pixel is written exactly once.
func (r *Renderer) Render(fb *raster.FrameBuffer, world shade.World, cam *camera.Camera, l light.Light) {
	w, h := fb.Width, fb.Height
	if w <= 0 || h <= 0 {
		return
	}
	if len(r.scratch) != w*h {
		r.scratch = make([]uint32, w*h)
	}
	out := r.scratch

	// Workers read a private copy so input handling cannot race a frame.
	view := *cam
	eye := view.Eye

	bands := r.workers * bandsPerWorker
	rows := (h + bands - 1) / bands

	var wg sync.WaitGroup
	id := 0
	for y0 := 0; y0 < h; y0 += rows {
		y1 := min(y0+rows, h)
		wg.Add(1)
		r.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for y := y0; y < y1; y++ {
					row := out[y*w : (y+1)*w]
					for x := range row {
						dir := r.PrimaryRay(&view, x, y, w, h)
						row[x] = shade.CastRay(eye, dir, world, l, 0).Packed()
					}
				}
				return nil, nil
			},
		})
		id++
	}
	wg.Wait()

	fb.Commit(out)
}

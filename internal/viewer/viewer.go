// Package viewer runs the interactive loop: poll keys, move the camera,
// render a frame, present it, sleep.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"voxel-raytracer/internal/camera"
	"voxel-raytracer/internal/light"
	"voxel-raytracer/internal/mathutil"
	"voxel-raytracer/internal/postprocess"
	"voxel-raytracer/internal/raster"
	"voxel-raytracer/internal/render"
	"voxel-raytracer/internal/shade"
)

// Input bindings.
const (
	ZoomSpeed     float32 = 0.5
	RotationSpeed float32 = mathutil.Pi / 50
)

// Options tune the loop. Zero values select the defaults.
type Options struct {
	FrameDelay time.Duration // sleep between frames, default 16ms
	StatsEvery int           // frames between timing reports, default 60
	OutputDir  string        // snapshot directory, default "output"
	Upscale    int           // snapshot upscale factor
	Logger     Logger
}

// Viewer ties a window to a renderer and a camera.
type Viewer struct {
	win      Window
	renderer *render.Renderer
	world    shade.World
	cam      *camera.Camera
	light    light.Light
	fb       *raster.FrameBuffer
	opts     Options
	log      Logger

	frames    int
	statsTime time.Duration
	pHeld     bool
	now       func() time.Time
}

// New creates a viewer rendering width×height frames.
func New(win Window, r *render.Renderer, world shade.World, cam *camera.Camera, l light.Light, width, height int, opts Options) *Viewer {
	if opts.FrameDelay <= 0 {
		opts.FrameDelay = 16 * time.Millisecond
	}
	if opts.StatsEvery <= 0 {
		opts.StatsEvery = 60
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "output"
	}
	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}
	return &Viewer{
		win:      win,
		renderer: r,
		world:    world,
		cam:      cam,
		light:    l,
		fb:       raster.NewFrameBuffer(width, height),
		opts:     opts,
		log:      log,
		now:      time.Now,
	}
}

// Camera returns the camera driven by the input bindings.
func (v *Viewer) Camera() *camera.Camera {
	return v.cam
}

// FrameBuffer returns the last presented frame.
func (v *Viewer) FrameBuffer() *raster.FrameBuffer {
	return v.fb
}

// HandleInput applies the key bindings for one frame. It reports false
// once Escape is pressed. P saves a snapshot on the press edge only.
func (v *Viewer) HandleInput() bool {
	if v.win.IsKeyDown(KeyEscape) {
		return false
	}

	if v.win.IsKeyDown(KeyW) {
		v.cam.Zoom(-ZoomSpeed)
	}
	if v.win.IsKeyDown(KeyS) {
		v.cam.Zoom(ZoomSpeed)
	}

	if v.win.IsKeyDown(KeyLeft) {
		v.cam.Orbit(RotationSpeed, 0)
	}
	if v.win.IsKeyDown(KeyRight) {
		v.cam.Orbit(-RotationSpeed, 0)
	}
	if v.win.IsKeyDown(KeyUp) {
		v.cam.Orbit(0, -RotationSpeed)
	}
	if v.win.IsKeyDown(KeyDown) {
		v.cam.Orbit(0, RotationSpeed)
	}

	p := v.win.IsKeyDown(KeyP)
	if p && !v.pHeld {
		if path, err := v.Snapshot(); err != nil {
			v.log.Printf("snapshot failed: %v", err)
		} else {
			v.log.Printf("snapshot saved to %s", path)
		}
	}
	v.pHeld = p

	return true
}

// Frame renders the current view and presents it.
func (v *Viewer) Frame() error {
	start := v.now()
	v.renderer.Render(v.fb, v.world, v.cam, v.light)
	if err := v.win.UpdateWithBuffer(v.fb.Pixels, v.fb.Width, v.fb.Height); err != nil {
		return fmt.Errorf("viewer: present: %w", err)
	}

	v.frames++
	v.statsTime += v.now().Sub(start)
	if v.frames%v.opts.StatsEvery == 0 {
		avg := v.statsTime / time.Duration(v.opts.StatsEvery)
		v.log.Printf("frame %d: avg %.1f ms (%.1f fps)", v.frames,
			float64(avg.Microseconds())/1000, 1/avg.Seconds())
		v.statsTime = 0
	}
	return nil
}

// Frames returns the number of frames presented so far.
func (v *Viewer) Frames() int {
	return v.frames
}

// Run loops until the window closes or Escape is pressed.
func (v *Viewer) Run() error {
	for v.win.IsOpen() {
		if !v.HandleInput() {
			return nil
		}
		if err := v.Frame(); err != nil {
			return err
		}
		time.Sleep(v.opts.FrameDelay)
	}
	return nil
}

// Snapshot writes the last presented frame as WebP under OutputDir and
// returns its path.
func (v *Viewer) Snapshot() (string, error) {
	name := fmt.Sprintf("snapshot_%s_%04d.webp", v.now().Format("20060102_150405"), v.frames)
	path := filepath.Join(v.opts.OutputDir, name)

	img := postprocess.Upscale(v.fb.Image(), v.opts.Upscale)
	if err := postprocess.WriteWebP(path, img); err != nil {
		return "", err
	}
	return path, nil
}

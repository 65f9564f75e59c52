// Package window presents frames in a GLFW window. The packed pixel buffer
// is uploaded to a texture and blitted to the default framebuffer.
package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"voxel-raytracer/internal/viewer"
)

// GLFW and the GL context must stay on the main OS thread.
func init() {
	runtime.LockOSThread()
}

// Window is a viewer.Window backed by GLFW and OpenGL 4.1 core.
type Window struct {
	win *glfw.Window

	tex        uint32
	fbo        uint32
	texW, texH int
}

var _ viewer.Window = (*Window)(nil)

// Open creates a non-resizable window of the given size and makes its GL
// context current. Call it from the main goroutine.
func Open(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("window: glfw init: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window: create %dx%d: %w", width, height, err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(0)

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("window: gl init: %w", err)
	}

	w := &Window{win: win}
	gl.GenTextures(1, &w.tex)
	gl.BindTexture(gl.TEXTURE_2D, w.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.GenFramebuffers(1, &w.fbo)

	return w, nil
}

// IsOpen reports whether the user has not asked to close the window.
func (w *Window) IsOpen() bool {
	return !w.win.ShouldClose()
}

// IsKeyDown reports whether k is currently pressed.
func (w *Window) IsKeyDown(k viewer.Key) bool {
	gk, ok := keyMap[k]
	if !ok {
		return false
	}
	return w.win.GetKey(gk) == glfw.Press
}

// UpdateWithBuffer uploads pixels, blits them to the window flipped so row
// 0 is the top, swaps buffers and polls events.
func (w *Window) UpdateWithBuffer(pixels []uint32, width, height int) error {
	if width <= 0 || height <= 0 || len(pixels) < width*height {
		return fmt.Errorf("window: buffer of %d pixels for %dx%d", len(pixels), width, height)
	}

	gl.BindTexture(gl.TEXTURE_2D, w.tex)
	if width != w.texW || height != w.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0,
			gl.BGRA, gl.UNSIGNED_INT_8_8_8_8_REV, nil)
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, w.fbo)
		gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, w.tex, 0)
		if status := gl.CheckFramebufferStatus(gl.READ_FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
			return fmt.Errorf("window: framebuffer incomplete: 0x%x", status)
		}
		w.texW, w.texH = width, height
	}

	// 0x00RRGGBB words are BGRA in 8_8_8_8_REV order on any endianness.
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height),
		gl.BGRA, gl.UNSIGNED_INT_8_8_8_8_REV, gl.Ptr(&pixels[0]))

	fbW, fbH := w.win.GetFramebufferSize()
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, w.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(
		0, 0, int32(width), int32(height),
		0, int32(fbH), int32(fbW), 0,
		gl.COLOR_BUFFER_BIT, gl.NEAREST)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("window: gl error 0x%x", code)
	}

	w.win.SwapBuffers()
	glfw.PollEvents()
	return nil
}

// SetTitle updates the window caption.
func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

// Close releases GL objects and terminates GLFW.
func (w *Window) Close() error {
	if w.win == nil {
		return errors.New("window: already closed")
	}
	gl.DeleteFramebuffers(1, &w.fbo)
	gl.DeleteTextures(1, &w.tex)
	w.win.Destroy()
	w.win = nil
	glfw.Terminate()
	return nil
}

var keyMap = map[viewer.Key]glfw.Key{
	viewer.KeyEscape: glfw.KeyEscape,
	viewer.KeyW:      glfw.KeyW,
	viewer.KeyS:      glfw.KeyS,
	viewer.KeyLeft:   glfw.KeyLeft,
	viewer.KeyRight:  glfw.KeyRight,
	viewer.KeyUp:     glfw.KeyUp,
	viewer.KeyDown:   glfw.KeyDown,
	viewer.KeyP:      glfw.KeyP,
}

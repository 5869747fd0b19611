// Package window opens the SDL2 window and its OpenGL 4.1 core context.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/conic-sketch/internal/config"
	"github.com/Faultbox/conic-sketch/internal/logger"
)

func init() {
	// GL calls must stay on the main thread.
	runtime.LockOSThread()
}

// glAttributes are applied before the window exists. 4.1 core is the
// newest profile macOS offers.
var glAttributes = []struct {
	attr  sdl.GLattr
	value int
}{
	{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
	{sdl.GL_CONTEXT_MINOR_VERSION, 1},
	{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
	{sdl.GL_DOUBLEBUFFER, 1},
	{sdl.GL_DEPTH_SIZE, 24},
}

// Window is the viewer surface: one SDL window, one GL context.
type Window struct {
	sdl     *sdl.Window
	context sdl.GLContext
}

// Open initialises SDL video and creates a window sized and flagged from
// the graphics settings.
func Open(title string, g config.GraphicsConfig) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}
	for _, a := range glAttributes {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			logger.Warn("GL attribute rejected", zap.Int("attr", int(a.attr)), zap.Error(err))
		}
	}

	win, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(g.Width), int32(g.Height), windowFlags(g))
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}
	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if err := sdl.GLSetSwapInterval(swapInterval(g.VSync)); err != nil {
		logger.Warn("swap interval not applied", zap.Bool("vsync", g.VSync), zap.Error(err))
	}

	logger.Info("window opened",
		zap.String("title", title),
		zap.Int("width", g.Width),
		zap.Int("height", g.Height),
		zap.Bool("fullscreen", g.Fullscreen),
	)
	return &Window{sdl: win, context: ctx}, nil
}

func windowFlags(g config.GraphicsConfig) uint32 {
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if g.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}
	return flags
}

func swapInterval(vsync bool) int {
	if vsync {
		return 1
	}
	return 0
}

// Close releases the context and window and shuts SDL down.
func (w *Window) Close() {
	if w.context != nil {
		sdl.GLDeleteContext(w.context)
	}
	if w.sdl != nil {
		w.sdl.Destroy()
	}
	sdl.Quit()
	logger.Info("window closed")
}

// Present shows the frame just rendered.
func (w *Window) Present() {
	w.sdl.GLSwap()
}

// Extent returns the drawable size in pixels as floats, the form the camera
// unprojection takes.
func (w *Window) Extent() (width, height float32) {
	iw, ih := w.sdl.GetSize()
	return float32(iw), float32(ih)
}

// Aspect returns width / height of the current window.
func (w *Window) Aspect() float32 {
	return aspect(w.Extent())
}

func aspect(width, height float32) float32 {
	if height <= 0 {
		return 1
	}
	return width / height
}

// SetTitle replaces the title bar text.
func (w *Window) SetTitle(title string) {
	w.sdl.SetTitle(title)
}

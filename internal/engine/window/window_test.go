package window

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/conic-sketch/internal/config"
)

func TestAspect(t *testing.T) {
	if got := aspect(1280, 720); got != float32(1280)/720 {
		t.Errorf("aspect(1280, 720) = %v, want %v", got, float32(1280)/720)
	}
	if got := aspect(640, 0); got != 1 {
		t.Errorf("aspect(640, 0) = %v, want 1", got)
	}
}

func TestWindowFlags(t *testing.T) {
	g := config.GraphicsConfig{Width: 800, Height: 600}
	if flags := windowFlags(g); flags&sdl.WINDOW_FULLSCREEN != 0 {
		t.Errorf("windowed config got fullscreen flag: %#x", flags)
	}
	if flags := windowFlags(g); flags&sdl.WINDOW_OPENGL == 0 {
		t.Errorf("missing OpenGL flag: %#x", flags)
	}
	g.Fullscreen = true
	if flags := windowFlags(g); flags&sdl.WINDOW_FULLSCREEN == 0 {
		t.Errorf("fullscreen config missing flag: %#x", flags)
	}
}

func TestSwapInterval(t *testing.T) {
	if got := swapInterval(true); got != 1 {
		t.Errorf("swapInterval(true) = %d, want 1", got)
	}
	if got := swapInterval(false); got != 0 {
		t.Errorf("swapInterval(false) = %d, want 0", got)
	}
}

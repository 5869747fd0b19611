package viewer

import (
	"testing"

	"github.com/Faultbox/conic-sketch/internal/engine/input"
)

func TestCanOrbit(t *testing.T) {
	tests := []struct {
		name    string
		pointer *input.Pointer
		drawing bool
		want    bool
	}{
		{"middle drag", &input.Pointer{Orbiting: true}, false, true},
		{"middle drag while drawing", &input.Pointer{Orbiting: true, Drawing: true}, true, false},
		{"stroke in flight after release", &input.Pointer{Orbiting: true}, true, false},
		{"no button", &input.Pointer{}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canOrbit(tt.pointer, tt.drawing); got != tt.want {
				t.Errorf("canOrbit() = %v, want %v", got, tt.want)
			}
		})
	}
}

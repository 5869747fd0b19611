package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/conic-sketch/pkg/math"
)

// Trail is the line strip following the stroke being drawn. It satisfies
// sketch.Trail; points are uploaded lazily on the next draw.
type Trail struct {
	points []float32
	dirty  bool

	vao, vbo uint32
	capacity int // vertices the VBO can hold

	Color math.Vec3
}

// NewTrail creates an empty trail. GL objects are created on first draw.
func NewTrail() *Trail {
	return &Trail{Color: math.Vec3{X: 1, Y: 0.85, Z: 0.2}}
}

// Begin starts a new strip.
func (t *Trail) Begin() {
	t.points = t.points[:0]
	t.dirty = true
}

// Append adds a world-space point.
func (t *Trail) Append(p math.Vec3) {
	t.points = append(t.points, p.X, p.Y, p.Z)
	t.dirty = true
}

// Clear hides the strip.
func (t *Trail) Clear() {
	t.points = t.points[:0]
	t.dirty = true
}

// Len returns the number of points in the strip.
func (t *Trail) Len() int {
	return len(t.points) / 3
}

// DrawTrail draws the strip with the given view-projection.
func (r *Renderer) DrawTrail(t *Trail, viewProj math.Mat4) {
	n := t.Len()
	if n < 2 {
		return
	}
	if t.vao == 0 {
		gl.GenVertexArrays(1, &t.vao)
		gl.GenBuffers(1, &t.vbo)
		gl.BindVertexArray(t.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
		gl.EnableVertexAttribArray(0)
	}

	gl.BindVertexArray(t.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	if t.dirty {
		if n > t.capacity {
			// Grow geometrically so a long stroke reallocates rarely.
			t.capacity = max(n*2, 256)
			gl.BufferData(gl.ARRAY_BUFFER, t.capacity*3*4, nil, gl.DYNAMIC_DRAW)
		}
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(t.points)*4, unsafe.Pointer(&t.points[0]))
		t.dirty = false
	}

	r.line.Use()
	r.line.SetMat4("uMVP", viewProj)
	r.line.SetVec3("uColor", t.Color)
	gl.DrawArrays(gl.LINE_STRIP, 0, int32(n))
}

// ReleaseTrail frees the trail's GL objects.
func (r *Renderer) ReleaseTrail(t *Trail) {
	if t.vao != 0 {
		gl.DeleteVertexArrays(1, &t.vao)
		gl.DeleteBuffers(1, &t.vbo)
		t.vao, t.vbo, t.capacity = 0, 0, 0
	}
}

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uMVP;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec3 uColor;

out vec4 FragColor;

void main() {
	FragColor = vec4(uColor, 1.0);
}
`

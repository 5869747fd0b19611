package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/conic-sketch/pkg/math"
)

// lineBatch is a dynamic buffer for immediate line lists.
type lineBatch struct {
	vao, vbo uint32
	capacity int // floats
}

// DrawLines draws pairs of [x, y, z] endpoints as separate segments.
func (r *Renderer) DrawLines(vertices []float32, viewProj math.Mat4, color math.Vec3) {
	if len(vertices) < 6 {
		return
	}
	b := &r.lines
	if b.vao == 0 {
		gl.GenVertexArrays(1, &b.vao)
		gl.GenBuffers(1, &b.vbo)
		gl.BindVertexArray(b.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
		gl.EnableVertexAttribArray(0)
	}

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(vertices) > b.capacity {
		b.capacity = len(vertices)
		gl.BufferData(gl.ARRAY_BUFFER, b.capacity*4, nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, unsafe.Pointer(&vertices[0]))

	r.line.Use()
	r.line.SetMat4("uMVP", viewProj)
	r.line.SetVec3("uColor", color)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/3))
}

func (b *lineBatch) release() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		gl.DeleteBuffers(1, &b.vbo)
		*b = lineBatch{}
	}
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/conic-sketch/internal/engine/lighting"
	"github.com/Faultbox/conic-sketch/internal/engine/mesh"
	"github.com/Faultbox/conic-sketch/internal/engine/shader"
	"github.com/Faultbox/conic-sketch/internal/logger"
	"github.com/Faultbox/conic-sketch/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// gpuMesh is a mesh resident in GL buffers.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	lit  *shader.Program
	line *shader.Program

	meshes map[*mesh.Mesh]*gpuMesh
	lines  lineBatch

	// LightDir is the world-space direction light travels.
	LightDir math.Vec3
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		meshes:   make(map[*mesh.Mesh]*gpuMesh),
		LightDir: lighting.DefaultSun().Direction(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// Sketched shapes are single flat sheets, seen from both sides.
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	if r.lit, err = shader.New("lit", litVertexShader, litFragmentShader); err != nil {
		return nil, err
	}
	if r.line, err = shader.New("line", lineVertexShader, lineFragmentShader); err != nil {
		r.lit.Delete()
		return nil, err
	}

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for m := range r.meshes {
		r.Release(m)
	}
	r.lines.release()
	r.lit.Delete()
	r.line.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// DrawMesh draws m at the given model transform, uploading it on first use.
func (r *Renderer) DrawMesh(m *mesh.Mesh, model, viewProj math.Mat4, color math.Vec3) {
	g, ok := r.meshes[m]
	if !ok {
		g = upload(m)
		r.meshes[m] = g
	}

	r.lit.Use()
	r.lit.SetMat4("uMVP", viewProj.Mul(model))
	r.lit.SetMat4("uModel", model)
	r.lit.SetVec3("uLightDir", r.LightDir)
	r.lit.SetVec3("uColor", color)

	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
}

// Release frees the GL buffers held for m.
func (r *Renderer) Release(m *mesh.Mesh) {
	g, ok := r.meshes[m]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
	delete(r.meshes, m)
}

// Prune releases every uploaded mesh that live does not report as in use.
func (r *Renderer) Prune(live func(*mesh.Mesh) bool) {
	for m := range r.meshes {
		if !live(m) {
			r.Release(m)
		}
	}
}

func upload(m *mesh.Mesh) *gpuMesh {
	g := &gpuMesh{indexCount: int32(len(m.Indices))}
	data := m.Interleaved()

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	stride := int32(mesh.FloatsPerVertex * 4)
	// Position (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord (location = 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	logger.Debug("mesh uploaded",
		zap.String("name", m.Name),
		zap.Uint32("vao", g.vao),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int32("indices", g.indexCount),
	)
	return g
}

const litVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;

uniform mat4 uMVP;
uniform mat4 uModel;

out vec3 vNormal;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vNormal = mat3(uModel) * aNormal;
}
`

const litFragmentShader = `
#version 410 core

in vec3 vNormal;

uniform vec3 uLightDir;
uniform vec3 uColor;

out vec4 FragColor;

void main() {
	// Two-sided: a flat sheet is lit the same from either face.
	float diffuse = abs(dot(normalize(vNormal), -uLightDir));
	FragColor = vec4(uColor * (0.35 + 0.65 * diffuse), 1.0);
}
`

// Package viewer runs the interactive desktop sketch loop: mouse strokes
// become flat shapes in a shared scene.
package viewer

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/conic-sketch/internal/config"
	"github.com/Faultbox/conic-sketch/internal/engine/audio"
	"github.com/Faultbox/conic-sketch/internal/engine/camera"
	"github.com/Faultbox/conic-sketch/internal/engine/debug"
	"github.com/Faultbox/conic-sketch/internal/engine/input"
	"github.com/Faultbox/conic-sketch/internal/engine/mesh"
	"github.com/Faultbox/conic-sketch/internal/engine/renderer"
	"github.com/Faultbox/conic-sketch/internal/engine/window"
	"github.com/Faultbox/conic-sketch/internal/logger"
	"github.com/Faultbox/conic-sketch/internal/scene"
	"github.com/Faultbox/conic-sketch/internal/shapes"
	"github.com/Faultbox/conic-sketch/internal/sketch"
	"github.com/Faultbox/conic-sketch/pkg/math"
)

// Title is the window title.
const Title = "Conic Sketch"

var (
	colorSketch    = math.Vec3{X: 0.35, Y: 0.7, Z: 0.95}
	colorPartial   = math.Vec3{X: 0.95, Y: 0.45, Z: 0.35}
	colorPrimitive = math.Vec3{X: 0.75, Y: 0.75, Z: 0.8}
	colorGrid      = math.Vec3{X: 0.3, Y: 0.3, Z: 0.35}
	colorHover     = math.Vec3{X: 1, Y: 1, Z: 1}
)

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	camera     *camera.OrbitCamera
	scene      *scene.Registry
	trail      *renderer.Trail
	controller *sketch.Controller
	assembler  *sketch.Assembler

	primitives map[*mesh.Mesh]bool
	sound      *audio.Manager // nil when muted or unavailable

	grid        []float32
	screenshots *debug.ScreenshotCapture
	wantShot    bool
}

// New creates the window, GL state and sketch pipeline.
func New(cfg *config.Config) (*Viewer, error) {
	log := logger.Named("viewer")
	log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("projection", cfg.Drawing.Projection),
	)

	v := &Viewer{
		cfg:         cfg,
		camera:      camera.NewOrbitCamera(),
		scene:       scene.NewRegistry(),
		input:       input.New(),
		trail:       renderer.NewTrail(),
		assembler:   sketch.NewAssembler(cfg.Collider),
		primitives:  make(map[*mesh.Mesh]bool),
		grid:        debug.GridLines(10, 0.5, -1),
		screenshots: debug.NewScreenshotCapture("screenshots", "sketch"),
	}

	pipeline, err := sketch.NewPipeline(cfg.Drawing, cfg.Collider)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}

	// Window first: the renderer needs its GL context.
	v.window, err = window.Open(Title, cfg.Graphics)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	v.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	pointer := v.input.Pointer()
	source := &sketch.AnalogInput{
		Position: func() math.Vec3 {
			w, h := v.window.Extent()
			return v.camera.DrawPoint(pointer.X, pointer.Y, w, h)
		},
		Trigger: pointer.Trigger,
		Gate: sketch.TriggerGate{
			Press:   cfg.Drawing.TriggerPress,
			Release: cfg.Drawing.TriggerRelease,
		},
	}

	v.controller = sketch.NewController(source, v.camera, v.scene, v.trail,
		sketch.NewRecorder(sketch.RecorderConfigFrom(cfg.Drawing)), pipeline)
	v.controller.OnStrokeCompleted(func(a *sketch.Artifact, id sketch.ArtifactID) {
		v.play(audio.CueCreated)
		v.updateTitle()
	})
	v.controller.OnStrokeDiscarded(func(err error) {
		v.play(audio.CueDiscarded)
		if errors.Is(err, sketch.ErrOpenLoop) {
			log.Info("close the loop near where it started")
		}
	})

	if cfg.Audio.Enabled {
		v.sound = newSound(cfg.Audio)
	}

	log.Info("viewer initialized")
	return v, nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")
	v.updateTitle()

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		v.handleMovement()

		// One controller step per frame samples the pointer.
		v.controller.Tick()

		v.render()
		if v.wantShot {
			v.wantShot = false
			v.screenshot()
		}
		v.window.Present()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.sound != nil {
		v.sound.Close()
	}
	if v.renderer != nil {
		v.renderer.ReleaseTrail(v.trail)
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(event.Width, event.Height)

		case input.EventMouseWheel:
			v.camera.HandleZoom(event.Wheel)

		case input.EventMouseMove:
			if canOrbit(v.input.Pointer(), v.controller.Drawing()) {
				v.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}

		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_RIGHT {
				v.deleteAt(float32(event.MouseX), float32(event.MouseY))
			}

		case input.EventKeyDown:
			v.handleKey(event.Key)
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	shapesCfg := v.cfg.Shapes
	switch key {
	case sdl.SCANCODE_ESCAPE:
		if v.controller.Drawing() {
			v.controller.Cancel()
			return
		}
		v.running = false
	case sdl.SCANCODE_1:
		cone := shapes.Cone(shapesCfg.Radius, shapesCfg.Height, shapesCfg.ConeSegments, shapesCfg.CapBase)
		v.spawn(cone, false)
	case sdl.SCANCODE_2:
		dc := shapes.DoubleCone(shapesCfg.Radius, shapesCfg.Height, shapesCfg.DoubleConeSegments)
		v.spawn(dc, true)
	case sdl.SCANCODE_F:
		v.fitScene()
	case sdl.SCANCODE_F12:
		v.wantShot = true
	case sdl.SCANCODE_DELETE:
		v.scene.Clear()
		v.renderer.Prune(func(*mesh.Mesh) bool { return false })
		clear(v.primitives)
		v.updateTitle()
	}
}

// canOrbit reports whether a middle drag may rotate the camera. Orbiting
// tilts the draw plane, so it waits until the current stroke ends.
func canOrbit(p *input.Pointer, drawing bool) bool {
	return p.Orbiting && !drawing
}

// handleMovement pans with WASD and Q/E while the pointer is not drawing.
func (v *Viewer) handleMovement() {
	if v.controller.Drawing() {
		return
	}
	var forward, right, up float32
	if v.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_E) {
		up++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_Q) {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		v.camera.HandleMovement(forward, right, up)
	}
}

func (v *Viewer) spawn(m *mesh.Mesh, concave bool) {
	a := v.assembler.Wrap(m, v.camera.Center, concave)
	id := v.scene.Attach(a)
	v.primitives[m] = true
	logger.Info("primitive spawned",
		zap.Uint64("id", uint64(id)),
		zap.String("mesh", m.Name),
		zap.Int("triangles", m.TriangleCount()),
	)
	v.updateTitle()
}

// pickAt returns the artifact under a pixel.
func (v *Viewer) pickAt(x, y float32) (sketch.ArtifactID, bool) {
	w, h := v.window.Extent()
	return v.scene.Pick(v.camera.Ray(x, y, w, h))
}

func (v *Viewer) hovered() (*sketch.Artifact, bool) {
	p := v.input.Pointer()
	id, ok := v.pickAt(p.X, p.Y)
	if !ok {
		return nil, false
	}
	return v.scene.Get(id)
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	name, err := v.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("file", name))
}

func (v *Viewer) deleteAt(x, y float32) {
	id, ok := v.pickAt(x, y)
	if !ok {
		return
	}
	a, _ := v.scene.Get(id)
	if v.scene.Remove(id) {
		v.renderer.Release(a.Mesh)
		delete(v.primitives, a.Mesh)
		v.play(audio.CueDeleted)
		logger.Info("artifact deleted", zap.Uint64("id", uint64(id)))
		v.updateTitle()
	}
}

func (v *Viewer) fitScene() {
	entries := v.scene.All()
	if len(entries) == 0 {
		return
	}
	b := entries[0].Artifact.WorldBounds()
	for _, e := range entries[1:] {
		wb := e.Artifact.WorldBounds()
		b.Extend(wb.Min)
		b.Extend(wb.Max)
	}
	v.camera.FitToBounds(b)
}

func (v *Viewer) render() {
	v.renderer.Begin()

	viewProj := v.camera.ViewProjection(v.window.Aspect())
	v.renderer.DrawLines(v.grid, viewProj, colorGrid)

	for _, e := range v.scene.All() {
		a := e.Artifact
		model := math.Translate(a.Anchor.X, a.Anchor.Y, a.Anchor.Z)
		v.renderer.DrawMesh(a.Mesh, model, viewProj, v.colorOf(a))
	}
	v.renderer.DrawTrail(v.trail, viewProj)

	if !v.controller.Drawing() {
		if a, ok := v.hovered(); ok {
			v.renderer.DrawLines(debug.BoundsWireframe(a.WorldBounds(), debug.DefaultBBoxPadding), viewProj, colorHover)
		}
	}

	v.renderer.End()
}

func (v *Viewer) colorOf(a *sketch.Artifact) math.Vec3 {
	switch {
	case v.primitives[a.Mesh]:
		return colorPrimitive
	case !a.Complete:
		return colorPartial
	}
	return colorSketch
}

func (v *Viewer) updateTitle() {
	v.window.SetTitle(fmt.Sprintf("%s - %d shapes", Title, v.scene.Len()))
}

// newSound opens the speaker. A missing audio device is not fatal.
func newSound(cfg config.AudioConfig) *audio.Manager {
	m := audio.New()
	m.SetVolume(cfg.Volume)
	if err := m.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
		return nil
	}

	overrides := map[audio.Cue]string{
		audio.CueCreated:   cfg.CreatedSound,
		audio.CueDiscarded: cfg.DiscardedSound,
	}
	for cue, path := range overrides {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err == nil {
			err = m.LoadOverride(cue, data)
		}
		if err != nil {
			logger.Warn("sound override ignored", zap.String("path", path), zap.Error(err))
		}
	}
	return m
}

func (v *Viewer) play(cue audio.Cue) {
	if v.sound == nil {
		return
	}
	if err := v.sound.Play(cue); err != nil {
		logger.Debug("cue not played", zap.Error(err))
	}
}

package sketch

import (
	"go.uber.org/zap"

	"github.com/Faultbox/conic-sketch/internal/logger"
	"github.com/Faultbox/conic-sketch/pkg/math"
)

// ArtifactID identifies an artifact owned by a Scene.
type ArtifactID uint64

// InputSource is the tracked pen or controller.
type InputSource interface {
	CurrentPosition() math.Vec3
	IsActive() bool
}

// OrientationProvider supplies the reference orientation at stroke start,
// typically the viewpoint or the drawing hand.
type OrientationProvider interface {
	Orientation() math.Quat
}

// Scene takes ownership of finished artifacts.
type Scene interface {
	Attach(a *Artifact) ArtifactID
}

// Trail draws the in-progress stroke.
type Trail interface {
	Begin()
	Append(p math.Vec3)
	Clear()
}

// Controller drives a Recorder and Pipeline from an InputSource, one Tick per
// simulation step.
type Controller struct {
	input    InputSource
	orient   OrientationProvider
	scene    Scene
	trail    Trail
	recorder *Recorder
	pipeline *Pipeline

	completed []func(*Artifact, ArtifactID)
	discarded []func(error)
}

// NewController wires the collaborators together. trail may be nil.
func NewController(input InputSource, orient OrientationProvider, scene Scene, trail Trail,
	recorder *Recorder, pipeline *Pipeline) *Controller {
	if trail == nil {
		trail = nopTrail{}
	}
	return &Controller{
		input:    input,
		orient:   orient,
		scene:    scene,
		trail:    trail,
		recorder: recorder,
		pipeline: pipeline,
	}
}

// OnStrokeCompleted registers fn to run after an artifact is attached.
func (c *Controller) OnStrokeCompleted(fn func(*Artifact, ArtifactID)) {
	c.completed = append(c.completed, fn)
}

// OnStrokeDiscarded registers fn to run when a stroke yields no artifact.
func (c *Controller) OnStrokeDiscarded(fn func(error)) {
	c.discarded = append(c.discarded, fn)
}

// Drawing reports whether a stroke is in progress.
func (c *Controller) Drawing() bool {
	return c.recorder.Drawing()
}

// Tick samples the input once and advances the stroke state.
func (c *Controller) Tick() {
	active := c.input.IsActive()
	drawing := c.recorder.Drawing()

	switch {
	case active && !drawing:
		c.recorder.Begin(c.orient.Orientation())
		c.trail.Begin()
		logger.Debug("stroke started")
		c.sample()
	case active && drawing:
		c.sample()
	case !active && drawing:
		c.finish()
	}
}

// Cancel abandons the in-progress stroke. Nothing is attached or reported.
func (c *Controller) Cancel() {
	if !c.recorder.Drawing() {
		return
	}
	c.recorder.Cancel()
	c.trail.Clear()
	logger.Debug("stroke cancelled")
}

func (c *Controller) sample() {
	p := c.input.CurrentPosition()
	if c.recorder.Record(p) {
		c.trail.Append(p)
	}
}

func (c *Controller) finish() {
	n := len(c.recorder.Points())
	stroke, err := c.recorder.End()
	if err != nil {
		c.discard(err, n)
		return
	}

	art, err := c.pipeline.Build(stroke)
	if err != nil {
		c.discard(err, n)
		return
	}

	id := c.scene.Attach(art)
	c.trail.Clear()
	logger.Info("shape created",
		zap.Uint64("id", uint64(id)),
		zap.Int("vertices", len(art.Mesh.Vertices)),
		zap.Int("triangles", art.Mesh.TriangleCount()),
		zap.Bool("complete", art.Complete),
	)
	for _, fn := range c.completed {
		fn(art, id)
	}
}

func (c *Controller) discard(err error, points int) {
	c.trail.Clear()
	logger.Warn("stroke discarded", zap.Int("points", points), zap.Error(err))
	for _, fn := range c.discarded {
		fn(err)
	}
}

type nopTrail struct{}

func (nopTrail) Begin()           {}
func (nopTrail) Append(math.Vec3) {}
func (nopTrail) Clear()           {}

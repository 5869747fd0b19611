package sketch

import (
	"fmt"

	"github.com/Faultbox/conic-sketch/internal/config"
	"github.com/Faultbox/conic-sketch/pkg/math"
)

// minStrokePoints is the floor applied to RecorderConfig.MinPoints. A closed
// outline needs more than three points.
const minStrokePoints = 4

// RecorderConfig holds sampling and closure rules.
type RecorderConfig struct {
	MinDistance      float32 // samples closer than this to the last point are dropped
	ClosureThreshold float32 // first-to-last gap must be strictly below this
	MinPoints        int     // fewest points a closed stroke may have, at least 4
}

// Stroke is a finished, closed point loop plus the orientation captured when
// it started.
type Stroke struct {
	Points      []math.Vec3
	Orientation math.Quat
}

// Recorder accumulates one stroke at a time.
type Recorder struct {
	cfg         RecorderConfig
	points      []math.Vec3
	orientation math.Quat
	drawing     bool
}

// RecorderConfigFrom extracts the recorder rules from drawing settings.
func RecorderConfigFrom(d config.DrawingConfig) RecorderConfig {
	return RecorderConfig{
		MinDistance:      d.MinDistance,
		ClosureThreshold: d.ClosureThreshold,
		MinPoints:        d.MinPoints,
	}
}

// NewRecorder creates a recorder with the given rules.
func NewRecorder(cfg RecorderConfig) *Recorder {
	return &Recorder{cfg: cfg}
}

// Begin starts a new stroke, discarding any buffered points. The reference
// orientation is fixed for the stroke's lifetime.
func (r *Recorder) Begin(orientation math.Quat) {
	r.points = r.points[:0]
	r.orientation = orientation
	r.drawing = true
}

// Record appends p if the buffer is empty or p is farther than MinDistance
// from the last kept point. Reports whether p was kept.
func (r *Recorder) Record(p math.Vec3) bool {
	if !r.drawing {
		return false
	}
	if n := len(r.points); n > 0 && r.points[n-1].Distance(p) <= r.cfg.MinDistance {
		return false
	}
	r.points = append(r.points, p)
	return true
}

// End finishes the stroke. A stroke with fewer than MinPoints points, or
// whose ends are not within ClosureThreshold, is discarded with an error
// wrapping ErrTooFewPoints or ErrOpenLoop.
func (r *Recorder) End() (*Stroke, error) {
	if !r.drawing {
		return nil, ErrNotDrawing
	}
	r.drawing = false

	n := len(r.points)
	if least := max(r.cfg.MinPoints, minStrokePoints); n < least {
		return nil, fmt.Errorf("%w: %d < %d", ErrTooFewPoints, n, least)
	}
	if gap := r.points[0].Distance(r.points[n-1]); gap >= r.cfg.ClosureThreshold {
		return nil, fmt.Errorf("%w: gap %.3f >= %.3f", ErrOpenLoop, gap, r.cfg.ClosureThreshold)
	}

	pts := make([]math.Vec3, n)
	copy(pts, r.points)
	return &Stroke{Points: pts, Orientation: r.orientation}, nil
}

// Cancel drops the in-progress stroke without producing anything.
func (r *Recorder) Cancel() {
	r.points = r.points[:0]
	r.drawing = false
}

// Drawing reports whether a stroke is in progress.
func (r *Recorder) Drawing() bool {
	return r.drawing
}

// Points returns the points recorded so far. The slice is only valid until
// the next Begin or Record call.
func (r *Recorder) Points() []math.Vec3 {
	return r.points
}

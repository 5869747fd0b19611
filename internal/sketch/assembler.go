package sketch

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/conic-sketch/internal/config"
	"github.com/Faultbox/conic-sketch/internal/engine/mesh"
	"github.com/Faultbox/conic-sketch/internal/logger"
	"github.com/Faultbox/conic-sketch/pkg/math"
	"github.com/Faultbox/conic-sketch/pkg/triangulate"
)

// ArtifactName is the mesh name given to every sketched shape.
const ArtifactName = "UserShape"

// Collider is the physics shape derived from an artifact's geometry.
type Collider struct {
	Vertices []math.Vec3
	Indices  []uint32

	// Convex asks the physics engine to treat the shape as its convex hull,
	// which dynamic bodies require.
	Convex bool

	// NeedsDecomposition is set when the outline is concave, so the convex
	// hull covers more than the drawn shape.
	NeedsDecomposition bool
}

// Body holds the rigid-body flags the scene applies to a new artifact.
type Body struct {
	UseGravity bool
	Kinematic  bool
	Layer      string
}

// Artifact is a finished flat shape. Mesh positions are relative to Anchor.
type Artifact struct {
	Anchor   math.Vec3
	Mesh     *mesh.Mesh
	Collider Collider
	Body     Body

	// Complete is false when triangulation stalled and the mesh has gaps.
	Complete bool
}

// WorldBounds returns the mesh bounds placed at the anchor.
func (a *Artifact) WorldBounds() mesh.Bounds {
	return a.Mesh.Bounds.Translate(a.Anchor)
}

// Assembler builds artifacts from projected strokes.
type Assembler struct {
	cfg config.ColliderConfig
}

// NewAssembler creates an assembler applying the given collider settings.
func NewAssembler(cfg config.ColliderConfig) *Assembler {
	return &Assembler{cfg: cfg}
}

// Assemble combines the projection's 3D vertices with triangles indexing
// them. It returns ErrNoTriangles rather than a zero-triangle artifact.
func (a *Assembler) Assemble(proj Projection, res triangulate.Result) (*Artifact, error) {
	if len(res.Triangles) == 0 {
		return nil, ErrNoTriangles
	}

	indices := res.Indices()
	m, err := mesh.New(ArtifactName, proj.Vertices, indices)
	if err != nil {
		return nil, fmt.Errorf("building mesh: %w", err)
	}

	concave := !triangulate.IsConvex(proj.Polygon)
	if concave && a.cfg.Convex {
		logger.Warn("collider hull covers concave outline",
			zap.Int("vertices", len(proj.Vertices)),
		)
	}

	return &Artifact{
		Anchor: proj.Anchor,
		Mesh:   m,
		Collider: Collider{
			Vertices:           proj.Vertices,
			Indices:            indices,
			Convex:             a.cfg.Convex,
			NeedsDecomposition: concave,
		},
		Body: Body{
			UseGravity: a.cfg.UseGravity,
			Kinematic:  a.cfg.Kinematic,
			Layer:      a.cfg.Layer,
		},
		Complete: res.Complete,
	}, nil
}

// Wrap turns a prebuilt mesh, such as a procedural primitive, into an
// artifact placed at anchor. concave marks shapes whose hull overshoots.
func (a *Assembler) Wrap(m *mesh.Mesh, anchor math.Vec3, concave bool) *Artifact {
	return &Artifact{
		Anchor: anchor,
		Mesh:   m,
		Collider: Collider{
			Vertices:           m.Positions(),
			Indices:            m.Indices,
			Convex:             a.cfg.Convex,
			NeedsDecomposition: concave,
		},
		Body: Body{
			UseGravity: a.cfg.UseGravity,
			Kinematic:  a.cfg.Kinematic,
			Layer:      a.cfg.Layer,
		},
		Complete: true,
	}
}

// Pipeline runs a closed stroke through projection, triangulation and
// assembly.
type Pipeline struct {
	Projector Projector
	Assembler *Assembler
}

// NewPipeline builds a pipeline from configuration.
func NewPipeline(drawing config.DrawingConfig, collider config.ColliderConfig) (*Pipeline, error) {
	mode, err := ParseProjectionMode(drawing.Projection)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		Projector: Projector{Mode: mode},
		Assembler: NewAssembler(collider),
	}, nil
}

// Build turns a stroke into an artifact.
func (p *Pipeline) Build(stroke *Stroke) (*Artifact, error) {
	proj := p.Projector.Project(stroke.Points, stroke.Orientation)
	logger.Debug("stroke projected",
		zap.Stringer("mode", p.Projector.Mode),
		zap.Int("points", len(proj.Polygon)),
		zap.Float32("planarity", Planarity(proj)),
	)

	res := triangulate.Triangulate(proj.Polygon)
	if !res.Complete {
		logger.Warn("triangulation incomplete",
			zap.Int("emitted", len(res.Triangles)),
			zap.Int("expected", triangulate.Expected(len(proj.Polygon))),
		)
	}

	return p.Assembler.Assemble(proj, res)
}

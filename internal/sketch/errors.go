package sketch

import "errors"

// Discard reasons. They are reported, never fatal; use errors.Is to match.
var (
	ErrNotDrawing   = errors.New("no stroke in progress")
	ErrTooFewPoints = errors.New("stroke has too few points")
	ErrOpenLoop     = errors.New("stroke does not close")
	ErrNoTriangles  = errors.New("triangulation produced no triangles")
)

// Package debug provides debug visualization utilities for the viewer.
package debug

import "github.com/Faultbox/conic-sketch/internal/engine/mesh"

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the padding for selection boxes. Flat shapes have
// zero thickness, so the box needs some to stay visible edge-on.
const DefaultBBoxPadding = 0.02

// GenerateBBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func GenerateBBoxWireframeVertices(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// BoundsWireframe creates wireframe vertices for world-space bounds grown by
// padding on every side.
func BoundsWireframe(b mesh.Bounds, padding float32) []float32 {
	return GenerateBBoxWireframeVertices(
		b.Min[0]-padding, b.Min[1]-padding, b.Min[2]-padding,
		b.Max[0]+padding, b.Max[1]+padding, b.Max[2]+padding,
	)
}

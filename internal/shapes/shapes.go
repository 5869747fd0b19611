// Package shapes builds procedural primitive meshes for the conic-section
// scene: cones and double cones centred on the local origin.
package shapes

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/conic-sketch/internal/engine/mesh"
)

// MinSegments is the smallest ring resolution accepted; lower values are clamped.
const MinSegments = 3

// Cone builds a cone whose base ring lies at y = -height/2 and whose apex is
// at y = +height/2, so the bounds are centred on the origin.
//
// Vertex layout: ring [0, segments), apex, then the base centre when capBase.
// Triangles wind counter-clockwise seen from outside: sides (i+1, i, apex),
// cap (centre, i, i+1) facing down.
func Cone(radius, height float32, segments int, capBase bool) *mesh.Mesh {
	segments = max(MinSegments, segments)

	ringCount := segments
	apex := uint32(ringCount)
	baseCenter := uint32(ringCount + 1)

	vertexCount := ringCount + 1
	if capBase {
		vertexCount++
	}
	verts := make([]mesh.Vertex, vertexCount)

	halfH := height / 2
	for i := range ringCount {
		x, z := ringPoint(i, segments, radius)
		verts[i].Position = [3]float32{x, -halfH, z}
		verts[i].TexCoord = [2]float32{float32(i) / float32(segments-1), 0}
	}

	verts[apex].Position = [3]float32{0, halfH, 0}
	verts[apex].TexCoord = [2]float32{0.5, 1}

	if capBase {
		verts[baseCenter].Position = [3]float32{0, -halfH, 0}
		verts[baseCenter].TexCoord = [2]float32{0.5, 0.5}
	}

	indices := make([]uint32, 0, segments*6)
	for i := range segments {
		i0 := uint32(i)
		i1 := uint32((i + 1) % segments)
		indices = append(indices, i1, i0, apex)
	}
	if capBase {
		for i := range segments {
			i0 := uint32(i)
			i1 := uint32((i + 1) % segments)
			indices = append(indices, baseCenter, i0, i1)
		}
	}

	return finish("ProceduralCone", verts, indices)
}

// DoubleCone builds two cones sharing their apex at the origin. Height is
// tip-to-tip: the base rings sit at y = ±height/2.
//
// Vertex layout: top ring [0, seg), bottom ring [seg, 2*seg), apex.
// Both nappes wind so their normals face away from the axis.
func DoubleCone(radius, height float32, segments int) *mesh.Mesh {
	seg := max(MinSegments, segments)
	halfH := height / 2

	verts := make([]mesh.Vertex, 0, seg*2+1)
	for i := range seg {
		x, z := ringPoint(i, seg, radius)
		verts = append(verts, mesh.Vertex{
			Position: [3]float32{x, halfH, z},
			TexCoord: [2]float32{float32(i) / float32(seg), 1},
		})
	}
	for i := range seg {
		x, z := ringPoint(i, seg, radius)
		verts = append(verts, mesh.Vertex{
			Position: [3]float32{x, -halfH, z},
			TexCoord: [2]float32{float32(i) / float32(seg), 0},
		})
	}

	apex := uint32(len(verts))
	verts = append(verts, mesh.Vertex{TexCoord: [2]float32{0.5, 0.5}})

	s := uint32(seg)
	indices := make([]uint32, 0, seg*6)
	for i := range s {
		indices = append(indices, apex, i, (i+1)%s)
	}
	for i := range s {
		indices = append(indices, apex, s+(i+1)%s, s+i)
	}

	return finish("ProceduralDoubleCone", verts, indices)
}

func ringPoint(i, segments int, radius float32) (x, z float32) {
	ang := float32(i) / float32(segments) * 2 * math32.Pi
	return math32.Cos(ang) * radius, math32.Sin(ang) * radius
}

func finish(name string, verts []mesh.Vertex, indices []uint32) *mesh.Mesh {
	m := &mesh.Mesh{Name: name, Vertices: verts, Indices: indices}
	m.RecalculateNormals()
	m.RecalculateBounds()
	return m
}

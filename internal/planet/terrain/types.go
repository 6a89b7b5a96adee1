package terrain

import (
	"github.com/Theoffs06/godot-planets/pkg/math"
)

// Mesh holds displaced-sphere vertex and triangle data.
// One instance is built per resolution: a high-detail visual mesh and a
// reduced collision mesh, both from the same heightfield and formula so the
// two surfaces cannot drift apart.
type Mesh struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	Indices   []uint32

	RadialSegments int
	HeightSegments int
}

// VertexCount returns the number of vertices in the shared-vertex grid.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

package terrain

import (
	"github.com/Theoffs06/godot-planets/pkg/math"
)

// BuildMesh constructs a displaced sphere at the given angular resolution.
// The grid shares vertices between cells: (radialSegments+1) columns by
// (heightSegments+1) rows, with the first and last column both evaluated so
// the u seam closes exactly. Each vertex sits at
// SpherePoint(u,v) * (radius + height(u,v)).
//
// Vertex normals are accumulated per face and normalized, which is what the
// collision mesh and flat debug shading consume; the visual surface may
// shade itself however it likes.
func BuildMesh(hf *Heightfield, radius float32, radialSegments, heightSegments int) *Mesh {
	cols := radialSegments + 1
	rows := heightSegments + 1

	mesh := &Mesh{
		Positions:      make([]math.Vec3, 0, cols*rows),
		Normals:        make([]math.Vec3, cols*rows),
		Indices:        make([]uint32, 0, radialSegments*heightSegments*6),
		RadialSegments: radialSegments,
		HeightSegments: heightSegments,
	}

	for row := 0; row < rows; row++ {
		v := float32(row) / float32(heightSegments)
		for col := 0; col < cols; col++ {
			u := float32(col) / float32(radialSegments)
			unit := SpherePoint(u, v)
			mesh.Positions = append(mesh.Positions, unit.Scale(radius+hf.HeightAt(u, v)))
		}
	}

	for row := 0; row < heightSegments; row++ {
		for col := 0; col < radialSegments; col++ {
			i := uint32(row*cols + col)
			below := i + uint32(cols)
			mesh.Indices = append(mesh.Indices,
				i, below, i+1,
				i+1, below, below+1,
			)
		}
	}

	accumulateNormals(mesh)
	return mesh
}

// accumulateNormals computes area-weighted vertex normals from the triangle
// faces. The edge order matches the outward direction of the tangent-cross
// normal query, so mesh shading and NormalAt agree.
func accumulateNormals(mesh *Mesh) {
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		ia, ib, ic := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		a := mesh.Positions[ia]
		ab := mesh.Positions[ib].Sub(a)
		ac := mesh.Positions[ic].Sub(a)
		face := ac.Cross(ab)

		mesh.Normals[ia] = mesh.Normals[ia].Add(face)
		mesh.Normals[ib] = mesh.Normals[ib].Add(face)
		mesh.Normals[ic] = mesh.Normals[ic].Add(face)
	}

	for i := range mesh.Normals {
		n := mesh.Normals[i].Normalize()
		if n.LengthSq() == 0 {
			// Isolated or zero-area vertex: fall back to the radial direction.
			n = mesh.Positions[i].Normalize()
		}
		mesh.Normals[i] = n
	}
}

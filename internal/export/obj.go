// Package export writes generated planet data to interchange formats for
// inspection in external tools.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Theoffs06/godot-planets/internal/planet/terrain"
)

// WriteOBJ writes the mesh as Wavefront OBJ: positions, per-vertex normals,
// and triangle faces. OBJ indices are 1-based.
func WriteOBJ(w io.Writer, m *terrain.Mesh, name string) error {
	bw := bufio.NewWriter(w)

	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for _, p := range m.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}

// SaveOBJ writes the mesh to a file at path.
func SaveOBJ(path string, m *terrain.Mesh, name string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteOBJ(f, m, name); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

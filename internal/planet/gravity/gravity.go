// Package gravity models per-planet radial gravity fields.
package gravity

import (
	"github.com/Theoffs06/godot-planets/pkg/math"
)

// centerEpsilon guards against normalizing a near-zero offset when a body
// sits at a planet's exact center.
const centerEpsilon = 1e-4

// Source is a radial gravity field pulling toward a fixed center with
// constant magnitude (not inverse-square).
type Source struct {
	Center   math.Vec3
	Strength float32
}

// ForceAt returns the gravitational force on a body at the given position:
// a vector of length Strength pointing at the center, or zero within
// centerEpsilon of the center.
func (s *Source) ForceAt(position math.Vec3) math.Vec3 {
	offset := s.Center.Sub(position)
	if offset.Length() < centerEpsilon {
		return math.Vec3{}
	}
	return offset.Normalize().Scale(s.Strength)
}

// Registry maps planet identifiers to their gravity sources. Consumers are
// handed a registry explicitly at construction; nothing walks a scene graph
// looking for sources.
type Registry struct {
	sources map[string]*Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]*Source)}
}

// Add registers a source under the given id, replacing any previous entry.
func (r *Registry) Add(id string, s *Source) {
	r.sources[id] = s
}

// Remove unregisters the source with the given id.
func (r *Registry) Remove(id string) {
	delete(r.sources, id)
}

// Get returns the source registered under id, or nil.
func (r *Registry) Get(id string) *Source {
	return r.sources[id]
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	return len(r.sources)
}

// TotalAt sums the force of every registered source at the given position.
func (r *Registry) TotalAt(position math.Vec3) math.Vec3 {
	var total math.Vec3
	for _, s := range r.sources {
		total = total.Add(s.ForceAt(position))
	}
	return total
}

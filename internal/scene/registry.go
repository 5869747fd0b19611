// Package scene keeps the shapes that live in the sketch world.
//
// A Registry owns every attached artifact until it is removed. It is safe
// for concurrent use: the controller attaches from the simulation tick while
// the viewer reads for rendering and picking.
package scene

import (
	"cmp"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/conic-sketch/internal/engine/picking"
	"github.com/Faultbox/conic-sketch/internal/logger"
	"github.com/Faultbox/conic-sketch/internal/sketch"
)

// Entry pairs an artifact with the ID it was attached under.
type Entry struct {
	ID       sketch.ArtifactID
	Artifact *sketch.Artifact
}

// Registry is an in-memory store of scene artifacts.
type Registry struct {
	mu      sync.Mutex
	nextID  sketch.ArtifactID
	entries map[sketch.ArtifactID]*sketch.Artifact
}

// NewRegistry creates an empty registry. IDs start at 1.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[sketch.ArtifactID]*sketch.Artifact)}
}

// Attach stores the artifact and returns its new ID.
func (r *Registry) Attach(a *sketch.Artifact) sketch.ArtifactID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.entries[r.nextID] = a
	logger.Debug("artifact attached",
		zap.Uint64("id", uint64(r.nextID)),
		zap.Int("count", len(r.entries)))
	return r.nextID
}

// Get returns the artifact stored under id.
func (r *Registry) Get(id sketch.ArtifactID) (*sketch.Artifact, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.entries[id]
	return a, ok
}

// Remove deletes the artifact. It reports whether anything was removed.
func (r *Registry) Remove(id sketch.ArtifactID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	logger.Debug("artifact removed", zap.Uint64("id", uint64(id)))
	return true
}

// Len returns the number of stored artifacts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// All returns a snapshot of every entry ordered by ID.
func (r *Registry) All() []Entry {
	r.mu.Lock()
	out := make([]Entry, 0, len(r.entries))
	for id, a := range r.entries {
		out = append(out, Entry{ID: id, Artifact: a})
	}
	r.mu.Unlock()

	slices.SortFunc(out, func(a, b Entry) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Pick returns the artifact whose world bounds the ray hits first.
func (r *Registry) Pick(ray picking.Ray) (sketch.ArtifactID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		best    sketch.ArtifactID
		bestT   float32
		matched bool
	)
	for id, a := range r.entries {
		t, hit := ray.IntersectAABB(a.WorldBounds())
		if !hit {
			continue
		}
		// Ties go to the newest shape so a freshly drawn outline wins over
		// one it was drawn on top of.
		if !matched || t < bestT || (t == bestT && id > best) {
			best, bestT, matched = id, t, true
		}
	}
	return best, matched
}

// Clear removes every artifact. IDs keep increasing afterwards.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.entries)
}

package scene

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/conic-sketch/internal/engine/mesh"
	"github.com/Faultbox/conic-sketch/internal/engine/picking"
	"github.com/Faultbox/conic-sketch/internal/sketch"
	"github.com/Faultbox/conic-sketch/pkg/math"
)

// unitSquare returns an artifact covering [0,1]x[0,1] in the plane z = anchor.Z.
func unitSquare(t *testing.T, anchor math.Vec3) *sketch.Artifact {
	t.Helper()
	m, err := mesh.New(sketch.ArtifactName, []math.Vec3{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}, []uint32{0, 1, 2, 0, 2, 3})
	require.NoError(t, err)
	return &sketch.Artifact{Anchor: anchor, Mesh: m, Complete: true}
}

func TestRegistry_AttachGetRemove(t *testing.T) {
	r := NewRegistry()
	a := unitSquare(t, math.Vec3{})

	id := r.Attach(a)
	assert.Equal(t, sketch.ArtifactID(1), id)
	assert.Equal(t, 1, r.Len())

	got, ok := r.Get(id)
	require.True(t, ok)
	assert.Same(t, a, got)

	assert.True(t, r.Remove(id))
	assert.False(t, r.Remove(id), "second remove is a no-op")
	_, ok = r.Get(id)
	assert.False(t, ok)
	assert.Zero(t, r.Len())
}

func TestRegistry_AllOrderedByID(t *testing.T) {
	r := NewRegistry()
	for range 5 {
		r.Attach(unitSquare(t, math.Vec3{}))
	}
	r.Remove(3)

	var ids []sketch.ArtifactID
	for _, e := range r.All() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []sketch.ArtifactID{1, 2, 4, 5}, ids)
}

func TestRegistry_ClearKeepsIDsMonotonic(t *testing.T) {
	r := NewRegistry()
	r.Attach(unitSquare(t, math.Vec3{}))
	r.Attach(unitSquare(t, math.Vec3{}))
	r.Clear()

	assert.Empty(t, r.All())
	assert.Equal(t, sketch.ArtifactID(3), r.Attach(unitSquare(t, math.Vec3{})))
}

func TestRegistry_PickNearest(t *testing.T) {
	r := NewRegistry()
	far := r.Attach(unitSquare(t, math.Vec3{Z: -2}))
	near := r.Attach(unitSquare(t, math.Vec3{Z: 1}))
	r.Attach(unitSquare(t, math.Vec3{X: 10}))

	ray := picking.Ray{Origin: math.Vec3{X: 0.5, Y: 0.5, Z: 5}, Direction: math.Vec3{Z: -1}}
	id, ok := r.Pick(ray)
	require.True(t, ok)
	assert.Equal(t, near, id)

	r.Remove(near)
	id, ok = r.Pick(ray)
	require.True(t, ok)
	assert.Equal(t, far, id)

	miss := picking.Ray{Origin: math.Vec3{X: 5, Y: 5, Z: 5}, Direction: math.Vec3{Z: -1}}
	_, ok = r.Pick(miss)
	assert.False(t, ok)
}

func TestRegistry_PickTiePrefersNewest(t *testing.T) {
	r := NewRegistry()
	r.Attach(unitSquare(t, math.Vec3{}))
	newest := r.Attach(unitSquare(t, math.Vec3{}))

	id, ok := r.Pick(picking.Ray{Origin: math.Vec3{X: 0.5, Y: 0.5, Z: 1}, Direction: math.Vec3{Z: -1}})
	require.True(t, ok)
	assert.Equal(t, newest, id)
}

func TestRegistry_ConcurrentAttach(t *testing.T) {
	r := NewRegistry()
	a := unitSquare(t, math.Vec3{})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				r.Attach(a)
			}
		}()
	}
	wg.Wait()

	all := r.All()
	require.Len(t, all, 200)
	assert.Equal(t, sketch.ArtifactID(200), all[len(all)-1].ID)
}

func TestRegistry_SatisfiesControllerScene(t *testing.T) {
	var _ sketch.Scene = NewRegistry()
}

package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSphereSolid(t *testing.T) {

	s := NewSphereSolid[float64](2, 4, 5)
	require.Len(t, s.Vertices, 20)
	require.Len(t, s.Faces, 12)
	require.NoError(t, s.Validate())

	for i, v := range s.Vertices {
		assert.InDelta(t, 2, v.Magnitude(), 1e-9, "vertex %d", i)
	}

	// First ring is the south pole, last ring the north pole
	assert.InDelta(t, -2, s.Vertices[0].Y, 1e-9)
	assert.InDelta(t, 2, s.Vertices[19].Y, 1e-9)

	assert.Equal(t, []int{1, 2, 7, 6}, s.Faces[0].Indices)
	assert.Len(t, s.TriangleIndices(), 12*6)
}

func TestNewSphereSolidTooFewRings(t *testing.T) {
	s := NewSphereSolid[float32](1, 1, 8)
	assert.True(t, s.IsEmpty())

	s = NewSphereSolid[float32](1, 8, 0)
	assert.True(t, s.IsEmpty())
}

func TestSpheresOverlap(t *testing.T) {

	a := NewVec3(0.0, 0.0, 0.0)
	assert.True(t, SpheresOverlap(a, 1, NewVec3(1.5, 0.0, 0.0), 1))
	assert.False(t, SpheresOverlap(a, 1, NewVec3(2.0, 0.0, 0.0), 1))
	assert.False(t, SpheresOverlap(a, 1, NewVec3(0.0, 3.0, 0.0), 1))
}

func TestProject(t *testing.T) {

	p := Project(NewVec3(3.0, 4.0, 0.0), NewVec3(2.0, 0.0, 0.0))
	assert.Equal(t, NewVec3(3.0, 0.0, 0.0), p)

	p = Project(NewVec3(1.0, 1.0, 0.0), NewVec3(-1.0, 1.0, 0.0))
	assert.InDelta(t, 0, p.Magnitude(), 1e-12)

	assert.Equal(t, Vec3[float64]{}, Project(NewVec3(1.0, 2.0, 3.0), Vec3[float64]{}))
	assert.False(t, math.IsNaN(Project(NewVec3(1.0, 2.0, 3.0), Vec3[float64]{}).X))
}

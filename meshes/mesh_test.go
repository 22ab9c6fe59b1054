package meshes

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bloeys/nrast/geom"
	"github.com/bloeys/nrast/logging"
	"github.com/bloeys/nrast/wavefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logging.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestLoadSolidObj(t *testing.T) {

	path := filepath.Join(t.TempDir(), "quad.OBJ")
	src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	s, err := LoadSolid(path)
	require.NoError(t, err)
	assert.Len(t, s.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, s.TriangleIndices())
}

func TestLoadSolidMissing(t *testing.T) {

	_, err := LoadSolid(filepath.Join(t.TempDir(), "missing.obj"))
	assert.ErrorIs(t, err, wavefront.ErrResourceUnavailable)

	_, err = LoadSolid(filepath.Join(t.TempDir(), "missing.md2"))
	assert.ErrorIs(t, err, wavefront.ErrResourceUnavailable)
}

func TestNewMeshFromEmptySolid(t *testing.T) {

	_, err := NewMeshFromSolid("empty", &geom.Solid[float64]{})
	assert.ErrorIs(t, err, ErrEmptyMesh)

	// Faces that only reference missing vertices draw nothing either
	s := geom.Solid[float64]{Faces: []geom.Face{{Indices: []int{1, 2, 3}}}}
	_, err = NewMeshFromSolid("dangling", &s)
	assert.ErrorIs(t, err, ErrEmptyMesh)
}

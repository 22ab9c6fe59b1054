package wavefront

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bloeys/nrast/geom"
	"github.com/bloeys/nrast/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logging.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func parseString(t *testing.T, s string) Result {
	t.Helper()
	res, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return res
}

func TestParseRepeatedIndexFace(t *testing.T) {

	res := parseString(t, "v 1.0 2.0 3.0\nf 1 1 1\n")

	require.Len(t, res.Solid.Vertices, 1)
	assert.Equal(t, geom.NewVec3(1.0, 2.0, 3.0), res.Solid.Vertices[0])

	// Only the count of parsed references matters, not whether they are distinct
	require.Len(t, res.Solid.Faces, 1)
	assert.Equal(t, []int{1, 1, 1}, res.Solid.Faces[0].Indices)
	assert.Empty(t, res.Errs)
	assert.Equal(t, 2, res.Lines)
}

func TestParseMalformedVertex(t *testing.T) {

	res := parseString(t, "v abc\n")

	assert.Empty(t, res.Solid.Vertices)
	require.Len(t, res.Errs, 1)
	assert.ErrorIs(t, res.Errs[0], ErrMalformedVertex)
	assert.Equal(t, 1, res.Errs[0].Line)
}

func TestParseVertexFields(t *testing.T) {

	tests := []struct {
		name  string
		line  string
		ok    bool
		value geom.Vec3[float64]
	}{
		{"plain", "v 1 2 3", true, geom.NewVec3(1.0, 2, 3)},
		{"with w", "v 1 2 3 0.5", true, geom.NewVec3(1.0, 2, 3)},
		{"extra fields ignored", "v 1 2 3 4 5 6", true, geom.NewVec3(1.0, 2, 3)},
		{"negative", "v -1.5 -2 -0.25", true, geom.NewVec3(-1.5, -2, -0.25)},
		{"padded", "   v  4   5\t6   ", true, geom.NewVec3(4.0, 5, 6)},
		{"exponent", "v 1e2 0 0", true, geom.NewVec3(100.0, 0, 0)},
		{"too few", "v 1 2", false, geom.Vec3[float64]{}},
		{"stops at first bad field", "v 1 x 2 3", false, geom.Vec3[float64]{}},
		{"no numbers", "v abc def ghi", false, geom.Vec3[float64]{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {

			res := parseString(t, tc.line)
			if !tc.ok {
				assert.Empty(t, res.Solid.Vertices)
				require.Len(t, res.Errs, 1)
				assert.ErrorIs(t, res.Errs[0], ErrMalformedVertex)
				return
			}

			require.Empty(t, res.Errs)
			require.Len(t, res.Solid.Vertices, 1)
			assert.Equal(t, tc.value, res.Solid.Vertices[0])
		})
	}
}

func TestParseFaces(t *testing.T) {

	src := `# a unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
vt 0 0
f 1/1/1 2/2/1 3/3/1
f 1//1 3//1 4//1
f 1 2 3 4
f -4 -3 -2
f 1 2
f 1 a b
f 1 x 2 3
`
	res := parseString(t, src)

	require.Len(t, res.Solid.Vertices, 4)
	require.Len(t, res.Solid.Faces, 4)
	assert.Equal(t, []int{1, 2, 3}, res.Solid.Faces[0].Indices)
	assert.Equal(t, []int{1, 3, 4}, res.Solid.Faces[1].Indices)
	assert.Equal(t, []int{1, 2, 3, 4}, res.Solid.Faces[2].Indices)
	assert.Equal(t, []int{1, 2, 3}, res.Solid.Faces[3].Indices)
	require.NoError(t, res.Solid.Validate())

	require.Len(t, res.Normals, 1)
	assert.Equal(t, geom.NewVec3(0.0, 0, 1), res.Normals[0])

	require.Len(t, res.Errs, 3)
	for _, e := range res.Errs {
		assert.ErrorIs(t, e, ErrMalformedFace)
	}
	assert.ErrorIs(t, res.Errs[0], geom.ErrDegenerateFace)
	assert.Equal(t, 12, res.Errs[0].Line)
	assert.Equal(t, 13, res.Errs[1].Line)

	// One bad reference drops the face instead of leaving a triangle behind
	assert.Equal(t, 14, res.Errs[2].Line)
	assert.Contains(t, res.Errs[2].Error(), "'x'")
	assert.Equal(t, 14, res.Lines)
}

func TestParseSkipsShortAndUnknownLines(t *testing.T) {

	res := parseString(t, "\n\nv\nf\nvt 0.5 0.5\no cube\ns off\n#v 1 2 3\nv 1 2 3\r\n")

	assert.Empty(t, res.Errs)
	require.Len(t, res.Solid.Vertices, 1)
	assert.Empty(t, res.Solid.Faces)
	assert.Equal(t, 9, res.Lines)
}

func TestParseContinuesAfterErrors(t *testing.T) {

	res := parseString(t, "v 1 2\nv 0 0 0\nvn x\nv 1 1 1\nv 2 2 2\nf 1 2 3\n")

	assert.Len(t, res.Solid.Vertices, 3)
	assert.Len(t, res.Solid.Faces, 1)
	require.Len(t, res.Errs, 2)
	assert.Equal(t, 1, res.Errs[0].Line)
	assert.ErrorIs(t, res.Errs[1], ErrMalformedNormal)
	assert.Contains(t, res.Errs[0].Error(), "line 1")
}

func TestReadFile(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644))

	s, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, s.Vertices, 3)
	assert.Len(t, s.Faces, 1)
}

func TestReadFileMissing(t *testing.T) {

	s, err := ReadFile(filepath.Join(t.TempDir(), "missing.obj"))
	assert.ErrorIs(t, err, ErrResourceUnavailable)
	assert.True(t, s.IsEmpty())
}

package meshes

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bloeys/assimp-go/asig"
	"github.com/bloeys/nrast/buffers"
	"github.com/bloeys/nrast/geom"
	"github.com/bloeys/nrast/logging"
	"github.com/bloeys/nrast/md2"
	"github.com/bloeys/nrast/wavefront"
)

var ErrEmptyMesh = errors.New("mesh has no drawable triangles")

type SubMesh struct {
	BaseVertex int32
	BaseIndex  uint32
	IndexCount int32
}

type Mesh struct {
	Name string
	/*
		Vao has the following shader attribute layout:
			- Loc0: Pos
	*/
	Vao       buffers.VertexArray
	SubMeshes []SubMesh
}

func (m *Mesh) Delete() {
	m.Vao.Delete()
	m.SubMeshes = nil
}

var (
	// DefaultMeshLoadFlags are the flags always applied when importing a model through assimp
	DefaultMeshLoadFlags asig.PostProcess = asig.PostProcessTriangulate
)

// NewMesh loads the model at modelPath with LoadSolid and uploads it
func NewMesh(name, modelPath string) (Mesh, error) {

	solid, err := LoadSolid(modelPath)
	if err != nil {
		return Mesh{}, err
	}

	return NewMeshFromSolid(name, &solid)
}

// NewMeshFromSolid uploads the vertices of s and its faces as a triangle list.
// Faces with less than 3 indices or with references outside of the solid are left out.
func NewMeshFromSolid[T geom.Number](name string, s *geom.Solid[T]) (Mesh, error) {

	indices := s.TriangleIndices()
	if len(indices) == 0 {
		return Mesh{}, fmt.Errorf("%w: '%s'", ErrEmptyMesh, name)
	}

	mesh := Mesh{
		Name: name,
		Vao:  buffers.NewVertexArray(),
		SubMeshes: []SubMesh{
			{BaseVertex: 0, BaseIndex: 0, IndexCount: int32(len(indices))},
		},
	}

	vbo := buffers.NewVertexBuffer(buffers.Element{ElementType: buffers.DataTypeVec3})
	vbo.SetData(s.Positions(), buffers.BufUsage_Static_Draw)

	ibo := buffers.NewIndexBuffer()
	ibo.SetData(indices)

	mesh.Vao.AddVertexBuffer(vbo)
	mesh.Vao.SetIndexBuffer(ibo)

	// This is needed so that if you load meshes one after the other the
	// following mesh doesn't attach its vbo/ibo to this vao
	mesh.Vao.UnBind()

	return mesh, nil
}

// LoadSolid reads .obj files with the wavefront reader, takes the first frame of .md2 files
// and imports any other format through assimp. All meshes of an assimp scene are merged into one solid.
func LoadSolid(modelPath string) (geom.Solid[float64], error) {

	switch strings.ToLower(filepath.Ext(modelPath)) {
	case ".obj":
		return wavefront.ReadFile(modelPath)

	case ".md2":
		res, err := md2.ReadFile(modelPath)
		if err != nil {
			return geom.Solid[float64]{}, fmt.Errorf("%w: %w", wavefront.ErrResourceUnavailable, err)
		}

		frame := res.FrameSolid(0)
		return geom.ConvertSolid[float64](frame), nil
	}

	scene, release, err := asig.ImportFile(modelPath, DefaultMeshLoadFlags)
	if err != nil {
		return geom.Solid[float64]{}, fmt.Errorf("%w: failed to import '%s'. Err: %w", wavefront.ErrResourceUnavailable, modelPath, err)
	}
	defer release()

	if len(scene.Meshes) == 0 {
		return geom.Solid[float64]{}, fmt.Errorf("%w: no meshes found in file '%s'", ErrEmptyMesh, modelPath)
	}

	solid := geom.Solid[float64]{}
	for i := 0; i < len(scene.Meshes); i++ {

		sceneMesh := scene.Meshes[i]
		base := len(solid.Vertices)

		for _, v := range sceneMesh.Vertices {
			solid.AddVertex(geom.NewVec3(float64(v.X()), float64(v.Y()), float64(v.Z())))
		}

		for j := range sceneMesh.Faces {

			f := &sceneMesh.Faces[j]
			indices := make([]int, len(f.Indices))
			for k := range f.Indices {
				indices[k] = base + int(f.Indices[k]) + 1
			}

			// Points and lines that assimp keeps next to triangles
			if err := solid.AddFace(indices...); err != nil {
				continue
			}
		}
	}

	logging.InfoLog.Printf("Imported '%s' with %d vertices and %d faces\n", modelPath, len(solid.Vertices), len(solid.Faces))
	return solid, nil
}

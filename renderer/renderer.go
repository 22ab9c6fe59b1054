package renderer

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrast/buffers"
	"github.com/bloeys/nrast/geom"
	"github.com/bloeys/nrast/materials"
	"github.com/bloeys/nrast/meshes"
)

type Render interface {
	DrawMesh(mesh meshes.Mesh, modelMat gglm.Mat4, mat materials.Material)
	DrawVertexArray(mat materials.Material, vao buffers.VertexArray, firstElement int32, count int32)
	SetWireframe(enabled bool)
	FrameEnd()
}

// ToMat4 converts a row-major geom matrix into the column-major float32 layout shaders expect
func ToMat4(m geom.Mat4) gglm.Mat4 {

	out := gglm.Mat4{}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out.Data[c][r] = float32(m.Data[r][c])
		}
	}

	return out
}

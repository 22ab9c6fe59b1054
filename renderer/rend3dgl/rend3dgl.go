package rend3dgl

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrast/buffers"
	"github.com/bloeys/nrast/materials"
	"github.com/bloeys/nrast/meshes"
	"github.com/bloeys/nrast/renderer"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ renderer.Render = &Rend3DGL{}

type Rend3DGL struct {
	// Meshes and raw vertex arrays share this so neither skips a needed bind
	BoundVaoId uint32
	BoundMatId uint32

	// Forced wireframe for every draw. Materials can also ask for it with MaterialSettings_Wireframe
	Wireframe bool
	polyLine  bool
}

func (r *Rend3DGL) DrawMesh(mesh meshes.Mesh, modelMat gglm.Mat4, mat materials.Material) {

	if mesh.Vao.Id != r.BoundVaoId {
		mesh.Vao.Bind()
		r.BoundVaoId = mesh.Vao.Id
	}

	if mat.Id != r.BoundMatId {
		mat.Bind()
		r.BoundMatId = mat.Id
	}

	if mat.Settings.Has(materials.MaterialSettings_HasModelMtx) {
		mat.SetUnifMat4("modelMat", &modelMat)
	}

	r.setPolygonMode(r.Wireframe || mat.Settings.Has(materials.MaterialSettings_Wireframe))

	for i := 0; i < len(mesh.SubMeshes); i++ {
		gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, mesh.SubMeshes[i].IndexCount, gl.UNSIGNED_INT, uintptr(mesh.SubMeshes[i].BaseIndex), mesh.SubMeshes[i].BaseVertex)
	}
}

func (r *Rend3DGL) DrawVertexArray(mat materials.Material, vao buffers.VertexArray, firstElement int32, elementCount int32) {

	if vao.Id != r.BoundVaoId {
		vao.Bind()
		r.BoundVaoId = vao.Id
	}

	if mat.Id != r.BoundMatId {
		mat.Bind()
		r.BoundMatId = mat.Id
	}

	r.setPolygonMode(r.Wireframe || mat.Settings.Has(materials.MaterialSettings_Wireframe))

	gl.DrawArrays(gl.TRIANGLES, firstElement, elementCount)
}

func (r *Rend3DGL) SetWireframe(enabled bool) {
	r.Wireframe = enabled
}

func (r *Rend3DGL) setPolygonMode(line bool) {

	if line == r.polyLine {
		return
	}

	if line {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	r.polyLine = line
}

func (r3d *Rend3DGL) FrameEnd() {
	r3d.BoundVaoId = 0
	r3d.BoundMatId = 0
}

func NewRend3DGL() *Rend3DGL {
	return &Rend3DGL{}
}

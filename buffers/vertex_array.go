package buffers

import (
	"github.com/bloeys/nrast/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexArray assigns attribute locations in the order vertex buffers are added,
// so a position-only buffer followed by a uv buffer gives locations 0 and 1.
type VertexArray struct {
	Id          uint32
	Vbos        []VertexBuffer
	IndexBuffer IndexBuffer

	attribCount uint32
}

func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.Id)
}

func (va *VertexArray) UnBind() {
	gl.BindVertexArray(0)
}

func (va *VertexArray) AddVertexBuffer(vbo VertexBuffer) {

	// NOTE: VBOs are only bound at 'VertexAttribPointer' (and related) calls

	va.Bind()
	vbo.Bind()

	for i := 0; i < len(vbo.layout); i++ {

		l := &vbo.layout[i]
		loc := va.attribCount

		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointerWithOffset(loc, l.ElementType.CompCount(), l.ElementType.GLType(), false, vbo.Stride, uintptr(l.Offset))
		va.attribCount++
	}

	va.Vbos = append(va.Vbos, vbo)
}

func (va *VertexArray) SetIndexBuffer(ib IndexBuffer) {
	va.Bind()
	ib.Bind()
	va.IndexBuffer = ib
}

// Delete frees the array together with every buffer added to it
func (va *VertexArray) Delete() {

	for i := range va.Vbos {
		va.Vbos[i].Delete()
	}

	if va.IndexBuffer.Id != 0 {
		va.IndexBuffer.Delete()
	}

	gl.DeleteVertexArrays(1, &va.Id)
	va.Id = 0
	va.Vbos = nil
	va.attribCount = 0
}

func NewVertexArray() VertexArray {

	vao := VertexArray{}

	gl.GenVertexArrays(1, &vao.Id)
	if vao.Id == 0 {
		logging.ErrLog.Println("Failed to create OpenGL vertex array object")
	}

	return vao
}

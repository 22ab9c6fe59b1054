package buffers

import (
	"github.com/bloeys/nrast/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type VertexBuffer struct {
	Id     uint32
	Stride int32

	// Bytes currently allocated on the gpu
	SizeBytes int
	Usage     BufUsage

	layout []Element
}

func (vb *VertexBuffer) Bind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.Id)
}

func (vb *VertexBuffer) UnBind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// SetData reallocates the buffer to exactly fit values
func (vb *VertexBuffer) SetData(values []float32, usage BufUsage) {

	vb.Bind()

	vb.Usage = usage
	vb.SizeBytes = len(values) * 4
	if vb.SizeBytes == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, gl.Ptr(nil), usage.ToGL())
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, vb.SizeBytes, gl.Ptr(&values[0]), usage.ToGL())
	}
}

// UpdateData overwrites the start of the buffer, only reallocating when values do not fit.
// Used for frames of animated models, which keep the same size every frame.
func (vb *VertexBuffer) UpdateData(values []float32) {

	sizeBytes := len(values) * 4
	if sizeBytes == 0 {
		return
	}

	if sizeBytes > vb.SizeBytes {
		vb.SetData(values, BufUsage_Dynamic_Draw)
		return
	}

	vb.Bind()
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, sizeBytes, gl.Ptr(&values[0]))
}

func (vb *VertexBuffer) SetLayout(layout ...Element) {

	vb.Stride = 0
	vb.layout = layout

	for i := 0; i < len(vb.layout); i++ {

		vb.layout[i].Offset = int(vb.Stride)
		vb.Stride += vb.layout[i].Size()
	}
}

func (vb *VertexBuffer) Delete() {
	gl.DeleteBuffers(1, &vb.Id)
	vb.Id = 0
	vb.SizeBytes = 0
}

func NewVertexBuffer(layout ...Element) VertexBuffer {

	vb := VertexBuffer{}

	gl.GenBuffers(1, &vb.Id)
	if vb.Id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL buffer")
	}

	vb.SetLayout(layout...)
	return vb
}

package md2

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/bloeys/nrast/geom"
)

// Resource is a decoded md2 model.
//
// Points holds NumFrames*NumPoints positions, frame after frame. Each position is
// already swizzled from the z-up md2 space into y-up space.
type Resource struct {
	NumFrames int
	NumPoints int
	NumMesh   int
	NumTex    int
	FrameSize int

	SkinWidth  int
	SkinHeight int

	Skins      []string
	FrameNames []string
	Points     []geom.Vec3[float32]
	Tex        []geom.Vec2[float32]
	Mesh       []Triangle
	GLCmds     []int32
}

func ReadFile(path string) (*Resource, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read md2 file '%s'. Err: %w", path, err)
	}

	res, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode md2 file '%s'. Err: %w", path, err)
	}

	return res, nil
}

func Read(r io.Reader) (*Resource, error) {

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return Decode(data)
}

// Decode parses a complete md2 file held in data
func Decode(data []byte) (*Resource, error) {

	h := Header{}
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
	}

	if err := h.Validate(); err != nil {
		return nil, err
	}

	if err := h.CheckSections(len(data)); err != nil {
		return nil, err
	}

	res := &Resource{
		NumFrames:  int(h.NumFrames),
		NumPoints:  int(h.NumPoints),
		NumMesh:    int(h.NumMesh),
		NumTex:     int(h.NumTex),
		FrameSize:  int(h.FrameSize),
		SkinWidth:  int(h.SkinWidth),
		SkinHeight: int(h.SkinHeight),
	}

	if err := res.readSkins(data, &h); err != nil {
		return nil, err
	}

	if err := res.readFrames(data, &h); err != nil {
		return nil, err
	}

	if err := res.readTexCoords(data, &h); err != nil {
		return nil, err
	}

	res.Mesh = make([]Triangle, h.NumMesh)
	if err := readSection(data, h.OfsMesh, res.Mesh); err != nil {
		return nil, fmt.Errorf("reading triangles: %w", err)
	}

	res.GLCmds = make([]int32, h.NumGLCmds)
	if err := readSection(data, h.OfsGLCmds, res.GLCmds); err != nil {
		return nil, fmt.Errorf("reading gl commands: %w", err)
	}

	if err := res.validateMesh(); err != nil {
		return nil, err
	}

	return res, nil
}

func (res *Resource) readSkins(data []byte, h *Header) error {

	names := make([][skinNameLen]byte, h.NumSkins)
	if err := readSection(data, h.OfsSkins, names); err != nil {
		return fmt.Errorf("reading skins: %w", err)
	}

	res.Skins = make([]string, len(names))
	for i := range names {
		res.Skins[i] = cString(names[i][:])
	}

	return nil
}

func (res *Resource) readFrames(data []byte, h *Header) error {

	// Points are sized by the frames section, which CheckSections has bounded
	if res.NumFrames == 0 {
		return nil
	}

	res.Points = make([]geom.Vec3[float32], 0, res.NumFrames*res.NumPoints)
	res.FrameNames = make([]string, res.NumFrames)

	fh := frameHeader{}
	points := make([]framePoint, res.NumPoints)
	for i := 0; i < res.NumFrames; i++ {

		ofs := int64(h.OfsFrames) + int64(i)*int64(h.FrameSize)
		if err := readSection(data, int32(ofs), &fh); err != nil {
			return fmt.Errorf("reading frame %d: %w", i, err)
		}

		if err := readSection(data, int32(ofs+frameHeaderSize), points); err != nil {
			return fmt.Errorf("reading points of frame %d: %w", i, err)
		}

		res.FrameNames[i] = cString(fh.Name[:])

		// md2 is z-up, so y and z are swapped
		for _, p := range points {
			res.Points = append(res.Points, geom.Vec3[float32]{
				X: fh.Scale[0]*float32(p.Vertex[0]) + fh.Translate[0],
				Y: fh.Scale[2]*float32(p.Vertex[2]) + fh.Translate[2],
				Z: fh.Scale[1]*float32(p.Vertex[1]) + fh.Translate[1],
			})
		}
	}

	return nil
}

func (res *Resource) readTexCoords(data []byte, h *Header) error {

	coords := make([]texCoord, h.NumTex)
	if err := readSection(data, h.OfsTex, coords); err != nil {
		return fmt.Errorf("reading texture coordinates: %w", err)
	}

	res.Tex = make([]geom.Vec2[float32], len(coords))
	for i, c := range coords {
		res.Tex[i] = geom.Vec2[float32]{
			X: float32(c.S) / float32(h.SkinWidth),
			Y: float32(c.T) / float32(h.SkinHeight),
		}
	}

	return nil
}

func (res *Resource) validateMesh() error {

	for i, tri := range res.Mesh {
		for j := 0; j < 3; j++ {

			if int(tri.VecIndex[j]) >= res.NumPoints {
				return fmt.Errorf("%w: triangle %d point %d of %d", ErrBadReference, i, tri.VecIndex[j], res.NumPoints)
			}

			if res.NumTex > 0 && int(tri.TexIndex[j]) >= res.NumTex {
				return fmt.Errorf("%w: triangle %d tex coord %d of %d", ErrBadReference, i, tri.TexIndex[j], res.NumTex)
			}
		}
	}

	return nil
}

// VertexCount is the number of vertices in the triangle list of one frame
func (res *Resource) VertexCount() int {
	return res.NumMesh * 3
}

// FramePositions expands the triangles of a frame into a flat x,y,z triangle list.
// dst is reused when it has enough capacity. Out of range frames are clamped.
func (res *Resource) FramePositions(frame int, dst []float32) []float32 {

	if res.NumFrames == 0 {
		return dst[:0]
	}
	frame = max(0, min(frame, res.NumFrames-1))

	dst = dst[:0]
	base := frame * res.NumPoints
	for _, tri := range res.Mesh {
		for j := 0; j < 3; j++ {
			p := res.Points[base+int(tri.VecIndex[j])]
			dst = append(dst, p.X, p.Y, p.Z)
		}
	}

	return dst
}

// TexCoords returns the u,v pairs matching the vertex order of FramePositions
func (res *Resource) TexCoords() []float32 {

	out := make([]float32, 0, res.VertexCount()*2)
	for _, tri := range res.Mesh {
		for j := 0; j < 3; j++ {

			if res.NumTex == 0 {
				out = append(out, 0, 0)
				continue
			}

			t := res.Tex[tri.TexIndex[j]]
			out = append(out, t.X, t.Y)
		}
	}

	return out
}

// FrameSolid returns one frame as a solid, with one 1-based face per triangle
func (res *Resource) FrameSolid(frame int) geom.Solid[float32] {

	s := geom.Solid[float32]{}
	if res.NumFrames == 0 {
		return s
	}
	frame = max(0, min(frame, res.NumFrames-1))

	s.Vertices = append(s.Vertices, res.Points[frame*res.NumPoints:(frame+1)*res.NumPoints]...)
	s.Faces = make([]geom.Face, len(res.Mesh))
	for i, tri := range res.Mesh {
		s.Faces[i].Indices = []int{int(tri.VecIndex[0]) + 1, int(tri.VecIndex[1]) + 1, int(tri.VecIndex[2]) + 1}
	}

	return s
}

// readSection decodes into out from data[ofs:], failing if out does not fit in data
func readSection(data []byte, ofs int32, out any) error {

	size := binary.Size(out)
	if size < 0 {
		return fmt.Errorf("md2: can not decode into %T", out)
	}

	if size == 0 {
		return nil
	}

	if ofs < 0 || int64(ofs)+int64(size) > int64(len(data)) {
		return fmt.Errorf("%w: need %d bytes at offset %d, file has %d", ErrTruncated, size, ofs, len(data))
	}

	return binary.Read(bytes.NewReader(data[ofs:int(ofs)+size]), binary.LittleEndian, out)
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i != -1 {
		b = b[:i]
	}
	return string(b)
}

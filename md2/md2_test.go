package md2

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/bloeys/nrast/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFrame struct {
	scale     [3]float32
	translate [3]float32
	name      string
	points    [][3]uint8
}

var testFrames = []testFrame{
	{
		scale:     [3]float32{1, 2, 3},
		translate: [3]float32{10, 20, 30},
		name:      "stand01",
		points:    [][3]uint8{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
	},
	{
		scale:  [3]float32{1, 1, 1},
		name:   "stand02",
		points: [][3]uint8{{0, 0, 0}, {2, 0, 0}, {0, 0, 2}},
	},
}

func buildModel(t *testing.T) (Header, []byte) {

	const numPoints = 3
	frameSize := frameHeaderSize + framePointSize*numPoints

	h := Header{
		Ident:      Ident,
		Version:    Version,
		SkinWidth:  64,
		SkinHeight: 32,
		FrameSize:  int32(frameSize),
		NumSkins:   1,
		NumPoints:  numPoints,
		NumTex:     3,
		NumMesh:    1,
		NumGLCmds:  2,
		NumFrames:  int32(len(testFrames)),
	}
	h.OfsSkins = int32(binary.Size(h))
	h.OfsTex = h.OfsSkins + skinNameLen
	h.OfsMesh = h.OfsTex + 3*4
	h.OfsFrames = h.OfsMesh + 12
	h.OfsGLCmds = h.OfsFrames + int32(len(testFrames)*frameSize)
	h.OfsEnd = h.OfsGLCmds + 2*4

	buf := &bytes.Buffer{}
	write := func(v any) {
		require.NoError(t, binary.Write(buf, binary.LittleEndian, v))
	}

	write(h)

	skin := [skinNameLen]byte{}
	copy(skin[:], "models/test/skin.pcx")
	write(skin)

	write([]texCoord{{32, 16}, {0, 0}, {64, 32}})
	write([]Triangle{{VecIndex: [3]uint16{0, 1, 2}, TexIndex: [3]uint16{0, 1, 2}}})

	for _, f := range testFrames {

		fh := frameHeader{Scale: f.scale, Translate: f.translate}
		copy(fh.Name[:], f.name)
		write(fh)

		for _, p := range f.points {
			write(framePoint{Vertex: p})
		}
	}

	write([]int32{3, 0})

	require.Equal(t, int(h.OfsEnd), buf.Len())
	return h, buf.Bytes()
}

func TestIdent(t *testing.T) {
	assert.Equal(t, []byte("IDP2"), binary.LittleEndian.AppendUint32(nil, uint32(Ident)))
}

func TestDecode(t *testing.T) {

	_, data := buildModel(t)

	res, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, 2, res.NumFrames)
	assert.Equal(t, 3, res.NumPoints)
	assert.Equal(t, 1, res.NumMesh)
	assert.Equal(t, 64, res.SkinWidth)
	assert.Equal(t, 32, res.SkinHeight)
	assert.Equal(t, []string{"models/test/skin.pcx"}, res.Skins)
	assert.Equal(t, []string{"stand01", "stand02"}, res.FrameNames)
	assert.Equal(t, []int32{3, 0}, res.GLCmds)

	// y and z come out swapped
	require.Len(t, res.Points, 6)
	assert.Equal(t, geom.Vec3[float32]{X: 11, Y: 39, Z: 24}, res.Points[0])
	assert.Equal(t, geom.Vec3[float32]{X: 14, Y: 48, Z: 30}, res.Points[1])
	assert.Equal(t, geom.Vec3[float32]{X: 0, Y: 2, Z: 0}, res.Points[5])

	assert.Equal(t, []geom.Vec2[float32]{{X: 0.5, Y: 0.5}, {X: 0, Y: 0}, {X: 1, Y: 1}}, res.Tex)
	assert.Equal(t, []float32{0.5, 0.5, 0, 0, 1, 1}, res.TexCoords())
}

func TestRead(t *testing.T) {

	_, data := buildModel(t)

	res, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, res.NumFrames)

	path := filepath.Join(t.TempDir(), "test.md2")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	res, err = ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.NumFrames)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.md2"))
	assert.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {

	h, data := buildModel(t)

	_, err := Decode(data[:10])
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = Decode(data[:len(data)-4])
	assert.ErrorIs(t, err, ErrTruncated)

	patch := func(mod func(h *Header)) []byte {
		hc := h
		mod(&hc)

		out := bytes.Clone(data)
		b := &bytes.Buffer{}
		require.NoError(t, binary.Write(b, binary.LittleEndian, hc))
		copy(out, b.Bytes())
		return out
	}

	_, err = Decode(patch(func(h *Header) { h.Ident = 0 }))
	assert.ErrorIs(t, err, ErrBadIdent)

	_, err = Decode(patch(func(h *Header) { h.Version = 7 }))
	assert.ErrorIs(t, err, ErrBadVersion)

	_, err = Decode(patch(func(h *Header) { h.NumMesh = -1 }))
	assert.ErrorIs(t, err, ErrBadHeader)

	_, err = Decode(patch(func(h *Header) { h.FrameSize = 8 }))
	assert.ErrorIs(t, err, ErrBadHeader)

	_, err = Decode(patch(func(h *Header) { h.SkinWidth = 0 }))
	assert.ErrorIs(t, err, ErrBadHeader)

	// Two points means triangle index 2 is out of range
	_, err = Decode(patch(func(h *Header) { h.NumPoints = 2 }))
	assert.ErrorIs(t, err, ErrBadReference)

	_, err = Decode(patch(func(h *Header) { h.NumMesh = 1 << 30 }))
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = Decode(patch(func(h *Header) { h.OfsGLCmds = -4 }))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeHugeCountsInHeaderOnlyFile(t *testing.T) {

	const numPoints = 500_000_000

	headers := []Header{
		{NumPoints: numPoints, NumFrames: 2_000_000_000, FrameSize: frameHeaderSize + framePointSize*numPoints},
		{NumSkins: 1 << 30},
		{NumMesh: 1 << 30},
		{NumGLCmds: 1 << 30},
		{NumTex: 1 << 30, SkinWidth: 1, SkinHeight: 1},
	}

	for i, h := range headers {

		h.Ident = Ident
		h.Version = Version
		h.OfsSkins = int32(binary.Size(h))
		h.OfsTex, h.OfsMesh, h.OfsFrames, h.OfsGLCmds, h.OfsEnd = h.OfsSkins, h.OfsSkins, h.OfsSkins, h.OfsSkins, h.OfsSkins

		b := &bytes.Buffer{}
		require.NoError(t, binary.Write(b, binary.LittleEndian, h))

		assert.NotPanics(t, func() {
			_, err := Decode(b.Bytes())
			assert.ErrorIs(t, err, ErrTruncated, "header %d", i)
		}, "header %d", i)
	}
}

func TestFramePositions(t *testing.T) {

	_, data := buildModel(t)
	res, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, 3, res.VertexCount())

	f1 := res.FramePositions(1, nil)
	assert.Equal(t, []float32{0, 0, 0, 2, 0, 0, 0, 2, 0}, f1)

	// Reuses the passed buffer
	f0 := res.FramePositions(0, f1)
	assert.Equal(t, []float32{11, 39, 24, 14, 48, 30, 17, 57, 36}, f0)
	assert.Equal(t, &f1[0], &f0[0])

	// Clamped
	assert.Equal(t, []float32{0, 0, 0, 2, 0, 0, 0, 2, 0}, res.FramePositions(99, nil))

	s := res.FrameSolid(1)
	require.NoError(t, s.Validate())
	assert.Len(t, s.Vertices, 3)
	assert.Equal(t, []int{1, 2, 3}, s.Faces[0].Indices)
	assert.Equal(t, []uint32{0, 1, 2}, s.TriangleIndices())
}

func TestSprintTable(t *testing.T) {

	assert.Equal(t, SprintKey{0, 39, 9}, Sprints[Sprint_Stand])
	assert.Equal(t, SprintKey{198, 198, 5}, Sprints[Sprint_Boom])
	assert.Equal(t, "crouch_walk", Sprint_Crouch_Walk.String())
	assert.Equal(t, "unknown", Sprint(-1).String())

	// Ranges follow each other without gaps
	for i := Sprint(1); i < Sprint_Count; i++ {
		assert.Equal(t, Sprints[i-1].LastFrame+1, Sprints[i].FirstFrame, i.String())
	}

	assert.Equal(t, SprintKey{0, 1, 9}, Sprints[Sprint_Stand].ClampTo(2))
	assert.Equal(t, SprintKey{1, 1, 10}, Sprints[Sprint_Run].ClampTo(2))
	assert.Equal(t, SprintKey{FPS: 5}, Sprints[Sprint_Boom].ClampTo(0))
}

func TestSprintByName(t *testing.T) {

	s, ok := SprintByName("death_fallforward")
	assert.True(t, ok)
	assert.Equal(t, Sprint_Death_Fallforward, s)

	s, ok = SprintByName("dance")
	assert.False(t, ok)
	assert.Equal(t, Sprint_Stand, s)
}

func TestSprintStateAdvance(t *testing.T) {

	s := NewSprintState(SprintKey{FirstFrame: 2, LastFrame: 4, FPS: 4})
	assert.Equal(t, 2, s.CurrentFrame)
	assert.Equal(t, 3, s.NextFrame)

	s.Advance(0.125)
	assert.Equal(t, 2, s.CurrentFrame)
	assert.InDelta(t, 0.5, s.Lerp, 1e-6)

	s.Advance(0.125)
	assert.Equal(t, 3, s.CurrentFrame)
	assert.Equal(t, 4, s.NextFrame)
	assert.InDelta(t, 0, s.Lerp, 1e-6)

	// Wraps back to the first frame
	s.Advance(0.25)
	assert.Equal(t, 4, s.CurrentFrame)
	assert.Equal(t, 2, s.NextFrame)

	// A long step skips frames
	s.Advance(0.5 + 0.0625)
	assert.Equal(t, 3, s.CurrentFrame)
	assert.Equal(t, 4, s.NextFrame)
	assert.InDelta(t, 0.25, s.Lerp, 1e-6)

	s.Set(SprintKey{FirstFrame: 7, LastFrame: 7, FPS: 4})
	assert.Equal(t, 7, s.CurrentFrame)
	assert.Equal(t, 7, s.NextFrame)
	assert.Zero(t, s.CurrentTime)

	s.Advance(1)
	assert.Equal(t, 7, s.CurrentFrame)

	s.Set(SprintKey{FirstFrame: 1, LastFrame: 3})
	s.Advance(1)
	assert.Equal(t, 1, s.CurrentFrame)
	assert.Zero(t, s.Lerp)
}

func TestLerpPositions(t *testing.T) {

	a := []float32{0, 0, 0, 10}
	b := []float32{2, 4, -2}

	out := LerpPositions(nil, a, b, 0.5)
	assert.Equal(t, []float32{1, 2, -1}, out)

	out2 := LerpPositions(out, a, b, 1)
	assert.Equal(t, []float32{2, 4, -2}, out2)
	assert.Equal(t, &out[0], &out2[0])
}

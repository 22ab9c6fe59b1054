package pipeline

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/bloeys/nrast/geom"
	"github.com/bloeys/nrast/logging"
	"github.com/bloeys/nrast/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWidth  = 800
	testHeight = 600
)

func TestMain(m *testing.M) {
	logging.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func cube(size float64) geom.Solid[float64] {

	s := geom.Solid[float64]{}
	for _, v := range []geom.Vec3[float64]{
		{X: 0, Y: 0, Z: 0}, {X: size, Y: 0, Z: 0}, {X: size, Y: size, Z: 0}, {X: 0, Y: size, Z: 0},
		{X: 0, Y: 0, Z: size}, {X: size, Y: 0, Z: size}, {X: size, Y: size, Z: size}, {X: 0, Y: size, Z: size},
	} {
		s.AddVertex(v)
	}

	for _, f := range [][]int{
		{1, 2, 3, 4}, {5, 6, 7, 8}, {1, 2, 6, 5},
		{2, 3, 7, 6}, {3, 4, 8, 7}, {4, 1, 5, 8},
	} {
		if err := s.AddFace(f...); err != nil {
			panic(err)
		}
	}

	return s
}

func assertVec3Near(t *testing.T, expected, actual geom.Vec3[float64], msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, 1e-6, msgAndArgs...)
	assert.InDelta(t, expected.Y, actual.Y, 1e-6, msgAndArgs...)
	assert.InDelta(t, expected.Z, actual.Z, 1e-6, msgAndArgs...)
}

func countColor(buf *raster.Buffer[uint8], c raster.Color) int {
	n := 0
	for i := 0; i < len(buf.Data); i += buf.Channels {
		if [4]uint8(buf.Data[i:i+4]) == c {
			n++
		}
	}
	return n
}

func newCubeRunner(opts WavefrontOptions) *WavefrontRunner {
	return NewWavefrontRunner(cube(100), opts)
}

func TestWavefrontRunnerCentersSolid(t *testing.T) {

	r := newCubeRunner(DefaultWavefrontOptions(testWidth, testHeight))

	center := r.View().Center()
	assertVec3Near(t, geom.NewVec3(testWidth/2.0, testHeight/2.0, 50), center)

	assert.Positive(t, countColor(r.Buffer(), raster.Color_Black))
	assert.Equal(t, testWidth*testHeight*4, r.Buffer().Size())
}

func TestWavefrontRunnerMirrorsY(t *testing.T) {

	r := newCubeRunner(DefaultWavefrontOptions(testWidth, testHeight))

	// Vertex 1 is the lowest y corner, which ends up at the bottom of the screen
	v := r.View().Vertices[0]
	assert.InDelta(t, testWidth/2.0-50, v.X, 1e-9)
	assert.InDelta(t, testHeight/2.0+50, v.Y, 1e-9)
}

func TestWavefrontRunnerKeepsOriginal(t *testing.T) {

	r := newCubeRunner(DefaultWavefrontOptions(testWidth, testHeight))
	original := r.Solid().Clone()

	for _, a := range []Action{Action_Rotate_X, Action_Rotate_Y, Action_Scale, Action_Move_Left, Action_Toggle_Perspective} {
		r.HandleAction(a, Modifiers{})
	}

	assert.Equal(t, original, *r.Solid())
	assert.NotEqual(t, original.Vertices, r.View().Vertices)
}

func TestWavefrontRunnerShiftInverts(t *testing.T) {

	r := newCubeRunner(DefaultWavefrontOptions(testWidth, testHeight))
	initial := r.Transform()

	for _, a := range []Action{Action_Rotate_X, Action_Rotate_Y, Action_Rotate_Z, Action_Scale} {
		r.HandleAction(a, Modifiers{})
		assert.False(t, r.Transform().EqualTol(initial, 1e-9), a.String())

		r.HandleAction(a, Modifiers{Shift: true})
		assert.True(t, r.Transform().EqualTol(initial, 1e-9), a.String())
	}
}

func TestWavefrontRunnerMove(t *testing.T) {

	opts := DefaultWavefrontOptions(testWidth, testHeight)
	r := newCubeRunner(opts)
	before := r.View().Center()

	r.HandleAction(Action_Move_Right, Modifiers{})
	r.HandleAction(Action_Move_Up, Modifiers{})
	r.HandleAction(Action_Move_Up, Modifiers{})

	after := r.View().Center()
	assert.InDelta(t, before.X+opts.MoveStep, after.X, 1e-9)
	assert.InDelta(t, before.Y-2*opts.MoveStep, after.Y, 1e-9)

	r.HandleAction(Action_Reset, Modifiers{})
	assertVec3Near(t, before, r.View().Center())
}

func TestWavefrontRunnerRotatesAboutCenter(t *testing.T) {

	r := newCubeRunner(DefaultWavefrontOptions(testWidth, testHeight))
	before := r.View().Center()

	for i := 0; i < 5; i++ {
		r.HandleAction(Action_Rotate_Z, Modifiers{})
		r.HandleAction(Action_Rotate_Y, Modifiers{})
	}

	// The centroid of the cube corners is invariant under rotation about it
	var sum geom.Vec3[float64]
	for _, v := range r.View().Vertices {
		sum = sum.Add(v)
	}
	assertVec3Near(t, before, sum.Scale(1.0/8))
}

func TestWavefrontRunnerAltPivot(t *testing.T) {

	r := newCubeRunner(DefaultWavefrontOptions(testWidth, testHeight))
	before := r.View().Center()

	r.Click(testWidth/2+10, testHeight/2+20)
	r.HandleAction(Action_Rotate_X, Modifiers{Alt: true})
	r.HandleAction(Action_Rotate_X, Modifiers{Alt: true, Shift: true})

	assertVec3Near(t, before.Add(geom.NewVec3(10.0, 20, 0)), r.View().Center())

	// Without alt the pivot offset is dropped again
	r.HandleAction(Action_Move_Left, Modifiers{})
	r.HandleAction(Action_Move_Right, Modifiers{})
	assertVec3Near(t, before, r.View().Center())
}

func TestWavefrontRunnerConvergencePointStaysPositive(t *testing.T) {

	opts := DefaultWavefrontOptions(testWidth, testHeight)
	r := newCubeRunner(opts)

	for i := 0; i < 100; i++ {
		r.HandleAction(Action_Perspective_Closer, Modifiers{})
	}
	assert.Equal(t, opts.ConvergencePointStep, r.ConvergencePoint())

	r.HandleAction(Action_Perspective_Farther, Modifiers{})
	assert.Equal(t, 2*opts.ConvergencePointStep, r.ConvergencePoint())
}

func TestWavefrontRunnerPerspective(t *testing.T) {

	opts := DefaultWavefrontOptions(testWidth, testHeight)
	r := newCubeRunner(opts)
	flat := r.View().Clone()

	r.HandleAction(Action_Toggle_Perspective, Modifiers{})
	projected := r.View()

	// Corners behind the center shrink towards it, corners in front grow away from it.
	// Vertex 1 has z=0, 50 in front of the center, so w = 1 - 50/500.
	center := geom.NewVec3(testWidth/2.0, testHeight/2.0, 50)
	w := 1 - 50/opts.ConvergencePoint
	expected := center.Add(flat.Vertices[0].Sub(center).Scale(1 / w))
	assert.InDelta(t, expected.X, projected.Vertices[0].X, 1e-6)
	assert.InDelta(t, expected.Y, projected.Vertices[0].Y, 1e-6)

	w = 1 + 50/opts.ConvergencePoint
	expected = center.Add(flat.Vertices[4].Sub(center).Scale(1 / w))
	assert.InDelta(t, expected.X, projected.Vertices[4].X, 1e-6)

	r.HandleAction(Action_Toggle_Perspective, Modifiers{})
	assert.Equal(t, flat.Vertices, r.View().Vertices)
}

func TestWavefrontRunnerParallelMatchesSerial(t *testing.T) {

	serialOpts := DefaultWavefrontOptions(testWidth, testHeight)
	parOpts := serialOpts
	parOpts.Workers = 4

	serial := newCubeRunner(serialOpts)
	par := newCubeRunner(parOpts)

	for _, a := range []Action{Action_Rotate_X, Action_Rotate_Z, Action_Scale, Action_Toggle_Perspective} {
		serial.HandleAction(a, Modifiers{})
		par.HandleAction(a, Modifiers{})
	}

	require.Len(t, par.View().Vertices, 8)
	for i := range serial.View().Vertices {
		assertVec3Near(t, serial.View().Vertices[i], par.View().Vertices[i])
	}
	assert.Equal(t, serial.Buffer().Data, par.Buffer().Data)
}

func TestWavefrontRunnerDebugToggle(t *testing.T) {

	r := newCubeRunner(DefaultWavefrontOptions(testWidth, testHeight))
	r.HandleAction(Action_Toggle_Debug, Modifiers{})
	assert.True(t, r.ShowDebug)
	assert.Contains(t, r.DebugString(), "Vertices=8")
}

func TestWavefrontRunnerEmptySolid(t *testing.T) {

	assert.NotPanics(t, func() {
		r := NewWavefrontRunner(geom.Solid[float64]{}, DefaultWavefrontOptions(64, 64))
		r.HandleAction(Action_Rotate_X, Modifiers{})
		assert.Equal(t, 0, countColor(r.Buffer(), raster.Color_Black))
	})
}

func TestWavefrontRunnerPointNearConvergence(t *testing.T) {

	const cp = 100

	// The first vertex sits almost on the convergence plane, so it projects very far away
	s := geom.Solid[float64]{}
	s.AddVertex(geom.NewVec3(0, 0, -cp+1e-10))
	s.AddVertex(geom.NewVec3(10, 0, cp-1e-10))
	s.AddVertex(geom.NewVec3(0, 10, cp-1e-10))
	require.NoError(t, s.AddFace(1, 2, 3))

	opts := DefaultWavefrontOptions(64, 64)
	opts.Perspective = true
	opts.ConvergencePoint = cp

	done := make(chan *WavefrontRunner, 1)
	go func() {
		done <- NewWavefrontRunner(s, opts)
	}()

	select {
	case r := <-done:
		assert.Positive(t, countColor(r.Buffer(), raster.Color_Black))
	case <-time.After(5 * time.Second):
		t.Fatal("runner still drawing after 5s")
	}
}

func TestTetrahedronRunnerPlain(t *testing.T) {

	opts := DefaultTetrahedronOptions(testWidth, testHeight)
	r := NewTetrahedronRunner(opts)
	assert.Equal(t, defaultTetrahedron, r.Tetrahedron())
	assert.Positive(t, countColor(r.Buffer(), raster.Color_Green))

	r.HandleAction(Action_Move_Right, Modifiers{})
	r.HandleAction(Action_Move_Down, Modifiers{})
	for i, v := range r.Tetrahedron().Vertex {
		assertVec3Near(t, defaultTetrahedron.Vertex[i].Add(geom.NewVec3(opts.Shift, opts.Shift, 0)), v)
	}

	r.HandleAction(Action_Rotate_Y, Modifiers{})
	r.HandleAction(Action_Rotate_Y, Modifiers{Shift: true})
	for i, v := range r.Tetrahedron().Vertex {
		assertVec3Near(t, defaultTetrahedron.Vertex[i].Add(geom.NewVec3(opts.Shift, opts.Shift, 0)), v)
	}

	r.HandleAction(Action_Reset, Modifiers{})
	assert.Equal(t, defaultTetrahedron, r.Tetrahedron())
}

func TestTetrahedronRunnerRotatesAboutPivotLine(t *testing.T) {

	r := NewTetrahedronRunner(DefaultTetrahedronOptions(testWidth, testHeight))

	// The apex sits on the pivot line at y=250, so x rotation swings it by its z only
	r.HandleAction(Action_Rotate_X, Modifiers{})
	apex := r.Tetrahedron().Vertex[3]
	assert.InDelta(t, 300, apex.X, 1e-9)
	assert.InDelta(t, 250+100*0.5, apex.Y, 1e-9)
	assert.InDelta(t, 100*0.8660254037844387, apex.Z, 1e-9)
}

func TestTetrahedronRunnerPerspective(t *testing.T) {

	opts := DefaultTetrahedronOptions(testWidth, testHeight)
	opts.Perspective = true
	opts.AngleStep = 15
	r := NewTetrahedronRunner(opts)

	// (300, 200, 0) is moved to (250, 150, 100) and then divided by w = 1 + 100/500
	v := r.Tetrahedron().Vertex[0]
	assertVec3Near(t, geom.NewVec3(250/1.2, 150/1.2, 100/1.2), v)

	r.HandleAction(Action_Rotate_X, Modifiers{})
	r.HandleAction(Action_Rotate_X, Modifiers{Shift: true})
	assertVec3Near(t, v, r.Tetrahedron().Vertex[0])

	// Moves are ignored in perspective mode
	r.HandleAction(Action_Move_Left, Modifiers{})
	assertVec3Near(t, v, r.Tetrahedron().Vertex[0])

	for i := 0; i < 20; i++ {
		r.HandleAction(Action_Perspective_Closer, Modifiers{})
	}
	assert.Equal(t, opts.ConvergencePointStep, r.cp)
}

func TestRectangleRunner(t *testing.T) {

	opts := DefaultRectangleOptions(testWidth, testHeight)
	r := NewRectangleRunner(opts)
	assert.Equal(t, defaultRectangle, r.Rectangle())

	r.HandleAction(Action_Move_Left, Modifiers{})
	assert.InDelta(t, 90, r.Rectangle().Vertex[0].X, 1e-9)
	assert.InDelta(t, 100, r.Rectangle().Vertex[0].Y, 1e-9)

	r.HandleAction(Action_Rotate_Ccw, Modifiers{})
	c := r.Rectangle().Centroid()
	assert.InDelta(t, 190, c.X, 1e-9)
	assert.InDelta(t, 200, c.Y, 1e-9)

	r.HandleAction(Action_Rotate_Cw, Modifiers{})
	assert.InDelta(t, 90, r.Rectangle().Vertex[0].X, 1e-9)
	assert.InDelta(t, 100, r.Rectangle().Vertex[0].Y, 1e-9)

	// Unknown actions leave the rectangle alone
	r.HandleAction(Action_Rotate_X, Modifiers{})
	assert.InDelta(t, 90, r.Rectangle().Vertex[0].X, 1e-9)
}

func TestRectangleRunnerClickPivot(t *testing.T) {

	r := NewRectangleRunner(DefaultRectangleOptions(testWidth, testHeight))

	r.Click(100, 100)
	r.HandleAction(Action_Rotate_Ccw, Modifiers{Shift: true})

	v := r.Rectangle().Vertex[0]
	assert.InDelta(t, 100, v.X, 1e-9)
	assert.InDelta(t, 100, v.Y, 1e-9)
	assert.NotEqual(t, defaultRectangle.Vertex[2], r.Rectangle().Vertex[2])

	r.HandleAction(Action_Reset, Modifiers{})
	assert.Equal(t, defaultRectangle, r.Rectangle())
}

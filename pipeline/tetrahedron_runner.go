package pipeline

import (
	"github.com/bloeys/nrast/geom"
	"github.com/bloeys/nrast/raster"
)

// Rotations happen around the horizontal line through this y
const tetrahedronPivotY = 250

var defaultTetrahedron = geom.Tetrahedron[float64]{Vertex: [4]geom.Vec3[float64]{
	{X: 300, Y: 200, Z: 0},
	{X: 400, Y: 300, Z: 0},
	{X: 200, Y: 300, Z: 0},
	{X: 300, Y: 250, Z: 100},
}}

type TetrahedronOptions struct {
	Width  int
	Height int

	// Perspective switches from moving the tetrahedron in place to rotating a copy of it
	// around x and projecting that with a simple perspective.
	Perspective bool

	Shift     float64
	AngleStep float64

	ConvergencePoint     float64
	ConvergencePointStep float64

	Background raster.Color
	Foreground raster.Color
}

func DefaultTetrahedronOptions(width, height int) TetrahedronOptions {
	return TetrahedronOptions{
		Width:                width,
		Height:               height,
		Shift:                10,
		AngleStep:            30,
		ConvergencePoint:     500,
		ConvergencePointStep: 50,
		Background:           raster.Color_White,
		Foreground:           raster.Color_Green,
	}
}

// TetrahedronRunner has two modes.
//
// In the plain mode every action is applied to the tetrahedron itself about the pivot line,
// so transforms accumulate. In the perspective mode only an x rotation angle and the
// convergence point accumulate, and each redraw projects a fresh copy.
type TetrahedronRunner struct {
	Opts TetrahedronOptions

	tet   geom.Tetrahedron[float64]
	drawn geom.Tetrahedron[float64]
	buf   *raster.Buffer[uint8]

	angle float64
	cp    float64
}

var _ Runner = &TetrahedronRunner{}

func NewTetrahedronRunner(opts TetrahedronOptions) *TetrahedronRunner {

	r := &TetrahedronRunner{
		Opts: opts,
		buf:  raster.NewRGBABuffer(opts.Width, opts.Height, opts.Background),
	}

	r.Reset()
	return r
}

func (r *TetrahedronRunner) Name() string {
	if r.Opts.Perspective {
		return "perspective tetrahedron"
	}
	return "tetrahedron"
}

func (r *TetrahedronRunner) Reset() {
	r.tet = defaultTetrahedron
	r.angle = 0
	r.cp = r.Opts.ConvergencePoint
	r.Redraw()
}

func (r *TetrahedronRunner) HandleAction(a Action, mods Modifiers) {

	if a == Action_Reset {
		r.Reset()
		return
	}

	if r.Opts.Perspective {
		r.handlePerspective(a, mods)
	} else {
		r.handlePlain(a, mods)
	}

	r.Redraw()
}

func (r *TetrahedronRunner) handlePlain(a Action, mods Modifiers) {

	var m geom.Mat4
	shift := r.Opts.Shift
	angle := degToRad(r.Opts.AngleStep) * mods.sign()

	switch a {
	case Action_Move_Left:
		m = geom.NewMat4Translation(-shift, 0, 0)
	case Action_Move_Right:
		m = geom.NewMat4Translation(shift, 0, 0)
	case Action_Move_Up:
		m = geom.NewMat4Translation(0, -shift, 0)
	case Action_Move_Down:
		m = geom.NewMat4Translation(0, shift, 0)
	case Action_Rotate_X:
		m = geom.NewMat4Rotation(geom.AxisX, angle)
	case Action_Rotate_Y:
		m = geom.NewMat4Rotation(geom.AxisY, angle)
	case Action_Rotate_Z:
		m = geom.NewMat4Rotation(geom.AxisZ, angle)
	default:
		return
	}

	m = geom.MulMat4(
		geom.NewMat4Translation(0, tetrahedronPivotY, 0),
		m,
		geom.NewMat4Translation(0, -tetrahedronPivotY, 0),
	)

	r.tet = r.tet.Transform(m)
}

func (r *TetrahedronRunner) handlePerspective(a Action, mods Modifiers) {

	switch a {
	case Action_Rotate_X:
		r.angle += r.Opts.AngleStep * mods.sign()
	case Action_Perspective_Farther:
		r.cp += r.Opts.ConvergencePointStep
	case Action_Perspective_Closer:
		if r.cp-r.Opts.ConvergencePointStep > 0 {
			r.cp -= r.Opts.ConvergencePointStep
		}
	}
}

// Transform is what gets applied to the stored tetrahedron before drawing.
// It is the identity in the plain mode, since transforms are baked in there.
func (r *TetrahedronRunner) Transform() geom.Mat4 {

	if !r.Opts.Perspective {
		return geom.NewMat4Id()
	}

	return geom.MulMat4(
		geom.NewMat4SimplePerspective(r.cp),
		geom.NewMat4Translation(-50, -50, 100),
		geom.NewMat4Translation(0, tetrahedronPivotY, 0),
		geom.NewMat4Rotation(geom.AxisX, degToRad(r.angle)),
		geom.NewMat4Translation(0, -tetrahedronPivotY, 0),
	)
}

func (r *TetrahedronRunner) Click(x, y int) {}

func (r *TetrahedronRunner) Redraw() {

	r.drawn = r.tet.Transform(r.Transform())

	r.buf.Clear(r.Opts.Background[:])
	raster.DrawTetrahedron(r.buf, r.drawn, r.Opts.Foreground[:])
}

func (r *TetrahedronRunner) Buffer() *raster.Buffer[uint8] {
	return r.buf
}

// Tetrahedron returns the tetrahedron as it was last drawn
func (r *TetrahedronRunner) Tetrahedron() geom.Tetrahedron[float64] {
	return r.drawn
}

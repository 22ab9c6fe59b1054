package pipeline

import (
	"github.com/bloeys/nrast/geom"
	"github.com/bloeys/nrast/raster"
)

var defaultRectangle = geom.Rectangle[float64]{Vertex: [4]geom.Vec2[float64]{
	{X: 100, Y: 100},
	{X: 300, Y: 100},
	{X: 300, Y: 300},
	{X: 100, Y: 300},
}}

type RectangleOptions struct {
	Width  int
	Height int

	Shift     float64
	AngleStep float64

	Background raster.Color
	Foreground raster.Color
}

func DefaultRectangleOptions(width, height int) RectangleOptions {
	return RectangleOptions{
		Width:      width,
		Height:     height,
		Shift:      10,
		AngleStep:  30,
		Background: raster.Color_White,
		Foreground: raster.Color_Green,
	}
}

// RectangleRunner moves and rotates a rectangle in 2D. Rotations are about its centroid,
// or about the last click while shift is held. Transforms accumulate in the rectangle.
type RectangleRunner struct {
	Opts RectangleOptions

	rect  geom.Rectangle[float64]
	click geom.Vec2[float64]
	buf   *raster.Buffer[uint8]
}

var _ Runner = &RectangleRunner{}

func NewRectangleRunner(opts RectangleOptions) *RectangleRunner {

	r := &RectangleRunner{
		Opts: opts,
		buf:  raster.NewRGBABuffer(opts.Width, opts.Height, opts.Background),
	}

	r.Reset()
	return r
}

func (r *RectangleRunner) Name() string {
	return "rectangle"
}

func (r *RectangleRunner) Reset() {
	r.rect = defaultRectangle
	r.Redraw()
}

func (r *RectangleRunner) HandleAction(a Action, mods Modifiers) {

	var m geom.Mat3
	shift := r.Opts.Shift

	switch a {
	case Action_Move_Left:
		m = geom.NewMat3Translation(-shift, 0)
	case Action_Move_Right:
		m = geom.NewMat3Translation(shift, 0)
	case Action_Move_Up:
		m = geom.NewMat3Translation(0, -shift)
	case Action_Move_Down:
		m = geom.NewMat3Translation(0, shift)
	case Action_Rotate_Ccw:
		m = geom.NewMat3Rotation(degToRad(r.Opts.AngleStep))
	case Action_Rotate_Cw:
		m = geom.NewMat3Rotation(-degToRad(r.Opts.AngleStep))
	case Action_Reset:
		r.Reset()
		return
	default:
		return
	}

	pivot := r.rect.Centroid()
	if mods.Shift {
		pivot = r.click
	}

	m = geom.MulMat3(
		geom.NewMat3Translation(pivot.X, pivot.Y),
		m,
		geom.NewMat3Translation(-pivot.X, -pivot.Y),
	)

	for i := range r.rect.Vertex {
		r.rect.Vertex[i] = geom.TransformVec2(r.rect.Vertex[i], m)
	}

	r.Redraw()
}

func (r *RectangleRunner) Click(x, y int) {
	r.click = geom.NewVec2(float64(x), float64(y))
}

func (r *RectangleRunner) Redraw() {
	r.buf.Clear(r.Opts.Background[:])
	raster.DrawRect(r.buf, r.rect, r.Opts.Foreground[:])
}

func (r *RectangleRunner) Buffer() *raster.Buffer[uint8] {
	return r.buf
}

func (r *RectangleRunner) Rectangle() geom.Rectangle[float64] {
	return r.rect
}

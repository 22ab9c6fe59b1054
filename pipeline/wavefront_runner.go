package pipeline

import (
	"fmt"

	"github.com/bloeys/nrast/geom"
	"github.com/bloeys/nrast/logging"
	"github.com/bloeys/nrast/raster"
)

type WavefrontOptions struct {
	Width  int
	Height int

	// AngleStep is in degrees
	AngleStep float64
	MoveStep  float64
	ScaleStep float64

	// ConvergencePoint is the z distance used by the simple perspective projection.
	// It is only applied while Perspective is true.
	ConvergencePoint     float64
	ConvergencePointStep float64
	Perspective          bool

	Background raster.Color
	Foreground raster.Color

	// Workers > 1 transforms vertices in parallel
	Workers int
}

func DefaultWavefrontOptions(width, height int) WavefrontOptions {
	return WavefrontOptions{
		Width:                width,
		Height:               height,
		AngleStep:            15,
		MoveStep:             50,
		ScaleStep:            0.5,
		ConvergencePoint:     500,
		ConvergencePointStep: 50,
		Background:           raster.Color_White,
		Foreground:           raster.Color_Black,
	}
}

// WavefrontRunner draws the wireframe of a solid rotated about its own bounding box center.
//
// Each action rebuilds one transform from the accumulated state and applies it to a copy of
// the original solid, which itself is never modified.
type WavefrontRunner struct {
	Opts      WavefrontOptions
	ShowDebug bool

	solid geom.Solid[float64]
	view  geom.Solid[float64]
	buf   *raster.Buffer[uint8]

	center geom.Vec3[float64]
	click  geom.Vec2[float64]
	pivot  geom.Vec2[float64]

	angleX float64
	angleY float64
	angleZ float64

	cp          float64
	perspective bool

	moveX float64
	moveY float64
	scale float64
}

var _ Runner = &WavefrontRunner{}

func NewWavefrontRunner(solid geom.Solid[float64], opts WavefrontOptions) *WavefrontRunner {

	r := &WavefrontRunner{
		Opts:   opts,
		solid:  solid,
		center: solid.Center(),
		buf:    raster.NewRGBABuffer(opts.Width, opts.Height, opts.Background),
	}

	if _, _, ok := solid.BoundingBox(); !ok {
		logging.WarnLog.Println("Wavefront runner started with an empty solid")
	}

	r.Reset()
	return r
}

// Reset restores the initial view: unrotated, unscaled and centered in the buffer
func (r *WavefrontRunner) Reset() {

	r.angleX, r.angleY, r.angleZ = 0, 0, 0
	r.scale = 1
	r.cp = r.Opts.ConvergencePoint
	r.perspective = r.Opts.Perspective
	r.pivot = geom.Vec2[float64]{}

	r.moveX = float64(r.Opts.Width)/2 - r.center.X
	r.moveY = float64(r.Opts.Height)/2 - r.center.Y

	r.Redraw()
}

func (r *WavefrontRunner) Name() string {
	return "wavefront"
}

func (r *WavefrontRunner) HandleAction(a Action, mods Modifiers) {

	switch a {
	case Action_Move_Up:
		r.moveY -= r.Opts.MoveStep
	case Action_Move_Down:
		r.moveY += r.Opts.MoveStep
	case Action_Move_Left:
		r.moveX -= r.Opts.MoveStep
	case Action_Move_Right:
		r.moveX += r.Opts.MoveStep

	case Action_Scale:
		r.scale += r.Opts.ScaleStep * mods.sign()

	case Action_Rotate_X:
		r.angleX += r.Opts.AngleStep * mods.sign()
	case Action_Rotate_Y:
		r.angleY += r.Opts.AngleStep * mods.sign()
	case Action_Rotate_Z:
		r.angleZ += r.Opts.AngleStep * mods.sign()

	case Action_Perspective_Farther:
		r.cp += r.Opts.ConvergencePointStep
	case Action_Perspective_Closer:
		// The convergence point is a divisor and must stay in front of the model
		if r.cp-r.Opts.ConvergencePointStep > 0 {
			r.cp -= r.Opts.ConvergencePointStep
		}
	case Action_Toggle_Perspective:
		r.perspective = !r.perspective

	case Action_Toggle_Debug:
		r.ShowDebug = !r.ShowDebug
		if r.ShowDebug {
			logging.InfoLog.Println(r.DebugString())
		}
		return

	case Action_Reset:
		r.Reset()
		return
	}

	r.pivot = geom.Vec2[float64]{}
	if mods.Alt {
		r.pivot = r.click
	}

	r.Redraw()
}

// Click stores the click relative to the buffer center, to be used as a pivot by Alt+action
func (r *WavefrontRunner) Click(x, y int) {
	r.click = geom.NewVec2(float64(x)-float64(r.Opts.Width)/2, float64(y)-float64(r.Opts.Height)/2)
}

// Transform is the full model to screen transform for the current state:
//
//	T(center) T(pivot) T(move) S(s, -s, s) [P(cp)] Rz Ry Rx T(-center)
//
// Read right to left: the solid is moved so its center is at the origin, rotated, optionally
// projected, scaled with y mirrored for screen space, then moved back and into place.
func (r *WavefrontRunner) Transform() geom.Mat4 {

	c := r.center

	mats := make([]geom.Mat4, 0, 9)
	mats = append(mats,
		geom.NewMat4Translation(c.X, c.Y, c.Z),
		geom.NewMat4Translation(r.pivot.X, r.pivot.Y, 0),
		geom.NewMat4Translation(r.moveX, r.moveY, 0),
		geom.NewMat4Scale(r.scale, -r.scale, r.scale),
	)

	if r.perspective {
		mats = append(mats, geom.NewMat4SimplePerspective(r.cp))
	}

	mats = append(mats,
		geom.NewMat4Rotation(geom.AxisZ, degToRad(r.angleZ)),
		geom.NewMat4Rotation(geom.AxisY, degToRad(r.angleY)),
		geom.NewMat4Rotation(geom.AxisX, degToRad(r.angleX)),
		geom.NewMat4Translation(-c.X, -c.Y, -c.Z),
	)

	return geom.MulMat4(mats...)
}

// Redraw re-transforms the original solid and redraws the whole buffer
func (r *WavefrontRunner) Redraw() {

	m := r.Transform()
	if r.Opts.Workers > 1 {
		r.view = r.solid.TransformParallel(m, r.Opts.Workers)
	} else {
		r.solid.TransformInto(&r.view, m)
	}

	r.buf.Clear(r.Opts.Background[:])
	raster.DrawSolid(r.buf, &r.view, r.Opts.Foreground[:])
}

func (r *WavefrontRunner) Buffer() *raster.Buffer[uint8] {
	return r.buf
}

// Solid returns the original, untransformed solid
func (r *WavefrontRunner) Solid() *geom.Solid[float64] {
	return &r.solid
}

// View returns the solid as it was last drawn
func (r *WavefrontRunner) View() *geom.Solid[float64] {
	return &r.view
}

func (r *WavefrontRunner) ConvergencePoint() float64 {
	return r.cp
}

func (r *WavefrontRunner) DebugString() string {
	return fmt.Sprintf(
		"Vertices=%d; Faces=%d; Angle=(%.0f, %.0f, %.0f); Move=(%.0f, %.0f); Scale=%.2f; Perspective=%v; CP=%.0f",
		len(r.solid.Vertices), len(r.solid.Faces),
		r.angleX, r.angleY, r.angleZ,
		r.moveX, r.moveY,
		r.scale,
		r.perspective, r.cp,
	)
}

package scene

import (
	"fmt"

	"github.com/bloeys/nrast/buffers"
	"github.com/bloeys/nrast/geom"
	"github.com/bloeys/nrast/logging"
	"github.com/bloeys/nrast/materials"
	"github.com/bloeys/nrast/md2"
	"github.com/bloeys/nrast/meshes"
	"github.com/bloeys/nrast/renderer"
)

// AnimatedModel plays the sprints of an md2 model. Every update blends the current and next
// frame on the cpu and streams the result into a dynamic vertex buffer.
//
// The vertex array has the position at location 0 and the skin uv at location 1.
type AnimatedModel struct {
	Name  string
	Res   *md2.Resource
	State md2.SprintState
	Mat   *materials.Material

	// SkinPath is an optional png applied as the diffuse texture
	SkinPath string

	Position geom.Vec3[float32]
	Angle    float32
	Scale    float32

	Vao buffers.VertexArray

	// fit moves the first frame into [-0.5, 0.5]
	fit    geom.Mat4
	posVbo buffers.VertexBuffer
	skin   materials.Texture

	curFrame  []float32
	nextFrame []float32
	blended   []float32

	loaded bool
}

func NewAnimatedModel(name string, res *md2.Resource, mat *materials.Material) *AnimatedModel {

	am := &AnimatedModel{
		Name:  name,
		Res:   res,
		Mat:   mat,
		Scale: DefaultOwnerScale,
	}

	frame0 := res.FrameSolid(0)
	am.fit = fitUnitCube(&frame0)
	am.SetSprint(md2.Sprint_Stand)
	am.blend()

	return am
}

// SetSprint restarts playback on one of the standard sprints, clamped to the frames the model has
func (am *AnimatedModel) SetSprint(s md2.Sprint) {

	if s < 0 || s >= md2.Sprint_Count {
		logging.WarnLog.Printf("Unknown sprint %d on model '%s'\n", s, am.Name)
		return
	}

	am.State.Set(md2.Sprints[s].ClampTo(am.Res.NumFrames))
}

// Positions returns the blended positions of the last update
func (am *AnimatedModel) Positions() []float32 {
	return am.blended
}

func (am *AnimatedModel) Load() error {

	if am.loaded {
		return nil
	}

	if am.Res.VertexCount() == 0 {
		return fmt.Errorf("%w: '%s'", meshes.ErrEmptyMesh, am.Name)
	}

	am.Vao = buffers.NewVertexArray()

	am.posVbo = buffers.NewVertexBuffer(buffers.Element{ElementType: buffers.DataTypeVec3})
	am.posVbo.SetData(am.blended, buffers.BufUsage_Dynamic_Draw)
	am.Vao.AddVertexBuffer(am.posVbo)

	uvVbo := buffers.NewVertexBuffer(buffers.Element{ElementType: buffers.DataTypeVec2})
	uvVbo.SetData(am.Res.TexCoords(), buffers.BufUsage_Static_Draw)
	am.Vao.AddVertexBuffer(uvVbo)

	am.Vao.UnBind()

	if am.SkinPath != "" {

		tex, err := materials.LoadTexturePNG(am.SkinPath, &materials.TextureLoadOptions{GenMipMaps: true})
		if err != nil {
			logging.WarnLog.Printf("Drawing '%s' untextured, failed to load skin '%s'. Err: %s\n", am.Name, am.SkinPath, err.Error())
		} else {
			am.skin = tex
		}
	}

	if am.Mat != nil {
		am.Mat.SetDiffuseTex(am.skin)
	}

	am.loaded = true
	return nil
}

func (am *AnimatedModel) Update(dt float32) {

	am.State.Advance(dt)
	am.blend()

	if am.loaded {
		am.posVbo.UpdateData(am.blended)
	}
}

func (am *AnimatedModel) blend() {
	am.curFrame = am.Res.FramePositions(am.State.CurrentFrame, am.curFrame)
	am.nextFrame = am.Res.FramePositions(am.State.NextFrame, am.nextFrame)
	am.blended = md2.LerpPositions(am.blended, am.curFrame, am.nextFrame, am.State.Lerp)
}

// ModelMatrix fits the model into a unit cube, rotates around y, scales, then moves to Position
func (am *AnimatedModel) ModelMatrix() geom.Mat4 {
	s := float64(am.Scale)
	return geom.MulMat4(
		geom.NewMat4Translation(float64(am.Position.X), float64(am.Position.Y), float64(am.Position.Z)),
		geom.NewMat4Scale(s, s, s),
		geom.NewMat4Rotation(geom.AxisY, float64(am.Angle)),
		am.fit,
	)
}

func (am *AnimatedModel) Render(rend renderer.Render) {

	if !am.loaded || am.Mat == nil {
		return
	}

	if am.Mat.Settings.Has(materials.MaterialSettings_HasModelMtx) {
		modelMat := renderer.ToMat4(am.ModelMatrix())
		am.Mat.SetUnifMat4("modelMat", &modelMat)
	}

	rend.DrawVertexArray(*am.Mat, am.Vao, 0, int32(am.Res.VertexCount()))
}

func (am *AnimatedModel) Delete() {

	if !am.loaded {
		return
	}

	am.Vao.Delete()
	if am.skin.TexID != 0 {
		am.skin.Delete()
	}

	am.loaded = false
}

// fitUnitCube centers the bounding box of s on the origin and scales its largest side to 1
func fitUnitCube[T geom.Number](s *geom.Solid[T]) geom.Mat4 {

	lo, hi, ok := s.BoundingBox()
	if !ok {
		return geom.NewMat4Id()
	}

	c := s.Center()
	size := max(float64(hi.X-lo.X), float64(hi.Y-lo.Y), float64(hi.Z-lo.Z))
	if size <= 0 {
		return geom.NewMat4Translation(-float64(c.X), -float64(c.Y), -float64(c.Z))
	}

	return geom.NewMat4Scale(1/size, 1/size, 1/size).Mul(geom.NewMat4Translation(-float64(c.X), -float64(c.Y), -float64(c.Z)))
}

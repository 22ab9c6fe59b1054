package scene

import (
	"math"

	"github.com/bloeys/nrast/geom"
	"github.com/bloeys/nrast/materials"
	"github.com/bloeys/nrast/meshes"
	"github.com/bloeys/nrast/renderer"
)

// SpinSpeed is 15 degrees per frame at 60 frames per second, in radians per second
const SpinSpeed = 15 * math.Pi / 180 * 60

const (
	DefaultModelScale = 0.01
	DefaultOwnerScale = 0.25
)

// Model is a solid uploaded as a mesh. After Load the vertices lie in [-0.5, 0.5] on every axis.
// A model can be drawn on its own or shared by any number of ModelOwners.
type Model struct {
	Name  string
	Solid geom.Solid[float32]
	Mat   *materials.Material
	Mesh  meshes.Mesh

	// Angle around y in radians, advanced by Update
	Angle float32
	Scale float32

	loaded bool
}

func NewModel(name string, solid geom.Solid[float32], mat *materials.Material) *Model {
	return &Model{
		Name:  name,
		Solid: solid,
		Mat:   mat,
		Scale: DefaultModelScale,
	}
}

// LoadModel reads the solid at path. See meshes.LoadSolid for the supported formats.
func LoadModel(name, path string, mat *materials.Material) (*Model, error) {

	solid, err := meshes.LoadSolid(path)
	if err != nil {
		return nil, err
	}

	return NewModel(name, geom.ConvertSolid[float32](solid), mat), nil
}

func (m *Model) Loaded() bool {
	return m.loaded
}

func (m *Model) Load() error {

	if m.loaded {
		return nil
	}

	norm := centeredUnitSolid(&m.Solid)
	mesh, err := meshes.NewMeshFromSolid(m.Name, &norm)
	if err != nil {
		return err
	}

	m.Mesh = mesh
	m.loaded = true
	return nil
}

func (m *Model) Update(dt float32) {
	m.Angle += SpinSpeed * dt
}

// ModelMatrix rotates around y then scales
func (m *Model) ModelMatrix() geom.Mat4 {
	s := float64(m.Scale)
	return geom.NewMat4Scale(s, s, s).Mul(geom.NewMat4Rotation(geom.AxisY, float64(m.Angle)))
}

func (m *Model) Render(rend renderer.Render) {
	m.Draw(rend, m.ModelMatrix())
}

// Draw draws the mesh with the given model matrix. Nothing is drawn before Load.
func (m *Model) Draw(rend renderer.Render, modelMat geom.Mat4) {

	if !m.loaded || m.Mat == nil {
		return
	}

	rend.DrawMesh(m.Mesh, renderer.ToMat4(modelMat), *m.Mat)
}

func (m *Model) Delete() {

	if !m.loaded {
		return
	}

	m.Mesh.Delete()
	m.loaded = false
}

// ModelOwner places a shared model in the world
type ModelOwner struct {
	Model    *Model
	Position geom.Vec3[float32]
	Angle    float32
	Scale    float32
}

func NewModelOwner(model *Model, pos geom.Vec3[float32]) *ModelOwner {
	return &ModelOwner{
		Model:    model,
		Position: pos,
		Scale:    DefaultOwnerScale,
	}
}

// Load loads the shared model the first time any owner asks
func (o *ModelOwner) Load() error {
	return o.Model.Load()
}

func (o *ModelOwner) Update(dt float32) {
	o.Angle += SpinSpeed * dt
}

// ModelMatrix rotates around y, scales, then moves to Position
func (o *ModelOwner) ModelMatrix() geom.Mat4 {
	s := float64(o.Scale)
	return geom.MulMat4(
		geom.NewMat4Translation(float64(o.Position.X), float64(o.Position.Y), float64(o.Position.Z)),
		geom.NewMat4Scale(s, s, s),
		geom.NewMat4Rotation(geom.AxisY, float64(o.Angle)),
	)
}

func (o *ModelOwner) Render(rend renderer.Render) {
	o.Model.Draw(rend, o.ModelMatrix())
}

func (o *ModelOwner) Delete() {
	o.Model.Delete()
}

// centeredUnitSolid remaps s into [0, 1] with Norm then centers it on the origin
func centeredUnitSolid[T geom.Number](s *geom.Solid[T]) geom.Solid[T] {
	norm := s.Norm()
	return norm.Transform(geom.NewMat4Translation(-0.5, -0.5, -0.5))
}

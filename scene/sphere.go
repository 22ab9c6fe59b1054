package scene

import (
	"math/rand/v2"

	"github.com/bloeys/nrast/geom"
	"github.com/bloeys/nrast/materials"
	"github.com/bloeys/nrast/meshes"
	"github.com/bloeys/nrast/renderer"
)

// Spheres move inside the [-1, 1] box
const BoxHalfSize = 1

// Sphere is a ball moving at Speed along Orientation and bouncing off the walls of the box
type Sphere struct {
	Radius      float32
	Position    geom.Vec3[float32]
	Orientation geom.Vec3[float32]
	Speed       float32

	// Normalized rgba
	Color [4]float32
}

// Update moves the sphere. An axis that would leave the box keeps its old coordinate
// and has its direction flipped.
func (s *Sphere) Update(dt float32) {

	step := func(pos, dir *float32) {
		next := *pos + s.Speed*(*dir)*dt
		if next > BoxHalfSize || next < -BoxHalfSize {
			*dir = -*dir
			return
		}
		*pos = next
	}

	step(&s.Position.X, &s.Orientation.X)
	step(&s.Position.Y, &s.Orientation.Y)
	step(&s.Position.Z, &s.Orientation.Z)
}

func (s *Sphere) Overlaps(other *Sphere) bool {
	return geom.SpheresOverlap(s.Position, float64(s.Radius), other.Position, float64(other.Radius))
}

func (s *Sphere) ModelMatrix() geom.Mat4 {
	r := float64(s.Radius)
	return geom.NewMat4Translation(float64(s.Position.X), float64(s.Position.Y), float64(s.Position.Z)).
		Mul(geom.NewMat4Scale(r, r, r))
}

// Bounce exchanges the parts of the two directions that lie along the line between them.
// Speeds are kept.
func Bounce(a, b *Sphere) {

	v1, v2 := a.Orientation, b.Orientation
	a.Orientation = v1.Add(geom.Project(v2, v2.Sub(v1))).Sub(geom.Project(v1, v1.Sub(v2)))
	b.Orientation = v2.Add(geom.Project(v1, v2.Sub(v1))).Sub(geom.Project(v2, v1.Sub(v2)))
}

// SphereGroup moves a set of spheres and bounces the ones that touch. All of them are
// drawn with one unit sphere mesh scaled by their radius.
type SphereGroup struct {
	Spheres []*Sphere
	Mat     *materials.Material

	// Collisions are off unless set
	Collide bool

	Rings   int
	Sectors int

	mesh   meshes.Mesh
	loaded bool

	// partner[i] is the sphere i last bounced with, or -1. A pair only bounces once per contact.
	partner []int
}

func NewSphereGroup(mat *materials.Material, spheres ...*Sphere) *SphereGroup {
	return &SphereGroup{
		Spheres: spheres,
		Mat:     mat,
		Rings:   16,
		Sectors: 16,
	}
}

func (g *SphereGroup) Load() error {

	if g.loaded {
		return nil
	}

	unit := geom.NewSphereSolid[float32](1, g.Rings, g.Sectors)
	mesh, err := meshes.NewMeshFromSolid("sphere", &unit)
	if err != nil {
		return err
	}

	g.mesh = mesh
	g.loaded = true
	return nil
}

func (g *SphereGroup) Update(dt float32) {

	for _, s := range g.Spheres {
		s.Update(dt)
	}

	if g.Collide {
		g.resolveCollisions()
	}
}

func (g *SphereGroup) resolveCollisions() {

	if len(g.partner) != len(g.Spheres) {
		g.partner = make([]int, len(g.Spheres))
		for i := range g.partner {
			g.partner[i] = -1
		}
	}

	for i := 1; i < len(g.Spheres); i++ {
		for j := 0; j < i; j++ {

			if !g.Spheres[i].Overlaps(g.Spheres[j]) {
				if g.partner[i] == j {
					g.partner[i] = -1
				}
				if g.partner[j] == i {
					g.partner[j] = -1
				}
				continue
			}

			if g.partner[i] == j || g.partner[j] == i {
				continue
			}

			Bounce(g.Spheres[i], g.Spheres[j])
			g.partner[i] = j
			g.partner[j] = i
		}
	}
}

func (g *SphereGroup) Render(rend renderer.Render) {

	if !g.loaded || g.Mat == nil {
		return
	}

	for _, s := range g.Spheres {
		g.Mat.SetColor(s.Color)
		rend.DrawMesh(g.mesh, renderer.ToMat4(s.ModelMatrix()), *g.Mat)
	}
}

func (g *SphereGroup) Delete() {

	if !g.loaded {
		return
	}

	g.mesh.Delete()
	g.loaded = false
}

// RandomSpheres makes n small spheres at random non-overlapping spots on the z=0.1 plane,
// moving in random directions on that plane. Spots are retried a bounded number of times,
// so in a crowded box the last spheres may overlap.
func RandomSpheres(rng *rand.Rand, n int, existing []*Sphere) []*Sphere {

	const maxTries = 100

	out := make([]*Sphere, 0, n)
	overlapsAny := func(s *Sphere) bool {
		for _, other := range existing {
			if s.Overlaps(other) {
				return true
			}
		}
		for _, other := range out {
			if s.Overlaps(other) {
				return true
			}
		}
		return false
	}

	for i := 0; i < n; i++ {

		s := &Sphere{
			Radius:      rng.Float32()*0.015 + 0.02,
			Speed:       rng.Float32()*0.3 + 0.7,
			Color:       [4]float32{rng.Float32() * 0.86, rng.Float32() * 0.86, rng.Float32() * 0.86, 1},
			Orientation: geom.NewVec3(rng.Float32()*2-1, rng.Float32()*2-1, 0).Normalize(),
		}

		for try := 0; try < maxTries; try++ {
			s.Position = geom.NewVec3(rng.Float32()*2-1, rng.Float32()*2-1, 0.1)
			if !overlapsAny(s) {
				break
			}
		}

		out = append(out, s)
	}

	return out
}

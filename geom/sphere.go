package geom

import "math"

// NewSphereSolid builds a UV sphere of rings*sectors vertices joined by quads.
// Rings run from the south pole (-y) to the north pole (+y). Fewer than 2 rings or sectors gives an empty solid.
func NewSphereSolid[T Number](radius float64, rings, sectors int) Solid[T] {

	s := Solid[T]{}
	if rings < 2 || sectors < 2 {
		return s
	}

	R := 1 / float64(rings-1)
	S := 1 / float64(sectors-1)

	s.Vertices = make([]Vec3[T], 0, rings*sectors)
	for r := 0; r < rings; r++ {

		ringAngle := math.Pi * float64(r) * R
		y := math.Sin(-math.Pi/2 + ringAngle)

		for sec := 0; sec < sectors; sec++ {

			sectorAngle := 2 * math.Pi * float64(sec) * S
			x := math.Cos(sectorAngle) * math.Sin(ringAngle)
			z := math.Sin(sectorAngle) * math.Sin(ringAngle)

			s.AddVertex(Vec3[T]{X: T(x * radius), Y: T(y * radius), Z: T(z * radius)})
		}
	}

	s.Faces = make([]Face, 0, (rings-1)*(sectors-1))
	for r := 0; r < rings-1; r++ {
		for sec := 0; sec < sectors-1; sec++ {
			// 1-based
			a := r*sectors + sec + 1
			b := (r+1)*sectors + sec + 1
			s.Faces = append(s.Faces, Face{Indices: []int{a, a + 1, b + 1, b}})
		}
	}

	return s
}

// SpheresOverlap reports whether two spheres intersect. Touching spheres do not overlap.
func SpheresOverlap[T Number](a Vec3[T], ra float64, b Vec3[T], rb float64) bool {
	return DistanceSquared(a, b) < (ra+rb)*(ra+rb)
}

// Project returns the projection of u onto v. Projecting onto a zero vector gives a zero vector.
func Project[T Number](u, v Vec3[T]) Vec3[T] {

	vv := v.Dot(v)
	if vv == 0 {
		return Vec3[T]{}
	}

	return v.Scale(u.Dot(v) / vv)
}

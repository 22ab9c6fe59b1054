package geom

// Rectangle vertices go around the rectangle: p1, p2, p3, p4
type Rectangle[T Number] struct {
	Vertex [4]Vec2[T]
}

// Centroid is the midpoint of the p1-p3 diagonal, which is only the true
// centroid for the vertex order Rectangle documents.
func (r Rectangle[T]) Centroid() Vec2[T] {
	p1, p3 := r.Vertex[0], r.Vertex[2]
	return Vec2[T]{
		X: p1.X + (p3.X-p1.X)/2,
		Y: p1.Y + (p3.Y-p1.Y)/2,
	}
}

type Triangle[T Number] struct {
	Vertex [3]Vec2[T]
}

func (t Triangle[T]) Centroid() Vec2[T] {
	return meanVec2(t.Vertex[:])
}

type Circle[T Number] struct {
	Center Vec2[T]
	Radius T
}

func (c Circle[T]) Centroid() Vec2[T] {
	return c.Center
}

type Polygon[T Number] struct {
	Vertex []Vec2[T]
}

// Centroid is the arithmetic mean of the vertices, or zero for an empty polygon
func (p Polygon[T]) Centroid() Vec2[T] {
	return meanVec2(p.Vertex)
}

type Tetrahedron[T Number] struct {
	Vertex [4]Vec3[T]
}

func (t Tetrahedron[T]) Centroid() Vec3[T] {

	var x, y, z float64
	for _, v := range t.Vertex {
		x += float64(v.X)
		y += float64(v.Y)
		z += float64(v.Z)
	}

	return Vec3[T]{X: T(x / 4), Y: T(y / 4), Z: T(z / 4)}
}

// Faces returns the four sides of t projected onto the xy plane
func (t Tetrahedron[T]) Faces() [4]Triangle[T] {

	p1, p2, p3, p4 := t.Vertex[0].XY(), t.Vertex[1].XY(), t.Vertex[2].XY(), t.Vertex[3].XY()
	return [4]Triangle[T]{
		{Vertex: [3]Vec2[T]{p1, p2, p3}},
		{Vertex: [3]Vec2[T]{p1, p2, p4}},
		{Vertex: [3]Vec2[T]{p2, p3, p4}},
		{Vertex: [3]Vec2[T]{p3, p1, p4}},
	}
}

func (t Tetrahedron[T]) Transform(m Mat4) Tetrahedron[T] {

	out := t
	for i := range out.Vertex {
		out.Vertex[i] = TransformVec3(out.Vertex[i], m)
	}

	return out
}

func meanVec2[T Number](vs []Vec2[T]) Vec2[T] {

	if len(vs) == 0 {
		return Vec2[T]{}
	}

	var x, y float64
	for _, v := range vs {
		x += float64(v.X)
		y += float64(v.Y)
	}

	n := float64(len(vs))
	return Vec2[T]{X: T(x / n), Y: T(y / n)}
}

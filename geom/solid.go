package geom

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mandykoh/go-parallel"
)

var (
	ErrDegenerateFace  = errors.New("face needs at least 3 vertex indices")
	ErrIndexOutOfRange = errors.New("face references a vertex that does not exist")
)

// Face is one polygon of a Solid. Indices are 1-based positions into Solid.Vertices.
type Face struct {
	Indices []int
}

// Solid is a polygon mesh: a vertex soup plus faces referencing it by 1-based index.
// Faces may be triangles, quads or any n-gon.
type Solid[T Number] struct {
	Vertices []Vec3[T]
	Faces    []Face
}

func (s *Solid[T]) AddVertex(v Vec3[T]) {
	s.Vertices = append(s.Vertices, v)
}

// AddFace appends a face made of the given 1-based indices. Faces with fewer than
// 3 indices are rejected. Index validity is not checked here, see Validate.
func (s *Solid[T]) AddFace(indices ...int) error {

	if len(indices) < 3 {
		return fmt.Errorf("%w: got %d", ErrDegenerateFace, len(indices))
	}

	s.Faces = append(s.Faces, Face{Indices: slices.Clone(indices)})
	return nil
}

func (s *Solid[T]) IsEmpty() bool {
	return len(s.Vertices) == 0 && len(s.Faces) == 0
}

// Clone returns a deep copy
func (s *Solid[T]) Clone() Solid[T] {

	out := Solid[T]{
		Vertices: slices.Clone(s.Vertices),
		Faces:    make([]Face, len(s.Faces)),
	}

	for i := 0; i < len(s.Faces); i++ {
		out.Faces[i].Indices = slices.Clone(s.Faces[i].Indices)
	}

	return out
}

// Vertex looks a vertex up by its 1-based index
func (s *Solid[T]) Vertex(index int) (Vec3[T], bool) {

	if index < 1 || index > len(s.Vertices) {
		return Vec3[T]{}, false
	}

	return s.Vertices[index-1], true
}

// FaceVertices resolves all the vertices of f. ok is false when any index is invalid.
func (s *Solid[T]) FaceVertices(f Face) (verts []Vec3[T], ok bool) {

	verts = make([]Vec3[T], len(f.Indices))
	for i, index := range f.Indices {

		v, ok := s.Vertex(index)
		if !ok {
			return nil, false
		}

		verts[i] = v
	}

	return verts, true
}

// Validate checks that every face has at least 3 indices and only references existing vertices
func (s *Solid[T]) Validate() error {

	for faceIndex, f := range s.Faces {

		if len(f.Indices) < 3 {
			return fmt.Errorf("face %d: %w", faceIndex, ErrDegenerateFace)
		}

		for _, index := range f.Indices {
			if index < 1 || index > len(s.Vertices) {
				return fmt.Errorf("face %d index %d (vertex count %d): %w", faceIndex, index, len(s.Vertices), ErrIndexOutOfRange)
			}
		}
	}

	return nil
}

// BoundingBox returns the per-axis minimum and maximum of all vertices.
// ok is false for a solid without vertices.
func (s *Solid[T]) BoundingBox() (min, max Vec3[T], ok bool) {

	if len(s.Vertices) == 0 {
		return min, max, false
	}

	for _, axis := range [...]Axis{AxisX, AxisY, AxisZ} {

		cmpFunc := CompareOn[T](axis)
		minV := slices.MinFunc(s.Vertices, cmpFunc)
		maxV := slices.MaxFunc(s.Vertices, cmpFunc)

		switch axis {
		case AxisX:
			min.X, max.X = minV.X, maxV.X
		case AxisY:
			min.Y, max.Y = minV.Y, maxV.Y
		case AxisZ:
			min.Z, max.Z = minV.Z, maxV.Z
		}
	}

	return min, max, true
}

// Center is the middle of the bounding box
func (s *Solid[T]) Center() Vec3[T] {

	min, max, ok := s.BoundingBox()
	if !ok {
		return Vec3[T]{}
	}

	return Vec3[T]{
		X: min.X + (max.X-min.X)/2,
		Y: min.Y + (max.Y-min.Y)/2,
		Z: min.Z + (max.Z-min.Z)/2,
	}
}

// Norm returns a copy with every coordinate remapped into [0, 1] using the bounding box.
// An axis with zero extent (a flat mesh) is not scaled and maps to 0.
func (s *Solid[T]) Norm() Solid[T] {

	out := s.Clone()

	min, max, ok := s.BoundingBox()
	if !ok {
		return out
	}

	remap := func(v, lo, hi T) T {
		if hi == lo {
			return 0
		}
		return T(float64(v-lo) / float64(hi-lo))
	}

	for i := range out.Vertices {
		v := &out.Vertices[i]
		v.X = remap(v.X, min.X, max.X)
		v.Y = remap(v.Y, min.Y, max.Y)
		v.Z = remap(v.Z, min.Z, max.Z)
	}

	return out
}

// Transform returns a copy of s with m applied to every vertex. Faces are shared
// with s since transforms never change topology; see sharedFaces.
func (s *Solid[T]) Transform(m Mat4) Solid[T] {

	out := Solid[T]{
		Vertices: make([]Vec3[T], len(s.Vertices)),
		Faces:    sharedFaces(s.Faces),
	}

	s.TransformInto(&out, m)
	return out
}

// TransformInto writes the transformed vertices of s into dst, reusing its storage
func (s *Solid[T]) TransformInto(dst *Solid[T], m Mat4) {

	if cap(dst.Vertices) < len(s.Vertices) {
		dst.Vertices = make([]Vec3[T], len(s.Vertices))
	}
	dst.Vertices = dst.Vertices[:len(s.Vertices)]
	dst.Faces = sharedFaces(s.Faces)

	for i := 0; i < len(s.Vertices); i++ {
		dst.Vertices[i] = TransformVec3(s.Vertices[i], m)
	}
}

// TransformParallel is Transform split over workers goroutines. Each worker writes
// only its own strided indices, so output order matches input order.
func (s *Solid[T]) TransformParallel(m Mat4, workers int) Solid[T] {

	if workers < 2 || len(s.Vertices) < workers {
		return s.Transform(m)
	}

	out := Solid[T]{
		Vertices: make([]Vec3[T], len(s.Vertices)),
		Faces:    sharedFaces(s.Faces),
	}

	parallel.RunWorkers(workers, func(workerNum, workerCount int) {
		for i := workerNum; i < len(s.Vertices); i += workerCount {
			out.Vertices[i] = TransformVec3(s.Vertices[i], m)
		}
	})

	return out
}

// TriangleIndices returns a 0-based triangle list for GPU upload. Triangles are kept,
// quads become (0,1,2),(0,2,3) and larger polygons are fanned from their first vertex.
// Faces referencing missing vertices are skipped.
func (s *Solid[T]) TriangleIndices() []uint32 {

	out := make([]uint32, 0, len(s.Faces)*3)

	for _, f := range s.Faces {

		if len(f.Indices) < 3 || !s.faceInRange(f) {
			continue
		}

		first := uint32(f.Indices[0] - 1)
		for i := 1; i < len(f.Indices)-1; i++ {
			out = append(out, first, uint32(f.Indices[i]-1), uint32(f.Indices[i+1]-1))
		}
	}

	return out
}

// Positions flattens the vertices into x,y,z float32 triples
func (s *Solid[T]) Positions() []float32 {

	out := make([]float32, 0, len(s.Vertices)*3)
	for _, v := range s.Vertices {
		out = append(out, float32(v.X), float32(v.Y), float32(v.Z))
	}

	return out
}

func (s *Solid[T]) faceInRange(f Face) bool {

	for _, index := range f.Indices {
		if index < 1 || index > len(s.Vertices) {
			return false
		}
	}

	return true
}

// ConvertSolid copies s into a solid over another numeric type. Faces are shared as in Transform.
func ConvertSolid[To, From Number](s Solid[From]) Solid[To] {

	out := Solid[To]{
		Vertices: make([]Vec3[To], len(s.Vertices)),
		Faces:    sharedFaces(s.Faces),
	}

	for i, v := range s.Vertices {
		out.Vertices[i] = ConvertVec3[To](v)
	}

	return out
}

// sharedFaces returns faces with its capacity cut to its length, so appending to either
// solid reallocates instead of writing into the other's spare capacity. The indices of
// existing faces stay shared and must not be edited in place; Clone first for that.
func sharedFaces(faces []Face) []Face {
	return faces[:len(faces):len(faces)]
}

// Package geom holds the CPU side math of nRast: small generic vectors,
// axis tags, 3x3 and 4x4 homogeneous matrices, 2D shapes and polygon solids.
package geom

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Number is any integral or floating point type a vector can be built over
type Number interface {
	constraints.Integer | constraints.Float
}

type Vec2[T Number] struct {
	X T
	Y T
}

type Vec3[T Number] struct {
	X T
	Y T
	Z T
}

func NewVec2[T Number](x, y T) Vec2[T] {
	return Vec2[T]{X: x, Y: y}
}

func NewVec3[T Number](x, y, z T) Vec3[T] {
	return Vec3[T]{X: x, Y: y, Z: z}
}

func (v Vec2[T]) Add(o Vec2[T]) Vec2[T] {
	return Vec2[T]{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2[T]) Sub(o Vec2[T]) Vec2[T] {
	return Vec2[T]{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2[T]) Scale(s float64) Vec2[T] {
	return Vec2[T]{X: T(float64(v.X) * s), Y: T(float64(v.Y) * s)}
}

func (v Vec2[T]) Dot(o Vec2[T]) float64 {
	return float64(v.X)*float64(o.X) + float64(v.Y)*float64(o.Y)
}

func (v Vec2[T]) Magnitude() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. A vector whose magnitude
// is not strictly positive is returned unchanged.
func (v Vec2[T]) Normalize() Vec2[T] {

	mag := v.Magnitude()
	if !(mag > 0) {
		return v
	}

	return Vec2[T]{X: T(float64(v.X) / mag), Y: T(float64(v.Y) / mag)}
}

func (v Vec2[T]) String() string {
	return fmt.Sprintf("(%v, %v)", v.X, v.Y)
}

func (v Vec3[T]) Add(o Vec3[T]) Vec3[T] {
	return Vec3[T]{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3[T]) Sub(o Vec3[T]) Vec3[T] {
	return Vec3[T]{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3[T]) Scale(s float64) Vec3[T] {
	return Vec3[T]{X: T(float64(v.X) * s), Y: T(float64(v.Y) * s), Z: T(float64(v.Z) * s)}
}

func (v Vec3[T]) Dot(o Vec3[T]) float64 {
	return float64(v.X)*float64(o.X) + float64(v.Y)*float64(o.Y) + float64(v.Z)*float64(o.Z)
}

func (v Vec3[T]) Magnitude() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. A vector whose magnitude
// is not strictly positive is returned unchanged.
func (v Vec3[T]) Normalize() Vec3[T] {

	mag := v.Magnitude()
	if !(mag > 0) {
		return v
	}

	return Vec3[T]{
		X: T(float64(v.X) / mag),
		Y: T(float64(v.Y) / mag),
		Z: T(float64(v.Z) / mag),
	}
}

// XY drops the z component, which is how projected vertices reach the screen
func (v Vec3[T]) XY() Vec2[T] {
	return Vec2[T]{X: v.X, Y: v.Y}
}

func (v Vec3[T]) String() string {
	return fmt.Sprintf("(%v, %v, %v)", v.X, v.Y, v.Z)
}

func ConvertVec2[To, From Number](v Vec2[From]) Vec2[To] {
	return Vec2[To]{X: To(v.X), Y: To(v.Y)}
}

func ConvertVec3[To, From Number](v Vec3[From]) Vec3[To] {
	return Vec3[To]{X: To(v.X), Y: To(v.Y), Z: To(v.Z)}
}

func DistanceSquared[T Number](a, b Vec3[T]) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

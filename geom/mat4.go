package geom

import (
	"fmt"
	"math"
)

// Mat4 is a row-major 4x4 homogeneous transform.
//
// Vectors are transformed as columns (see TransformVec3), so in a product
// A.Mul(B) the transform B is applied first. Chains are therefore written
// in the reverse of the order they take effect:
//
//	NewMat4Translation(...).Mul(NewMat4Rotation(...)).Mul(NewMat4Translation(...))
//
// moves first, rotates, then moves again.
type Mat4 struct {
	Data [4][4]float64
}

func NewMat4Id() Mat4 {
	return Mat4{Data: [4][4]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
}

func NewMat4Translation(dx, dy, dz float64) Mat4 {
	return Mat4{Data: [4][4]float64{
		{1, 0, 0, dx},
		{0, 1, 0, dy},
		{0, 0, 1, dz},
		{0, 0, 0, 1},
	}}
}

func NewMat4Scale(sx, sy, sz float64) Mat4 {
	return Mat4{Data: [4][4]float64{
		{sx, 0, 0, 0},
		{0, sy, 0, 0},
		{0, 0, sz, 0},
		{0, 0, 0, 1},
	}}
}

// NewMat4Rotation rotates by rad radians around the axis.
//
// The sign layout (sin above the diagonal on the X and Z rotations) is the one
// the wireframe demos were tuned against and must not be flipped.
func NewMat4Rotation(axis Axis, rad float64) Mat4 {

	sin, cos := math.Sincos(rad)

	switch axis {
	case AxisX:
		return Mat4{Data: [4][4]float64{
			{1, 0, 0, 0},
			{0, cos, sin, 0},
			{0, -sin, cos, 0},
			{0, 0, 0, 1},
		}}
	case AxisY:
		return Mat4{Data: [4][4]float64{
			{cos, 0, sin, 0},
			{0, 1, 0, 0},
			{-sin, 0, cos, 0},
			{0, 0, 0, 1},
		}}
	default:
		return Mat4{Data: [4][4]float64{
			{cos, sin, 0, 0},
			{-sin, cos, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 1},
		}}
	}
}

// NewMat4SimplePerspective is a centric projection that converges at distance cp on the z axis.
// It only places 1/cp on the last row, giving w = 1 + z/cp, so points at z=0 are untouched
// and points further away shrink towards the origin.
//
// A non-positive cp returns the identity.
func NewMat4SimplePerspective(cp float64) Mat4 {

	m := NewMat4Id()
	if cp <= 0 {
		return m
	}

	m.Data[3][2] = 1 / cp
	return m
}

// NewMat4Perspective is the usual frustum projection with q = far/(far-near).
// aspect is height/width and scales x.
func NewMat4Perspective(fovRad, aspect, near, far float64) Mat4 {

	f := 1 / math.Tan(fovRad/2)
	q := far / (far - near)

	return Mat4{Data: [4][4]float64{
		{aspect * f, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, q, -near * q},
		{0, 0, 1, 0},
	}}
}

// Mul returns m*other
func (m Mat4) Mul(other Mat4) Mat4 {

	var product Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				product.Data[i][j] += m.Data[i][k] * other.Data[k][j]
			}
		}
	}

	return product
}

// MulMat4 multiplies left to right. MulMat4() is the identity.
func MulMat4(mats ...Mat4) Mat4 {

	out := NewMat4Id()
	for i := 0; i < len(mats); i++ {
		out = out.Mul(mats[i])
	}

	return out
}

func (m Mat4) Transpose() Mat4 {

	var t Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			t.Data[j][i] = m.Data[i][j]
		}
	}

	return t
}

// EqualTol reports whether every element of m is within tol of other
func (m Mat4) EqualTol(other Mat4, tol float64) bool {

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(m.Data[i][j]-other.Data[i][j]) > tol {
				return false
			}
		}
	}

	return true
}

func (m Mat4) String() string {
	return fmt.Sprintf("\n%v\n%v\n%v\n%v\n", m.Data[0], m.Data[1], m.Data[2], m.Data[3])
}

// TransformVec3 applies m to v with an implicit w of 1, then divides by the resulting w
// when it is non-zero. A zero w (a point on the projection plane of a perspective matrix)
// is left undivided.
func TransformVec3[T Number](v Vec3[T], m Mat4) Vec3[T] {

	x, y, z := float64(v.X), float64(v.Y), float64(v.Z)
	d := &m.Data

	outX := x*d[0][0] + y*d[0][1] + z*d[0][2] + d[0][3]
	outY := x*d[1][0] + y*d[1][1] + z*d[1][2] + d[1][3]
	outZ := x*d[2][0] + y*d[2][1] + z*d[2][2] + d[2][3]
	w := x*d[3][0] + y*d[3][1] + z*d[3][2] + d[3][3]

	if w != 0 && w != 1 {
		outX /= w
		outY /= w
		outZ /= w
	}

	return Vec3[T]{X: T(outX), Y: T(outY), Z: T(outZ)}
}

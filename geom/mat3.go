package geom

import (
	"fmt"
	"math"
)

// Mat3 is the 2D counterpart of Mat4, with the same column-vector convention
type Mat3 struct {
	Data [3][3]float64
}

func NewMat3Id() Mat3 {
	return Mat3{Data: [3][3]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

func NewMat3Translation(dx, dy float64) Mat3 {
	return Mat3{Data: [3][3]float64{
		{1, 0, dx},
		{0, 1, dy},
		{0, 0, 1},
	}}
}

func NewMat3Scale(sx, sy float64) Mat3 {
	return Mat3{Data: [3][3]float64{
		{sx, 0, 0},
		{0, sy, 0},
		{0, 0, 1},
	}}
}

// NewMat3Rotation uses the same sign layout as the Z rotation of NewMat4Rotation
func NewMat3Rotation(rad float64) Mat3 {

	sin, cos := math.Sincos(rad)
	return Mat3{Data: [3][3]float64{
		{cos, sin, 0},
		{-sin, cos, 0},
		{0, 0, 1},
	}}
}

func (m Mat3) Mul(other Mat3) Mat3 {

	var product Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				product.Data[i][j] += m.Data[i][k] * other.Data[k][j]
			}
		}
	}

	return product
}

func MulMat3(mats ...Mat3) Mat3 {

	out := NewMat3Id()
	for i := 0; i < len(mats); i++ {
		out = out.Mul(mats[i])
	}

	return out
}

func (m Mat3) EqualTol(other Mat3, tol float64) bool {

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m.Data[i][j]-other.Data[i][j]) > tol {
				return false
			}
		}
	}

	return true
}

func (m Mat3) String() string {
	return fmt.Sprintf("\n%v\n%v\n%v\n", m.Data[0], m.Data[1], m.Data[2])
}

// TransformVec2 applies m to v with an implicit w of 1, dividing by a non-zero w
func TransformVec2[T Number](v Vec2[T], m Mat3) Vec2[T] {

	x, y := float64(v.X), float64(v.Y)
	d := &m.Data

	outX := x*d[0][0] + y*d[0][1] + d[0][2]
	outY := x*d[1][0] + y*d[1][1] + d[1][2]
	w := x*d[2][0] + y*d[2][1] + d[2][2]

	if w != 0 && w != 1 {
		outX /= w
		outY /= w
	}

	return Vec2[T]{X: T(outX), Y: T(outY)}
}

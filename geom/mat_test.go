package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func assertVec3Near(t *testing.T, expected, actual Vec3[float64], msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, 1e-6, msgAndArgs...)
	assert.InDelta(t, expected.Y, actual.Y, 1e-6, msgAndArgs...)
	assert.InDelta(t, expected.Z, actual.Z, 1e-6, msgAndArgs...)
}

func sampleMats() []Mat4 {
	return []Mat4{
		NewMat4Id(),
		NewMat4Translation(3, -4, 5),
		NewMat4Scale(2, -2, 0.5),
		NewMat4Rotation(AxisX, 0.3),
		NewMat4Rotation(AxisY, -1.2),
		NewMat4Rotation(AxisZ, math.Pi/3),
		NewMat4SimplePerspective(500),
		NewMat4Perspective(math.Pi/2, 0.75, 0.1, 1000),
		{Data: [4][4]float64{
			{1, 2, 3, 4},
			{5, 6, 7, 8},
			{9, 10, 11, 12},
			{13, 14, 15, 16},
		}},
	}
}

func TestMat4IdentityLaw(t *testing.T) {

	id := NewMat4Id()
	for i, m := range sampleMats() {
		assert.True(t, m.Mul(id).EqualTol(m, tol), "M*I case %d", i)
		assert.True(t, id.Mul(m).EqualTol(m, tol), "I*M case %d", i)
	}
}

func TestMat3IdentityLaw(t *testing.T) {

	id := NewMat3Id()
	mats := []Mat3{
		NewMat3Translation(2, 7),
		NewMat3Scale(-1, 3),
		NewMat3Rotation(1.1),
	}

	for i, m := range mats {
		assert.True(t, m.Mul(id).EqualTol(m, tol), "M*I case %d", i)
		assert.True(t, id.Mul(m).EqualTol(m, tol), "I*M case %d", i)
	}
}

func TestMat4TranslationRoundtrip(t *testing.T) {

	m := NewMat4Translation(12.5, -3, 7).Mul(NewMat4Translation(-12.5, 3, -7))
	assert.True(t, m.EqualTol(NewMat4Id(), tol), m.String())

	m3 := NewMat3Translation(4, 9).Mul(NewMat3Translation(-4, -9))
	assert.True(t, m3.EqualTol(NewMat3Id(), tol), m3.String())
}

func TestMat4MulIsNotCommutative(t *testing.T) {

	tr := NewMat4Translation(10, 0, 0)
	rot := NewMat4Rotation(AxisZ, math.Pi/2)
	assert.False(t, tr.Mul(rot).EqualTol(rot.Mul(tr), tol))
}

func TestMulMat4(t *testing.T) {

	assert.True(t, MulMat4().EqualTol(NewMat4Id(), tol))

	a := NewMat4Translation(1, 2, 3)
	b := NewMat4Rotation(AxisY, 0.4)
	c := NewMat4Scale(2, 2, 2)
	assert.True(t, MulMat4(a, b, c).EqualTol(a.Mul(b).Mul(c), tol))
}

func TestMat4Transpose(t *testing.T) {

	m := sampleMats()[len(sampleMats())-1]
	tr := m.Transpose()
	assert.Equal(t, 2.0, tr.Data[1][0])
	assert.Equal(t, 13.0, tr.Data[0][3])
	assert.True(t, tr.Transpose().EqualTol(m, 0))
}

func TestRotationComposition(t *testing.T) {

	v := NewVec3(3.0, -2.0, 7.5)
	angles := []float64{0.1, math.Pi / 4, math.Pi, -2.3}

	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		for _, a := range angles {
			rotated := TransformVec3(v, NewMat4Rotation(axis, a))
			back := TransformVec3(rotated, NewMat4Rotation(axis, -a))
			assertVec3Near(t, v, back, "axis %s angle %v", axis, a)

			combined := NewMat4Rotation(axis, -a).Mul(NewMat4Rotation(axis, a))
			assert.True(t, combined.EqualTol(NewMat4Id(), 1e-9), "axis %s angle %v", axis, a)
		}
	}
}

func TestRotationZSignConvention(t *testing.T) {

	// Row 0 is [cos, sin], so +x rotated by 90 degrees lands on -y
	out := TransformVec3(NewVec3(1.0, 0, 0), NewMat4Rotation(AxisZ, math.Pi/2))
	assertVec3Near(t, NewVec3(0.0, -1, 0), out)

	m := NewMat4Rotation(AxisZ, 0.5)
	assert.InDelta(t, math.Sin(0.5), m.Data[0][1], tol)
	assert.InDelta(t, -math.Sin(0.5), m.Data[1][0], tol)

	v2 := TransformVec2(NewVec2(1.0, 0), NewMat3Rotation(math.Pi/2))
	assert.InDelta(t, 0, v2.X, 1e-9)
	assert.InDelta(t, -1, v2.Y, 1e-9)
}

func TestTransformVec3Translation(t *testing.T) {

	out := TransformVec3(NewVec3(1.0, 1, 1), NewMat4Translation(2, 3, 4))
	assertVec3Near(t, NewVec3(3.0, 4, 5), out)

	// Integer vectors truncate after the float math
	outI := TransformVec3(NewVec3(1, 1, 1), NewMat4Scale(2.5, 2.5, 2.5))
	assert.Equal(t, NewVec3(2, 2, 2), outI)
}

func TestPerspectiveDivide(t *testing.T) {

	t.Run("w of one leaves coordinates unchanged", func(t *testing.T) {
		v := NewVec3(10.0, -20, 0)
		out := TransformVec3(v, NewMat4SimplePerspective(500))
		assertVec3Near(t, v, out)
	})

	t.Run("w other than one scales by 1/w", func(t *testing.T) {
		// w = 1 + z/cp = 2
		out := TransformVec3(NewVec3(10.0, -20, 500), NewMat4SimplePerspective(500))
		assertVec3Near(t, NewVec3(5.0, -10, 250), out)
	})

	t.Run("w of zero does not divide", func(t *testing.T) {
		// w = 1 + z/cp = 0
		out := TransformVec3(NewVec3(10.0, -20, -500), NewMat4SimplePerspective(500))
		assertVec3Near(t, NewVec3(10.0, -20, -500), out)
		assert.False(t, math.IsInf(out.X, 0) || math.IsNaN(out.X))
	})

	t.Run("2D divide", func(t *testing.T) {
		m := NewMat3Id()
		m.Data[2][2] = 2
		out := TransformVec2(NewVec2(8.0, 4), m)
		assert.InDelta(t, 4, out.X, tol)
		assert.InDelta(t, 2, out.Y, tol)

		m.Data[2][2] = 0
		out = TransformVec2(NewVec2(8.0, 4), m)
		assert.InDelta(t, 8, out.X, tol)
	})
}

func TestSimplePerspectiveNonPositive(t *testing.T) {
	assert.True(t, NewMat4SimplePerspective(0).EqualTol(NewMat4Id(), 0))
	assert.True(t, NewMat4SimplePerspective(-10).EqualTol(NewMat4Id(), 0))
}

func TestPerspective(t *testing.T) {

	near, far := 0.1, 1000.0
	m := NewMat4Perspective(math.Pi/2, 1, near, far)

	q := far / (far - near)
	assert.InDelta(t, 1, m.Data[0][0], tol)
	assert.InDelta(t, 1, m.Data[1][1], tol)
	assert.InDelta(t, q, m.Data[2][2], tol)
	assert.InDelta(t, -near*q, m.Data[2][3], tol)
	assert.Equal(t, 1.0, m.Data[3][2])
	assert.Equal(t, 0.0, m.Data[3][3])

	// Points on the near and far planes land on depth 0 and 1
	assert.InDelta(t, 0, TransformVec3(NewVec3(0, 0, near), m).Z, 1e-9)
	assert.InDelta(t, 1, TransformVec3(NewVec3(0, 0, far), m).Z, 1e-9)
}

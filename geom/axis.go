package geom

import (
	"cmp"
	"fmt"
)

// Axis selects a rotation plane or the coordinate used in a comparison
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {

	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}

	return fmt.Sprintf("Axis(%d)", uint8(a))
}

// Component returns the coordinate of v on the axis
func Component[T Number](v Vec3[T], axis Axis) T {

	switch axis {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// Less reports whether a is before b on the axis
func Less[T Number](axis Axis, a, b Vec3[T]) bool {
	return Component(a, axis) < Component(b, axis)
}

// CompareOn returns a comparator usable with slices.MinFunc and friends
func CompareOn[T Number](axis Axis) func(a, b Vec3[T]) int {
	return func(a, b Vec3[T]) int {
		return cmp.Compare(Component(a, axis), Component(b, axis))
	}
}

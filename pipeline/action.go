// Package pipeline turns user actions into composed transforms and redraws the
// transformed geometry into a software pixel buffer.
//
// Runners never mutate their source geometry in response to a single action unless
// they are explicitly incremental (TetrahedronRunner in its plain mode), so a
// reset is always possible.
package pipeline

import (
	"math"

	"github.com/bloeys/nrast/raster"
)

type Action uint8

const (
	Action_None Action = iota
	Action_Move_Up
	Action_Move_Down
	Action_Move_Left
	Action_Move_Right
	Action_Scale
	Action_Rotate_X
	Action_Rotate_Y
	Action_Rotate_Z
	Action_Rotate_Ccw
	Action_Rotate_Cw
	Action_Perspective_Farther
	Action_Perspective_Closer
	Action_Toggle_Perspective
	Action_Reset
	Action_Toggle_Debug
)

func (a Action) String() string {

	switch a {
	case Action_Move_Up:
		return "MoveUp"
	case Action_Move_Down:
		return "MoveDown"
	case Action_Move_Left:
		return "MoveLeft"
	case Action_Move_Right:
		return "MoveRight"
	case Action_Scale:
		return "Scale"
	case Action_Rotate_X:
		return "RotateX"
	case Action_Rotate_Y:
		return "RotateY"
	case Action_Rotate_Z:
		return "RotateZ"
	case Action_Rotate_Ccw:
		return "RotateCcw"
	case Action_Rotate_Cw:
		return "RotateCw"
	case Action_Perspective_Farther:
		return "PerspectiveFarther"
	case Action_Perspective_Closer:
		return "PerspectiveCloser"
	case Action_Toggle_Perspective:
		return "TogglePerspective"
	case Action_Reset:
		return "Reset"
	case Action_Toggle_Debug:
		return "ToggleDebug"
	}

	return "None"
}

// Modifiers are the modifier keys held while an action was triggered.
// Shift inverts the direction of rotations and scaling, Alt selects the last click as pivot.
type Modifiers struct {
	Shift bool
	Alt   bool
}

// sign is -1 with shift held and 1 otherwise
func (m Modifiers) sign() float64 {
	if m.Shift {
		return -1
	}
	return 1
}

// Runner is a software rendered demo driven by discrete actions
type Runner interface {
	Name() string

	// HandleAction applies the action and redraws the buffer
	HandleAction(a Action, mods Modifiers)

	// Click records a left click in buffer coordinates
	Click(x, y int)

	Redraw()
	Buffer() *raster.Buffer[uint8]
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

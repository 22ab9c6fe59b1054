package main

import (
	"github.com/bloeys/nrast/pipeline"
	"github.com/veandco/go-sdl2/sdl"
)

var keyActions = map[sdl.Keycode]pipeline.Action{
	sdl.K_UP:    pipeline.Action_Move_Up,
	sdl.K_DOWN:  pipeline.Action_Move_Down,
	sdl.K_LEFT:  pipeline.Action_Move_Left,
	sdl.K_RIGHT: pipeline.Action_Move_Right,

	sdl.K_SPACE: pipeline.Action_Scale,

	sdl.K_x: pipeline.Action_Rotate_X,
	sdl.K_y: pipeline.Action_Rotate_Y,
	sdl.K_z: pipeline.Action_Rotate_Z,
	sdl.K_a: pipeline.Action_Rotate_Ccw,
	sdl.K_s: pipeline.Action_Rotate_Cw,

	sdl.K_KP_PLUS:  pipeline.Action_Perspective_Farther,
	sdl.K_EQUALS:   pipeline.Action_Perspective_Farther,
	sdl.K_KP_MINUS: pipeline.Action_Perspective_Closer,
	sdl.K_MINUS:    pipeline.Action_Perspective_Closer,
	sdl.K_p:        pipeline.Action_Toggle_Perspective,

	sdl.K_r:   pipeline.Action_Reset,
	sdl.K_F12: pipeline.Action_Toggle_Debug,
}

// actionForKey returns Action_None for keys without an action
func actionForKey(k sdl.Keycode) pipeline.Action {
	return keyActions[k]
}

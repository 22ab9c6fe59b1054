// The input package tracks keyboard and mouse state fed from SDL events, along with
// higher level constructs like pressed/released this frame, double clicks and modifier keys.
//
// The engine calls EventLoopStart once per frame before feeding the events of that frame.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

type keyState struct {
	Key                 sdl.Keycode
	State               int
	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

type mouseBtnState struct {
	Btn   int
	State int

	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
	IsDoubleClicked     bool

	// Where the last press happened
	XPos int32
	YPos int32
}

type mouseMotionState struct {
	XDelta int32
	YDelta int32
	XPos   int32
	YPos   int32
}

type mouseWheelState struct {
	XDelta int32
	YDelta int32
}

var (
	mouseWheel  = mouseWheelState{}
	mouseMotion = mouseMotionState{}
	mouseBtnMap = make(map[int]mouseBtnState)
	keyMap      = make(map[sdl.Keycode]keyState)

	isQuitRequested bool
)

func EventLoopStart() {

	// Update per-frame state
	for k, v := range keyMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		keyMap[k] = v
	}

	for k, v := range mouseBtnMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		v.IsDoubleClicked = false
		mouseBtnMap[k] = v
	}

	mouseMotion.XDelta = 0
	mouseMotion.YDelta = 0

	mouseWheel.XDelta = 0
	mouseWheel.YDelta = 0

	isQuitRequested = false
}

func ClearKeyboardState() {
	clear(keyMap)
}

func ClearMouseState() {
	clear(mouseBtnMap)
	mouseMotion = mouseMotionState{}
	mouseWheel = mouseWheelState{}
}

// HandleEvent routes an SDL event to the matching handler. Events input does not track are ignored.
func HandleEvent(event sdl.Event) {

	switch e := event.(type) {
	case *sdl.KeyboardEvent:
		HandleKeyboardEvent(e)
	case *sdl.MouseButtonEvent:
		HandleMouseBtnEvent(e)
	case *sdl.MouseMotionEvent:
		HandleMouseMotionEvent(e)
	case *sdl.MouseWheelEvent:
		HandleMouseWheelEvent(e)
	case *sdl.QuitEvent:
		HandleQuitEvent(e)
	}
}

func HandleQuitEvent(e *sdl.QuitEvent) {
	isQuitRequested = true
}

func IsQuitClicked() bool {
	return isQuitRequested
}

func HandleKeyboardEvent(e *sdl.KeyboardEvent) {

	ks, ok := keyMap[e.Keysym.Sym]
	if !ok {
		ks = keyState{Key: e.Keysym.Sym}
	}

	ks.State = int(e.State)
	ks.IsPressedThisFrame = e.State == sdl.PRESSED && e.Repeat == 0
	ks.IsReleasedThisFrame = e.State == sdl.RELEASED && e.Repeat == 0

	keyMap[ks.Key] = ks
}

func HandleMouseBtnEvent(e *sdl.MouseButtonEvent) {

	mb, ok := mouseBtnMap[int(e.Button)]
	if !ok {
		mb = mouseBtnState{Btn: int(e.Button)}
	}

	mb.State = int(e.State)
	mb.IsDoubleClicked = e.Clicks == 2 && e.State == sdl.PRESSED
	mb.IsPressedThisFrame = e.State == sdl.PRESSED
	mb.IsReleasedThisFrame = e.State == sdl.RELEASED

	if mb.IsPressedThisFrame {
		mb.XPos = e.X
		mb.YPos = e.Y
	}

	mouseBtnMap[int(e.Button)] = mb
}

func HandleMouseMotionEvent(e *sdl.MouseMotionEvent) {

	mouseMotion.XPos = e.X
	mouseMotion.YPos = e.Y

	mouseMotion.XDelta += e.XRel
	mouseMotion.YDelta += e.YRel
}

func HandleMouseWheelEvent(e *sdl.MouseWheelEvent) {
	mouseWheel.XDelta += e.X
	mouseWheel.YDelta += e.Y
}

// GetMousePos returns the window coordinates of the mouse
func GetMousePos() (x, y int32) {
	return mouseMotion.XPos, mouseMotion.YPos
}

// GetMouseMotion returns how many pixels were moved last frame
func GetMouseMotion() (xDelta, yDelta int32) {
	return mouseMotion.XDelta, mouseMotion.YDelta
}

// GetMouseClickPos returns where the button was last pressed
func GetMouseClickPos(mb int) (x, y int32) {
	btn := mouseBtnMap[mb]
	return btn.XPos, btn.YPos
}

// GetMouseWheelYNorm returns 1 if mouse wheel yDelta > 0, -1 if yDelta < 0, and 0 otherwise
func GetMouseWheelYNorm() int32 {

	if mouseWheel.YDelta > 0 {
		return 1
	} else if mouseWheel.YDelta < 0 {
		return -1
	}

	return 0
}

func ShiftDown() bool {
	return KeyDown(sdl.K_LSHIFT) || KeyDown(sdl.K_RSHIFT)
}

func AltDown() bool {
	return KeyDown(sdl.K_LALT) || KeyDown(sdl.K_RALT)
}

func KeyClicked(kc sdl.Keycode) bool {

	ks, ok := keyMap[kc]
	if !ok {
		return false
	}

	return ks.IsPressedThisFrame
}

func KeyDown(kc sdl.Keycode) bool {

	ks, ok := keyMap[kc]
	if !ok {
		return false
	}

	return ks.State == sdl.PRESSED
}

// ClickedKeys returns every key pressed this frame, in no particular order
func ClickedKeys() []sdl.Keycode {

	out := make([]sdl.Keycode, 0, 2)
	for k, ks := range keyMap {
		if ks.IsPressedThisFrame {
			out = append(out, k)
		}
	}

	return out
}

func MouseClicked(mb int) bool {

	btn, ok := mouseBtnMap[mb]
	if !ok {
		return false
	}

	return btn.IsPressedThisFrame
}

func MouseDoubleClicked(mb int) bool {

	btn, ok := mouseBtnMap[mb]
	if !ok {
		return false
	}

	return btn.IsDoubleClicked
}

func MouseDown(mb int) bool {

	btn, ok := mouseBtnMap[mb]
	if !ok {
		return false
	}

	return btn.State == sdl.PRESSED
}


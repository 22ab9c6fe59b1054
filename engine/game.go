package engine

import (
	"github.com/bloeys/nrast/timing"
)

var (
	isRunning = false
)

type Game interface {
	Init()

	Update()
	Render()
	FrameEnd()

	DeInit()
}

// Run calls Init, then Update, Render and FrameEnd once per frame until Quit is called, then DeInit.
// OpenGL windows are swapped after Render, software windows show whatever was last passed to Present.
func Run(g Game, w *Window) {

	isRunning = true

	g.Init()

	for isRunning {

		timing.FrameStarted()

		w.handleInputs()

		g.Update()
		if !isRunning {
			break
		}

		g.Render()
		if w.IsOpenGL() {
			w.SDLWin.GLSwap()
		}

		g.FrameEnd()
		if w.Rend != nil {
			w.Rend.FrameEnd()
		}

		timing.FrameEnded()
	}

	g.DeInit()
}

func Quit() {
	isRunning = false
}

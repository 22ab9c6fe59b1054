package main

import (
	"github.com/bloeys/nrast/config"
	"github.com/bloeys/nrast/engine"
	"github.com/bloeys/nrast/input"
	"github.com/bloeys/nrast/logging"
	"github.com/bloeys/nrast/pipeline"
	"github.com/bloeys/nrast/raster"
	"github.com/veandco/go-sdl2/sdl"
)

// SoftwareGame feeds key presses to a runner and shows its buffer.
// Dragging with the left button moves the click point, a double click resets,
// F2 saves a screenshot and Escape quits.
type SoftwareGame struct {
	Win    *engine.Window
	Cfg    config.Config
	Runner pipeline.Runner

	title fpsTitle
}

var _ engine.Game = &SoftwareGame{}

func (g *SoftwareGame) Init() {
	g.title.Base = g.Cfg.Window.Title + " - " + g.Runner.Name()
	g.Runner.Redraw()
}

func (g *SoftwareGame) Update() {

	if input.IsQuitClicked() || input.KeyClicked(sdl.K_ESCAPE) {
		engine.Quit()
		return
	}

	left := int(sdl.BUTTON_LEFT)
	if input.MouseDoubleClicked(left) {
		g.Runner.HandleAction(pipeline.Action_Reset, pipeline.Modifiers{})
	}

	if input.MouseClicked(left) {
		x, y := input.GetMouseClickPos(left)
		g.Runner.Click(g.Win.WindowToBuffer(x, y))
	} else if input.MouseDown(left) {
		x, y := input.GetMousePos()
		g.Runner.Click(g.Win.WindowToBuffer(x, y))
	}

	mods := pipeline.Modifiers{
		Shift: input.ShiftDown(),
		Alt:   input.AltDown(),
	}

	for _, k := range input.ClickedKeys() {

		if k == sdl.K_F2 {
			g.saveScreenshot()
			continue
		}

		if a := actionForKey(k); a != pipeline.Action_None {
			g.Runner.HandleAction(a, mods)
		}
	}
}

func (g *SoftwareGame) saveScreenshot() {

	if err := raster.SavePNG(g.Cfg.ScreenshotPath, g.Runner.Buffer()); err != nil {
		logging.ErrLog.Printf("Failed to save screenshot. Err: %s\n", err.Error())
		return
	}

	logging.InfoLog.Printf("Saved screenshot to '%s'\n", g.Cfg.ScreenshotPath)
}

func (g *SoftwareGame) Render() {

	g.title.update(g.Win.SDLWin)

	if err := g.Win.Present(g.Runner.Buffer()); err != nil {
		logging.ErrLog.Printf("Failed to present frame. Err: %s\n", err.Error())
		engine.Quit()
	}
}

func (g *SoftwareGame) FrameEnd() {
}

func (g *SoftwareGame) DeInit() {
}

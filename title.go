package main

import (
	"fmt"

	"github.com/bloeys/nrast/timing"
	"github.com/veandco/go-sdl2/sdl"
)

// fpsTitle appends the average fps to a window title about once a second
type fpsTitle struct {
	Base string

	lastUpdate float32
}

func (t *fpsTitle) update(win *sdl.Window) {

	now := timing.ElapsedTime()
	if now-t.lastUpdate < 1 {
		return
	}

	t.lastUpdate = now
	win.SetTitle(fmt.Sprintf("%s - %.0f fps", t.Base, timing.GetAvgFPS()))
}

package engine

import (
	"errors"
	"fmt"

	"github.com/bloeys/nrast/assert"
	"github.com/bloeys/nrast/raster"
	"github.com/veandco/go-sdl2/sdl"
)

var ErrBufferSize = errors.New("buffer does not match the window texture")

type softwareTarget struct {
	rend *sdl.Renderer
	tex  *sdl.Texture

	width  int32
	height int32
}

func (s *softwareTarget) destroy() {
	s.tex.Destroy()
	s.rend.Destroy()
}

// CreateSoftwareWindowCentered makes a window that shows a width*height RGBA buffer, stretched
// to the window size. Draw into a raster buffer and hand it to Present every frame.
func CreateSoftwareWindowCentered(title string, width, height int32, flags WindowFlags) (*Window, error) {

	assert.T(isInited, "engine.Init() was not called!")

	sdlWin, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, uint32(WindowFlags_SHOWN|flags))
	if err != nil {
		return nil, err
	}

	rend, err := sdl.CreateRenderer(sdlWin, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		sdlWin.Destroy()
		return nil, err
	}

	// ABGR8888 keeps the bytes in r,g,b,a order on little endian machines, which is the raster buffer order
	tex, err := rend.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888), int(sdl.TEXTUREACCESS_STREAMING), width, height)
	if err != nil {
		rend.Destroy()
		sdlWin.Destroy()
		return nil, err
	}

	return &Window{
		SDLWin:         sdlWin,
		EventCallbacks: make([]func(sdl.Event), 0),
		soft: &softwareTarget{
			rend:   rend,
			tex:    tex,
			width:  width,
			height: height,
		},
	}, nil
}

// Present copies buf into the window texture and shows it
func (w *Window) Present(buf *raster.Buffer[uint8]) error {

	assert.T(w.soft != nil, "Present called on an OpenGL window")

	s := w.soft
	if int32(buf.Width) != s.width || int32(buf.Height) != s.height || buf.Channels != 4 {
		return fmt.Errorf("%w: got %dx%dx%d, want %dx%dx4", ErrBufferSize, buf.Width, buf.Height, buf.Channels, s.width, s.height)
	}

	pixels, pitch, err := s.tex.Lock(nil)
	if err != nil {
		return err
	}

	rowLen := buf.Width * 4
	for y := 0; y < buf.Height; y++ {
		copy(pixels[y*pitch:y*pitch+rowLen], buf.Data[y*rowLen:(y+1)*rowLen])
	}
	s.tex.Unlock()

	if err := s.rend.Clear(); err != nil {
		return err
	}

	if err := s.rend.Copy(s.tex, nil, nil); err != nil {
		return err
	}

	s.rend.Present()
	return nil
}

// WindowToBuffer maps window coordinates to buffer coordinates, since the buffer is stretched
func (w *Window) WindowToBuffer(x, y int32) (int, int) {

	if w.soft == nil {
		return int(x), int(y)
	}

	winW, winH := w.SDLWin.GetSize()
	if winW <= 0 || winH <= 0 {
		return int(x), int(y)
	}

	return int(int64(x) * int64(w.soft.width) / int64(winW)), int(int64(y) * int64(w.soft.height) / int64(winH))
}

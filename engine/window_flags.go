package engine

import "github.com/veandco/go-sdl2/sdl"

type WindowFlags uint32

const (
	WindowFlags_NONE               WindowFlags = 0
	WindowFlags_FULLSCREEN         WindowFlags = WindowFlags(sdl.WINDOW_FULLSCREEN)
	WindowFlags_OPENGL             WindowFlags = WindowFlags(sdl.WINDOW_OPENGL)
	WindowFlags_SHOWN              WindowFlags = WindowFlags(sdl.WINDOW_SHOWN)
	WindowFlags_HIDDEN             WindowFlags = WindowFlags(sdl.WINDOW_HIDDEN)
	WindowFlags_BORDERLESS         WindowFlags = WindowFlags(sdl.WINDOW_BORDERLESS)
	WindowFlags_RESIZABLE          WindowFlags = WindowFlags(sdl.WINDOW_RESIZABLE)
	WindowFlags_MINIMIZED          WindowFlags = WindowFlags(sdl.WINDOW_MINIMIZED)
	WindowFlags_MAXIMIZED          WindowFlags = WindowFlags(sdl.WINDOW_MAXIMIZED)
	WindowFlags_FULLSCREEN_DESKTOP WindowFlags = WindowFlags(sdl.WINDOW_FULLSCREEN_DESKTOP)
	WindowFlags_ALLOW_HIGHDPI      WindowFlags = WindowFlags(sdl.WINDOW_ALLOW_HIGHDPI)
)

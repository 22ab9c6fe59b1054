// Package raster is the software renderer: a CPU pixel buffer and the
// line, shape and wireframe drawing that writes into it.
package raster

import (
	"github.com/bloeys/nrast/geom"
)

// Buffer is a flat width*height*Channels pixel array, addressed by (y*Width + x) * Channels.
//
// Every write is clipped: writes outside the buffer are dropped without error.
type Buffer[P geom.Number] struct {
	Width    int
	Height   int
	Channels int
	Data     []P
}

func NewBuffer[P geom.Number](width, height, channels int, fill P) *Buffer[P] {

	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if channels < 1 {
		channels = 1
	}

	b := &Buffer[P]{
		Width:    width,
		Height:   height,
		Channels: channels,
		Data:     make([]P, width*height*channels),
	}

	if fill != 0 {
		b.Fill(fill)
	}

	return b
}

// NewRGBABuffer creates an 8-bit, 4 channel buffer cleared to the given color
func NewRGBABuffer(width, height int, background Color) *Buffer[uint8] {
	b := NewBuffer[uint8](width, height, 4, 0)
	b.Clear(background[:])
	return b
}

// Index returns the position of the first channel of (x, y) in Data
func (b *Buffer[P]) Index(x, y int) (int, bool) {

	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return 0, false
	}

	return (y*b.Width + x) * b.Channels, true
}

// Set writes a single value into the first channel of (x, y)
func (b *Buffer[P]) Set(x, y int, v P) {

	i, ok := b.Index(x, y)
	if !ok {
		return
	}

	b.Data[i] = v
}

// SetPixel writes px into the channels of (x, y). A px with more values than
// the buffer has channels is dropped.
func (b *Buffer[P]) SetPixel(x, y int, px []P) {

	i, ok := b.Index(x, y)
	if !ok || len(px) > b.Channels {
		return
	}

	copy(b.Data[i:i+len(px)], px)
}

// Pixel returns the channels of (x, y) as a sub-slice of Data, or nil when out of range
func (b *Buffer[P]) Pixel(x, y int) []P {

	i, ok := b.Index(x, y)
	if !ok {
		return nil
	}

	return b.Data[i : i+b.Channels : i+b.Channels]
}

// Fill sets every channel of every pixel to v
func (b *Buffer[P]) Fill(v P) {
	for i := range b.Data {
		b.Data[i] = v
	}
}

// Clear sets every pixel to px
func (b *Buffer[P]) Clear(px []P) {

	if len(px) == 0 || len(px) > b.Channels {
		return
	}

	for i := 0; i < len(b.Data); i += b.Channels {
		copy(b.Data[i:i+len(px)], px)
	}
}

func (b *Buffer[P]) Size() int {
	return len(b.Data)
}

package raster

import "image/color"

// Color is an RGBA pixel as stored in an 8-bit, 4 channel Buffer
type Color [4]uint8

var (
	Color_Black = Color{0, 0, 0, 255}
	Color_White = Color{255, 255, 255, 255}
	Color_Red   = Color{255, 0, 0, 255}
	Color_Green = Color{0, 255, 0, 255}
	Color_Blue  = Color{0, 0, 255, 255}
)

func (c Color) Slice() []uint8 {
	return c[:]
}

func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// Normalized returns the channels in the [0, 1] range, which is what shader uniforms take
func (c Color) Normalized() [4]float32 {
	return [4]float32{
		float32(c[0]) / 255,
		float32(c[1]) / 255,
		float32(c[2]) / 255,
		float32(c[3]) / 255,
	}
}

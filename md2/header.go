// Package md2 loads Quake2 MD2 keyframe models and steps through their animations.
package md2

import (
	"errors"
	"fmt"
)

const (
	// Ident is "IDP2" read as a little endian int32
	Ident   = int32('2')<<24 | int32('P')<<16 | int32('D')<<8 | int32('I')
	Version = 8

	frameNameLen = 16
	skinNameLen  = 64

	// scale[3] + translate[3] + name
	frameHeaderSize = 4*3 + 4*3 + frameNameLen
	framePointSize  = 4
	texCoordSize    = 4
	triangleSize    = 12
)

var (
	ErrBadIdent     = errors.New("md2: bad ident")
	ErrBadVersion   = errors.New("md2: unsupported version")
	ErrBadHeader    = errors.New("md2: invalid header")
	ErrTruncated    = errors.New("md2: section outside of the file")
	ErrBadReference = errors.New("md2: triangle references a missing point or texture coordinate")
)

// Header is the fixed size block at the start of every md2 file. Offsets are from the start of the file.
type Header struct {
	Ident      int32
	Version    int32
	SkinWidth  int32
	SkinHeight int32
	FrameSize  int32
	NumSkins   int32
	NumPoints  int32
	NumTex     int32
	NumMesh    int32
	NumGLCmds  int32
	NumFrames  int32
	OfsSkins   int32
	OfsTex     int32
	OfsMesh    int32
	OfsFrames  int32
	OfsGLCmds  int32
	OfsEnd     int32
}

func (h *Header) Validate() error {

	if h.Ident != Ident {
		return fmt.Errorf("%w: got 0x%08x", ErrBadIdent, h.Ident)
	}

	if h.Version != Version {
		return fmt.Errorf("%w: got %d", ErrBadVersion, h.Version)
	}

	counts := [...]int32{h.NumSkins, h.NumPoints, h.NumTex, h.NumMesh, h.NumGLCmds, h.NumFrames}
	for _, c := range counts {
		if c < 0 {
			return fmt.Errorf("%w: negative count %d", ErrBadHeader, c)
		}
	}

	if h.NumFrames > 0 && int(h.FrameSize) < frameHeaderSize+framePointSize*int(h.NumPoints) {
		return fmt.Errorf("%w: frame size %d too small for %d points", ErrBadHeader, h.FrameSize, h.NumPoints)
	}

	if h.NumTex > 0 && (h.SkinWidth <= 0 || h.SkinHeight <= 0) {
		return fmt.Errorf("%w: texture coordinates need a skin size, got %dx%d", ErrBadHeader, h.SkinWidth, h.SkinHeight)
	}

	return nil
}

// CheckSections fails with ErrTruncated when a section the header describes does not fit in
// a file of fileSize bytes. Decode runs it before sizing any slice from the header counts.
func (h *Header) CheckSections(fileSize int) error {

	sections := [...]struct {
		name     string
		ofs      int32
		count    int32
		elemSize int32
	}{
		{"skins", h.OfsSkins, h.NumSkins, skinNameLen},
		{"texture coordinates", h.OfsTex, h.NumTex, texCoordSize},
		{"triangles", h.OfsMesh, h.NumMesh, triangleSize},
		{"frames", h.OfsFrames, h.NumFrames, h.FrameSize},
		{"gl commands", h.OfsGLCmds, h.NumGLCmds, 4},
	}

	for _, s := range sections {

		if s.count == 0 {
			continue
		}

		end := int64(s.ofs) + int64(s.count)*int64(s.elemSize)
		if s.ofs < 0 || end > int64(fileSize) {
			return fmt.Errorf("%w: %d %s need bytes %d to %d, file has %d", ErrTruncated, s.count, s.name, s.ofs, end, fileSize)
		}
	}

	return nil
}

type texCoord struct {
	S int16
	T int16
}

type framePoint struct {
	Vertex      [3]uint8
	NormalIndex uint8
}

type frameHeader struct {
	Scale     [3]float32
	Translate [3]float32
	Name      [frameNameLen]byte
}

// Triangle indexes into the points of a frame and into the texture coordinates
type Triangle struct {
	VecIndex [3]uint16
	TexIndex [3]uint16
}

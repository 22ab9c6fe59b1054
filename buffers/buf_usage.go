package buffers

import (
	"github.com/bloeys/nrast/assert"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type BufUsage int

// Full docs for buffer usage can be found here: https://registry.khronos.org/OpenGL-Refpages/gl4/html/glBufferData.xhtml
const (
	BufUsage_Unknown BufUsage = iota

	// Set once, drawn many times. Loaded solids
	BufUsage_Static_Draw
	// Rewritten often, drawn many times. Animated md2 frames
	BufUsage_Dynamic_Draw
	// Set once, drawn a few times
	BufUsage_Stream_Draw
)

func (b BufUsage) ToGL() uint32 {

	switch b {
	case BufUsage_Static_Draw:
		return gl.STATIC_DRAW
	case BufUsage_Dynamic_Draw:
		return gl.DYNAMIC_DRAW
	case BufUsage_Stream_Draw:
		return gl.STREAM_DRAW
	}

	assert.T(false, "Unexpected BufUsage value '%d'", b)
	return 0
}

func (b BufUsage) String() string {

	switch b {
	case BufUsage_Static_Draw:
		return "static_draw"
	case BufUsage_Dynamic_Draw:
		return "dynamic_draw"
	case BufUsage_Stream_Draw:
		return "stream_draw"
	default:
		return "unknown"
	}
}

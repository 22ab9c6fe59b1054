package shaders

import (
	"github.com/bloeys/nrast/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type ShaderType int32

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
	ShaderType_Geometry
)

// shaderTags maps the name written after '//shader:' to its type
var shaderTags = [...]struct {
	Tag  string
	Type ShaderType
}{
	{"vertex", ShaderType_Vertex},
	{"fragment", ShaderType_Fragment},
	{"geometry", ShaderType_Geometry},
}

func (s ShaderType) ToGl() uint32 {

	switch s {
	case ShaderType_Vertex:
		return gl.VERTEX_SHADER
	case ShaderType_Fragment:
		return gl.FRAGMENT_SHADER
	case ShaderType_Geometry:
		return gl.GEOMETRY_SHADER

	default:
		logging.ErrLog.Fatalf("Unknown shader type '%d'\n", s)
		return 0
	}
}

func (s ShaderType) String() string {

	for _, t := range shaderTags {
		if t.Type == s {
			return t.Tag
		}
	}

	return "unknown"
}

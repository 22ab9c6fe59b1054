package shaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bloeys/nrast/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

const combinedShaderSep = "//shader:"

var (
	ErrNoShaders         = errors.New("no valid shaders found. Put '//shader:vertex' or '//shader:fragment' or '//shader:geometry' before your shaders")
	ErrUnknownShaderType = errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment' or '//shader:geometry'")
	ErrMissingStage      = errors.New("combined shader needs both '//shader:vertex' and '//shader:fragment'")
	ErrDuplicateStage    = errors.New("shader stage appears more than once")
)

type Shader struct {
	Id   uint32
	Type ShaderType
}

func (s *Shader) Delete() {
	gl.DeleteShader(s.Id)
	s.Id = 0
}

// ShaderSource is one stage cut out of a combined shader file
type ShaderSource struct {
	Type ShaderType
	Src  []byte
}

// SplitCombinedShaderSrc cuts a file holding several stages, each starting with a
// '//shader:<stage>' line, into one source per stage. A vertex and a fragment stage are required.
func SplitCombinedShaderSrc(combinedSrc []byte) ([]ShaderSource, error) {

	parts := bytes.Split(combinedSrc, []byte(combinedShaderSep))
	if len(parts) < 2 {
		return nil, ErrNoShaders
	}

	out := make([]ShaderSource, 0, len(parts)-1)
	seen := map[ShaderType]bool{}

	// Anything before the first tag is not part of a stage
	for _, src := range parts[1:] {

		shdrType := ShaderType_Unknown
		for _, t := range shaderTags {
			if bytes.HasPrefix(src, []byte(t.Tag)) {
				src = src[len(t.Tag):]
				shdrType = t.Type
				break
			}
		}

		if shdrType == ShaderType_Unknown {
			line, _, _ := bytes.Cut(src, []byte("\n"))
			return nil, fmt.Errorf("%w, got '%s'", ErrUnknownShaderType, bytes.TrimSpace(line))
		}

		if seen[shdrType] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStage, shdrType)
		}
		seen[shdrType] = true

		out = append(out, ShaderSource{Type: shdrType, Src: src})
	}

	if !seen[ShaderType_Vertex] || !seen[ShaderType_Fragment] {
		return nil, ErrMissingStage
	}

	return out, nil
}

func NewShaderProgram() (ShaderProgram, error) {

	id := gl.CreateProgram()
	if id == 0 {
		return ShaderProgram{}, errors.New("failed to create shader program")
	}

	return ShaderProgram{Id: id}, nil
}

func LoadAndCompileCombinedShader(shaderPath string) (ShaderProgram, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		logging.ErrLog.Println("Failed to read shader. Err: ", err)
		return ShaderProgram{}, err
	}

	return LoadAndCompileCombinedShaderSrc(combinedSource)
}

func LoadAndCompileCombinedShaderSrc(shaderSrc []byte) (ShaderProgram, error) {

	sources, err := SplitCombinedShaderSrc(shaderSrc)
	if err != nil {
		return ShaderProgram{}, err
	}

	shdrProg, err := NewShaderProgram()
	if err != nil {
		return ShaderProgram{}, errors.New("failed to create new shader program. Err: " + err.Error())
	}

	for _, s := range sources {

		shdr, err := CompileShaderOfType(s.Src, s.Type)
		if err != nil {
			shdrProg.Delete()
			return ShaderProgram{}, err
		}

		shdrProg.AttachShader(shdr)
	}

	if err := shdrProg.Link(); err != nil {
		shdrProg.Delete()
		return ShaderProgram{}, err
	}

	return shdrProg, nil
}

func CompileShaderOfType(shaderSource []byte, shaderType ShaderType) (Shader, error) {

	shaderId := gl.CreateShader(shaderType.ToGl())
	if shaderId == 0 {
		return Shader{}, fmt.Errorf("failed to create OpenGl shader. OpenGl Error=%d", gl.GetError())
	}

	//Load shader source and compile
	shaderCStr, shaderFree := gl.Strs(string(shaderSource) + "\x00")
	defer shaderFree()
	gl.ShaderSource(shaderId, 1, shaderCStr, nil)

	gl.CompileShader(shaderId)
	if err := getShaderCompileErrors(shaderId); err != nil {
		gl.DeleteShader(shaderId)
		return Shader{}, err
	}

	return Shader{Id: shaderId, Type: shaderType}, nil
}

func getShaderCompileErrors(shaderId uint32) error {

	var compiledSuccessfully int32
	gl.GetShaderiv(shaderId, gl.COMPILE_STATUS, &compiledSuccessfully)
	if compiledSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetShaderiv(shaderId, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetShaderInfoLog(shaderId, logLength, nil, log)

	errMsg := gl.GoStr(log)
	logging.ErrLog.Println("Compilation of shader with id ", shaderId, " failed. Err: ", errMsg)
	return errors.New(errMsg)
}

func getProgramLinkErrors(progId uint32) error {

	var linked int32
	gl.GetProgramiv(progId, gl.LINK_STATUS, &linked)
	if linked == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetProgramiv(progId, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetProgramInfoLog(progId, logLength, nil, log)

	errMsg := gl.GoStr(log)
	logging.ErrLog.Println("Linking of shader program with id ", progId, " failed. Err: ", errMsg)
	return errors.New(errMsg)
}

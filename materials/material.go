package materials

import (
	_ "unsafe"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrast/assert"
	"github.com/bloeys/nrast/logging"
	"github.com/bloeys/nrast/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// The noescape linknames below stop vectors and matrices from escaping to the heap
// when they are passed into cgo by the set uniform calls.

var (
	lastMatId uint32
)

type TextureSlot uint32

const (
	TextureSlot_Diffuse TextureSlot = 0
)

type MaterialSettings uint64

const (
	MaterialSettings_None        MaterialSettings = iota
	MaterialSettings_HasModelMtx MaterialSettings = 1 << (iota - 1)
	MaterialSettings_Wireframe
)

func (ms *MaterialSettings) Set(flags MaterialSettings) {
	*ms |= flags
}

func (ms *MaterialSettings) Remove(flags MaterialSettings) {
	*ms &= ^flags
}

func (ms *MaterialSettings) Has(flags MaterialSettings) bool {
	return *ms&flags == flags
}

// Material is a shader program plus the state it draws with. The flat material
// has the uniforms 'modelMat', 'projViewMat', 'color', 'useDiffuseTex' and 'diffuseTex'.
type Material struct {
	Id         uint32
	Name       string
	ShaderProg shaders.ShaderProgram
	Settings   MaterialSettings

	UnifLocs map[string]int32

	// Zero means no texture
	DiffuseTex uint32
}

func (m *Material) Bind() {

	m.ShaderProg.Bind()

	gl.ActiveTexture(uint32(gl.TEXTURE0 + TextureSlot_Diffuse))
	gl.BindTexture(gl.TEXTURE_2D, m.DiffuseTex)
}

func (m *Material) UnBind() {
	gl.UseProgram(0)
}

func (m *Material) GetUnifLoc(uniformName string) int32 {

	loc, ok := m.UnifLocs[uniformName]
	if ok {
		return loc
	}

	name := gl.Str(uniformName + "\x00")
	loc = gl.GetUniformLocation(m.ShaderProg.Id, name)
	assert.T(loc != -1, "Uniform '"+uniformName+"' doesn't exist on material "+m.Name)
	m.UnifLocs[uniformName] = loc
	return loc
}

func (m *Material) SetUnifInt32(uniformName string, val int32) {
	gl.ProgramUniform1i(m.ShaderProg.Id, m.GetUnifLoc(uniformName), val)
}

func (m *Material) SetUnifVec4(uniformName string, vec4 *gglm.Vec4) {
	internalSetUnifVec4(m.ShaderProg.Id, m.GetUnifLoc(uniformName), vec4)
}

//go:noescape
//go:linkname internalSetUnifVec4 github.com/bloeys/nrast/materials.SetUnifVec4
func internalSetUnifVec4(shaderProgId uint32, unifLoc int32, vec4 *gglm.Vec4)

func SetUnifVec4(shaderProgId uint32, unifLoc int32, vec4 *gglm.Vec4) {
	gl.ProgramUniform4fv(shaderProgId, unifLoc, 1, &vec4.Data[0])
}

func (m *Material) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) {
	internalSetUnifMat4(m.ShaderProg.Id, m.GetUnifLoc(uniformName), mat4)
}

//go:noescape
//go:linkname internalSetUnifMat4 github.com/bloeys/nrast/materials.SetUnifMat4
func internalSetUnifMat4(shaderProgId uint32, unifLoc int32, mat4 *gglm.Mat4)

func SetUnifMat4(shaderProgId uint32, unifLoc int32, mat4 *gglm.Mat4) {
	gl.ProgramUniformMatrix4fv(shaderProgId, unifLoc, 1, false, &mat4.Data[0][0])
}

// SetColor takes the colour as normalized rgba
func (m *Material) SetColor(rgba [4]float32) {
	c := gglm.NewVec4(rgba[0], rgba[1], rgba[2], rgba[3])
	m.SetUnifVec4("color", &c)
}

func (m *Material) SetDiffuseTex(tex Texture) {
	m.DiffuseTex = tex.TexID
	m.SetUnifInt32("diffuseTex", int32(TextureSlot_Diffuse))
	if tex.TexID == 0 {
		m.SetUnifInt32("useDiffuseTex", 0)
	} else {
		m.SetUnifInt32("useDiffuseTex", 1)
	}
}

func (m *Material) Delete() {
	m.ShaderProg.Delete()
}

func getNewMatId() uint32 {
	lastMatId++
	return lastMatId
}

func NewMaterial(matName, shaderPath string) Material {

	shdrProg, err := shaders.LoadAndCompileCombinedShader(shaderPath)
	if err != nil {
		logging.ErrLog.Fatalf("Failed to create new material '%s'. Err: %s\n", matName, err.Error())
	}

	return newMaterial(matName, shdrProg)
}

func NewMaterialSrc(matName string, shaderSrc []byte) Material {

	shdrProg, err := shaders.LoadAndCompileCombinedShaderSrc(shaderSrc)
	if err != nil {
		logging.ErrLog.Fatalf("Failed to create new material '%s'. Err: %s\n", matName, err.Error())
	}

	return newMaterial(matName, shdrProg)
}

// NewFlatMaterial builds a material on the built-in flat shader with a starting colour
func NewFlatMaterial(matName string, rgba [4]float32) Material {
	return initFlat(NewMaterialSrc(matName, shaders.FlatShaderSrc), rgba)
}

// NewFlatMaterialFile is NewFlatMaterial with the shader read from shaderPath.
// The shader must have the uniforms of the built-in flat shader.
func NewFlatMaterialFile(matName, shaderPath string, rgba [4]float32) Material {
	return initFlat(NewMaterial(matName, shaderPath), rgba)
}

func initFlat(m Material, rgba [4]float32) Material {

	m.Settings.Set(MaterialSettings_HasModelMtx)
	m.SetColor(rgba)
	m.SetDiffuseTex(Texture{})

	return m
}

func newMaterial(matName string, shdrProg shaders.ShaderProgram) Material {
	return Material{
		Id:         getNewMatId(),
		Name:       matName,
		ShaderProg: shdrProg,
		UnifLocs:   make(map[string]int32),
	}
}

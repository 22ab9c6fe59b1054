package main

import (
	"math"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/bloeys/nrast/config"
	"github.com/bloeys/nrast/engine"
	"github.com/bloeys/nrast/geom"
	"github.com/bloeys/nrast/input"
	"github.com/bloeys/nrast/logging"
	"github.com/bloeys/nrast/materials"
	"github.com/bloeys/nrast/md2"
	"github.com/bloeys/nrast/renderer"
	"github.com/bloeys/nrast/renderer/rend3dgl"
	"github.com/bloeys/nrast/scene"
	"github.com/bloeys/nrast/timing"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	// The camera starts this far from the scene when the perspective projection is on
	defaultCameraDistance = 2
	minCameraDistance     = 0.5

	// Radians per pixel of right button drag
	orbitSpeed = 0.01
)

// GLGame draws a scene of entities with OpenGL.
//
// Space pauses and resumes the scene, W toggles wireframe, N moves an md2 model
// to its next sprint and Escape quits. Dragging with the right button turns the
// view around y and the wheel moves the camera closer or farther.
type GLGame struct {
	Win  *engine.Window
	Rend *rend3dgl.Rend3DGL
	Cfg  config.Config

	WinWidth  int32
	WinHeight int32

	Scene *scene.Scene

	// Every material gets the same projView matrix
	mats []*materials.Material

	anim       *scene.AnimatedModel
	animSprint md2.Sprint

	camDist float64
	viewYaw float64
	title   fpsTitle
}

var _ engine.Game = &GLGame{}

func (g *GLGame) handleWindowEvents(e sdl.Event) {

	switch e := e.(type) {
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			g.WinWidth = e.Data1
			g.WinHeight = e.Data2
			g.updateProjViewMats()
		}
	}
}

func (g *GLGame) newMaterial(name string, rgba [4]float32) *materials.Material {

	var m materials.Material
	if g.Cfg.ShaderPath != "" {
		m = materials.NewFlatMaterialFile(name, g.Cfg.ShaderPath, rgba)
	} else {
		m = materials.NewFlatMaterial(name, rgba)
	}

	g.mats = append(g.mats, &m)
	return &m
}

func (g *GLGame) Init() {

	g.camDist = defaultCameraDistance
	g.title.Base = g.Cfg.Window.Title

	g.Scene = scene.New()
	c := g.Scene.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	fg := g.Cfg.Colors.Foreground.Normalized()

	if strings.EqualFold(filepath.Ext(g.Cfg.ModelPath), ".md2") {
		g.initAnimatedModel(fg)
	} else {
		g.initModels(fg)
	}

	if g.Cfg.Scene.Spheres > 0 {
		g.initSpheres()
	}

	if err := g.Scene.Load(); err != nil {
		logging.ErrLog.Fatalln("Failed to load scene. Err:", err)
	}

	g.updateProjViewMats()
}

func (g *GLGame) initModels(rgba [4]float32) {

	model, err := scene.LoadModel("model", g.Cfg.ModelPath, g.newMaterial("model", rgba))
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load model. Err:", err)
	}

	// One model shared by three owners
	g.Scene.Add(
		scene.NewModelOwner(model, geom.NewVec3[float32](0, 0, 0.1)),
		scene.NewModelOwner(model, geom.NewVec3[float32](-0.25, 0.25, 0.1)),
		scene.NewModelOwner(model, geom.NewVec3[float32](0.25, -0.25, 0.1)),
	)
}

func (g *GLGame) initAnimatedModel(rgba [4]float32) {

	res, err := md2.ReadFile(g.Cfg.ModelPath)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load md2 model. Err:", err)
	}

	// A skin replaces the colour, so start from white
	if g.Cfg.SkinPath != "" {
		rgba = [4]float32{1, 1, 1, 1}
	}

	g.anim = scene.NewAnimatedModel(filepath.Base(g.Cfg.ModelPath), res, g.newMaterial("md2", rgba))
	g.anim.SkinPath = g.Cfg.SkinPath
	g.anim.Scale = 1

	sprint, ok := md2.SprintByName(g.Cfg.Scene.Sprint)
	if !ok {
		logging.WarnLog.Printf("Unknown sprint '%s', playing '%s'\n", g.Cfg.Scene.Sprint, sprint)
	}
	g.animSprint = sprint
	g.anim.SetSprint(sprint)

	g.Scene.Add(g.anim)
}

func (g *GLGame) initSpheres() {

	seed := g.Cfg.Scene.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	// Two spheres on a collision course, top left and bottom right
	left := &scene.Sphere{
		Radius:      0.06,
		Position:    geom.NewVec3[float32](-0.5, 0.5, 0.1),
		Orientation: geom.NewVec3[float32](1, -1, 0).Normalize(),
		Speed:       1,
		Color:       [4]float32{0.8, 0.2, 0.2, 1},
	}
	right := &scene.Sphere{
		Radius:      0.04,
		Position:    geom.NewVec3[float32](0.5, -0.5, 0.1),
		Orientation: geom.NewVec3[float32](-1, 1, 0).Normalize(),
		Speed:       1,
		Color:       [4]float32{0.2, 0.2, 0.8, 1},
	}

	fixed := []*scene.Sphere{left, right}
	spheres := append(fixed, scene.RandomSpheres(rng, g.Cfg.Scene.Spheres, fixed)...)

	group := scene.NewSphereGroup(g.newMaterial("spheres", [4]float32{1, 1, 1, 1}), spheres...)
	group.Collide = g.Cfg.Scene.Collide
	g.Scene.Add(group)

	logging.InfoLog.Printf("Spawned %d spheres with seed %d\n", len(spheres), seed)
}

func (g *GLGame) projViewMat() geom.Mat4 {

	aspect := float64(g.WinHeight) / float64(max(g.WinWidth, 1))

	yaw := geom.NewMat4Rotation(geom.AxisY, g.viewYaw)

	p := g.Cfg.Perspective
	if !p.Enabled {
		return geom.NewMat4Scale(aspect, 1, 1).Mul(yaw)
	}

	proj := geom.NewMat4Perspective(p.Fov*math.Pi/180, aspect, p.Near, p.Far)
	return geom.MulMat4(proj, geom.NewMat4Translation(0, 0, g.camDist), yaw)
}

// updateCamera returns true when the view changed
func (g *GLGame) updateCamera() bool {

	changed := false

	if input.MouseDown(int(sdl.BUTTON_RIGHT)) {
		if xDelta, _ := input.GetMouseMotion(); xDelta != 0 {
			g.viewYaw += float64(xDelta) * orbitSpeed
			changed = true
		}
	}

	if wheel := input.GetMouseWheelYNorm(); wheel != 0 && g.Cfg.Perspective.Enabled {
		g.camDist = max(minCameraDistance, g.camDist-float64(wheel)*0.25)
		changed = true
	}

	return changed
}

func (g *GLGame) updateProjViewMats() {

	projView := renderer.ToMat4(g.projViewMat())
	for _, m := range g.mats {
		m.SetUnifMat4("projViewMat", &projView)
	}
}

func (g *GLGame) Update() {

	if input.IsQuitClicked() || input.KeyClicked(sdl.K_ESCAPE) {
		engine.Quit()
		return
	}

	if input.KeyClicked(sdl.K_SPACE) {
		g.Scene.ToggleUpdating()
	}

	if input.KeyClicked(sdl.K_w) {
		g.Rend.SetWireframe(!g.Rend.Wireframe)
	}

	if g.anim != nil && input.KeyClicked(sdl.K_n) {
		g.animSprint = (g.animSprint + 1) % md2.Sprint_Count
		g.anim.SetSprint(g.animSprint)
		logging.InfoLog.Printf("Playing sprint '%s'\n", g.animSprint)
	}

	if g.updateCamera() {
		g.updateProjViewMats()
	}

	g.Scene.Update(timing.DT())
}

func (g *GLGame) Render() {
	g.title.update(g.Win.SDLWin)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	g.Scene.Render(g.Rend)
}

func (g *GLGame) FrameEnd() {
}

func (g *GLGame) DeInit() {

	g.Scene.Delete()
	for _, m := range g.mats {
		m.Delete()
	}
}

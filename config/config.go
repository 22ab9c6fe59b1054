// Package config holds the start-up settings of nrast. Settings are read from a yaml file
// on top of the defaults, so a file only needs the fields it changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bloeys/nrast/logging"
	"github.com/bloeys/nrast/raster"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Mode string

const (
	Mode_Software Mode = "software"
	Mode_OpenGL   Mode = "opengl"
)

type RunnerKind string

const (
	RunnerKind_Wavefront              RunnerKind = "wavefront"
	RunnerKind_Tetrahedron            RunnerKind = "tetrahedron"
	RunnerKind_PerspectiveTetrahedron RunnerKind = "perspective_tetrahedron"
	RunnerKind_Rectangle              RunnerKind = "rectangle"
)

type Window struct {
	Title  string `yaml:"title"`
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

type Steps struct {
	// Degrees
	Angle       float64 `yaml:"angle"`
	Move        float64 `yaml:"move"`
	Scale       float64 `yaml:"scale"`
	Shift       float64 `yaml:"shift"`
	Perspective float64 `yaml:"perspective"`
}

type Perspective struct {
	Enabled          bool    `yaml:"enabled"`
	ConvergencePoint float64 `yaml:"convergence_point"`

	// Used by the opengl mode. Degrees
	Fov  float64 `yaml:"fov"`
	Near float64 `yaml:"near"`
	Far  float64 `yaml:"far"`
}

type Colors struct {
	Background raster.Color `yaml:"background"`
	Foreground raster.Color `yaml:"foreground"`
}

// Scene only applies to the opengl mode
type Scene struct {
	// Spheres is how many random bouncing spheres are added next to the two fixed ones.
	// Zero leaves out the spheres entirely.
	Spheres int  `yaml:"spheres"`
	Collide bool `yaml:"collide"`

	// Seed for sphere placement. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`

	// Sprint is the md2 animation played first, like "stand" or "run"
	Sprint string `yaml:"sprint"`
}

type Config struct {
	Window Window     `yaml:"window"`
	Mode   Mode       `yaml:"mode"`
	Runner RunnerKind `yaml:"runner"`

	// .obj files go through the wavefront reader, .md2 through the md2 loader, anything else through assimp
	ModelPath string `yaml:"model_path"`
	SkinPath  string `yaml:"skin_path"`

	// ShaderPath replaces the built-in flat shader in the opengl mode
	ShaderPath string `yaml:"shader_path"`

	Steps       Steps       `yaml:"steps"`
	Perspective Perspective `yaml:"perspective"`
	Colors      Colors      `yaml:"colors"`
	Scene       Scene       `yaml:"scene"`

	// Values above 1 transform vertices on that many goroutines
	TransformWorkers int    `yaml:"transform_workers"`
	ScreenshotPath   string `yaml:"screenshot_path"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:  "nrast",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Mode:      Mode_Software,
		Runner:    RunnerKind_Wavefront,
		ModelPath: "./res/models/cube.obj",
		Steps: Steps{
			Angle:       15,
			Move:        50,
			Scale:       0.5,
			Shift:       10,
			Perspective: 50,
		},
		Perspective: Perspective{
			ConvergencePoint: 500,
			Fov:              45,
			Near:             0.1,
			Far:              200,
		},
		Colors: Colors{
			Background: raster.Color_White,
			Foreground: raster.Color_Black,
		},
		Scene: Scene{
			Sprint: "stand",
		},
		TransformWorkers: 1,
		ScreenshotPath:   "screenshot.png",
	}
}

// Load reads the config at path on top of Default. An empty path or a missing
// file gives the defaults.
func Load(path string) (Config, error) {

	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.InfoLog.Printf("Config file '%s' not found, using defaults\n", path)
		return Default(), nil
	}

	if err != nil {
		return Config{}, fmt.Errorf("failed to read config '%s'. Err: %w", path, err)
	}

	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config '%s'. Err: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes yaml from r on top of Default and validates the result. Unknown fields are errors.
func Parse(r io.Reader) (Config, error) {

	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}

	switch c.Mode {
	case Mode_Software, Mode_OpenGL:
	default:
		return fmt.Errorf("%w: unknown mode '%s'", ErrInvalidConfig, c.Mode)
	}

	switch c.Runner {
	case RunnerKind_Wavefront, RunnerKind_Tetrahedron, RunnerKind_PerspectiveTetrahedron, RunnerKind_Rectangle:
	default:
		return fmt.Errorf("%w: unknown runner '%s'", ErrInvalidConfig, c.Runner)
	}

	if c.Perspective.ConvergencePoint <= 0 {
		return fmt.Errorf("%w: convergence point must be positive, got %v", ErrInvalidConfig, c.Perspective.ConvergencePoint)
	}

	if c.Steps.Perspective < 0 || c.Steps.Scale < 0 {
		return fmt.Errorf("%w: steps can not be negative", ErrInvalidConfig)
	}

	if c.Perspective.Near <= 0 || c.Perspective.Far <= c.Perspective.Near {
		return fmt.Errorf("%w: need 0 < near < far, got near=%v far=%v", ErrInvalidConfig, c.Perspective.Near, c.Perspective.Far)
	}

	if c.Perspective.Fov <= 0 || c.Perspective.Fov >= 180 {
		return fmt.Errorf("%w: fov must be in (0, 180), got %v", ErrInvalidConfig, c.Perspective.Fov)
	}

	if c.Scene.Spheres < 0 {
		return fmt.Errorf("%w: sphere count can not be negative, got %d", ErrInvalidConfig, c.Scene.Spheres)
	}

	if c.TransformWorkers < 1 {
		c.TransformWorkers = 1
	}

	return nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/bloeys/nrast/config"
	"github.com/bloeys/nrast/logging"
	"github.com/bloeys/nrast/meshes"
	"github.com/bloeys/nrast/pipeline"
	"github.com/bloeys/nrast/wavefront"
)

// newRunner builds the software demo named by the config. A model that can not be read
// still gives a wavefront runner, drawing nothing.
func newRunner(cfg config.Config) (pipeline.Runner, error) {

	w, h := int(cfg.Window.Width), int(cfg.Window.Height)

	switch cfg.Runner {
	case config.RunnerKind_Wavefront:

		solid, err := meshes.LoadSolid(cfg.ModelPath)
		if err != nil {
			if !errors.Is(err, wavefront.ErrResourceUnavailable) {
				return nil, err
			}
			logging.ErrLog.Println(err)
		}

		opts := pipeline.DefaultWavefrontOptions(w, h)
		opts.AngleStep = cfg.Steps.Angle
		opts.MoveStep = cfg.Steps.Move
		opts.ScaleStep = cfg.Steps.Scale
		opts.ConvergencePoint = cfg.Perspective.ConvergencePoint
		opts.ConvergencePointStep = cfg.Steps.Perspective
		opts.Perspective = cfg.Perspective.Enabled
		opts.Background = cfg.Colors.Background
		opts.Foreground = cfg.Colors.Foreground
		opts.Workers = cfg.TransformWorkers

		return pipeline.NewWavefrontRunner(solid, opts), nil

	case config.RunnerKind_Tetrahedron, config.RunnerKind_PerspectiveTetrahedron:

		opts := pipeline.DefaultTetrahedronOptions(w, h)
		opts.Perspective = cfg.Runner == config.RunnerKind_PerspectiveTetrahedron
		opts.Shift = cfg.Steps.Shift
		opts.AngleStep = cfg.Steps.Angle
		opts.ConvergencePoint = cfg.Perspective.ConvergencePoint
		opts.ConvergencePointStep = cfg.Steps.Perspective
		opts.Background = cfg.Colors.Background
		opts.Foreground = cfg.Colors.Foreground

		return pipeline.NewTetrahedronRunner(opts), nil

	case config.RunnerKind_Rectangle:

		opts := pipeline.DefaultRectangleOptions(w, h)
		opts.Shift = cfg.Steps.Shift
		opts.AngleStep = cfg.Steps.Angle
		opts.Background = cfg.Colors.Background
		opts.Foreground = cfg.Colors.Foreground

		return pipeline.NewRectangleRunner(opts), nil
	}

	return nil, fmt.Errorf("%w: unknown runner '%s'", config.ErrInvalidConfig, cfg.Runner)
}

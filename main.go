package main

import (
	"flag"
	"os"
	"runtime/pprof"

	"github.com/bloeys/nrast/config"
	"github.com/bloeys/nrast/engine"
	"github.com/bloeys/nrast/logging"
	"github.com/bloeys/nrast/renderer/rend3dgl"
)

var (
	configPath = flag.String("config", "", "yaml config file, defaults are used when empty")
	modelPath  = flag.String("model", "", "model file, overrides the config")
	mode       = flag.String("mode", "", "software or opengl, overrides the config")
	cpuProfile = flag.String("cpuprofile", "", "write a cpu profile to this file")
)

func main() {

	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load config. Err:", err)
	}

	//Init engine
	err = engine.Init()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init nrast. Err:", err)
	}

	if *cpuProfile != "" {

		pf, err := os.Create(*cpuProfile)
		if err == nil {
			defer pf.Close()
			pprof.StartCPUProfile(pf)
			defer pprof.StopCPUProfile()
		} else {
			logging.ErrLog.Printf("Creating '%s' failed. CPU profiling will not run. Err=%v\n", *cpuProfile, err)
		}
	}

	if cfg.Mode == config.Mode_OpenGL {
		runOpenGL(cfg)
	} else {
		runSoftware(cfg)
	}
}

func loadConfig() (config.Config, error) {

	cfg, err := config.Load(*configPath)
	if err != nil {
		return cfg, err
	}

	if *modelPath != "" {
		cfg.ModelPath = *modelPath
	}

	if *mode != "" {
		cfg.Mode = config.Mode(*mode)
	}

	return cfg, cfg.Validate()
}

func runSoftware(cfg config.Config) {

	runner, err := newRunner(cfg)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create runner. Err:", err)
	}

	window, err := engine.CreateSoftwareWindowCentered(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, engine.WindowFlags_RESIZABLE)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err:", err)
	}
	defer window.Destroy()

	game := &SoftwareGame{
		Win:    window,
		Cfg:    cfg,
		Runner: runner,
	}

	engine.Run(game, window)
}

func runOpenGL(cfg config.Config) {

	rend := rend3dgl.NewRend3DGL()

	window, err := engine.CreateOpenGLWindowCentered(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, engine.WindowFlags_RESIZABLE, rend)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err:", err)
	}
	defer window.Destroy()

	engine.SetMSAA(true)
	engine.SetVSync(cfg.Window.VSync)
	engine.SetSrgbFramebuffer(true)

	game := &GLGame{
		Win:       window,
		Rend:      rend,
		Cfg:       cfg,
		WinWidth:  cfg.Window.Width,
		WinHeight: cfg.Window.Height,
	}
	window.EventCallbacks = append(window.EventCallbacks, game.handleWindowEvents)

	engine.Run(game, window)
}

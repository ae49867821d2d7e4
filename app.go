package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/faiface/mainthread"
	"github.com/memmaker/bmtext/config"
	"github.com/memmaker/bmtext/engine/bmfont"
	"github.com/memmaker/bmtext/engine/glapp"
	"github.com/memmaker/bmtext/engine/glrender"
	"github.com/memmaker/bmtext/engine/util"
	"github.com/pkg/errors"
)

var exitCode int

func main() {
	mainthread.Run(run)
	os.Exit(exitCode)
}

func run() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		exitCode = 2
		return
	}
	util.GLOBAL_LOG_LEVEL = cfg.LogLevel
	util.LogSystemInfo(fmt.Sprintf("%dx%d window, font %s (atlas %q)", cfg.WindowWidth, cfg.WindowHeight, cfg.DescFile, cfg.AtlasFile))

	mainthread.Call(func() {
		if err := runDemo(cfg); err != nil {
			util.LogSystemError(err.Error())
			exitCode = 1
		}
	})
}

func runDemo(cfg config.AppConfig) error {
	window, terminate, err := glapp.InitOpenGL(cfg.Title, cfg.WindowWidth, cfg.WindowHeight)
	if err != nil {
		return err
	}
	defer terminate()

	font := bmfont.LoadBitmapFont(glrender.NewDevice(), cfg.AtlasFile, cfg.DescFile)
	defer font.Unload()
	if !font.Ok() {
		return errors.Wrap(font.Err, "could not load font")
	}

	canvas := bmfont.RenderContext{Width: float32(cfg.WindowWidth), Height: float32(cfg.WindowHeight)}
	app := glapp.NewGlApplication(window, cfg.Title)
	app.DrawFunc = func(elapsed float64) {
		bmfont.RenderText(font, canvas, float32(cfg.TextX), float32(cfg.TextY), cfg.Text)
	}
	app.Run()
	glapp.CheckForGLError("render loop")
	return nil
}

// Package config reads the demo's command line.
package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/memmaker/bmtext/engine/util"
	"github.com/pkg/errors"
)

type AppConfig struct {
	Title        string
	WindowWidth  int
	WindowHeight int
	AtlasFile    string
	DescFile     string
	Text         string
	TextX        float64
	TextY        float64
	ColorOnly    bool
	LogLevel     util.LogLevel
}

func Default() AppConfig {
	return AppConfig{
		Title:        "SimpleFontRendering",
		WindowWidth:  800,
		WindowHeight: 800,
		AtlasFile:    "assets/cooper-hewitt-heavy.png",
		DescFile:     "assets/cooper-hewitt-heavy.txt",
		Text:         "Hello world",
		TextX:        10,
		TextY:        100,
		LogLevel:     util.LogLevelInfo,
	}
}

// Parse reads args over Default. Usage and errors are written to output.
// -h and -help return flag.ErrHelp.
func Parse(args []string, output io.Writer) (AppConfig, error) {
	cfg := Default()
	flags := flag.NewFlagSet("bmtext", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.IntVar(&cfg.WindowWidth, "width", cfg.WindowWidth, "window width, also the width of the text canvas")
	flags.IntVar(&cfg.WindowHeight, "height", cfg.WindowHeight, "window height, also the height of the text canvas")
	flags.StringVar(&cfg.AtlasFile, "atlas", cfg.AtlasFile, "font atlas image (png, bmp or tiff)")
	flags.StringVar(&cfg.DescFile, "desc", cfg.DescFile, "font glyph description file")
	flags.StringVar(&cfg.Text, "text", cfg.Text, "text to draw")
	flags.Float64Var(&cfg.TextX, "x", cfg.TextX, "pen start x in canvas pixels")
	flags.Float64Var(&cfg.TextY, "y", cfg.TextY, "pen start y in canvas pixels")
	flags.BoolVar(&cfg.ColorOnly, "color-only", cfg.ColorOnly, "draw solid glyph quads without the atlas")
	logLevel := flags.String("loglevel", "info", "error, warn, info or debug")
	if err := flags.Parse(args); err != nil {
		// the flag set already printed the problem and the usage
		return cfg, err
	}

	level, err := util.ParseLogLevel(*logLevel)
	if err != nil {
		return cfg, report(output, errors.Wrap(err, "invalid -loglevel"))
	}
	cfg.LogLevel = level
	if cfg.WindowWidth <= 0 || cfg.WindowHeight <= 0 {
		return cfg, report(output, errors.Errorf("invalid window size %dx%d", cfg.WindowWidth, cfg.WindowHeight))
	}
	if cfg.ColorOnly {
		cfg.AtlasFile = ""
	}
	return cfg, nil
}

func report(output io.Writer, err error) error {
	fmt.Fprintln(output, err)
	return err
}

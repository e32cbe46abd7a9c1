// Package cliapp defines the command-line surface and turns flags into a
// validated config.
package cliapp

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/soocke/vision-overlay-go/config"
)

// Options collects command-line overrides applied on top of the config file.
type Options struct {
	ConfigPath string
	Debug      bool
	Source     string
	Model      string
	Backend    string
}

// New returns the CLI app. run receives the parsed options.
func New(run func(Options) error) *cli.App {
	return &cli.App{
		Name:  "vision-overlay",
		Usage: "draw live object detections over a camera or screen feed",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.json",
				Usage:   "path to the JSON config file",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging and runtime stats",
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "frame source override (camera or screen)",
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "path to a YOLOv8 ONNX model",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "detection backend override (onnx, opencv or none)",
			},
		},
		Action: func(c *cli.Context) error {
			return run(Options{
				ConfigPath: c.String("config"),
				Debug:      c.Bool("debug"),
				Source:     c.String("source"),
				Model:      c.String("model"),
				Backend:    c.String("backend"),
			})
		},
	}
}

// LoadConfig reads the config file and applies flag overrides. On a read or
// decode error the defaults are returned alongside the error.
func LoadConfig(opts Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		err = fmt.Errorf("load config %s: %w", opts.ConfigPath, err)
	}
	if opts.Debug {
		cfg.Debug = true
	}
	if opts.Source != "" {
		cfg.Source = opts.Source
	}
	if opts.Model != "" {
		cfg.ModelPath = opts.Model
	}
	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}
	_ = cfg.Validate()
	return cfg, err
}

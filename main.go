package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/soocke/vision-overlay-go/app"
	"github.com/soocke/vision-overlay-go/cliapp"
)

func main() {
	if err := cliapp.New(run).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts cliapp.Options) error {
	cfg, err := cliapp.LoadConfig(opts)
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		// Defaults are usable, keep going.
		logger.Warn("config", "error", err)
	}

	application := app.NewApp("Vision Overlay", 1100, 820, cfg, opts.ConfigPath, logger)
	application.Start()
	return nil
}

// Package main is the entry point for the campfire diorama.
package main

import (
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/config"
	"github.com/Faultbox/campfire/internal/game"
	"github.com/Faultbox/campfire/internal/logger"
)

const appName = "Campfire"

// fatal shows err in a native message box, since a windowed launch has no
// console to print to.
func fatal(stage string, err error) {
	dialog.Message("%s: %v", stage, err).Title(appName).Error()
	os.Exit(1)
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		fatal("Config error", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Campfire ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		logger.Sync()
		fatal("Startup failed", err)
	}

	runErr := g.Run()
	g.Close()
	if runErr != nil {
		logger.Error("game error", zap.Error(runErr))
		logger.Sync()
		fatal("Unexpected error", runErr)
	}

	logger.Info("closed normally")
}

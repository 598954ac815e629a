package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vytor/chessdrill/internal/config"
	"github.com/vytor/chessdrill/internal/drillapi"
	"github.com/vytor/chessdrill/internal/logger"
)

func main() {
	cfg := config.Load()

	// Logs go to stderr so the board owns stdout.
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithOutput(os.Stderr),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Debug("server_url=%s drill_type=%s input_method=%s", cfg.ServerURL, cfg.DrillType, cfg.InputMethod)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.NewContext(ctx, log)

	app := NewAppContext(cfg, drillapi.New(cfg.ServerURL, cfg.RequestTimeout), os.Stdout)
	app.Start(ctx)
	defer app.Close()

	if err := app.Run(ctx, os.Stdin); err != nil {
		log.Error("drill client stopped: %v", err)
		os.Exit(1)
	}
}

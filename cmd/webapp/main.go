package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/webdemo/app/webapp"
	"github.com/dmitrymomot/webdemo/core/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := webapp.NewApp(ctx)
	if err != nil {
		logger.New().Error("Failed to start application", logger.Component("webapp"), logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	log := app.Logger()
	if err := app.Run(ctx); err != nil {
		log.Error("Server stopped with error", logger.Component("server"), logger.Error(err))
		stop()
		_ = app.Close()
		os.Exit(1)
	}
	log.Info("Server stopped")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/haguru/localauth/config"
	"github.com/haguru/localauth/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// create and initialize the app
	app, err := app.NewApp(ctx, config.CONFIG_PATH)
	if err != nil {
		panic(err) // handle error appropriately in production code
	}

	// Run blocks until the server fails or a shutdown signal arrives.
	if err := app.Run(ctx); err != nil {
		app.Logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

// Package main provides the entry point for the choir effect player.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"

	"github.com/Raikerian/go-choirboy/internal/app"
	"github.com/Raikerian/go-choirboy/internal/config"
	"github.com/Raikerian/go-choirboy/internal/infrastructure"
	"github.com/Raikerian/go-choirboy/internal/playback"
	"github.com/Raikerian/go-choirboy/internal/prompt"
	"github.com/Raikerian/go-choirboy/internal/session"
	"github.com/Raikerian/go-choirboy/internal/source"
)

const (
	startTimeout    = 15 * time.Second
	shutdownTimeout = 30 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	// Set up the signal channel before the prompts run so Ctrl+C is always
	// handled the same way.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	built := make(chan *app.Application, 1)
	go func() {
		built <- app.New(
			// Core modules
			config.Module,
			infrastructure.LoggerModule,

			// Session inputs
			source.Module,
			prompt.Module,

			// Output and loop
			playback.Module,
			session.Module,

			// Supply the config path
			fx.Supply(config.PathFromEnv()),

			// Configure Fx to use our Zap logger for its own internal logging
			fx.WithLogger(infrastructure.NewFxLoggerAdapter),
		)
	}()

	var application *app.Application
	select {
	case application = <-built:
	case <-sigCh:
		fmt.Println("\nProgram interrupted. Exiting gracefully.")
		return 0
	}

	if err := application.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), startTimeout)
	err := application.Start(startCtx)
	cancelStart()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error during startup: %v\n", err)
		return 1
	}

	select {
	case <-sigCh:
		fmt.Println("\nProgram interrupted. Exiting gracefully.")
	case <-application.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	err = application.Stop(shutdownCtx)
	cancel() // Always cancel the context after Stop returns

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
		return 1
	}
	if err := application.Result(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

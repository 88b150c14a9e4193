// Package app provides the voicegate server application.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/unlistededge/voicegate/cmd/voicegate/app/options"
	"github.com/unlistededge/voicegate/pkg/app"
)

const (
	// Name is the name of the application.
	Name = "voicegate"

	commandDesc = `Unlisted Edge Voice Gateway

The webhook gateway connecting the Bolna voice agent, the knowledge base,
and the automation platform for outbound investment calls.

This server provides:
  - Bolna webhook processing (call lifecycle, transcripts)
  - Agent function endpoints (lead capture, compliance, knowledge search)
  - Outbound call management with pre-call compliance checks`
)

// NewApp creates and returns a new App object with default parameters.
func NewApp() *app.App {
	opts := options.NewServerOptions()
	return app.NewApp(
		app.WithName(Name),
		app.WithShortDescription("Unlisted Edge voice gateway"),
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithRunFunc(run(opts)),
	)
}

// run contains the main logic for initializing and running the server.
func run(opts *options.ServerOptions) app.RunFunc {
	return func() error {
		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		ctx := setupSignalContext()

		server, err := cfg.NewServer(ctx)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		return server.Run(ctx)
	}
}

// setupSignalContext returns a context that is cancelled on SIGINT or SIGTERM.
func setupSignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
		<-c
		os.Exit(1)
	}()
	return ctx
}

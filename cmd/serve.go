package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/desertthunder/moodmix/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP API until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	if cmd.IsSet("port") {
		r.config.Server.Port = int(cmd.Int("port"))
	}

	if err := r.config.Validate(); err != nil {
		r.logger.Warn("token exchange will fail until credentials are configured", "error", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.NewServer(r.config, r.engine, r.exchanger, r.logger).Run(ctx)
}

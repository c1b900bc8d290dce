package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/muffinboard/internal/formatter"
	"github.com/desertthunder/muffinboard/internal/repositories"
	"github.com/desertthunder/muffinboard/internal/server"
	"github.com/desertthunder/muffinboard/internal/shared"
	"github.com/urfave/cli/v3"
)

// WebhookServe runs the webhook receiver until interrupted, storing every event in the database.
func (r *Runner) WebhookServe(ctx context.Context, cmd *cli.Command) error {
	config := r.config.Webhook
	if host := cmd.String("host"); host != "" {
		config.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		config.Port = port
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if config.Token == "" {
		r.logger.Warn("webhook.token is empty, accepting unauthenticated notifications")
	}

	srv := server.New(config, repositories.NewEventRepository(db), shared.WithLogger(r.logger, "component", "webhook"))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx)
}

// WebhookEvents lists stored webhook events, newest first.
func (r *Runner) WebhookEvents(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	events, err := repositories.NewEventRepository(db).List(cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list webhook events: %w", err)
	}

	var data []byte
	if cmd.Bool("json") {
		data, err = formatter.EventsToJSON(events, cmd.Bool("pretty"))
	} else {
		data, err = formatter.EventsToText(events)
	}
	if err != nil {
		return err
	}

	return r.writeRaw(data)
}

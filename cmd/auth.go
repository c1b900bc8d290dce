package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/muffinboard/internal/models"
	"github.com/urfave/cli/v3"
)

// AuthStatus asks the backend whether the stored session is signed in to Zoho.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	board, err := r.boardService(r.logger)
	if err != nil {
		return err
	}

	r.logger.Info("checking auth status")

	authenticated, err := board.AuthStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to check auth status: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(models.AuthStatus{Authenticated: authenticated}, false)
	}

	if authenticated {
		return r.writePlain("✓ Authenticated with Zoho Connect\n")
	}

	r.writePlain("✗ Not authenticated\n")
	return r.writePlain("Run 'muffin auth login' to connect to Zoho\n")
}

// AuthLogin prints the sign-in URL and opens it in the browser unless --no-browser is set.
//
// Completing the sign-in is up to the backend; run `muffin auth status` afterwards.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	board, err := r.boardService(r.logger)
	if err != nil {
		return err
	}

	url := board.AuthorizationURL()
	r.writePlain("Open this URL to connect to Zoho:\n%s\n", url)

	if cmd.Bool("no-browser") {
		return nil
	}

	if err := r.opener(url); err != nil {
		r.logger.Warn("failed to open browser", "error", err)
		return nil
	}

	r.logger.Info("opened sign-in page in browser")
	return nil
}

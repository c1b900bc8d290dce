package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/muffinboard/internal/server"
	"github.com/desertthunder/muffinboard/internal/shared"
	"github.com/sethvargo/go-password/password"
	"github.com/urfave/cli/v3"
)

const webhookTokenLength = 32

// SetupConfig writes a config file from the template with a freshly generated webhook token.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	token, err := password.Generate(webhookTokenLength, 10, 0, false, true)
	if err != nil {
		return fmt.Errorf("failed to generate webhook token: %w", err)
	}

	if err := shared.CreateConfigFile(r.configPath, token); err != nil {
		return err
	}

	config, err := shared.LoadConfig(r.configPath)
	if err != nil {
		return err
	}
	r.config = config

	r.logger.Info("config file created", "path", r.configPath)

	r.writePlain("✓ Config written to %s\n", r.configPath)
	r.writePlain("Webhook token: %s\n", token)
	return r.writePlain("Send it in the %s header when registering the Zoho Connect webhook\n", server.TokenHeader)
}

// SetupSession stores the backend session cookie from a browser "Copy as cURL" request.
func (r *Runner) SetupSession(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}

	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	var req *shared.CurlRequest
	var err error

	if curlFile != "" {
		req, err = shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		r.logger.Info("parsed cURL from file", "file", curlFile)
	} else {
		req, err = shared.ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
		r.logger.Info("parsed cURL command")
	}

	cookie, err := sessionCookie(req, cmd.StringSlice("cookie"))
	if err != nil {
		return err
	}

	if baseURL, err := req.BaseURL(); err == nil && baseURL != r.config.Backend.BaseURL {
		r.logger.Warn("cURL request targets a different backend", "curl", baseURL, "config", r.config.Backend.BaseURL)
	}

	r.config.Backend.SessionCookie = cookie
	if err := shared.SaveConfig(r.configPath, r.config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	r.logger.Debug("session cookie stored", "length", len(cookie))

	r.writePlain("✓ Session cookie saved to %s\n", r.configPath)
	return r.writePlain("Run 'muffin auth status' to check the session\n")
}

// sessionCookie keeps the named cookies. Without names it keeps the usual session cookies when present,
// otherwise the whole cookie string.
func sessionCookie(req *shared.CurlRequest, names []string) (string, error) {
	if len(names) > 0 {
		return req.SessionCookie(names...)
	}

	cookie, err := req.SessionCookie(shared.SessionCookieNames...)
	if errors.Is(err, shared.ErrMissingSession) {
		return req.SessionCookie()
	}
	return cookie, err
}

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return r.writePlain("✓ Database ready at %s\n", r.config.Database.Path)
}

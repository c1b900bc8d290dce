// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// app builds the root command with the global flags.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "muffin",
		Usage:   "Track muffins from \"To Bake\" to \"Already Baked\" on Zoho Connect",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.Before,
		Commands: r.register(),
	}
}

// tuiCommand returns the top-level command that launches the board TUI.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"ui"},
		Usage:   "Launch the interactive muffin board",
		Action:  r.TUI,
	}
}

// authCommand handles Zoho sign-in operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the Zoho Connect session",
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Check whether the backend session is authenticated",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthStatus,
			},
			{
				Name:  "login",
				Usage: "Print and open the Zoho sign-in URL",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Only print the URL",
					},
				},
				Action: r.AuthLogin,
			},
		},
	}
}

// boardCommand handles board reads and card creation
func boardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "board",
		Usage: "Muffin board operations",
		Commands: []*cli.Command{
			{
				Name:  "lists",
				Usage: "Print the board lists and their muffins",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.BoardLists,
			},
			{
				Name:  "add",
				Usage: "Add a muffin to the board",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "list",
						Usage: "List ID to add the muffin to (defaults to the To Bake list)",
					},
				},
				Action: r.BoardAdd,
			},
			{
				Name:  "export",
				Usage: "Export the board as text, md, csv, json or yaml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
					&cli.BoolFlag{
						Name:  "render",
						Usage: "Render markdown for the terminal",
					},
				},
				Action: r.BoardExport,
			},
			{
				Name:   "ui",
				Usage:  "Launch the interactive muffin board",
				Action: r.TUI,
			},
		},
	}
}

// setupCommand handles setup operations for configuration, session and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Create a config file with a generated webhook token",
				Action: r.SetupConfig,
			},
			{
				Name:  "session",
				Usage: "Store the backend session cookie from a browser request",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
					&cli.StringSliceFlag{
						Name:  "cookie",
						Usage: "Cookie names to keep (default: JSESSIONID or SESSION, else all cookies)",
					},
				},
				Action: r.SetupSession,
			},
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// webhookCommand handles the webhook receiver
func webhookCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "webhook",
		Usage: "Zoho Connect webhook receiver",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the webhook receiver",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Usage: "Listen host (overrides webhook.host)",
					},
					&cli.IntFlag{
						Name:  "port",
						Usage: "Listen port (overrides webhook.port)",
					},
				},
				Action: r.WebhookServe,
			},
			{
				Name:  "events",
				Usage: "List received webhook events, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of events to show",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.WebhookEvents,
			},
		},
	}
}

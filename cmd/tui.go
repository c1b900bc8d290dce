package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/muffinboard/internal/shared"
	"github.com/desertthunder/muffinboard/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultTUILogPath = "./tmp/muffin-tui.log"

// TUI launches the interactive muffin board.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	logPath := r.config.TUI.LogPath
	if logPath == "" {
		logPath = defaultTUILogPath
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	board, err := r.boardService(fileLogger)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, board, ui.Options{
		PollInterval: r.config.Auth.PollInterval(),
		Opener:       r.opener,
		Logger:       fileLogger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

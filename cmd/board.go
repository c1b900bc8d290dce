package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/muffinboard/internal/formatter"
	"github.com/desertthunder/muffinboard/internal/models"
	"github.com/desertthunder/muffinboard/internal/services"
	"github.com/desertthunder/muffinboard/internal/shared"
	"github.com/urfave/cli/v3"
)

const renderWidth = 80

// BoardLists prints every list with its muffins.
func (r *Runner) BoardLists(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.boardService(r.logger)
	if err != nil {
		return err
	}

	board, err := r.loadBoard(ctx, svc)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		data, err := formatter.ExportToJSON(board, cmd.Bool("pretty"))
		if err != nil {
			return err
		}
		return r.writeRaw(data)
	}

	data, err := formatter.ExportToText(board)
	if err != nil {
		return err
	}

	r.writePlainHeader("🧁 Muffin Board")
	return r.writeRaw(data)
}

// BoardAdd creates a muffin card, then prints the reloaded board.
//
// Without --list the card goes to the pending ("To Bake") list.
func (r *Runner) BoardAdd(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.StringArg("name"))
	if name == "" {
		return fmt.Errorf("%w: muffin name", shared.ErrMissingArgument)
	}

	svc, err := r.boardService(r.logger)
	if err != nil {
		return err
	}

	listID := models.ID(strings.TrimSpace(cmd.String("list")))
	if listID == "" {
		board, err := r.loadBoard(ctx, svc)
		if err != nil {
			return err
		}
		list, ok := defaultList(board)
		if !ok {
			return fmt.Errorf("%w: board has no lists", shared.ErrListNotFound)
		}
		listID = list.ID
	}

	r.logger.Info("adding muffin", "name", name, "list", listID)

	card, err := svc.CreateCard(ctx, name, listID)
	if err != nil {
		return fmt.Errorf("failed to add muffin: %w", err)
	}

	r.writePlain("✓ Added %s (id %s)\n\n", card.Name, card.ID)

	board, err := r.loadBoard(ctx, svc)
	if err != nil {
		return err
	}

	data, err := formatter.ExportToText(board)
	if err != nil {
		return err
	}
	return r.writeRaw(data)
}

// BoardExport writes the board in the requested format to stdout or --output.
func (r *Runner) BoardExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	render := cmd.Bool("render")
	if render && format != formatter.FormatMarkdown {
		return fmt.Errorf("%w: --render requires --format md", shared.ErrInvalidFlag)
	}

	svc, err := r.boardService(r.logger)
	if err != nil {
		return err
	}

	board, err := r.loadBoard(ctx, svc)
	if err != nil {
		return err
	}

	data, err := formatter.Export(board, format)
	if err != nil {
		return err
	}

	if output := cmd.String("output"); output != "" {
		if err := formatter.WriteExport(data, output); err != nil {
			return err
		}
		r.logger.Info("board exported", "format", format, "path", output, "cards", board.CardCount())
		return r.writePlain("✓ Exported %d muffins to %s\n", board.CardCount(), output)
	}

	if render {
		out, err := formatter.RenderMarkdown(data, "auto", renderWidth)
		if err != nil {
			return err
		}
		return r.writePlain("%s", out)
	}

	return r.writeRaw(data)
}

func (r *Runner) loadBoard(ctx context.Context, svc services.BoardService) (models.Board, error) {
	lists, err := svc.Lists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	r.logger.Debug("board loaded", "lists", len(lists))
	return models.Board(lists), nil
}

// defaultList picks the pending list, falling back to the first list.
func defaultList(board models.Board) (models.List, bool) {
	if list, ok := board.FindByRole(models.RolePending); ok {
		return list, true
	}
	if len(board) > 0 {
		return board[0], true
	}
	return models.List{}, false
}

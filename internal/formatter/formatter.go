// package formatter provides functions to export board data to various formats (CSV, Markdown, plain text, JSON, YAML)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/desertthunder/muffinboard/internal/models"
	"github.com/desertthunder/muffinboard/internal/shared"
	"gopkg.in/yaml.v3"
)

// Format names an export format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "md"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists every supported export format.
var Formats = []Format{FormatText, FormatMarkdown, FormatCSV, FormatJSON, FormatYAML}

// ParseFormat resolves a format name, accepting common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (expected one of %v)", shared.ErrInvalidFlag, s, Formats)
	}
}

// Export converts a board to the given format.
func Export(board models.Board, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return ExportToText(board)
	case FormatMarkdown:
		return ExportToMarkdown(board)
	case FormatCSV:
		return ExportToCSV(board)
	case FormatJSON:
		return ExportToJSON(board, true)
	case FormatYAML:
		return ExportToYAML(board)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// ExportToCSV converts a board to CSV with one row per card: List, Card ID, Card Name
func ExportToCSV(board models.Board) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"List", "Card ID", "Card Name"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, list := range board {
		for _, card := range list.Cards {
			if err := writer.Write([]string{list.Name, card.ID.String(), card.Name}); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a board to Markdown with one section per list
func ExportToMarkdown(board models.Board) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# 🧁 Muffin Board\n\n")
	fmt.Fprintf(&buf, "**Lists**: %d\n", len(board))
	fmt.Fprintf(&buf, "**Muffins**: %d\n", board.CardCount())

	for _, list := range board {
		fmt.Fprintf(&buf, "\n## %s (%d)\n\n", list.Name, len(list.Cards))
		if len(list.Cards) == 0 {
			fmt.Fprintf(&buf, "_%s_\n", emptyText(list))
			continue
		}
		for _, card := range list.Cards {
			fmt.Fprintf(&buf, "- %s", card.Name)
			if card.Description != "" {
				fmt.Fprintf(&buf, ": %s", card.Description)
			}
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a board to plain text
func ExportToText(board models.Board) ([]byte, error) {
	var buf bytes.Buffer

	if len(board) == 0 {
		buf.WriteString("No lists found\n")
		return buf.Bytes(), nil
	}

	for i, list := range board {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "%s (%d)\n", list.Name, len(list.Cards))
		if len(list.Cards) == 0 {
			fmt.Fprintf(&buf, "  %s\n", emptyText(list))
			continue
		}
		for j, card := range list.Cards {
			fmt.Fprintf(&buf, "  %d. %s [%s]\n", j+1, card.Name, card.ID)
		}
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a board to JSON in the shape the board API serves it
func ExportToJSON(board models.Board, pretty bool) ([]byte, error) {
	if board == nil {
		board = models.Board{}
	}

	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(board, "", "  ")
	} else {
		data, err = json.Marshal(board)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return append(data, '\n'), nil
}

// ExportToYAML converts a board to YAML
func ExportToYAML(board models.Board) ([]byte, error) {
	if board == nil {
		board = models.Board{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode([]models.List(board)); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderMarkdown renders Markdown for the terminal with the named glamour style ("auto", "dark", "light", "notty").
func RenderMarkdown(markdown []byte, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(string(markdown))
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return out, nil
}

// WriteExport writes exported data to path, creating or truncating the file
func WriteExport(data []byte, path string) error {
	if path == "" {
		return fmt.Errorf("%w: output path", shared.ErrMissingArgument)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

func emptyText(list models.List) string {
	if list.Role() == models.RolePending {
		return "No muffins to bake yet"
	}
	return "No baked muffins yet"
}

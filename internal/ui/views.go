package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/desertthunder/muffinboard/internal/models"
)

// Clickable button labels.
const (
	connectLabel = "Connect to Zoho"
	addLabel     = "+ Add New Muffin"
	refreshLabel = "Refresh Board"
)

const (
	loadingText  = "🧁 Loading Muffin Board..."
	emptyPending = "🥧 No muffins to bake yet"
	emptyBaked   = "🧁 No baked muffins yet"
)

func (m *Model) renderLoading() string {
	content := m.spinner.View() + " " + loadingText
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderMain() string {
	sections := []string{m.renderHeader()}

	if m.err != "" {
		sections = append(sections, renderBanner(m.err))
	}
	if m.notice != "" {
		sections = append(sections, styles.warn.Render(m.notice))
	}

	if m.authenticated {
		sections = append(sections, renderBoard(m.lists))
	} else {
		sections = append(sections, renderAuthSection())
	}

	sections = append(sections, m.help.ShortHelpView(m.keys.boardHelp(m.authenticated)))
	return strings.Join(sections, "\n\n")
}

func (m *Model) renderHeader() string {
	lines := []string{
		styles.title.Render("🧁 Muffin Board"),
		styles.subtitle.Render("Zoho Connect Integration for B& Digital Transformation"),
	}
	if m.authenticated {
		lines = append(lines, "", styles.button.Render(addLabel))
	}
	return strings.Join(lines, "\n")
}

func renderBanner(text string) string {
	return styles.banner.Render(text)
}

func renderAuthSection() string {
	return strings.Join([]string{
		styles.title.Render("🔐 Authentication Required"),
		"Please authenticate with Zoho Connect to access your Muffin Baking board.",
		"",
		styles.button.Render(connectLabel),
		"",
		styles.help.Render("You'll be redirected to Zoho's secure authentication page."),
	}, "\n")
}

// renderBoard renders one column per list, in the order given.
func renderBoard(lists []models.List) string {
	if len(lists) == 0 {
		return strings.Join([]string{
			styles.title.Render("No lists found"),
			fmt.Sprintf("Make sure your Zoho Connect board has %q and %q lists.", models.ToBakeName, models.AlreadyBakedName),
			"",
			styles.button.Render(refreshLabel),
		}, "\n")
	}

	columns := make([]string, 0, len(lists))
	for _, l := range lists {
		columns = append(columns, renderList(l))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func renderList(l models.List) string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.ok.Render(l.Name), " ", styles.badge.Render(fmt.Sprint(len(l.Cards))),
	)

	var body string
	if len(l.Cards) == 0 {
		body = styles.empty.Render(emptyListText(l))
	} else {
		cards := make([]string, 0, len(l.Cards))
		for _, c := range l.Cards {
			cards = append(cards, renderCard(c))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, cards...)
	}

	return styles.column.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body))
}

func emptyListText(l models.List) string {
	if l.Role() == models.RolePending {
		return emptyPending
	}
	return emptyBaked
}

func renderCard(c models.Card) string {
	content := c.Name
	if c.Description != "" {
		content += "\n" + styles.help.Render(c.Description)
	}
	return styles.card.Render(content)
}

// renderModal draws the add-muffin form centered over a dimmed backdrop.
func (m *Model) renderModal() string {
	box := m.modalBox()
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("#3A3A3A")),
	)
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// modalBox stacks the error banner, when there is one, above the form box.
func (m *Model) modalBox() string {
	form := m.modal.View()
	if m.err == "" {
		return form
	}
	return lipgloss.JoinVertical(lipgloss.Center, renderBanner(m.err), "", form)
}

// modalBounds returns the screen area covered by the form box and its banner.
func (m *Model) modalBounds() rect {
	w, h := lipgloss.Size(m.modalBox())
	r := rect{w: w, h: h}
	if m.width > w {
		r.x = (m.width - w) / 2
	}
	if m.height > h {
		r.y = (m.height - h) / 2
	}
	return r
}

// hit reports whether the cell at x, y falls on label in the rendered view.
func hit(view, label string, x, y int) bool {
	lines := strings.Split(view, "\n")
	if y < 0 || y >= len(lines) {
		return false
	}

	line := ansi.Strip(lines[y])
	idx := strings.Index(line, label)
	if idx < 0 {
		return false
	}

	start := ansi.StringWidth(line[:idx])
	return x >= start && x < start+ansi.StringWidth(label)
}

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/muffinboard/internal/models"
)

// Suggestions are the quick-fill muffin names offered by the add-muffin form.
var Suggestions = []string{
	"Blueberry Muffin",
	"Chocolate Chip Muffin",
	"Banana Nut Muffin",
	"Lemon Poppy Seed Muffin",
	"Cranberry Orange Muffin",
	"Double Chocolate Muffin",
	"Strawberry Muffin",
	"Apple Cinnamon Muffin",
}

// Form button labels.
const (
	cancelLabel     = "Cancel"
	submitLabel     = "Add Muffin"
	submittingLabel = "Adding..."
)

// modalField identifies the focused control of the add-muffin form.
type modalField int

const (
	fieldName modalField = iota
	fieldSuggestions
	fieldList
	fieldCancel
	fieldSubmit
	fieldCount
)

// modalModel is the add-muffin form.
type modalModel struct {
	input      textinput.Model
	lists      []models.List
	selected   int
	suggestion int
	focus      modalField
	submitting bool
	keys       keyMap
	help       help.Model
}

// newModal creates the form for lists, preselecting the first pending list or else the first list.
func newModal(lists []models.List) *modalModel {
	input := textinput.New()
	input.Placeholder = "Enter delicious muffin name..."
	input.CharLimit = 120
	input.Width = 48
	input.Cursor.SetMode(cursor.CursorStatic)
	input.Focus()

	return &modalModel{
		input:    input,
		lists:    lists,
		selected: defaultListIndex(lists),
		keys:     newKeyMap(),
		help:     help.New(),
	}
}

func defaultListIndex(lists []models.List) int {
	for i, l := range lists {
		if l.Role() == models.RolePending {
			return i
		}
	}
	return 0
}

// name returns the trimmed muffin name.
func (m *modalModel) name() string {
	return strings.TrimSpace(m.input.Value())
}

// selectedListID returns the id of the chosen list, or "" when the board has no lists.
func (m *modalModel) selectedListID() models.ID {
	if m.selected < 0 || m.selected >= len(m.lists) {
		return ""
	}
	return m.lists[m.selected].ID
}

// canSubmit reports whether the Add button is enabled.
func (m *modalModel) canSubmit() bool {
	return !m.submitting && m.name() != ""
}

// submit starts a save of the current input. A disabled form emits nothing.
func (m *modalModel) submit() tea.Cmd {
	if !m.canSubmit() {
		return nil
	}
	m.submitting = true
	msg := submitCardMsg{name: m.name(), listID: m.selectedListID()}
	return func() tea.Msg { return msg }
}

// done clears the submitting flag once a save has finished.
func (m *modalModel) done() {
	m.submitting = false
}

func (m *modalModel) setFocus(f modalField) tea.Cmd {
	m.focus = (f + fieldCount) % fieldCount
	if m.focus == fieldName {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func closeModal() tea.Msg { return closeModalMsg{} }

// Update handles a key press inside the form.
func (m *modalModel) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.close):
		return closeModal
	case key.Matches(msg, m.keys.next):
		return m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keys.prev):
		return m.setFocus(m.focus - 1)
	}

	switch m.focus {
	case fieldName:
		if key.Matches(msg, m.keys.enter) {
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd

	case fieldSuggestions:
		switch {
		case key.Matches(msg, m.keys.left):
			m.suggestion = (m.suggestion - 1 + len(Suggestions)) % len(Suggestions)
		case key.Matches(msg, m.keys.right):
			m.suggestion = (m.suggestion + 1) % len(Suggestions)
		case key.Matches(msg, m.keys.enter):
			m.input.SetValue(Suggestions[m.suggestion])
			m.input.CursorEnd()
			return m.setFocus(fieldName)
		}

	case fieldList:
		if len(m.lists) == 0 {
			return nil
		}
		switch {
		case key.Matches(msg, m.keys.left):
			m.selected = (m.selected - 1 + len(m.lists)) % len(m.lists)
		case key.Matches(msg, m.keys.right):
			m.selected = (m.selected + 1) % len(m.lists)
		case key.Matches(msg, m.keys.enter):
			return m.setFocus(fieldSubmit)
		}

	case fieldCancel:
		switch {
		case key.Matches(msg, m.keys.enter):
			return closeModal
		case key.Matches(msg, m.keys.right):
			return m.setFocus(fieldSubmit)
		}

	case fieldSubmit:
		switch {
		case key.Matches(msg, m.keys.enter):
			return m.submit()
		case key.Matches(msg, m.keys.left):
			return m.setFocus(fieldCancel)
		}
	}

	return nil
}

// Click handles a left click at x, y of view, the rendered box holding the form. It never closes the form
// except through Cancel.
func (m *modalModel) Click(view string, x, y int) tea.Cmd {
	switch {
	case hit(view, cancelLabel, x, y):
		return closeModal
	case !m.submitting && hit(view, submitLabel, x, y):
		return m.submit()
	}

	for _, s := range Suggestions {
		if hit(view, s, x, y) {
			m.input.SetValue(s)
			m.input.CursorEnd()
			return m.setFocus(fieldName)
		}
	}

	return nil
}

// View renders the form box without its backdrop.
func (m *modalModel) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("🧁 Add New Muffin"))
	b.WriteString("\n")

	b.WriteString(m.label("Muffin Name", fieldName))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(m.label("Quick suggestions:", fieldSuggestions))
	b.WriteString("\n")
	b.WriteString(m.renderSuggestions())
	b.WriteString("\n\n")

	b.WriteString(m.label("Add to List", fieldList))
	b.WriteString("\n")
	b.WriteString(m.renderListSelector())
	b.WriteString("\n\n")

	b.WriteString(m.renderButtons())
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.modalHelp()))

	return styles.modal.Render(b.String())
}

func (m *modalModel) label(text string, field modalField) string {
	if m.focus == field {
		return styles.ok.Render("› " + text)
	}
	return styles.subtitle.Render("  " + text)
}

func (m *modalModel) renderSuggestions() string {
	if m.focus != fieldSuggestions {
		return styles.help.Render(strings.Join(Suggestions[:3], " · ") + " …")
	}
	return "‹ " + styles.focused.Render(Suggestions[m.suggestion]) + " ›"
}

func (m *modalModel) renderListSelector() string {
	if len(m.lists) == 0 {
		return styles.help.Render("(no lists)")
	}
	name := m.lists[m.selected].Name
	if m.focus == fieldList {
		return "‹ " + styles.focused.Render(name) + " ›"
	}
	return "  " + name
}

func (m *modalModel) renderButtons() string {
	cancel := styles.button
	if m.focus == fieldCancel {
		cancel = styles.focused
	}

	label := submitLabel
	if m.submitting {
		label = submittingLabel
	}
	add := styles.button
	switch {
	case !m.canSubmit():
		add = styles.disabled
	case m.focus == fieldSubmit:
		add = styles.focused
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cancel.Render(cancelLabel), "  ", add.Render(label))
}

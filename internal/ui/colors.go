package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#D2691E", "#04B575", "#FF5F5F", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	help     lipgloss.Style
	banner   lipgloss.Style
	button   lipgloss.Style
	focused  lipgloss.Style
	disabled lipgloss.Style
	column   lipgloss.Style
	badge    lipgloss.Style
	card     lipgloss.Style
	empty    lipgloss.Style
	modal    lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:    NewBold(t).MarginBottom(1),
		subtitle: NewEm(h),
		ok:       NewBold(s),
		err:      NewBold(e),
		warn:     NewStyle(w),
		help:     NewEm(h),
		banner:   NewBold(e).Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(e)).Padding(0, 1),
		button:   NewBold("#FFFFFF").Background(lipgloss.Color(t)).Padding(0, 1),
		focused:  NewBold("#FFFFFF").Background(lipgloss.Color(s)).Padding(0, 1),
		disabled: NewStyle(h).Background(lipgloss.Color("#3A3A3A")).Padding(0, 1),
		column:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(h)).Padding(0, 1).MarginRight(1).Width(32),
		badge:    NewBold("#FFFFFF").Background(lipgloss.Color(h)).Padding(0, 1),
		card:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(t)).Padding(0, 1).Width(28),
		empty:    NewEm(h).Padding(1, 0),
		modal:    lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(t)).Padding(1, 2).Width(60),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

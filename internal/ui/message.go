package ui

import (
	"github.com/desertthunder/muffinboard/internal/models"
)

// authStatusMsg carries the result of the auth check tagged seq.
type authStatusMsg struct {
	seq           uint64
	authenticated bool
	err           error
}

// boardLoadedMsg carries the result of the board load tagged seq.
type boardLoadedMsg struct {
	seq   uint64
	lists []models.List
	err   error
}

// cardAddedMsg carries the result of a card creation.
type cardAddedMsg struct {
	card *models.Card
	err  error
}

// pollTickMsg triggers an auth re-check while waiting for a browser sign-in.
// Ticks from an older generation are ignored.
type pollTickMsg struct {
	gen int
}

// browserOpenedMsg reports the outcome of opening the sign-in page.
type browserOpenedMsg struct {
	url string
	err error
}

// submitCardMsg is emitted by the add-muffin form when it is submitted.
type submitCardMsg struct {
	name   string
	listID models.ID
}

// closeModalMsg is emitted by the add-muffin form when it is cancelled.
type closeModalMsg struct{}

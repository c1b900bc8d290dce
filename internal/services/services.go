package services

import (
	"context"

	"github.com/desertthunder/muffinboard/internal/models"
)

// BoardService is the set of board API operations the client depends on.
type BoardService interface {
	// AuthStatus reports whether the current session is signed in.
	AuthStatus(ctx context.Context) (bool, error)

	// Lists returns every list on the board, in server order.
	Lists(ctx context.Context) ([]models.List, error)

	// CreateCard adds a card named name to the list with listID.
	CreateCard(ctx context.Context, name string, listID models.ID) (*models.Card, error)

	// AuthorizationURL returns the page that starts a browser sign-in.
	AuthorizationURL() string
}

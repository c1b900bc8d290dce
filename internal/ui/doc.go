// Package ui implements the muffin board as an interactive terminal interface using bubbletea's Elm architecture.
//
// The root [Model] owns all state and renders one of:
//  1. a full-screen loading indicator while the first auth check or a board load is running
//  2. the authentication section when the session is not signed in
//  3. the board, one column per list in server order
//
// The add-muffin form is a sub-model with its own Update and View, drawn over a dimmed backdrop.
//
// Every auth check and board load is tagged by a [shared.Fence] so a slow response cannot overwrite a newer one.
// After the browser is opened for sign-in, the model re-checks the auth status on a fixed interval and only shows
// the board once the server confirms the session.
//
// Keys are listed in the help bar rendered by charmbracelet/bubbles/help. The left mouse button activates the
// on-screen buttons and closes the form when pressed on the backdrop.
package ui

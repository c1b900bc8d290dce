// Package services defines the [BoardService] interface for the muffin board API and implements it over HTTP.
//
// # Board API
//
// The board API is a session-authenticated proxy in front of a Zoho Connect board. Three endpoints are used:
//   - GET /api/auth/status : whether the session is signed in
//   - GET /api/board/lists : every list with its cards, in board order
//   - POST /api/board/cards : create a card in a list
//
// [BoardClient] keeps a cookie jar so a session cookie set by the server is sent on later requests. A session
// cookie captured from a browser can be configured up front. Every request carries an X-Request-ID header.
//
// # Authorization
//
// Signing in happens in the browser. [BoardClient.AuthorizationURL] returns the page that starts the login,
// either the backend's login path or, when a Zoho client is configured, the Zoho consent page built with [oauth2].
// No tokens are exchanged here.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAPIRequest] : transport failure or non-2xx status
//   - [shared.ErrNotAuthenticated] : the API answered 401 or 403
//   - [shared.ErrServiceUnavailable] : the API answered 502, 503 or 504
//   - [shared.ErrEmptyResponse] : card creation answered with an empty or falsy body
package services

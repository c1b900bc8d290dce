package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/muffinboard/internal/models"
	"github.com/desertthunder/muffinboard/internal/shared"
)

const (
	DefaultBaseURL   = "http://localhost:8080"
	DefaultLoginPath = "/oauth2/authorization/zoho"

	authStatusPath = "/api/auth/status"
	listsPath      = "/api/board/lists"
	cardsPath      = "/api/board/cards"
)

// BoardClientOptions configures a [BoardClient].
type BoardClientOptions struct {
	// SessionCookie is sent verbatim as a Cookie header, e.g. "JSESSIONID=abc".
	SessionCookie string
	// LoginPath is appended to the base URL to build the authorization URL.
	LoginPath string
	// AuthorizationURL replaces the base URL and login path when set.
	AuthorizationURL string
	Logger           *log.Logger
}

// BoardClient implements [BoardService] against the board API over HTTP.
type BoardClient struct {
	baseURL       string
	httpClient    *http.Client
	sessionCookie string
	authURL       string
	logger        *log.Logger
}

// NewBoardClient creates a board API client.
//
// A nil client gets a new [http.Client] with a cookie jar.
func NewBoardClient(baseURL string, client *http.Client, opts BoardClientOptions) *BoardClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = trimSlash(baseURL)

	if client == nil {
		client, _ = newHTTPClient(0)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	authURL := opts.AuthorizationURL
	if authURL == "" {
		loginPath := opts.LoginPath
		if loginPath == "" {
			loginPath = DefaultLoginPath
		}
		authURL = baseURL + loginPath
	}

	return &BoardClient{
		baseURL:       baseURL,
		httpClient:    client,
		sessionCookie: strings.TrimSpace(opts.SessionCookie),
		authURL:       authURL,
		logger:        logger,
	}
}

// APIResponse is a raw board API response.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// OK reports whether the status code is 2xx.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// BaseURL returns the API root the client talks to.
func (c *BoardClient) BaseURL() string { return c.baseURL }

// AuthorizationURL returns the page that starts a browser sign-in.
func (c *BoardClient) AuthorizationURL() string { return c.authURL }

// AuthStatus reports whether the current session is signed in.
func (c *BoardClient) AuthStatus(ctx context.Context) (bool, error) {
	resp, err := c.do(ctx, http.MethodGet, authStatusPath, nil)
	if err != nil {
		return false, err
	}

	var status models.AuthStatus
	if err := json.Unmarshal(resp.Body, &status); err != nil {
		return false, fmt.Errorf("%w: failed to decode auth status: %v", shared.ErrAPIRequest, err)
	}

	return status.Authenticated, nil
}

// Lists returns every list on the board, in server order.
func (c *BoardClient) Lists(ctx context.Context) ([]models.List, error) {
	resp, err := c.do(ctx, http.MethodGet, listsPath, nil)
	if err != nil {
		return nil, err
	}

	var lists []models.List
	if err := json.Unmarshal(resp.Body, &lists); err != nil {
		return nil, fmt.Errorf("%w: failed to decode board lists: %v", shared.ErrAPIRequest, err)
	}
	if lists == nil {
		lists = []models.List{}
	}

	return lists, nil
}

// CreateCard adds a card to a list.
//
// The call succeeds only when the API answers 2xx with a truthy body. When the body is truthy but is not a card
// object, a card carrying the submitted name and list is returned.
func (c *BoardClient) CreateCard(ctx context.Context, name string, listID models.ID) (*models.Card, error) {
	payload, err := json.Marshal(models.CreateCardRequest{Name: name, ListID: listID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode card: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, cardsPath, payload)
	if err != nil {
		return nil, err
	}

	if !truthy(resp.Body) {
		return nil, fmt.Errorf("%w: %s returned %q", shared.ErrEmptyResponse, cardsPath, bytes.TrimSpace(resp.Body))
	}

	card := &models.Card{Name: name, ListID: listID}
	var created models.Card
	if err := json.Unmarshal(resp.Body, &created); err == nil {
		if created.ID != "" {
			card.ID = created.ID
		}
		if created.Name != "" {
			card.Name = created.Name
		}
		if created.ListID != "" {
			card.ListID = created.ListID
		}
		card.Description = created.Description
		card.CreatedTime = created.CreatedTime
	}

	return card, nil
}

// do sends a request and returns the response, failing on transport errors and non-2xx statuses.
func (c *BoardClient) do(ctx context.Context, method, path string, body []byte) (*APIResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := shared.GenerateID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.sessionCookie != "" {
		req.Header.Set("Cookie", c.sessionCookie)
	}

	logger := c.logger.With("method", method, "path", path, "request_id", requestID)
	logger.Debug("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("request failed", "error", err)
		return nil, fmt.Errorf("%w: %s %s: %w", shared.ErrAPIRequest, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", shared.ErrAPIRequest, err)
	}

	logger.Debug("received response", "status", resp.StatusCode, "bytes", len(data))

	apiResp := &APIResponse{StatusCode: resp.StatusCode, Headers: resp.Header, Body: data}
	if !apiResp.OK() {
		return nil, statusError(method, path, resp.StatusCode)
	}

	return apiResp, nil
}

func statusError(method, path string, status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s %s returned %d: %w", shared.ErrAPIRequest, method, path, status, shared.ErrNotAuthenticated)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %s %s returned %d: %w", shared.ErrAPIRequest, method, path, status, shared.ErrServiceUnavailable)
	default:
		return fmt.Errorf("%w: %s %s returned %d", shared.ErrAPIRequest, method, path, status)
	}
}

// truthy reports whether a response body counts as a successful result.
//
// Empty bodies and the JSON values null, false, 0 and "" are falsy. Bodies that are not JSON are truthy when non-blank.
func truthy(body []byte) bool {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return false
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return true
	}

	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}

package testing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/desertthunder/muffinboard/internal/models"
)

// Endpoint keys used by [FakeBoard.Calls].
const (
	EndpointAuthStatus = "GET /api/auth/status"
	EndpointLists      = "GET /api/board/lists"
	EndpointCreateCard = "POST /api/board/cards"
)

// SampleBoard returns the two-list muffin board with one card waiting to be baked.
func SampleBoard() []models.List {
	return []models.List{
		{ID: "1", Name: models.ToBakeName, Cards: []models.Card{{ID: "c1", Name: "Blueberry Muffin", ListID: "1"}}},
		{ID: "2", Name: models.AlreadyBakedName, Cards: []models.Card{}},
	}
}

// FakeBoard is an in-memory board API served by [httptest.Server] that counts calls per endpoint.
type FakeBoard struct {
	Server *httptest.Server

	mu            sync.Mutex
	authenticated bool
	lists         []models.List
	calls         map[string]int
	failLists     bool
	failCreate    bool
	createBody    *string
	created       []models.CreateCardRequest
	nextID        int
}

// NewFakeBoard starts a fake board API holding lists. The server is closed when the test ends.
func NewFakeBoard(t *testing.T, authenticated bool, lists []models.List) *FakeBoard {
	t.Helper()

	f := &FakeBoard{authenticated: authenticated, lists: lists, calls: make(map[string]int)}

	mux := http.NewServeMux()
	mux.HandleFunc(EndpointAuthStatus, f.handleAuthStatus)
	mux.HandleFunc(EndpointLists, f.handleLists)
	mux.HandleFunc(EndpointCreateCard, f.handleCreateCard)

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the fake API.
func (f *FakeBoard) URL() string { return f.Server.URL }

// Calls returns how many requests reached endpoint.
func (f *FakeBoard) Calls(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[endpoint]
}

// Created returns the card creation requests received so far.
func (f *FakeBoard) Created() []models.CreateCardRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.CreateCardRequest(nil), f.created...)
}

// SetAuthenticated changes the answer of the auth status endpoint.
func (f *FakeBoard) SetAuthenticated(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authenticated = v
}

// FailLists makes the lists endpoint answer 500.
func (f *FakeBoard) FailLists(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failLists = v
}

// FailCreate makes the card endpoint answer 500.
func (f *FakeBoard) FailCreate(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failCreate = v
}

// SetCreateResponse makes the card endpoint answer 200 with body instead of the created card.
func (f *FakeBoard) SetCreateResponse(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createBody = &body
}

func (f *FakeBoard) record(endpoint string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[endpoint]++
}

func (f *FakeBoard) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	f.record(EndpointAuthStatus)

	f.mu.Lock()
	status := models.AuthStatus{Authenticated: f.authenticated}
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, status)
}

func (f *FakeBoard) handleLists(w http.ResponseWriter, r *http.Request) {
	f.record(EndpointLists)

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.authenticated {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if f.failLists {
		http.Error(w, "lists unavailable", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, f.lists)
}

func (f *FakeBoard) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	f.record(EndpointCreateCard)

	var req models.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.created = append(f.created, req)

	if f.failCreate {
		http.Error(w, "create failed", http.StatusInternalServerError)
		return
	}
	if f.createBody != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(*f.createBody))
		return
	}

	for i := range f.lists {
		if f.lists[i].ID != req.ListID {
			continue
		}
		f.nextID++
		card := models.Card{ID: models.ID("new-" + strconv.Itoa(f.nextID)), Name: req.Name, ListID: req.ListID}
		f.lists[i].Cards = append(f.lists[i].Cards, card)
		writeJSON(w, http.StatusOK, card)
		return
	}

	http.Error(w, "list not found", http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrMock is returned by [MockBoardService] operations configured to fail.
var ErrMock = errors.New("mock board failure")

// MockBoardService is an in-process test double for services.BoardService.
type MockBoardService struct {
	Authenticated bool
	AuthErr       error
	Board         []models.List
	ListsErr      error
	CreateErr     error
	CreateResult  *models.Card
	LoginURL      string

	mu         sync.Mutex
	authCalls  int
	listCalls  int
	createReqs []models.CreateCardRequest
}

func (m *MockBoardService) AuthStatus(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authCalls++
	if m.AuthErr != nil {
		return false, m.AuthErr
	}
	return m.Authenticated, nil
}

func (m *MockBoardService) Lists(ctx context.Context) ([]models.List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.ListsErr != nil {
		return nil, m.ListsErr
	}
	return m.Board, nil
}

func (m *MockBoardService) CreateCard(ctx context.Context, name string, listID models.ID) (*models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createReqs = append(m.createReqs, models.CreateCardRequest{Name: name, ListID: listID})
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	if m.CreateResult != nil {
		return m.CreateResult, nil
	}
	return &models.Card{ID: "created", Name: name, ListID: listID}, nil
}

func (m *MockBoardService) AuthorizationURL() string {
	if m.LoginURL == "" {
		return "http://localhost:8080/oauth2/authorization/zoho"
	}
	return m.LoginURL
}

// AuthCalls returns how many times AuthStatus was called.
func (m *MockBoardService) AuthCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authCalls
}

// ListCalls returns how many times Lists was called.
func (m *MockBoardService) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

// CreateRequests returns the arguments of every CreateCard call.
func (m *MockBoardService) CreateRequests() []models.CreateCardRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.CreateCardRequest(nil), m.createReqs...)
}

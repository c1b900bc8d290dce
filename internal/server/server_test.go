package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/muffinboard/internal/models"
	"github.com/desertthunder/muffinboard/internal/shared"
	"golang.org/x/time/rate"
)

type memoryStore struct {
	mu     sync.Mutex
	events []*models.WebhookEvent
	err    error
}

func (s *memoryStore) Create(event *models.WebhookEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	event.SetID(shared.GenerateID())
	s.events = append(s.events, event)
	return nil
}

// logBuffer is a bytes.Buffer safe for the server goroutines writing to it.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestServer(t *testing.T, config shared.WebhookConfig, store EventStore) (*httptest.Server, *logBuffer) {
	t.Helper()
	logs := &logBuffer{}
	srv := httptest.NewServer(New(config, store, log.New(logs)).Handler())
	t.Cleanup(srv.Close)
	return srv, logs
}

func decodeBody(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

func TestWebhookReceiver(t *testing.T) {
	t.Run("Task moved to Already Baked", func(t *testing.T) {
		store := &memoryStore{}
		srv, logs := newTestServer(t, shared.WebhookConfig{}, store)

		payload := `{"eventType":"task.moved","task":{"title":"Blueberry Muffin"},"fromSection":{"name":"To Bake"},"toSection":{"name":"already baked"}}`
		resp, err := http.Post(srv.URL+"/api/webhook/zoho-connect", "application/json", strings.NewReader(payload))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}

		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
		if body := decodeBody(t, resp); body["status"] != "received" {
			t.Errorf("expected status received, got %v", body)
		}

		if len(store.events) != 1 {
			t.Fatalf("expected 1 stored event, got %d", len(store.events))
		}
		event := store.events[0]
		if event.TaskTitle() != "Blueberry Muffin" || event.FromSection() != "To Bake" || event.ToSection() != "already baked" {
			t.Errorf("unexpected event %+v", event.View())
		}
		if event.Payload() != payload {
			t.Errorf("expected raw payload to be kept")
		}

		output := logs.String()
		if !strings.Contains(output, "Blueberry Muffin moved from 'To Bake' to 'already baked'") {
			t.Errorf("expected movement log, got: %s", output)
		}
		if !strings.Contains(output, "Congratulations! Blueberry Muffin has been successfully baked!") {
			t.Errorf("expected congratulation log, got: %s", output)
		}
	})

	t.Run("Task added without source section", func(t *testing.T) {
		store := &memoryStore{}
		srv, logs := newTestServer(t, shared.WebhookConfig{}, store)

		payload := `{"eventType":"task.updated","task":{},"toSection":{"name":"To Bake"}}`
		resp, err := http.Post(srv.URL+"/api/webhook/zoho-connect", "application/json", strings.NewReader(payload))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		output := logs.String()
		if !strings.Contains(output, "Unknown Muffin added to 'To Bake'") {
			t.Errorf("expected added log, got: %s", output)
		}
		if strings.Contains(output, "Congratulations") {
			t.Errorf("did not expect congratulation, got: %s", output)
		}
	})

	t.Run("Null task and sections", func(t *testing.T) {
		store := &memoryStore{}
		srv, logs := newTestServer(t, shared.WebhookConfig{}, store)

		payload := `{"eventType":"task.moved","task":null,"fromSection":null,"toSection":null}`
		resp, err := http.Post(srv.URL+"/api/webhook/zoho-connect", "application/json", strings.NewReader(payload))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		if !strings.Contains(logs.String(), "Unknown Muffin moved from 'Unknown Section' to 'Unknown Section'") {
			t.Errorf("expected movement log with placeholders, got: %s", logs.String())
		}
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		store := &memoryStore{}
		srv, _ := newTestServer(t, shared.WebhookConfig{}, store)

		resp, err := http.Post(srv.URL+"/api/webhook/zoho-connect", "application/json", strings.NewReader(`{"eventType":`))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}

		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", resp.StatusCode)
		}
		body := decodeBody(t, resp)
		if body["status"] != "error" || body["message"] == "" {
			t.Errorf("expected error body, got %v", body)
		}
		if len(store.events) != 0 {
			t.Errorf("expected nothing stored, got %d", len(store.events))
		}
	})

	t.Run("Store failure", func(t *testing.T) {
		store := &memoryStore{err: errors.New("disk full")}
		srv, _ := newTestServer(t, shared.WebhookConfig{}, store)

		resp, err := http.Post(srv.URL+"/api/webhook/zoho-connect", "application/json", strings.NewReader(`{}`))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", resp.StatusCode)
		}
		resp.Body.Close()
	})

	t.Run("Test endpoint", func(t *testing.T) {
		srv, logs := newTestServer(t, shared.WebhookConfig{}, &memoryStore{})

		resp, err := http.Get(srv.URL + "/api/webhook/test")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}

		body := decodeBody(t, resp)
		if body["status"] != "test completed" || body["message"] != "Check console for test log" {
			t.Errorf("unexpected body %v", body)
		}
		if !strings.Contains(logs.String(), "Test webhook called") {
			t.Errorf("expected test log, got: %s", logs.String())
		}
	})

	t.Run("Health", func(t *testing.T) {
		srv, _ := newTestServer(t, shared.WebhookConfig{Token: "secret"}, &memoryStore{})

		resp, err := http.Get(srv.URL + "/health")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if body := decodeBody(t, resp); body["status"] != "ok" {
			t.Errorf("unexpected body %v", body)
		}
	})

	t.Run("Wrong method", func(t *testing.T) {
		srv, _ := newTestServer(t, shared.WebhookConfig{}, &memoryStore{})

		resp, err := http.Get(srv.URL + "/api/webhook/zoho-connect")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", resp.StatusCode)
		}
	})

	t.Run("Token required", func(t *testing.T) {
		store := &memoryStore{}
		srv, _ := newTestServer(t, shared.WebhookConfig{Token: "secret"}, store)

		tests := []struct {
			name   string
			url    string
			header string
			want   int
		}{
			{name: "missing", url: "/api/webhook/zoho-connect", want: http.StatusUnauthorized},
			{name: "wrong header", url: "/api/webhook/zoho-connect", header: "nope", want: http.StatusUnauthorized},
			{name: "header", url: "/api/webhook/zoho-connect", header: "secret", want: http.StatusOK},
			{name: "query", url: "/api/webhook/zoho-connect?token=secret", want: http.StatusOK},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req, _ := http.NewRequest(http.MethodPost, srv.URL+tt.url, strings.NewReader(`{"eventType":"task.created"}`))
				if tt.header != "" {
					req.Header.Set(TokenHeader, tt.header)
				}

				resp, err := http.DefaultClient.Do(req)
				if err != nil {
					t.Fatalf("request failed: %v", err)
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()

				if resp.StatusCode != tt.want {
					t.Errorf("expected %d, got %d", tt.want, resp.StatusCode)
				}
			})
		}

		if len(store.events) != 2 {
			t.Errorf("expected 2 stored events, got %d", len(store.events))
		}
	})
}

func TestMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, RequestIDFrom(r.Context()))
	})

	t.Run("RateLimit", func(t *testing.T) {
		handler := RateLimit(rate.NewLimiter(rate.Every(1<<62), 2))(ok)

		codes := []int{}
		for range 3 {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			codes = append(codes, rec.Code)
		}

		if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
			t.Errorf("expected 200, 200, 429, got %v", codes)
		}
	})

	t.Run("RequestID", func(t *testing.T) {
		handler := RequestID()(ok)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc")
		handler.ServeHTTP(rec, req)
		if rec.Body.String() != "abc" || rec.Header().Get("X-Request-ID") != "abc" {
			t.Errorf("expected caller id to be kept, got %q", rec.Body.String())
		}

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Body.String() == "" {
			t.Error("expected generated id")
		}
	})

	t.Run("Logging", func(t *testing.T) {
		var logs bytes.Buffer
		handler := Logging(log.New(&logs))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/brew", nil))

		output := logs.String()
		if !strings.Contains(output, "path=/brew") || !strings.Contains(output, "status=418") {
			t.Errorf("unexpected log output: %s", output)
		}
	})
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name                string
		body                string
		wantType            string
		wantTitle, from, to string
	}{
		{name: "empty object", body: `{}`, wantType: "unknown"},
		{name: "non object", body: `[1,2]`, wantType: "unknown"},
		{name: "empty type", body: `{"eventType":""}`, wantType: "unknown"},
		{name: "other type", body: `{"eventType":"task.deleted","task":{"title":"x"},"toSection":{"name":"y"}}`, wantType: "task.deleted"},
		{name: "moved without destination", body: `{"eventType":"task.moved","task":{"title":"x"}}`, wantType: "task.moved"},
		{name: "moved", body: `{"eventType":"task.moved","task":{"title":"Banana"},"fromSection":{},"toSection":{"name":"Done"}}`, wantType: "task.moved", wantTitle: "Banana", from: "Unknown Section", to: "Done"},
		{name: "null nodes", body: `{"eventType":"task.moved","task":null,"fromSection":null,"toSection":null}`, wantType: "task.moved", wantTitle: "Unknown Muffin", from: "Unknown Section", to: "Unknown Section"},
		{name: "null source only", body: `{"eventType":"task.updated","task":{"title":"Corn"},"fromSection":null,"toSection":{"name":"Already Baked"}}`, wantType: "task.updated", wantTitle: "Corn", from: "Unknown Section", to: "Already Baked"},
		{name: "numeric title", body: `{"eventType":"task.updated","task":{"title":42},"toSection":{}}`, wantType: "task.updated", wantTitle: "42", to: "Unknown Section"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := ParseEvent([]byte(tt.body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if event.EventType() != tt.wantType {
				t.Errorf("expected type %q, got %q", tt.wantType, event.EventType())
			}
			if event.TaskTitle() != tt.wantTitle || event.FromSection() != tt.from || event.ToSection() != tt.to {
				t.Errorf("unexpected movement %q %q %q", event.TaskTitle(), event.FromSection(), event.ToSection())
			}
		})
	}

	if _, err := ParseEvent([]byte(`nope`)); !errors.Is(err, shared.ErrInvalidPayload) {
		t.Errorf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestBasicRouter(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	router := NewBasicRouter()
	router.Use(mark("first"), mark("second"))
	router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if strings.Join(order, ",") != "first,second,handler" {
		t.Errorf("unexpected middleware order %v", order)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

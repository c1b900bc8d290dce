package server

import (
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
	webhookPath     = "/api/webhook/zoho-connect"
	webhookTestPath = "/api/webhook/test"

	maxPayloadBytes = 1 << 20

	unknownEvent   = "unknown"
	unknownMuffin  = "Unknown Muffin"
	unknownSection = "Unknown Section"
)

// WebhookHandler receives board activity notifications.
type WebhookHandler struct {
	store  EventStore
	logger *log.Logger
}

// NewWebhookHandler creates a handler that stores events in store.
func NewWebhookHandler(store EventStore, logger *log.Logger) *WebhookHandler {
	return &WebhookHandler{store: store, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *WebhookHandler) Routes() []string {
	return []string{
		http.MethodPost + " " + webhookPath,
		http.MethodGet + " " + webhookTestPath,
	}
}

// ServeHTTP dispatches to the notification or test endpoint.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case webhookPath:
		h.receive(w, r)
	case webhookTestPath:
		h.test(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *WebhookHandler) receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		h.fail(w, fmt.Errorf("%w: %v", shared.ErrInvalidPayload, err))
		return
	}

	h.logger.Info("received webhook payload", "payload", string(body))

	event, err := ParseEvent(body)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.report(event)

	if err := h.store.Create(event); err != nil {
		h.fail(w, fmt.Errorf("failed to store webhook event: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
}

func (h *WebhookHandler) test(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("🧁 Test webhook called - Blueberry Muffin moved to 'Already Baked'")
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "test completed",
		"message": "Check console for test log",
	})
}

// report logs a card movement, congratulating muffins that reach the baked section.
func (h *WebhookHandler) report(event *models.WebhookEvent) {
	if !event.IsMovement() || event.ToSection() == "" {
		h.logger.Info("received webhook event", "type", event.EventType())
		return
	}

	if event.FromSection() != "" {
		h.logger.Infof("🧁 %s moved from '%s' to '%s'", event.TaskTitle(), event.FromSection(), event.ToSection())
	} else {
		h.logger.Infof("🧁 %s added to '%s'", event.TaskTitle(), event.ToSection())
	}

	if strings.EqualFold(event.ToSection(), models.AlreadyBakedName) {
		h.logger.Infof("🎉 Congratulations! %s has been successfully baked!", event.TaskTitle())
	}
}

func (h *WebhookHandler) fail(w http.ResponseWriter, err error) {
	h.logger.Error("error processing webhook", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
}

// ParseEvent builds an unsaved [models.WebhookEvent] from a notification body.
//
// The event type defaults to "unknown". Card movement fields are filled only for task.moved and task.updated
// events that carry both task and toSection, even as null; a missing title or section name gets a placeholder,
// and an absent source section stays empty.
func ParseEvent(body []byte) (*models.WebhookEvent, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidPayload, err)
	}
	data, _ := raw.(map[string]any)

	eventType := unknownEvent
	if v, ok := data["eventType"]; ok && asText(v) != "" {
		eventType = asText(v)
	}

	var title, from, to string
	if eventType == models.EventTaskMoved || eventType == models.EventTaskUpdated {
		task, hasTask := data["task"]
		toSection, hasTo := data["toSection"]
		if hasTask && hasTo {
			title = field(task, "title", unknownMuffin)
			to = field(toSection, "name", unknownSection)
			if fromSection, ok := data["fromSection"]; ok {
				from = field(fromSection, "name", unknownSection)
			}
		}
	}

	return models.NewWebhookEvent(eventType, title, from, to, string(body)), nil
}

// field returns node[key] as text, or fallback when node is not an object or lacks key.
func field(node any, key, fallback string) string {
	obj, ok := node.(map[string]any)
	if !ok {
		return fallback
	}
	v, ok := obj[key]
	if !ok {
		return fallback
	}
	return asText(v)
}

// asText renders a JSON value the way a scalar is printed; objects and arrays become empty.
func asText(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case float64, bool:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

func errorBody(message string) map[string]string {
	return map[string]string{"status": "error", "message": message}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package models

import (
	"errors"
	"time"
)

// Webhook event types that describe a card changing sections.
const (
	EventTaskMoved   = "task.moved"
	EventTaskUpdated = "task.updated"
)

// WebhookEvent is a board activity notification received from the collaboration service.
type WebhookEvent struct {
	id          string
	sequence    int
	eventType   string
	taskTitle   string
	fromSection string
	toSection   string
	payload     string
	receivedAt  time.Time
}

// NewWebhookEvent creates an unsaved [WebhookEvent] received now.
func NewWebhookEvent(eventType, taskTitle, fromSection, toSection, payload string) *WebhookEvent {
	return &WebhookEvent{
		eventType:   eventType,
		taskTitle:   taskTitle,
		fromSection: fromSection,
		toSection:   toSection,
		payload:     payload,
		receivedAt:  time.Now().UTC(),
	}
}

func (e *WebhookEvent) ID() string            { return e.id }
func (e *WebhookEvent) Sequence() int         { return e.sequence }
func (e *WebhookEvent) EventType() string     { return e.eventType }
func (e *WebhookEvent) TaskTitle() string     { return e.taskTitle }
func (e *WebhookEvent) FromSection() string   { return e.fromSection }
func (e *WebhookEvent) ToSection() string     { return e.toSection }
func (e *WebhookEvent) Payload() string       { return e.payload }
func (e *WebhookEvent) ReceivedAt() time.Time { return e.receivedAt }
func (e *WebhookEvent) CreatedAt() time.Time  { return e.receivedAt }
func (e *WebhookEvent) UpdatedAt() time.Time  { return e.receivedAt }

func (e *WebhookEvent) SetID(id string)           { e.id = id }
func (e *WebhookEvent) SetSequence(seq int)       { e.sequence = seq }
func (e *WebhookEvent) SetReceivedAt(t time.Time) { e.receivedAt = t }

// IsMovement reports whether the event describes a card entering or changing a section.
func (e *WebhookEvent) IsMovement() bool {
	return e.eventType == EventTaskMoved || e.eventType == EventTaskUpdated
}

// Validate checks required fields.
func (e *WebhookEvent) Validate() error {
	if e.id == "" {
		return errors.New("webhook event id is required")
	}
	if e.eventType == "" {
		return errors.New("webhook event type is required")
	}
	return nil
}

// WebhookEventView is the serializable form of a [WebhookEvent].
type WebhookEventView struct {
	ID          string    `json:"id"`
	Sequence    int       `json:"sequence"`
	EventType   string    `json:"eventType"`
	TaskTitle   string    `json:"taskTitle,omitempty"`
	FromSection string    `json:"fromSection,omitempty"`
	ToSection   string    `json:"toSection,omitempty"`
	ReceivedAt  time.Time `json:"receivedAt"`
}

// View returns the serializable form of the event.
func (e *WebhookEvent) View() WebhookEventView {
	return WebhookEventView{
		ID:          e.id,
		Sequence:    e.sequence,
		EventType:   e.eventType,
		TaskTitle:   e.taskTitle,
		FromSection: e.fromSection,
		ToSection:   e.toSection,
		ReceivedAt:  e.receivedAt,
	}
}

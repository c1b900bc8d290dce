package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/muffinboard/internal/models"
	"github.com/desertthunder/muffinboard/internal/shared"
)

const eventColumns = `id, sequence, event_type, task_title, from_section, to_section, payload, received_at`

// EventRepository implements [models.Repository] for [models.WebhookEvent] persistence.
type EventRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.WebhookEvent] = (*EventRepository)(nil)

// NewEventRepository creates a new [EventRepository] with the given database connection
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a webhook event with a generated ID and sequence
func (r *EventRepository) Create(event *models.WebhookEvent) error {
	event.SetID(shared.GenerateID())
	if err := event.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "webhook_events")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	event.SetSequence(sequence)

	query := `INSERT INTO webhook_events (` + eventColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.Exec(query,
		event.ID(), sequence, event.EventType(), event.TaskTitle(),
		event.FromSection(), event.ToSection(), event.Payload(), event.ReceivedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert webhook event: %w", err)
	}

	return nil
}

// Get retrieves a webhook event by ID
func (r *EventRepository) Get(id string) (*models.WebhookEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM webhook_events WHERE id = ?`

	event, err := r.scan(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrEventNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

// List returns up to limit events, newest first. A limit of zero or less returns every event.
func (r *EventRepository) List(limit int) ([]*models.WebhookEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM webhook_events ORDER BY sequence DESC`

	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query webhook events: %w", err)
	}
	defer rows.Close()

	var events []*models.WebhookEvent
	for rows.Next() {
		event, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return events, nil
}

// Count returns the number of stored events.
func (r *EventRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM webhook_events").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count webhook events: %w", err)
	}
	return n, nil
}

func (r *EventRepository) scan(row scanner) (*models.WebhookEvent, error) {
	var (
		id          string
		sequence    int
		eventType   string
		taskTitle   string
		fromSection string
		toSection   string
		payload     string
		receivedAt  time.Time
	)

	err := row.Scan(&id, &sequence, &eventType, &taskTitle, &fromSection, &toSection, &payload, &receivedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan webhook event: %w", err)
	}

	event := models.NewWebhookEvent(eventType, taskTitle, fromSection, toSection, payload)
	event.SetID(id)
	event.SetSequence(sequence)
	event.SetReceivedAt(receivedAt)
	return event, nil
}

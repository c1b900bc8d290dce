package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/desertthunder/muffinboard/internal/models"
)

// EventsToText renders webhook events as an aligned table, newest first as given
func EventsToText(events []*models.WebhookEvent) ([]byte, error) {
	var buf bytes.Buffer

	if len(events) == 0 {
		buf.WriteString("No webhook events received yet\n")
		return buf.Bytes(), nil
	}

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tRECEIVED\tTYPE\tMUFFIN\tFROM\tTO")
	for _, e := range events {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.Sequence(), e.ReceivedAt().Local().Format(time.DateTime), e.EventType(),
			dash(e.TaskTitle()), dash(e.FromSection()), dash(e.ToSection()),
		)
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to write events table: %w", err)
	}

	return buf.Bytes(), nil
}

// EventsToJSON renders webhook events as a JSON array
func EventsToJSON(events []*models.WebhookEvent, pretty bool) ([]byte, error) {
	views := make([]models.WebhookEventView, 0, len(events))
	for _, e := range events {
		views = append(views, e.View())
	}

	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(views, "", "  ")
	} else {
		data, err = json.Marshal(views)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return append(data, '\n'), nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

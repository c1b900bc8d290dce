// Package repositories implements SQLite persistence for webhook events.
//
// Board lists and cards are owned by the board API and are never stored locally;
// only the activity notifications the webhook receiver accepts are kept here.
//
// Key Implementations:
//   - [EventRepository] : webhook event history, newest first
//
// Sequence numbers provide stable ordering independent of UUIDs and receive timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories

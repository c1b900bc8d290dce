// Package models defines domain entities and persistence interfaces for the Muffin Board client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): records decoded from the board API
//   - [List] : A board column ("To Bake", "Already Baked") with its ordered cards
//   - [Card] : A single muffin
//   - [Board] : The ordered set of lists returned by one board load
//
// 2. Persistent Entities: Database-backed models
//   - [WebhookEvent] : A board activity event received from the collaboration service
//
// Lists carry a [Role] that separates the pending column from the completed one.
// The role is taken from the server when present and derived from the canonical list names otherwise.
package models

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Canonical list names used by the muffin baking board.
const (
	ToBakeName       = "To Bake"
	AlreadyBakedName = "Already Baked"
)

// ID is a record identifier from the board API.
//
// The API sends ids as strings, but numeric ids are accepted and kept in their decimal form.
type ID string

// UnmarshalJSON accepts a JSON string, number, or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(data), err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Role identifies the workflow stage a list represents.
type Role int

const (
	RoleUnknown Role = iota
	RolePending
	RoleCompleted
)

func (r Role) String() string {
	switch r {
	case RolePending:
		return "pending"
	case RoleCompleted:
		return "completed"
	default:
		return ""
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Unrecognized tags decode to [RoleUnknown].
func (r *Role) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "pending", "to_bake", "todo":
		*r = RolePending
	case "completed", "baked", "done":
		*r = RoleCompleted
	default:
		*r = RoleUnknown
	}
	return nil
}

// Card is a single muffin on the board.
type Card struct {
	ID          ID     `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	ListID      ID     `json:"listId,omitempty" yaml:"list_id,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedTime string `json:"createdTime,omitempty" yaml:"created_time,omitempty"`
}

// List is a named, ordered column of cards.
type List struct {
	ID    ID     `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Tag   Role   `json:"role,omitempty" yaml:"role,omitempty"`
	Cards []Card `json:"cards" yaml:"cards"`
}

// Role returns the server-provided role tag, falling back to the canonical list names when the server sent none.
func (l List) Role() Role {
	if l.Tag != RoleUnknown {
		return l.Tag
	}
	switch l.Name {
	case ToBakeName:
		return RolePending
	case AlreadyBakedName:
		return RoleCompleted
	default:
		return RoleUnknown
	}
}

// Board is the ordered set of lists from one board load.
type Board []List

// FindByRole returns the first list with the given role.
func (b Board) FindByRole(role Role) (List, bool) {
	for _, l := range b {
		if l.Role() == role {
			return l, true
		}
	}
	return List{}, false
}

// FindByID returns the list with the given id.
func (b Board) FindByID(id ID) (List, bool) {
	for _, l := range b {
		if l.ID == id {
			return l, true
		}
	}
	return List{}, false
}

// CardCount returns the number of cards across all lists.
func (b Board) CardCount() int {
	n := 0
	for _, l := range b {
		n += len(l.Cards)
	}
	return n
}

// AuthStatus is the response body of the auth status endpoint.
type AuthStatus struct {
	Authenticated bool `json:"authenticated"`
}

// CreateCardRequest is the request body for card creation.
type CreateCardRequest struct {
	Name   string `json:"name"`
	ListID ID     `json:"listId"`
}

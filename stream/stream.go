// Package stream maintains the client-visible comment list for one live class,
// keeping it in sync with the backend through a bulk fetch plus a push feed of
// insert/delete change events.
package stream

import (
	"context"

	"github.com/Ashik756/eclass-hub/models"
)

// EventKind is the type of a change notification
type EventKind string

// Change notification kinds delivered by a Feed
const (
	EventInsert EventKind = "insert"
	EventDelete EventKind = "delete"
)

// Event is a row-level change notification for the livecomments collection.
// Insert events are hints: they carry the new row's id but may lack the
// denormalized author fields, so the canonical record is always re-fetched
// before it is merged into the list.
type Event struct {
	Kind      EventKind `json:"kind"`
	CommentID string    `json:"commentID"`
	ClassID   string    `json:"classID"`
}

// Author identifies the local user sending comments
type Author struct {
	ID   string
	Name string
	Role string
}

// Result is the non-fatal outcome of a send or delete operation
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Store is the backend surface the manager reads and writes comments through
type Store interface {
	ListComments(ctx context.Context, classID string) ([]models.LiveComment, error)
	GetComment(ctx context.Context, commentID string) (*models.LiveComment, error)
	InsertComment(ctx context.Context, classID, authorID, message string) error
	DeleteComment(ctx context.Context, commentID string) error
}

// Feed delivers change events scoped to one class
type Feed interface {
	Subscribe(classID string, handler func(Event)) (Subscription, error)
}

// Subscription is a cancelable handle on a change feed
type Subscription interface {
	Unsubscribe()
}

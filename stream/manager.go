package stream

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Ashik756/eclass-hub/models"
)

// Manager owns the in-memory comment list for a single open class view. The list
// is server-authoritative: Send and Delete never splice locally, they wait for the
// insert/delete event to round-trip through the feed. All state is guarded by a
// mutex because feed delivery and the insert path's follow-up fetch are async and
// may interleave.
type Manager struct {
	store Store
	feed  Feed

	mu        sync.Mutex
	classID   string
	comments  []models.LiveComment
	sub       Subscription
	connected bool
	// gen increments on every Open and Close. Callbacks capture the generation
	// they were started under and are dropped if it has moved on, so a fetch
	// resolving after Close cannot mutate state for a stream the UI no longer
	// displays.
	gen uint64
}

// NewManager returns a manager wired to the given store and feed. Each open
// class view gets its own instance; nothing is shared between managers.
func NewManager(store Store, feed Feed) *Manager {
	return &Manager{store: store, feed: feed}
}

// Open fetches the existing comments for classID in ascending creation order and
// then subscribes to the class's change feed. A class with no comments yields an
// empty list, not an error. A failed bulk fetch is logged and the subscription
// still proceeds. At most one subscription is active per manager; opening while
// already open closes the previous stream first.
func (m *Manager) Open(ctx context.Context, classID string) error {
	m.mu.Lock()
	if m.sub != nil {
		m.sub.Unsubscribe()
		m.sub = nil
	}
	m.gen++
	gen := m.gen
	m.classID = classID
	m.comments = nil
	m.connected = false
	m.mu.Unlock()

	comments, err := m.store.ListComments(ctx, classID)
	if err != nil {
		zap.S().Errorw("failed to fetch comments", "classID", classID, "error", err)
		comments = nil
	}

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return nil
	}
	m.comments = comments
	m.sortLocked()
	m.mu.Unlock()

	sub, err := m.feed.Subscribe(classID, func(ev Event) {
		m.handleEvent(gen, ev)
	})
	if err != nil {
		zap.S().Errorw("failed to subscribe to comment feed", "classID", classID, "error", err)
		return err
	}

	m.mu.Lock()
	if m.gen != gen {
		// closed while the subscribe call was in flight
		m.mu.Unlock()
		sub.Unsubscribe()
		return nil
	}
	m.sub = sub
	m.connected = true
	m.mu.Unlock()
	return nil
}

// handleEvent merges one change notification. Insert payloads are treated as
// hints: the canonical record is re-fetched so the denormalized author fields are
// present even when the notification raced the profile join. Two events can be in
// flight at once, so the merge is last-writer-wins keyed by comment id and the
// list is re-sorted after every change rather than trusting arrival order.
func (m *Manager) handleEvent(gen uint64, ev Event) {
	switch ev.Kind {
	case EventInsert:
		comment, err := m.store.GetComment(context.Background(), ev.CommentID)
		if err != nil || comment == nil {
			zap.S().Errorw("failed to fetch inserted comment", "commentID", ev.CommentID, "error", err)
			return
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.gen != gen {
			return
		}
		replaced := false
		for i := range m.comments {
			if m.comments[i].ID == comment.ID {
				m.comments[i] = *comment
				replaced = true
				break
			}
		}
		if !replaced {
			m.comments = append(m.comments, *comment)
		}
		m.sortLocked()

	case EventDelete:
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.gen != gen {
			return
		}
		// absent id means a racing delete already removed it; no-op
		for i := range m.comments {
			if m.comments[i].ID.Hex() == ev.CommentID {
				m.comments = append(m.comments[:i], m.comments[i+1:]...)
				break
			}
		}
	}
}

func (m *Manager) sortLocked() {
	sort.SliceStable(m.comments, func(i, j int) bool {
		if m.comments[i].CreatedAt != m.comments[j].CreatedAt {
			return m.comments[i].CreatedAt < m.comments[j].CreatedAt
		}
		return m.comments[i].ID.Hex() < m.comments[j].ID.Hex()
	})
}

// Send validates and submits a new comment. The visible list is not updated here;
// it changes only when the insert event round-trips through the feed.
func (m *Manager) Send(ctx context.Context, message string, author *Author) Result {
	if author == nil || author.ID == "" {
		return Result{Success: false}
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return Result{Success: false}
	}

	m.mu.Lock()
	classID := m.classID
	m.mu.Unlock()

	if err := m.store.InsertComment(ctx, classID, author.ID, message); err != nil {
		zap.S().Errorw("failed to send comment", "classID", classID, "error", err)
		return Result{Success: false, Error: err.Error()}
	}
	return Result{Success: true}
}

// Delete submits a delete for commentID. Authorization is enforced server-side;
// the list updates when the delete event round-trips.
func (m *Manager) Delete(ctx context.Context, commentID string) Result {
	if err := m.store.DeleteComment(ctx, commentID); err != nil {
		zap.S().Errorw("failed to delete comment", "commentID", commentID, "error", err)
		return Result{Success: false, Error: err.Error()}
	}
	return Result{Success: true}
}

// CanDelete reports whether the delete affordance should be shown: teachers may
// delete comments authored by someone else.
func CanDelete(viewer Author, comment models.LiveComment) bool {
	return viewer.Role == models.RoleTeacher && viewer.ID != comment.AuthorID
}

// Close releases the subscription. Safe to call any number of times; callbacks
// resolving after Close are discarded.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.connected = false
	if m.sub != nil {
		m.sub.Unsubscribe()
		m.sub = nil
	}
}

// Connected reports whether the push subscription is live
func (m *Manager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// Comments returns a snapshot of the visible list in ascending creation order
func (m *Manager) Comments() []models.LiveComment {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.LiveComment, len(m.comments))
	copy(out, m.comments)
	return out
}

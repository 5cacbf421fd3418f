package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Ashik756/eclass-hub/stream"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust CORS as needed, e.g., check r.Header.Get("Origin")
	},
}

// CommentHub fans row-level insert/delete events out to every client subscribed
// to a class's comment stream. Connections are grouped into rooms keyed by
// classID so an event only reaches viewers of that class.
type CommentHub struct {
	mutex sync.Mutex
	rooms map[string]map[*websocket.Conn]bool
}

// NewCommentHub returns an empty hub
func NewCommentHub() *CommentHub {
	return &CommentHub{
		rooms: make(map[string]map[*websocket.Conn]bool),
	}
}

// HandleCommentsWebSocket upgrades the connection and registers it in the room
// for the classId query parameter until the client goes away
func (h *CommentHub) HandleCommentsWebSocket(w http.ResponseWriter, r *http.Request) {
	classID := r.URL.Query().Get("classId")
	if classID == "" {
		http.Error(w, "classId is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade error", "error", err)
		return
	}

	h.mutex.Lock()
	if h.rooms[classID] == nil {
		h.rooms[classID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[classID][conn] = true
	h.mutex.Unlock()
	zap.S().Debugw("client subscribed to comment feed", "classID", classID)

	// Keep connection alive; drop the registration when the peer closes
	for {
		if _, _, err := conn.NextReader(); err != nil {
			break
		}
	}

	h.mutex.Lock()
	delete(h.rooms[classID], conn)
	if len(h.rooms[classID]) == 0 {
		delete(h.rooms, classID)
	}
	h.mutex.Unlock()
	conn.Close()
	zap.S().Debugw("client left comment feed", "classID", classID)
}

// Broadcast delivers one change event to every subscriber of the class's room
func (h *CommentHub) Broadcast(classID string, ev stream.Event) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn := range h.rooms[classID] {
		if err := conn.WriteJSON(ev); err != nil {
			zap.S().Errorw("error broadcasting comment event", "classID", classID, "error", err)
			delete(h.rooms[classID], conn)
			conn.Close()
		}
	}
}

package handlers

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
)

var server *socketio.Server

// InitializeSocketIO initializes the Socket.IO presence server. Clients join a
// room per batch so live-status changes only reach enrolled viewers.
func InitializeSocketIO() *socketio.Server {
	server = socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			polling.Default,
			websocket.Default,
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		log.Println("Socket.IO client connected:", s.ID())
		return nil
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		log.Println("Socket.IO error:", e)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.Println("Socket.IO client disconnected:", s.ID(), "reason:", reason)
	})

	server.OnEvent("/", "join_batch", func(s socketio.Conn, msg map[string]interface{}) {
		batchID, ok := msg["batchId"].(string)
		if ok {
			s.Join(batchID)
			log.Println("Client joined batch:", batchID)
		}
	})

	server.OnEvent("/", "leave_batch", func(s socketio.Conn, msg map[string]interface{}) {
		batchID, ok := msg["batchId"].(string)
		if ok {
			s.Leave(batchID)
			log.Println("Client left batch:", batchID)
		}
	})

	go func() {
		if err := server.Serve(); err != nil {
			log.Fatalf("Socket.IO server error: %v", err)
		}
	}()

	return server
}

// GetSocketIOServer returns the Socket.IO server instance
func GetSocketIOServer() *socketio.Server {
	return server
}

// EmitClassLiveStatus emits a class_live event to all clients in a batch room
func EmitClassLiveStatus(batchID, classID string, isLive bool) {
	if server != nil {
		data := map[string]interface{}{
			"classId": classID,
			"batchId": batchID,
			"isLive":  isLive,
		}
		server.BroadcastToRoom("/", batchID, "class_live", data)
		log.Printf("Emitted class_live to batch %s for class %s (live=%v)", batchID, classID, isLive)
	}
}

package stream

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebsocketFeed implements Feed by dialing the API's comment feed endpoint and
// decoding the JSON events it pushes
type WebsocketFeed struct {
	// URL is the websocket endpoint, e.g. wss://host/ws/comments
	URL string
}

// NewWebsocketFeed returns a feed dialing the given endpoint
func NewWebsocketFeed(url string) *WebsocketFeed {
	return &WebsocketFeed{URL: url}
}

type wsSubscription struct {
	conn *websocket.Conn
	once sync.Once
}

func (s *wsSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.conn.Close()
	})
}

// Subscribe opens one websocket connection scoped to classID and invokes handler
// for every event until the subscription is canceled
func (f *WebsocketFeed) Subscribe(classID string, handler func(Event)) (Subscription, error) {
	conn, _, err := websocket.DefaultDialer.Dial(f.URL+"?classId="+classID, nil)
	if err != nil {
		return nil, err
	}

	sub := &wsSubscription{conn: conn}
	go func() {
		for {
			var ev Event
			if err := conn.ReadJSON(&ev); err != nil {
				// closed by Unsubscribe or the server went away
				zap.S().Debugw("comment feed closed", "classID", classID, "error", err)
				return
			}
			if ev.ClassID != "" && ev.ClassID != classID {
				continue
			}
			handler(ev)
		}
	}()
	return sub, nil
}

// Package push is the optional WebSocket upgrade over status polling.
// When the backend exposes a status stream the watcher rides it; when the
// dial fails the 5-second poll loop carries on alone, which remains the
// contract the status views are built on.
package push

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to read the next message before the connection is
	// considered dead.
	pongWait = 60 * time.Second

	// Send pings with this period (must be less than pongWait).
	pingPeriod = (pongWait * 9) / 10

	// Time allowed to write a control message.
	writeWait = 10 * time.Second

	maxMessageSize = 4096
)

// Event is one pushed status message.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// StatusURL derives the order-status stream URL for a table from the HTTP
// base URL.
func StatusURL(apiBaseURL, tableID string) string {
	u := strings.TrimRight(apiBaseURL, "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/ws/customer/order/status/" + url.PathEscape(tableID)
}

// Subscriber reads Events from a stream URL.
type Subscriber struct {
	url    string
	dialer *websocket.Dialer
}

func NewSubscriber(streamURL string) *Subscriber {
	return &Subscriber{url: streamURL, dialer: websocket.DefaultDialer}
}

// Listen dials the stream and hands every event to onEvent until ctx is
// done or the connection drops. A failed dial is returned immediately so
// the caller can fall back to polling.
func (s *Subscriber) Listen(ctx context.Context, onEvent func(Event)) error {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Drop the connection when the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			conn.Close()
		case <-done:
		}
	}()

	// Keep the connection alive from our side.
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			case <-done:
				return
			}
		}
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("ERROR: status stream: %v", err)
			}
			return err
		}
		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			log.Printf("ERROR: decode status event: %v", err)
			continue
		}
		onEvent(ev)
	}
}

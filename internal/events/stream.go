package events

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const writeWait = 10 * time.Second

// StreamMessage is what a websocket client receives: the triggering event
// (absent on the first frame) and a fresh snapshot.
type StreamMessage struct {
	Event    *Event `json:"event,omitempty"`
	Snapshot any    `json:"snapshot"`
}

// Stream upgrades the request and pushes a snapshot of the order every time
// one of its events is published, until the client goes away.
func Stream(c *gin.Context, broker *Broker, orderID int, snapshot func() (any, error)) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed for order %d: %v", orderID, err)
		return
	}
	defer conn.Close()

	updates, cancel := broker.Subscribe(orderID)
	defer cancel()

	send := func(e *Event) bool {
		snap, err := snapshot()
		if err != nil {
			log.Printf("[WS] snapshot for order %d failed: %v", orderID, err)
			return false
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(StreamMessage{Event: e, Snapshot: snap}) == nil
	}

	if !send(nil) {
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case e, ok := <-updates:
			if !ok || !send(&e) {
				return
			}
		}
	}
}

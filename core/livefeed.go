package core

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/segmentio/encoding/json"
)

type LiveFeedInterface interface {
	BroadcastSubmission(kind, ref string)
	BroadcastReload()
	Handler(http.ResponseWriter, *http.Request)
}

// LiveFeed pushes submission events (and, in dev mode, reload signals) to
// websocket clients watching the stats page.
type LiveFeed struct {
	clients  map[*websocket.Conn]bool
	lock     sync.Mutex
	upgrader websocket.Upgrader
}

type feedEvent struct {
	Event string `json:"event"`
	Kind  string `json:"kind,omitempty"`
	Ref   string `json:"ref,omitempty"`
}

var NewLiveFeed = func() LiveFeedInterface {
	return &LiveFeed{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (lf *LiveFeed) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := lf.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	lf.lock.Lock()
	lf.clients[conn] = true
	lf.lock.Unlock()

	go func() {
		defer func() {
			lf.lock.Lock()
			delete(lf.clients, conn)
			lf.lock.Unlock()
			conn.Close()
		}()

		for {
			if _, _, err := conn.NextReader(); err != nil {
				break
			}
		}
	}()
}

func (lf *LiveFeed) BroadcastSubmission(kind, ref string) {
	msg, err := json.Marshal(feedEvent{Event: "submission", Kind: kind, Ref: ref})
	if err != nil {
		return
	}
	lf.broadcast(msg)
}

func (lf *LiveFeed) BroadcastReload() {
	msg, _ := json.Marshal(feedEvent{Event: "reload"})
	lf.broadcast(msg)
}

func (lf *LiveFeed) broadcast(msg []byte) {
	lf.lock.Lock()
	defer lf.lock.Unlock()

	for conn := range lf.clients {
		err := conn.WriteMessage(websocket.TextMessage, msg)
		if err != nil {
			conn.Close()
			delete(lf.clients, conn)
		}
	}
}

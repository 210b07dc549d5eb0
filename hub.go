package main

import (
	"net/http"
	"sync"

	"github.com/Seednode/triviabox/games/trivia"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// Messages coming from clients
type ClientMessage struct {
	Type     string `json:"type"`               // "join", "start", "answer", "advance", "sync"
	Name     string `json:"name,omitempty"`     // join
	Option   *int   `json:"option,omitempty"`   // answer
	Question *int   `json:"question,omitempty"` // answer, optional guard against stale answers
}

// RoomSnapshotMessage is sent on connect and in reply to "join" and "sync".
type RoomSnapshotMessage struct {
	Type     string              `json:"type"` // "room_snapshot"
	PlayerID string              `json:"player_id"`
	Room     trivia.RoomSnapshot `json:"room"`
}

// AnswerResultMessage goes only to the player who answered, since it
// reveals the correct option.
type AnswerResultMessage struct {
	Type string `json:"type"` // "answer_result"
	trivia.AnswerResult
}

// SimpleMessage is for notifications to a single client ("error",
// "room_closed").
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
	room     string
	limiter  *rate.Limiter
}

// Hub fans engine events out to every socket subscribed to the event's
// room. Slow clients are dropped rather than waited on.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Client]bool
}

func newHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]bool),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[c.room]
	if !ok {
		clients = make(map[*Client]bool)
		h.rooms[c.room] = clients
	}
	clients[c] = true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropLocked(c)
}

// dropLocked assumes h.mu is already held.
func (h *Hub) dropLocked(c *Client) {
	clients, ok := h.rooms[c.room]
	if !ok {
		return
	}

	if _, ok := clients[c]; ok {
		delete(clients, c)
		close(c.send)
	}

	if len(clients) == 0 {
		delete(h.rooms, c.room)
	}
}

// sendTo delivers msg to a single client, reporting whether it was queued.
func (h *Hub) sendTo(c *Client, msg any) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.rooms[c.room][c] {
		return false
	}

	select {
	case c.send <- msg:
		return true
	default:
		h.dropLocked(c)
		return false
	}
}

func (h *Hub) Notify(e trivia.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.rooms[e.Room()] {
		select {
		case client.send <- e:
		default:
			h.dropLocked(client)
		}
	}
}

// closeRoom tells every client of a discarded room and disconnects them.
func (h *Hub) closeRoom(code, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.rooms[code] {
		select {
		case client.send <- SimpleMessage{
			Type:    "room_closed",
			Message: reason,
		}:
		default:
		}
		h.dropLocked(client)
	}
}

func (h *Hub) clients(code string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.rooms[code])
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (c *Client) readPump(g *Gateway) {
	defer func() {
		g.hub.unregister(c)
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		if !c.limiter.Allow() {
			g.hub.sendTo(c, SimpleMessage{
				Type:    "error",
				Message: "Too many requests; slow down.",
			})

			continue
		}

		g.handleClientMessage(c, msg)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}

	// send was closed by the hub
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

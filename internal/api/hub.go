// internal/api/hub.go
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"go-lane-war/internal/app"
	"go-lane-war/internal/event"
)

// Message is the JSON envelope for all real-time traffic: snapshots and
// game-over notices outbound, player commands inbound.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client is one connected observer with a buffered outbound queue, so one
// slow socket never stalls the broadcast loop.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans simulation snapshots out to every connected client and routes
// inbound commands into the game's player-side command API.
type Hub struct {
	game   *app.Game
	logger *slog.Logger

	clients    map[*Client]bool
	Broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

// NewHub builds the hub and subscribes it to the simulation events observers
// care about.
func NewHub(game *app.Game, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Hub{
		game:       game,
		logger:     logger,
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 8),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
	for _, t := range []event.EventType{event.UnitKilled, event.AgeUpgraded, event.GameOver} {
		game.Dispatcher().Subscribe(t, h)
	}
	return h
}

// OnEvent implements event.Listener: simulation events go out to every
// client as their own envelope, alongside the snapshot stream.
func (h *Hub) OnEvent(e event.Event) {
	payload, err := json.Marshal(map[string]any{
		"event": string(e.Type),
		"data":  e.Data,
	})
	if err != nil {
		h.logger.Error("encode event", "type", e.Type, "error", err)
		return
	}
	data, _ := json.Marshal(Message{Type: "event", Payload: payload})
	select {
	case h.Broadcast <- data:
	default:
		// Broadcast queue full: drop the notice, snapshots carry the state.
	}
}

var _ event.Listener = (*Hub)(nil)

// Run is the hub's event loop; it blocks and is meant for a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Info("observer connected", "clients", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Full buffer means the client hung; drop it.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// BroadcastSnapshot encodes a snapshot into the envelope and queues it for
// every client. Called from the simulation's snapshot callback.
func (h *Hub) BroadcastSnapshot(snap app.Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		h.logger.Error("encode snapshot", "error", err)
		return
	}
	data, _ := json.Marshal(Message{Type: "snapshot", Payload: payload})
	select {
	case h.Broadcast <- data:
	default:
		// Broadcast queue full: skip this frame, the next tick replaces it.
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades an HTTP request to a WebSocket observer connection.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	client := &Client{hub: h, conn: conn, send: make(chan []byte, 64)}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump parses inbound envelopes and executes player commands.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read error", "error", err)
			}
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type != "command" {
			continue
		}
		var cmd Command
		if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
			continue
		}
		accepted := applyCommand(c.hub.game, cmd)
		c.reply(cmd, accepted)
	}
}

func (c *Client) reply(cmd Command, accepted bool) {
	payload, _ := json.Marshal(map[string]any{
		"action":   cmd.Action,
		"accepted": accepted,
	})
	data, _ := json.Marshal(Message{Type: "command_result", Payload: payload})
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

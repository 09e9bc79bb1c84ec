package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan any
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// wsHub tracks connections by id and groups them into game rooms. Delivery
// goes through each client's buffered send channel; a client that cannot
// keep up has messages dropped rather than blocking the room.
type wsHub struct {
	mu      sync.Mutex
	clients map[string]*client
	rooms   map[string]map[string]*client
}

func newWSHub() *wsHub {
	return &wsHub{
		clients: make(map[string]*client),
		rooms:   make(map[string]map[string]*client),
	}
}

func (h *wsHub) Add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

// Remove drops the connection from the hub and every room, and closes its
// send channel so the write pump exits.
func (h *wsHub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[id]
	if !ok {
		return
	}
	delete(h.clients, id)
	for code, room := range h.rooms {
		delete(room, id)
		if len(room) == 0 {
			delete(h.rooms, code)
		}
	}
	close(c.send)
}

func (h *wsHub) JoinRoom(code, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[id]
	if !ok {
		return
	}
	room := h.rooms[code]
	if room == nil {
		room = make(map[string]*client)
		h.rooms[code] = room
	}
	room[id] = c
}

func (h *wsHub) LeaveRoom(code, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[code]
	if room == nil {
		return
	}
	delete(room, id)
	if len(room) == 0 {
		delete(h.rooms, code)
	}
}

// DropRoom forgets the room grouping without closing the connections.
func (h *wsHub) DropRoom(code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, code)
}

func (h *wsHub) SendTo(id string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[id]
	if !ok {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func (h *wsHub) Broadcast(code string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.rooms[code] {
		select {
		case c.send <- payload:
		default:
		}
	}
}

func (s *Server) handleWebsocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade failed remote=%s error=%v", c.Request.RemoteAddr, err)
		return
	}

	cl := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan any, 8),
	}
	s.hub.Add(cl)
	log.Printf("ws connected conn_id=%s remote=%s", cl.id, c.Request.RemoteAddr)

	go cl.writePump()
	s.readLoop(cl)
}

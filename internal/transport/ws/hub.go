package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Client message types
const (
	MsgChat MessageType = "chat"
	MsgPing MessageType = "ping"
)

// Server message types
const (
	MsgConnected   MessageType = "connected"
	MsgChatReply   MessageType = "chat_reply"
	MsgPong        MessageType = "pong"
	MsgRecordSaved MessageType = "record_saved"
	MsgError       MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Hub tracks the open dialogue sessions of every user
type Hub struct {
	conns map[string]map[*Connection]struct{} // userID -> sessions

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one WebSocket chat session
type Connection struct {
	UserID    string
	SessionID string
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message for every session of one user
type BroadcastMessage struct {
	UserID  string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.UserID] == nil {
				h.conns[conn.UserID] = make(map[*Connection]struct{})
			}
			h.conns[conn.UserID][conn] = struct{}{}
			h.mu.Unlock()
			log.Printf("Session %s of user %s connected", conn.SessionID, conn.UserID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if sessions, ok := h.conns[conn.UserID]; ok {
				if _, ok := sessions[conn]; ok {
					delete(sessions, conn)
					close(conn.Send)
					if len(sessions) == 0 {
						delete(h.conns, conn.UserID)
					}
					log.Printf("Session %s of user %s disconnected", conn.SessionID, conn.UserID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				log.Printf("failed to encode %s message: %v", msg.Message.Type, err)
				continue
			}
			h.mu.RLock()
			for conn := range h.conns[msg.UserID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Sessions returns how many sessions a user has open
func (h *Hub) Sessions(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

// BroadcastToUser sends a message to every session of a user (implements service.Broadcaster)
func (h *Hub) BroadcastToUser(userID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to encode %s payload: %v", msgType, err)
		return
	}
	h.broadcast <- &BroadcastMessage{
		UserID: userID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

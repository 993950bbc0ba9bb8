package ws

import (
	"bemanai/internal/cache"
	"bemanai/internal/service"
	"bemanai/internal/transport/rest/middleware"
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// Handler handles WebSocket connections
type Handler struct {
	hub         *Hub
	dialogueSvc *service.DialogueService
	history     cache.ChatCache
}

// NewHandler creates a new WebSocket handler. history may be nil.
func NewHandler(hub *Hub, dialogueSvc *service.DialogueService, history cache.ChatCache) *Handler {
	return &Handler{
		hub:         hub,
		dialogueSvc: dialogueSvc,
		history:     history,
	}
}

// DialogueWS handles GET /v1/ws/dialogue
func (h *Handler) DialogueWS(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.NewString()
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		userID = "anonymous:" + sessionID
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	conn := &Connection{
		UserID:    userID,
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
		Hub:       h.hub,
	}
	h.hub.Register(conn)
	conn.Send <- frame(MsgConnected, map[string]string{"session_id": sessionID, "user_id": userID})

	session := NewSession(sessionID, userID, h.dialogueSvc, h.history)
	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn, session)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection, session *Session) {
	defer func() {
		session.Close(context.Background())
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		reply := session.Handle(context.Background(), raw)
		if reply == nil {
			continue
		}
		select {
		case conn.Send <- reply:
		default:
			log.Printf("Session %s send buffer full, dropping reply", conn.SessionID)
		}
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

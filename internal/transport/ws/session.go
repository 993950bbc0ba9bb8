package ws

import (
	"bemanai/internal/cache"
	"bemanai/internal/model"
	"bemanai/internal/service"
	"context"
	"encoding/json"
	"log"
	"time"
)

// ChatPayload is the payload of a client chat message
type ChatPayload struct {
	Message      string `json:"message"`
	DialogueType string `json:"dialogue_type,omitempty"`
}

type errorPayload struct {
	Error     string `json:"error"`
	ErrorType string `json:"error_type"`
}

// Session answers the chat messages of one connection. History is kept in
// the chat cache when there is one, else in memory.
type Session struct {
	id          string
	userID      string
	dialogueSvc *service.DialogueService
	history     cache.ChatCache
	local       []model.ChatTurn
	now         func() time.Time
}

// NewSession creates a chat session. history may be nil.
func NewSession(id, userID string, dialogueSvc *service.DialogueService, history cache.ChatCache) *Session {
	return &Session{
		id:          id,
		userID:      userID,
		dialogueSvc: dialogueSvc,
		history:     history,
		now:         time.Now,
	}
}

// Handle processes one client frame and returns the reply frame
func (s *Session) Handle(ctx context.Context, raw []byte) []byte {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return s.errorFrame("invalid message", "invalid_request")
	}

	switch msg.Type {
	case MsgPing:
		return frame(MsgPong, nil)
	case MsgChat:
		var p ChatPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return s.errorFrame("invalid chat payload", "invalid_request")
		}
		return s.chat(ctx, p)
	default:
		return s.errorFrame("unknown message type: "+string(msg.Type), "invalid_request")
	}
}

func (s *Session) chat(ctx context.Context, p ChatPayload) []byte {
	turns := s.turns(ctx)
	res, err := s.dialogueSvc.Chat(ctx, model.ChatRequest{
		Message:      p.Message,
		Context:      turns,
		UserID:       s.userID,
		DialogueType: p.DialogueType,
	})
	if err != nil {
		return s.errorFrame(service.MessageOf(err), string(service.KindOf(err)))
	}

	stamp := s.now().UTC().Format(time.RFC3339)
	s.remember(ctx,
		model.ChatTurn{Role: "user", Content: p.Message, Timestamp: stamp},
		model.ChatTurn{Role: "assistant", Content: res.Response, Timestamp: stamp},
	)
	return frame(MsgChatReply, res)
}

func (s *Session) turns(ctx context.Context) []model.ChatTurn {
	if s.history == nil {
		return s.local
	}
	turns, err := s.history.History(ctx, s.id)
	if err != nil {
		log.Printf("chat history read failed: %v", err)
		return nil
	}
	return turns
}

func (s *Session) remember(ctx context.Context, turns ...model.ChatTurn) {
	if s.history == nil {
		s.local = append(s.local, turns...)
		if over := len(s.local) - cache.MaxChatTurns; over > 0 {
			s.local = s.local[over:]
		}
		return
	}
	if err := s.history.Append(ctx, s.id, turns...); err != nil {
		log.Printf("chat history write failed: %v", err)
	}
}

// Close drops the session history
func (s *Session) Close(ctx context.Context) {
	if s.history == nil {
		return
	}
	if err := s.history.Delete(ctx, s.id); err != nil {
		log.Printf("chat history delete failed: %v", err)
	}
}

func (s *Session) errorFrame(message, errorType string) []byte {
	return frame(MsgError, errorPayload{Error: message, ErrorType: errorType})
}

func frame(t MessageType, payload interface{}) []byte {
	msg := Message{Type: t}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Printf("failed to encode %s payload: %v", t, err)
			return nil
		}
		msg.Payload = data
	}
	data, _ := json.Marshal(msg)
	return data
}

package ws

import (
	"bemanai/internal/catalog"
	"bemanai/internal/model"
	"bemanai/internal/service"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newDialogue(t *testing.T) *service.DialogueService {
	t.Helper()
	svc, err := service.NewDialogueService(catalog.MustDefault(), service.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func decodeFrame(t *testing.T, raw []byte) (MessageType, map[string]interface{}) {
	t.Helper()
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("bad frame %s: %v", raw, err)
	}
	payload := map[string]interface{}{}
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			t.Fatalf("bad payload %s: %v", msg.Payload, err)
		}
	}
	return msg.Type, payload
}

type memoryChatCache struct {
	mu    sync.Mutex
	turns map[string][]model.ChatTurn
}

func (c *memoryChatCache) Append(_ context.Context, id string, turns ...model.ChatTurn) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.turns == nil {
		c.turns = map[string][]model.ChatTurn{}
	}
	c.turns[id] = append(c.turns[id], turns...)
	return nil
}

func (c *memoryChatCache) History(_ context.Context, id string) ([]model.ChatTurn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.ChatTurn(nil), c.turns[id]...), nil
}

func (c *memoryChatCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.turns, id)
	return nil
}

func TestSessionHandle(t *testing.T) {
	s := NewSession("s1", "u1", newDialogue(t), nil)
	tests := []struct {
		name     string
		raw      string
		wantType MessageType
		check    func(t *testing.T, p map[string]interface{})
	}{
		{"ping", `{"type":"ping"}`, MsgPong, nil},
		{"bad json", `{`, MsgError, func(t *testing.T, p map[string]interface{}) {
			if p["error_type"] != "invalid_request" {
				t.Errorf("payload = %v", p)
			}
		}},
		{"unknown type", `{"type":"dance"}`, MsgError, nil},
		{"empty message", `{"type":"chat","payload":{"message":" "}}`, MsgError, func(t *testing.T, p map[string]interface{}) {
			if p["error_type"] != "validation_error" || p["error"] != "消息内容不能为空" {
				t.Errorf("payload = %v", p)
			}
		}},
		{"chat", `{"type":"chat","payload":{"message":"你好"}}`, MsgChatReply, func(t *testing.T, p map[string]interface{}) {
			if p["response_type"] != "answer" || p["emotional_tone"] != "friendly" {
				t.Errorf("payload = %v", p)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, payload := decodeFrame(t, s.Handle(context.Background(), []byte(tt.raw)))
			if gotType != tt.wantType {
				t.Fatalf("type = %s, want %s", gotType, tt.wantType)
			}
			if tt.check != nil {
				tt.check(t, payload)
			}
		})
	}
}

func TestSessionHistory(t *testing.T) {
	history := &memoryChatCache{}
	s := NewSession("s1", "u1", newDialogue(t), history)

	first := s.Handle(context.Background(), []byte(`{"type":"chat","payload":{"message":"随便聊聊"}}`))
	_, p := decodeFrame(t, first)
	if p["confidence"] != 0.6 {
		t.Errorf("first confidence = %v", p["confidence"])
	}

	// The second message has history, which raises confidence.
	second := s.Handle(context.Background(), []byte(`{"type":"chat","payload":{"message":"随便聊聊"}}`))
	_, p = decodeFrame(t, second)
	if p["confidence"] != 0.7 {
		t.Errorf("second confidence = %v", p["confidence"])
	}
	if n := len(history.turns["s1"]); n != 4 {
		t.Errorf("stored turns = %d", n)
	}

	s.Close(context.Background())
	if _, ok := history.turns["s1"]; ok {
		t.Error("history kept after close")
	}
}

func TestSessionLocalHistoryCapped(t *testing.T) {
	s := NewSession("s1", "u1", newDialogue(t), nil)
	for i := 0; i < 15; i++ {
		s.Handle(context.Background(), []byte(`{"type":"chat","payload":{"message":"你好"}}`))
	}
	if len(s.local) != 20 {
		t.Errorf("local turns = %d", len(s.local))
	}
}

func TestHubBroadcastToUser(t *testing.T) {
	hub := NewHub()
	a := &Connection{UserID: "u1", SessionID: "a", Send: make(chan []byte, 4), Hub: hub}
	b := &Connection{UserID: "u2", SessionID: "b", Send: make(chan []byte, 4), Hub: hub}
	hub.Register(a)
	hub.Register(b)

	hub.BroadcastToUser("u1", string(MsgRecordSaved), map[string]string{"id": "r1"})
	select {
	case raw := <-a.Send:
		typ, p := decodeFrame(t, raw)
		if typ != MsgRecordSaved || p["id"] != "r1" {
			t.Errorf("frame = %s", raw)
		}
	case <-time.After(time.Second):
		t.Fatal("broadcast not delivered")
	}
	select {
	case raw := <-b.Send:
		t.Errorf("other user received %s", raw)
	case <-time.After(50 * time.Millisecond):
	}

	hub.Unregister(a)
	if _, ok := <-a.Send; ok {
		t.Error("send channel open after unregister")
	}
	if hub.Sessions("u1") != 0 || hub.Sessions("u2") != 1 {
		t.Errorf("sessions = %d/%d", hub.Sessions("u1"), hub.Sessions("u2"))
	}
}

func TestDialogueWS(t *testing.T) {
	h := NewHandler(NewHub(), newDialogue(t), nil)
	server := httptest.NewServer(http.HandlerFunc(h.DialogueWS))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	typ, p := decodeFrame(t, raw)
	if typ != MsgConnected || !strings.HasPrefix(p["user_id"].(string), "anonymous:") {
		t.Errorf("hello frame = %s", raw)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"chat","payload":{"message":"谢谢","dialogue_type":"general"}}`)); err != nil {
		t.Fatal(err)
	}
	_, raw, err = conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	typ, p = decodeFrame(t, raw)
	if typ != MsgChatReply || !strings.HasPrefix(p["response"].(string), "不客气") {
		t.Errorf("reply frame = %s", raw)
	}
}

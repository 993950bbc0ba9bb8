package rest

import (
	"bemanai/internal/cache"
	"bemanai/internal/catalog"
	"bemanai/internal/service"
	"bemanai/internal/transport/ws"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type testServer struct {
	handler http.Handler
	auth    *service.AuthService
}

func newTestServer(t *testing.T, mutate func(c *Container)) *testServer {
	t.Helper()
	cat := catalog.MustDefault()
	opts := service.DefaultOptions()

	emotion, err := service.NewEmotionService(cat, opts)
	if err != nil {
		t.Fatal(err)
	}
	decoder, err := service.NewDecoderService(cat, opts)
	if err != nil {
		t.Fatal(err)
	}
	sandbox, err := service.NewSandboxService(cat, opts)
	if err != nil {
		t.Fatal(err)
	}
	dialogue, err := service.NewDialogueService(cat, opts)
	if err != nil {
		t.Fatal(err)
	}
	moderation, err := service.NewModerationService(cat, opts)
	if err != nil {
		t.Fatal(err)
	}

	c := &Container{
		EmotionService:    emotion,
		DecoderService:    decoder,
		SandboxService:    sandbox,
		DialogueService:   dialogue,
		ModerationService: moderation,
		AuthService:       service.NewAuthService("", "", "", time.Hour),
		ArchiveService:    service.NewArchiveService(nil, emotion, decoder, moderation),
		WSHub:             ws.NewHub(),
		Version:           cat.Version,
	}
	if mutate != nil {
		mutate(c)
	}
	return &testServer{handler: NewRouter(c), auth: c.AuthService}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	out := map[string]interface{}{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: bad json %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, out
}

func TestRoutesOpen(t *testing.T) {
	s := newTestServer(t, nil)
	tests := []struct {
		name      string
		method    string
		path      string
		body      string
		status    int
		errorType string
		check     func(t *testing.T, body map[string]interface{})
	}{
		{"health", "GET", "/health", "", 200, "", func(t *testing.T, b map[string]interface{}) {
			if b["status"] != "ok" {
				t.Errorf("body = %v", b)
			}
		}},
		{"analyze", "POST", "/v1/emotion/analyze", `{"text":"我今天很开心，工作也很顺利"}`, 200, "", func(t *testing.T, b map[string]interface{}) {
			if b["emotion_category"] != "positive" || b["success"] != true {
				t.Errorf("body = %v", b)
			}
		}},
		{"analyze empty", "POST", "/v1/emotion/analyze", `{"text":"  "}`, 400, "validation_error", func(t *testing.T, b map[string]interface{}) {
			if b["error"] != "文本内容不能为空" {
				t.Errorf("body = %v", b)
			}
		}},
		{"bad body", "POST", "/v1/emotion/analyze", `{"text":`, 400, "invalid_request", nil},
		{"batch", "POST", "/v1/emotion/batch-analyze", `{"texts":["很开心",""]}`, 200, "", func(t *testing.T, b map[string]interface{}) {
			if b["total_count"] != 2.0 || b["failed_count"] != 1.0 {
				t.Errorf("body = %v", b)
			}
		}},
		{"batch empty", "POST", "/v1/emotion/batch-analyze", `{"texts":[]}`, 400, "validation_error", nil},
		{"trends without redis", "GET", "/v1/emotion/trends", "", 200, "", func(t *testing.T, b map[string]interface{}) {
			if kw, ok := b["keywords"].([]interface{}); !ok || len(kw) != 0 {
				t.Errorf("body = %v", b)
			}
		}},
		{"trends bad limit", "GET", "/v1/emotion/trends?limit=x", "", 400, "invalid_request", nil},
		{"emotion info", "GET", "/v1/emotion/info", "", 200, "", nil},
		{"decode", "POST", "/v1/decoder/decode", `{"text":"我们主动沟通","analysis_type":"relationship_only"}`, 200, "", func(t *testing.T, b map[string]interface{}) {
			if _, ok := b["emotion_state"]; ok {
				t.Errorf("emotion_state present: %v", b)
			}
			if _, ok := b["relationship_health"]; !ok {
				t.Errorf("relationship_health missing: %v", b)
			}
		}},
		{"decode bad type", "POST", "/v1/decoder/decode", `{"text":"x","analysis_type":"all"}`, 400, "validation_error", nil},
		{"scenarios", "GET", "/v1/sandbox/scenarios?difficulty=easy", "", 200, "", func(t *testing.T, b map[string]interface{}) {
			if sc, _ := b["scenarios"].([]interface{}); len(sc) != 2 {
				t.Errorf("body = %v", b)
			}
		}},
		{"scenarios unknown category", "GET", "/v1/sandbox/scenarios?category=nope", "", 404, "unknown_key", nil},
		{"practice unknown", "POST", "/v1/sandbox/practice-skill", `{"skill_type":"telepathy"}`, 404, "unknown_key", nil},
		{"practice batch", "POST", "/v1/sandbox/practice-skills", `{"skill_types":["active_listening","telepathy"]}`, 200, "", func(t *testing.T, b map[string]interface{}) {
			if b["success_count"] != 1.0 || b["failed_count"] != 1.0 {
				t.Errorf("body = %v", b)
			}
		}},
		{"suggestions", "POST", "/v1/sandbox/dialogue-suggestions", `{"scenario_id":"rc_001","user_input":"你总是不理解"}`, 200, "", nil},
		{"conflict guide", "POST", "/v1/sandbox/conflict-guide", `{"conflict_type":"escalation"}`, 200, "", nil},
		{"template", "POST", "/v1/sandbox/dialogue-template", `{"situation":"分歧","emotion":"需要支持"}`, 200, "", nil},
		{"chat", "POST", "/v1/dialogue/chat", `{"message":"你好"}`, 200, "", func(t *testing.T, b map[string]interface{}) {
			if b["response_type"] != "answer" {
				t.Errorf("body = %v", b)
			}
		}},
		{"chat bad type", "POST", "/v1/dialogue/chat", `{"message":"你好","dialogue_type":"x"}`, 400, "validation_error", nil},
		{"moderate", "POST", "/v1/moderation/moderate", `{"text":"暴力仇恨歧视"}`, 200, "", func(t *testing.T, b map[string]interface{}) {
			if b["risk_level"] != "high" || b["is_appropriate"] != false {
				t.Errorf("body = %v", b)
			}
		}},
		{"records need a user", "GET", "/v1/records", "", 401, "authentication_error", nil},
		{"token disabled", "POST", "/v1/auth/token", `{"username":"a","password":"b"}`, 503, "service_unavailable", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := s.do(t, tt.method, tt.path, tt.body, nil)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if tt.errorType != "" && body["error_type"] != tt.errorType {
				t.Errorf("error_type = %v, want %s", body["error_type"], tt.errorType)
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Error("missing request id")
			}
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}

func TestSwaggerDoc(t *testing.T) {
	s := newTestServer(t, nil)
	rec, body := s.do(t, "GET", "/swagger/doc.json", "", nil)
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	paths, _ := body["paths"].(map[string]interface{})
	if _, ok := paths["/v1/emotion/analyze"]; !ok {
		t.Errorf("paths = %v", paths)
	}
}

func TestPreflight(t *testing.T) {
	s := newTestServer(t, func(c *Container) {
		c.CORS = CORSConfig{Origins: []string{"https://app.example"}}
		c.APIKeys = []string{"k1"}
	})
	rec, _ := s.do(t, "OPTIONS", "/v1/emotion/analyze", "", nil)
	if rec.Code != 200 || rec.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Errorf("preflight = %d %v", rec.Code, rec.Header())
	}
}

func TestAPIKeyAuth(t *testing.T) {
	s := newTestServer(t, func(c *Container) {
		c.APIKeys = []string{"k1", "k2"}
	})
	body := `{"text":"很开心"}`

	rec, out := s.do(t, "POST", "/v1/emotion/analyze", body, nil)
	if rec.Code != 401 || out["error_type"] != "authentication_error" {
		t.Errorf("no key = %d %v", rec.Code, out)
	}
	rec, _ = s.do(t, "POST", "/v1/emotion/analyze", body, map[string]string{"X-API-Key": "nope"})
	if rec.Code != 401 {
		t.Errorf("bad key = %d", rec.Code)
	}
	rec, _ = s.do(t, "POST", "/v1/emotion/analyze", body, map[string]string{"X-API-Key": "k2"})
	if rec.Code != 200 {
		t.Errorf("good key = %d", rec.Code)
	}
	rec, _ = s.do(t, "GET", "/health", "", nil)
	if rec.Code != 200 {
		t.Errorf("health behind auth = %d", rec.Code)
	}
}

func TestTokenAuth(t *testing.T) {
	s := newTestServer(t, func(c *Container) {
		c.AuthService = service.NewAuthService("coach", "pw", "secret", time.Hour)
	})

	rec, out := s.do(t, "POST", "/v1/auth/token", `{"username":"coach","password":"bad"}`, nil)
	if rec.Code != 401 {
		t.Errorf("bad login = %d %v", rec.Code, out)
	}
	rec, out = s.do(t, "POST", "/v1/auth/token", `{"username":"coach","password":"pw"}`, nil)
	if rec.Code != 200 {
		t.Fatalf("login = %d %v", rec.Code, out)
	}
	bearer := map[string]string{"Authorization": "Bearer " + out["token"].(string)}

	rec, _ = s.do(t, "POST", "/v1/moderation/moderate", `{"text":"你好"}`, bearer)
	if rec.Code != 200 {
		t.Errorf("moderate with token = %d", rec.Code)
	}
	rec, _ = s.do(t, "POST", "/v1/moderation/moderate", `{"text":"你好"}`, map[string]string{"Authorization": "Bearer junk"})
	if rec.Code != 401 {
		t.Errorf("moderate with junk token = %d", rec.Code)
	}

	// The archive has no store in this server.
	rec, out = s.do(t, "GET", "/v1/records", "", bearer)
	if rec.Code != 503 || out["error_type"] != "service_unavailable" {
		t.Errorf("records = %d %v", rec.Code, out)
	}
}

type countingLimiter struct {
	mu    sync.Mutex
	limit int
	seen  map[string]int
}

func (l *countingLimiter) Allow(_ context.Context, subject string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seen == nil {
		l.seen = map[string]int{}
	}
	l.seen[subject]++
	if l.seen[subject] > l.limit {
		return 0, cache.ErrRateLimited
	}
	return l.limit - l.seen[subject], nil
}

func TestRateLimit(t *testing.T) {
	limiter := &countingLimiter{limit: 2}
	s := newTestServer(t, func(c *Container) {
		c.RateLimiter = limiter
		c.APIKeys = []string{"k1"}
	})
	key := map[string]string{"X-API-Key": "k1"}

	for i, want := range []int{200, 200, 429} {
		rec, out := s.do(t, "GET", "/v1/emotion/info", "", key)
		if rec.Code != want {
			t.Fatalf("request %d = %d %v", i, rec.Code, out)
		}
		if want == 429 && out["error_type"] != "rate_limited" {
			t.Errorf("body = %v", out)
		}
	}
	if len(limiter.seen) != 1 {
		t.Errorf("subjects = %v", limiter.seen)
	}
	for subject := range limiter.seen {
		if !strings.HasPrefix(subject, "key:") || strings.Contains(subject, "k1") {
			t.Errorf("subject = %q", subject)
		}
	}
}

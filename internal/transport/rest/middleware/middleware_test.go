package middleware

import (
	"bemanai/internal/service"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		query  string
		want   string
	}{
		{"bearer", "Bearer abc", "", "abc"},
		{"lowercase scheme", "bearer abc", "", "abc"},
		{"basic", "Basic abc", "", ""},
		{"query", "", "?token=xyz", "xyz"},
		{"header wins", "Bearer abc", "?token=xyz", "abc"},
		{"none", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/v1/ws/dialogue"+tt.query, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := extractToken(r); got != tt.want {
				t.Errorf("extractToken = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequireSetsUser(t *testing.T) {
	auth := service.NewAuthService("u", "p", "secret", time.Hour)
	tok, err := auth.IssueToken("u")
	if err != nil {
		t.Fatal(err)
	}
	m := NewAuthMiddleware(auth, "", nil)

	var gotUser, gotSubject string
	h := m.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = GetUserID(r.Context())
		gotSubject = GetSubject(r.Context())
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	if rec.Code != 200 || gotUser != tok.UserID || gotSubject != "user:"+tok.UserID {
		t.Errorf("code=%d user=%q subject=%q", rec.Code, gotUser, gotSubject)
	}
}

func TestRequireDisabled(t *testing.T) {
	m := NewAuthMiddleware(service.NewAuthService("", "", "", 0), "", []string{""})
	if m.Enabled() {
		t.Fatal("middleware enabled without credentials")
	}
	called := false
	h := m.Require(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if !called {
		t.Error("request blocked")
	}
}

func TestRequestIDKept(t *testing.T) {
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	if rec.Header().Get(RequestIDHeader) != "req-1" || rec.Code != http.StatusTeapot {
		t.Errorf("id=%q code=%d", rec.Header().Get(RequestIDHeader), rec.Code)
	}
}

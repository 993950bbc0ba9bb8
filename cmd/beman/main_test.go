package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the CLI with the lexical tokenizer and colors off.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("JWT_SECRET", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--tokenizer", "lexical", "--color", "off"}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeJSON(t *testing.T) {
	out, err := run(t, "", "--format", "json", "analyze", "今天很开心")
	if err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}
	var res struct {
		Category string `json:"emotion_category"`
		Success  bool   `json:"success"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if res.Category != "positive" || !res.Success {
		t.Errorf("result = %+v", res)
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantErr  string
		contains []string
	}{
		{
			name:     "analyze from stdin",
			stdin:    "我很难过\n",
			args:     []string{"analyze"},
			contains: []string{"category:  negative", "难过"},
		},
		{
			name:    "analyze empty",
			args:    []string{"analyze", "-"},
			wantErr: "validation_error",
		},
		{
			name:     "batch skips blank lines",
			stdin:    "今天很开心\n\n我很难过\n",
			args:     []string{"batch"},
			contains: []string{"positive", "negative", "total 2, 2 ok, 0 failed"},
		},
		{
			name:     "batch decode",
			stdin:    "主动沟通，倾听理解\n",
			args:     []string{"batch", "--decode"},
			contains: []string{"total 1, 1 ok, 0 failed"},
		},
		{
			name:     "decode",
			args:     []string{"decode", "主动沟通，倾听理解，表达清晰，相互信任"},
			contains: []string{"Relationship health", "communication:", "confidence:"},
		},
		{
			name:    "decode bad type",
			args:    []string{"decode", "--type", "bogus", "我很难过"},
			wantErr: "不支持的分析类型: bogus",
		},
		{
			name:     "scenarios by difficulty",
			args:     []string{"scenarios", "--difficulty", "easy"},
			contains: []string{"es_001", "ci_001"},
		},
		{
			name:    "scenarios unknown category",
			args:    []string{"scenarios", "--category", "nope"},
			wantErr: "unknown_key",
		},
		{
			name:     "skill list",
			args:     []string{"skill"},
			contains: []string{"active_listening", "emotional_expression"},
		},
		{
			name:     "one skill",
			args:     []string{"skill", "active_listening"},
			contains: []string{"保持眼神接触", "exercises"},
		},
		{
			name:     "several skills",
			args:     []string{"skill", "active_listening", "juggling"},
			contains: []string{"juggling:", "total 2, 1 ok, 1 failed"},
		},
		{
			name:     "conflict escalation",
			args:     []string{"conflict", "escalation"},
			contains: []string{"Warning signs", "指责性语言"},
		},
		{
			name:     "template",
			args:     []string{"template", "--situation", "家务分工", "--emotion", "失望"},
			contains: []string{"opening:", "Tips"},
		},
		{
			name:     "moderate",
			args:     []string{"moderate", "暴力和威胁"},
			contains: []string{"risk: medium (0.4)", "暴力, 威胁"},
		},
		{
			name:     "chat one shot",
			args:     []string{"chat", "你好"},
			contains: []string{"很高兴和你聊天"},
		},
		{
			name:     "chat session",
			stdin:    "你好\n谢谢\n",
			args:     []string{"chat"},
			contains: []string{"很高兴和你聊天", "不客气"},
		},
		{
			name:    "token without secret",
			args:    []string{"token", "alice"},
			wantErr: "failed to issue token",
		},
		{
			name:    "unknown format",
			args:    []string{"--format", "xml", "skill"},
			wantErr: "unknown format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.stdin, tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v\n%s", err, out)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q\n%s", want, out)
				}
			}
		})
	}
}

func TestTokenWithSecret(t *testing.T) {
	var out bytes.Buffer
	t.Setenv("JWT_SECRET", "cli-secret")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--color", "off", "--format", "json", "token", "alice"})
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("token: %v", err)
	}

	var tok struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(out.Bytes(), &tok); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if tok.Token == "" || tok.UserID == "" {
		t.Errorf("token = %+v", tok)
	}
}

func TestCatalogDumpRoundTrip(t *testing.T) {
	for _, format := range []string{"yaml", "toml", "json"} {
		t.Run(format, func(t *testing.T) {
			out, err := run(t, "", "catalog", "dump", "--as", format)
			if err != nil {
				t.Fatalf("dump: %v", err)
			}
			path := filepath.Join(t.TempDir(), "catalog."+format)
			if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
				t.Fatal(err)
			}

			out, err = run(t, "", "catalog", "validate", path)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if !strings.HasPrefix(out, "ok ") || !strings.Contains(out, "7 scenarios, 4 skills") {
				t.Errorf("validate output = %q", out)
			}
		})
	}
}

func TestCatalogDumpUnknownFormat(t *testing.T) {
	if _, err := run(t, "", "catalog", "dump", "--as", "ini"); err == nil {
		t.Fatal("expected error for unknown dump format")
	}
}

func TestReadLines(t *testing.T) {
	lines, err := readLines(strings.NewReader(" a \n\n\tb\r\n  \nc"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	if strings.Join(lines, ",") != strings.Join(want, ",") {
		t.Errorf("lines = %q, want %q", lines, want)
	}
}

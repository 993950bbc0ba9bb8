package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8001" || cfg.MaxTextLength != 1000 || cfg.MaxDialogueLength != 200 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.MaxBatchAnalyze != 100 || cfg.MaxBatchDecode != 50 || cfg.BatchWorkers != 8 {
		t.Errorf("batch limits = %+v", cfg)
	}
	if cfg.CacheTTL != time.Hour || cfg.JWTTTL != 24*time.Hour {
		t.Errorf("ttls = %v %v", cfg.CacheTTL, cfg.JWTTTL)
	}
	if cfg.APIKeyHeader != "X-API-Key" || len(cfg.APIKeys) != 0 || cfg.RateLimitPerMinute != 0 {
		t.Errorf("auth = %+v", cfg)
	}
	if cfg.Tokenizer != "lexical+gse" || cfg.IntensityScale != 2.0 || cfg.IntensityOffset != 0.3 {
		t.Errorf("scoring = %+v", cfg)
	}
	if cfg.RedisEnabled() || cfg.MongoEnabled() || cfg.Debug() {
		t.Error("optional backends enabled by default")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("API_KEYS", "alpha, beta,,")
	t.Setenv("CACHE_TTL", "60")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("MAX_TEXT_LENGTH", "500")
	t.Setenv("REDIS_URI", "redis://localhost:6379/0")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9000" || cfg.MaxTextLength != 500 || cfg.CacheTTL != time.Minute {
		t.Errorf("cfg = %+v", cfg)
	}
	if want := []string{"alpha", "beta"}; !reflect.DeepEqual(cfg.APIKeys, want) {
		t.Errorf("APIKeys = %v", cfg.APIKeys)
	}
	if !cfg.Debug() || !cfg.RedisEnabled() {
		t.Errorf("Debug/RedisEnabled = %v/%v", cfg.Debug(), cfg.RedisEnabled())
	}
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"config.yaml", "port: \"7000\"\nmax_batch_decode: 10\napi_keys: [\"k1\"]\n"},
		{"config.toml", "port = \"7000\"\nmax_batch_decode = 10\napi_keys = [\"k1\"]\n"},
		{"config.json", `{"port": "7000", "max_batch_decode": 10, "api_keys": ["k1"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.name)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Port != "7000" || cfg.MaxBatchDecode != 10 || !reflect.DeepEqual(cfg.APIKeys, []string{"k1"}) {
				t.Errorf("cfg = %+v", cfg)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing config file accepted")
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("MAX_BATCH_ANALYZE", "0")
	t.Setenv("BATCH_WORKERS", "-1")
	_, err := Load("")
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"max_batch_analyze", "batch_workers"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}

	t.Setenv("MAX_BATCH_ANALYZE", "1")
	t.Setenv("BATCH_WORKERS", "1")
	t.Setenv("JWT_TTL", "forever")
	if _, err := Load(""); err == nil {
		t.Error("bad jwt_ttl accepted")
	}
}

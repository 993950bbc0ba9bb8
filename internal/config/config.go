package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the process configuration. It is not modified after Load.
type Config struct {
	Port string

	MongoURI      string
	MongoDatabase string
	RedisURI      string
	CacheTTL      time.Duration

	APIKeyHeader       string
	APIKeys            []string
	JWTSecret          string
	JWTTTL             time.Duration
	AuthUsername       string
	AuthPassword       string
	RateLimitPerMinute int

	Tokenizer   string
	CatalogPath string
	LogLevel    string

	MaxTextLength     int
	MaxDialogueLength int
	MaxBatchAnalyze   int
	MaxBatchDecode    int
	MaxBatchSkills    int
	BatchWorkers      int
	IntensityScale    float64
	IntensityOffset   float64

	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
}

// envNames maps config keys to the environment variables that set them
var envNames = map[string]string{
	"port":                  "PORT",
	"mongo_uri":             "MONGO_URI",
	"mongo_database":        "MONGO_DATABASE",
	"redis_uri":             "REDIS_URI",
	"cache_ttl":             "CACHE_TTL",
	"api_key_header":        "API_KEY_HEADER",
	"api_keys":              "API_KEYS",
	"jwt_secret":            "JWT_SECRET",
	"jwt_ttl":               "JWT_TTL",
	"auth_username":         "AUTH_USERNAME",
	"auth_password":         "AUTH_PASSWORD",
	"rate_limit_per_minute": "RATE_LIMIT_PER_MINUTE",
	"tokenizer":             "TOKENIZER",
	"catalog_path":          "CATALOG_PATH",
	"log_level":             "LOG_LEVEL",
	"max_text_length":       "MAX_TEXT_LENGTH",
	"max_dialogue_length":   "MAX_DIALOGUE_LENGTH",
	"max_batch_analyze":     "MAX_BATCH_ANALYZE",
	"max_batch_decode":      "MAX_BATCH_DECODE",
	"max_batch_skills":      "MAX_BATCH_SKILLS",
	"batch_workers":         "BATCH_WORKERS",
	"intensity_scale":       "INTENSITY_SCALE",
	"intensity_offset":      "INTENSITY_OFFSET",
	"cors_allowed_origins":  "CORS_ALLOWED_ORIGINS",
	"cors_allowed_methods":  "CORS_ALLOWED_METHODS",
	"cors_allowed_headers":  "CORS_ALLOWED_HEADERS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8001")
	v.SetDefault("mongo_uri", "")
	v.SetDefault("mongo_database", "bemanai")
	v.SetDefault("redis_uri", "")
	v.SetDefault("cache_ttl", 3600)
	v.SetDefault("api_key_header", "X-API-Key")
	v.SetDefault("api_keys", []string{})
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_ttl", "24h")
	v.SetDefault("auth_username", "")
	v.SetDefault("auth_password", "")
	v.SetDefault("rate_limit_per_minute", 0)
	v.SetDefault("tokenizer", "lexical+gse")
	v.SetDefault("catalog_path", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("max_text_length", 1000)
	v.SetDefault("max_dialogue_length", 200)
	v.SetDefault("max_batch_analyze", 100)
	v.SetDefault("max_batch_decode", 50)
	v.SetDefault("max_batch_skills", 20)
	v.SetDefault("batch_workers", 8)
	v.SetDefault("intensity_scale", 2.0)
	v.SetDefault("intensity_offset", 0.3)
	v.SetDefault("cors_allowed_origins", []string{"*"})
	v.SetDefault("cors_allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors_allowed_headers", []string{"Content-Type", "Authorization", "X-API-Key"})
}

// Load reads defaults, then the optional config file at path, then the
// environment
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, env := range envNames {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	jwtTTL, err := time.ParseDuration(v.GetString("jwt_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid jwt_ttl: %w", err)
	}

	cfg := &Config{
		Port:               v.GetString("port"),
		MongoURI:           v.GetString("mongo_uri"),
		MongoDatabase:      v.GetString("mongo_database"),
		RedisURI:           v.GetString("redis_uri"),
		CacheTTL:           time.Duration(v.GetInt("cache_ttl")) * time.Second,
		APIKeyHeader:       v.GetString("api_key_header"),
		APIKeys:            list(v, "api_keys"),
		JWTSecret:          v.GetString("jwt_secret"),
		JWTTTL:             jwtTTL,
		AuthUsername:       v.GetString("auth_username"),
		AuthPassword:       v.GetString("auth_password"),
		RateLimitPerMinute: v.GetInt("rate_limit_per_minute"),
		Tokenizer:          v.GetString("tokenizer"),
		CatalogPath:        v.GetString("catalog_path"),
		LogLevel:           strings.ToLower(v.GetString("log_level")),
		MaxTextLength:      v.GetInt("max_text_length"),
		MaxDialogueLength:  v.GetInt("max_dialogue_length"),
		MaxBatchAnalyze:    v.GetInt("max_batch_analyze"),
		MaxBatchDecode:     v.GetInt("max_batch_decode"),
		MaxBatchSkills:     v.GetInt("max_batch_skills"),
		BatchWorkers:       v.GetInt("batch_workers"),
		IntensityScale:     v.GetFloat64("intensity_scale"),
		IntensityOffset:    v.GetFloat64("intensity_offset"),
		CORSAllowedOrigins: list(v, "cors_allowed_origins"),
		CORSAllowedMethods: list(v, "cors_allowed_methods"),
		CORSAllowedHeaders: list(v, "cors_allowed_headers"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// list reads a string list. Environment values are comma separated.
func list(v *viper.Viper, key string) []string {
	if s, ok := v.Get(key).(string); ok {
		out := []string{}
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return v.GetStringSlice(key)
}

// Validate rejects limits that would disable a surface
func (c *Config) Validate() error {
	var errs []error
	for name, n := range map[string]int{
		"max_text_length":     c.MaxTextLength,
		"max_dialogue_length": c.MaxDialogueLength,
		"max_batch_analyze":   c.MaxBatchAnalyze,
		"max_batch_decode":    c.MaxBatchDecode,
		"max_batch_skills":    c.MaxBatchSkills,
		"batch_workers":       c.BatchWorkers,
	} {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, n))
		}
	}
	if c.CacheTTL < 0 {
		errs = append(errs, errors.New("cache_ttl must not be negative"))
	}
	if c.RateLimitPerMinute < 0 {
		errs = append(errs, errors.New("rate_limit_per_minute must not be negative"))
	}
	if c.IntensityScale <= 0 {
		errs = append(errs, errors.New("intensity_scale must be positive"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	return errors.Join(errs...)
}

// Debug reports whether per-stage pipeline traces are logged
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// RedisEnabled returns true if a Redis URI is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURI != ""
}

// MongoEnabled returns true if the analysis archive is configured
func (c *Config) MongoEnabled() bool {
	return c.MongoURI != ""
}

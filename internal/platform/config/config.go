// Package config loads server configuration from an optional YAML file and
// environment variables. Environment values win over the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names the variable pointing at the YAML file.
const ConfigPathEnv = "DIRECTORY_CONFIG"

const devSigningKey = "dev-secret-key-change-in-production"

// Server captures process-level configuration.
type Server struct {
	Addr        string `yaml:"addr"`
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`

	// DatabaseURL selects Postgres stores; empty means seeded in-memory stores.
	DatabaseURL string `yaml:"database_url"`

	JWTSigningKey string        `yaml:"jwt_signing_key"`
	JWTIssuer     string        `yaml:"jwt_issuer"`
	TokenTTL      time.Duration `yaml:"token_ttl"`

	SpecializationCacheTTL time.Duration `yaml:"specialization_cache_ttl"`

	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RedisConfig holds connection settings; an empty URL disables Redis.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// KafkaConfig holds the audit sink settings; no brokers means in-memory audit.
type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	AuditTopic string   `yaml:"audit_topic"`
}

// RateLimitConfig bounds requests per client IP on public search. GlobalRPS
// and GlobalBurst cap the whole process regardless of caller.
type RateLimitConfig struct {
	Disabled    bool          `yaml:"disabled"`
	Requests    int           `yaml:"requests"`
	Window      time.Duration `yaml:"window"`
	GlobalRPS   float64       `yaml:"global_rps"`
	GlobalBurst int           `yaml:"global_burst"`
}

// Load reads the file named by DIRECTORY_CONFIG (if set), applies environment
// overrides and defaults, then validates.
func Load() (Server, error) {
	var cfg Server
	if path := os.Getenv(ConfigPathEnv); path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Server{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Server{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Server{}, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Server{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Server) applyEnv(getenv func(string) string) error {
	setString := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setDuration := func(dst *time.Duration, key string) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	setString(&c.Addr, "DIRECTORY_ADDR")
	setString(&c.Environment, "ENVIRONMENT")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.JWTSigningKey, "JWT_SIGNING_KEY")
	setString(&c.JWTIssuer, "JWT_ISSUER")
	setString(&c.Redis.URL, "REDIS_URL")
	setString(&c.Kafka.AuditTopic, "KAFKA_AUDIT_TOPIC")
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
	}
	if v := getenv("RATE_LIMIT_REQUESTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_REQUESTS: %w", err)
		}
		c.RateLimit.Requests = n
	}
	if v := getenv("RATE_LIMIT_DISABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_DISABLED: %w", err)
		}
		c.RateLimit.Disabled = b
	}
	if v := getenv("RATE_LIMIT_GLOBAL_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_GLOBAL_RPS: %w", err)
		}
		c.RateLimit.GlobalRPS = f
	}
	if v := getenv("RATE_LIMIT_GLOBAL_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_GLOBAL_BURST: %w", err)
		}
		c.RateLimit.GlobalBurst = n
	}

	for key, dst := range map[string]*time.Duration{
		"TOKEN_TTL":                &c.TokenTTL,
		"SPECIALIZATION_CACHE_TTL": &c.SpecializationCacheTTL,
		"RATE_LIMIT_WINDOW":        &c.RateLimit.Window,
	} {
		if err := setDuration(dst, key); err != nil {
			return err
		}
	}
	return nil
}

// ApplyDefaults fills empty fields.
func (c *Server) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.JWTSigningKey == "" && !c.IsProduction() {
		c.JWTSigningKey = devSigningKey
	}
	if c.JWTIssuer == "" {
		c.JWTIssuer = "minnetherapy"
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = 12 * time.Hour
	}
	if c.SpecializationCacheTTL <= 0 {
		c.SpecializationCacheTTL = 5 * time.Minute
	}
	if c.Redis.PoolSize <= 0 {
		c.Redis.PoolSize = 10
	}
	if c.Redis.DialTimeout <= 0 {
		c.Redis.DialTimeout = 5 * time.Second
	}
	if c.Redis.ReadTimeout <= 0 {
		c.Redis.ReadTimeout = 3 * time.Second
	}
	if c.Redis.WriteTimeout <= 0 {
		c.Redis.WriteTimeout = 3 * time.Second
	}
	if c.Kafka.AuditTopic == "" {
		c.Kafka.AuditTopic = "directory.audit"
	}
	if c.RateLimit.Requests <= 0 {
		c.RateLimit.Requests = 60
	}
	if c.RateLimit.Window <= 0 {
		c.RateLimit.Window = time.Minute
	}
	if c.RateLimit.GlobalRPS <= 0 {
		c.RateLimit.GlobalRPS = 200
	}
	if c.RateLimit.GlobalBurst <= 0 {
		c.RateLimit.GlobalBurst = 400
	}
}

// Validate checks the configuration for correctness.
func (c *Server) Validate() error {
	if c.JWTSigningKey == "" {
		return fmt.Errorf("jwt_signing_key is required in %s", c.Environment)
	}
	if c.IsProduction() && c.JWTSigningKey == devSigningKey {
		return fmt.Errorf("jwt_signing_key must be overridden in production")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

func (c *Server) IsProduction() bool {
	return c.Environment == "production"
}

func splitList(v string) []string {
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

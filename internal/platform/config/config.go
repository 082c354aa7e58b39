package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Logging selects the slog handler.
type Logging struct {
	Level  string
	Format string
}

// Database is optional; an empty URL selects the in-memory stores.
type Database struct {
	URL          string
	MaxOpenConns int
	ApplySchema  bool
}

// Upstream describes one remote API.
type Upstream struct {
	BaseURL string
	APIKey  string
}

// Audit tunes the asynchronous audit publisher and its optional Kafka sink.
type Audit struct {
	Workers      int
	BufferSize   int
	KafkaBrokers []string
	KafkaTopic   string
}

// Config is the full process configuration.
type Config struct {
	Server          Server
	Logging         Logging
	Database        Database
	Accounts        Upstream
	Clients         Upstream
	UpstreamTimeout time.Duration
	Audit           Audit
}

// Defaults applied when a variable is unset or unparsable.
const (
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 15 * time.Second
	DefaultUpstreamTimeout = 10 * time.Second
	DefaultMaxOpenConns    = 10
	DefaultAuditWorkers    = 4
	DefaultAuditBufferSize = 1024
	DefaultKafkaTopic      = "eligibility.audit-logs"
	DefaultAccountsBaseURL = "http://accounts.cluster.domain.cz"
	DefaultClientsBaseURL  = "http://clients.cluster.domain.cz"
)

// FromEnv builds a Config from environment variables so main stays lean.
// Invalid values fall back to their default and are reported as warnings for
// the caller to log.
func FromEnv() (Config, []string) {
	e := &env{lookup: os.Getenv}
	cfg := Config{
		Server: Server{
			Addr:            e.str("ELIGIBILITY_ADDR", DefaultAddr),
			ShutdownTimeout: e.duration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
		},
		Logging: Logging{
			Level:  e.str("LOG_LEVEL", "info"),
			Format: e.str("LOG_FORMAT", "json"),
		},
		Database: Database{
			URL:          e.str("DATABASE_URL", ""),
			MaxOpenConns: e.positiveInt("DATABASE_MAX_OPEN_CONNS", DefaultMaxOpenConns),
			ApplySchema:  e.bool("DATABASE_APPLY_SCHEMA", true),
		},
		Accounts: Upstream{
			BaseURL: e.str("ACCOUNTS_BASE_URL", DefaultAccountsBaseURL),
			APIKey:  e.str("ACCOUNTS_API_KEY", ""),
		},
		Clients: Upstream{
			BaseURL: e.str("CLIENTS_BASE_URL", DefaultClientsBaseURL),
			APIKey:  e.str("CLIENTS_API_KEY", ""),
		},
		UpstreamTimeout: e.duration("UPSTREAM_TIMEOUT", DefaultUpstreamTimeout),
		Audit: Audit{
			Workers:      e.positiveInt("AUDIT_WORKERS", DefaultAuditWorkers),
			BufferSize:   e.positiveInt("AUDIT_BUFFER_SIZE", DefaultAuditBufferSize),
			KafkaBrokers: e.list("KAFKA_BROKERS"),
			KafkaTopic:   e.str("AUDIT_KAFKA_TOPIC", DefaultKafkaTopic),
		},
	}
	return cfg, e.warnings
}

type env struct {
	lookup   func(string) string
	warnings []string
}

func (e *env) str(key, def string) string {
	if v := strings.TrimSpace(e.lookup(key)); v != "" {
		return v
	}
	return def
}

func (e *env) positiveInt(key string, def int) int {
	v := strings.TrimSpace(e.lookup(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		e.warn(key, v, def)
		return def
	}
	return n
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(e.lookup(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		e.warn(key, v, def)
		return def
	}
	return d
}

func (e *env) bool(key string, def bool) bool {
	v := strings.TrimSpace(e.lookup(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.warn(key, v, def)
		return def
	}
	return b
}

func (e *env) list(key string) []string {
	var out []string
	for _, s := range strings.Split(e.lookup(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (e *env) warn(key, value string, def any) {
	e.warnings = append(e.warnings, fmt.Sprintf("invalid %s=%q, using default %v", key, value, def))
}

// Package config provides environment-driven configuration for rdf2graph.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Store backends.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	StoreBackend      string
	DatabaseURL       Secret
	DBMaxConns        int
	Port              string
	ListenHost        string
	CORSOrigins       []string
	LogLevel          string
	LogFormat         string
	MaxTraversalDepth int
	TypePredicate     string
	NamespacesFile    string

	// Namespaces holds the bindings read from NamespacesFile, if any.
	Namespaces map[string]string
}

// Option overrides a loaded value before validation. The CLI uses options to
// apply its flags.
type Option func(*Config)

// WithStoreBackend overrides STORE_BACKEND when backend is non-empty.
func WithStoreBackend(backend string) Option {
	return func(c *Config) {
		if backend != "" {
			c.StoreBackend = backend
		}
	}
}

// WithDatabaseURL overrides DATABASE_URL when url is non-empty.
func WithDatabaseURL(url string) Option {
	return func(c *Config) {
		if url != "" {
			c.DatabaseURL = Secret(url)
		}
	}
}

// WithNamespacesFile overrides NAMESPACES_FILE when path is non-empty.
func WithNamespacesFile(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.NamespacesFile = path
		}
	}
}

// WithLogLevel overrides LOG_LEVEL when level is non-empty.
func WithLogLevel(level string) Option {
	return func(c *Config) {
		if level != "" {
			c.LogLevel = level
		}
	}
}

// Load reads configuration from environment variables with sensible defaults,
// applies opts, loads the namespace file and validates the result.
func Load(opts ...Option) (*Config, error) {
	cfg := &Config{
		StoreBackend:   strings.ToLower(envOrDefault("STORE_BACKEND", BackendPostgres)),
		DatabaseURL:    Secret(envOrDefault("DATABASE_URL", "")),
		Port:           envOrDefault("PORT", "3030"),
		ListenHost:     envOrDefault("LISTEN_HOST", "127.0.0.1"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "json"),
		TypePredicate:  envOrDefault("TYPE_PREDICATE", "rdf:type"),
		NamespacesFile: envOrDefault("NAMESPACES_FILE", ""),
	}

	maxConns, err := strconv.Atoi(envOrDefault("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("DB_MAX_CONNS must be an integer: %w", err)
	}

	cfg.DBMaxConns = maxConns

	depth, err := strconv.Atoi(envOrDefault("MAX_TRAVERSAL_DEPTH", "4"))
	if err != nil {
		return nil, fmt.Errorf("MAX_TRAVERSAL_DEPTH must be an integer: %w", err)
	}

	cfg.MaxTraversalDepth = depth

	if origins := envOrDefault("CORS_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	if cfg.NamespacesFile != "" {
		ns, err := LoadNamespaces(cfg.NamespacesFile)
		if err != nil {
			return nil, err
		}

		cfg.Namespaces = ns
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

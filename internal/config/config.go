package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrMissingJWTKey = errors.New("JWT_SECRET or JWT_PUBLIC_KEY must be set")

type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Platform  PlatformConfig
	Security  SecurityConfig
	Kafka     KafkaConfig
	Redis     RedisConfig
	Catalog   CatalogConfig
	Websocket WebsocketConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

// PlatformConfig points at the record platform REST API.
type PlatformConfig struct {
	BaseURL      string
	Timeout      time.Duration
	FieldInfoTTL time.Duration
}

type SecurityConfig struct {
	JWTSecret    string
	JWTPublicKey string
}

type KafkaConfig struct {
	Brokers           []string
	GroupID           string
	NotificationTopic string
}

// Enabled reports whether at least one broker is configured.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

type RedisConfig struct {
	URL        string
	VersionTTL time.Duration
}

func (r RedisConfig) Enabled() bool { return strings.TrimSpace(r.URL) != "" }

type CatalogConfig struct {
	Path string
}

type WebsocketConfig struct {
	SendBuffer      int
	CommandTimeout  time.Duration
	AlertAckTimeout time.Duration
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return LoadFromLookup(os.LookupEnv)
}

// LoadFromLookup reads the configuration through lookup, applying defaults for unset keys.
func LoadFromLookup(lookup func(string) (string, bool)) (*Config, error) {
	r := reader{lookup: lookup}
	cfg := &Config{
		Server: ServerConfig{
			Port:            r.str("PORT", "8080"),
			ShutdownTimeout: r.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Directory: r.str("LOG_DIRECTORY", "./logs"),
			Level:     r.str("LOG_LEVEL", "info"),
			Format:    r.str("LOG_FORMAT", "text"),
		},
		Platform: PlatformConfig{
			BaseURL:      r.str("PLATFORM_BASE_URL", "http://localhost:8081"),
			Timeout:      r.duration("PLATFORM_TIMEOUT", 10*time.Second),
			FieldInfoTTL: r.duration("FIELD_INFO_TTL", 10*time.Minute),
		},
		Security: SecurityConfig{
			JWTSecret:    r.str("JWT_SECRET", ""),
			JWTPublicKey: strings.ReplaceAll(r.str("JWT_PUBLIC_KEY", ""), `\n`, "\n"),
		},
		Kafka: KafkaConfig{
			Brokers:           r.list("KAFKA_BROKERS", "KAFKA_BROKER"),
			GroupID:           r.str("KAFKA_GROUP_ID", "dsfr-gateway"),
			NotificationTopic: r.str("KAFKA_NOTIFICATION_TOPIC", "dsfr.notifications"),
		},
		Redis: RedisConfig{
			URL:        r.str("REDIS_URL", ""),
			VersionTTL: r.duration("RECORD_VERSION_TTL", 24*time.Hour),
		},
		Catalog: CatalogConfig{
			Path: r.str("CATALOG_PATH", "./configs/components.yaml"),
		},
		Websocket: WebsocketConfig{
			SendBuffer:      r.integer("WS_SEND_BUFFER", 64),
			CommandTimeout:  r.duration("WS_COMMAND_TIMEOUT", 6*time.Minute),
			AlertAckTimeout: r.duration("ALERT_ACK_TIMEOUT", 5*time.Minute),
		},
	}
	if err := errors.Join(r.errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	var errs []error
	if c.Security.JWTSecret == "" && c.Security.JWTPublicKey == "" {
		errs = append(errs, ErrMissingJWTKey)
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		errs = append(errs, fmt.Errorf("PORT: %q is not a port number", c.Server.Port))
	}
	if c.Kafka.Enabled() && c.Kafka.NotificationTopic == "" {
		errs = append(errs, errors.New("KAFKA_NOTIFICATION_TOPIC must be set when brokers are configured"))
	}
	if c.Websocket.SendBuffer <= 0 {
		errs = append(errs, errors.New("WS_SEND_BUFFER must be positive"))
	}
	return errors.Join(errs...)
}

type reader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (r *reader) raw(key string) (string, bool) {
	value, ok := r.lookup(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func (r *reader) str(key, fallback string) string {
	if value, ok := r.raw(key); ok {
		return value
	}
	return fallback
}

func (r *reader) duration(key string, fallback time.Duration) time.Duration {
	value, ok := r.raw(key)
	if !ok {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return parsed
}

func (r *reader) integer(key string, fallback int) int {
	value, ok := r.raw(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return parsed
}

// list reads the first set key as a comma separated list.
func (r *reader) list(keys ...string) []string {
	for _, key := range keys {
		value, ok := r.raw(key)
		if !ok {
			continue
		}
		var items []string
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				items = append(items, trimmed)
			}
		}
		if len(items) > 0 {
			return items
		}
	}
	return nil
}

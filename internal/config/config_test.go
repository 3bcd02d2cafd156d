package config

import (
	"errors"
	"testing"
	"time"
)

func lookupFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := LoadFromLookup(lookupFrom(map[string]string{"JWT_SECRET": "s3cret"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Server.Port)
	}
	if cfg.Websocket.AlertAckTimeout != 5*time.Minute {
		t.Fatalf("expected 5m ack timeout, got %s", cfg.Websocket.AlertAckTimeout)
	}
	if cfg.Kafka.Enabled() {
		t.Fatalf("kafka should be disabled without brokers")
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled without url")
	}
	if cfg.Catalog.Path != "./configs/components.yaml" {
		t.Fatalf("unexpected catalog path %s", cfg.Catalog.Path)
	}
}

func TestLoadReadsBrokersWithLegacyFallback(t *testing.T) {
	cfg, err := LoadFromLookup(lookupFrom(map[string]string{
		"JWT_SECRET":   "s3cret",
		"KAFKA_BROKER": " kafka-1:9092 , ,kafka-2:9092",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.Kafka.Brokers)
	}

	cfg, err = LoadFromLookup(lookupFrom(map[string]string{
		"JWT_SECRET":    "s3cret",
		"KAFKA_BROKERS": "primary:9092",
		"KAFKA_BROKER":  "legacy:9092",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "primary:9092" {
		t.Fatalf("KAFKA_BROKERS should win, got %v", cfg.Kafka.Brokers)
	}
}

func TestLoadRequiresJWTKey(t *testing.T) {
	_, err := LoadFromLookup(lookupFrom(map[string]string{}))
	if !errors.Is(err, ErrMissingJWTKey) {
		t.Fatalf("expected ErrMissingJWTKey, got %v", err)
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	cases := map[string]map[string]string{
		"duration": {"JWT_SECRET": "x", "ALERT_ACK_TIMEOUT": "soon"},
		"integer":  {"JWT_SECRET": "x", "WS_SEND_BUFFER": "many"},
		"port":     {"JWT_SECRET": "x", "PORT": "http"},
		"buffer":   {"JWT_SECRET": "x", "WS_SEND_BUFFER": "0"},
	}
	for name, values := range cases {
		if _, err := LoadFromLookup(lookupFrom(values)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestPublicKeyNewlinesAreExpanded(t *testing.T) {
	cfg, err := LoadFromLookup(lookupFrom(map[string]string{"JWT_PUBLIC_KEY": `-----BEGIN PUBLIC KEY-----\nabc\n-----END PUBLIC KEY-----`}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Security.JWTPublicKey != "-----BEGIN PUBLIC KEY-----\nabc\n-----END PUBLIC KEY-----" {
		t.Fatalf("unexpected key %q", cfg.Security.JWTPublicKey)
	}
}

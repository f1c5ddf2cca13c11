package kafka_config

import (
	"strings"
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	if len(cfg.Brokers) != 1 || cfg.Brokers[0] != DefaultKafkaBrokers {
		t.Errorf("expected default broker, got %v", cfg.Brokers)
	}
	if cfg.ConsumerMaxRetries != DefaultConsumerMaxRetries {
		t.Errorf("expected %d retries, got %d", DefaultConsumerMaxRetries, cfg.ConsumerMaxRetries)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestFromEnv_Brokers(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, " kafka-1:9092, ,kafka-2:9092 ")
	t.Setenv(EnvKafkaProducerCompression, "GZIP")
	t.Setenv(EnvKafkaConsumerRetryBackoff, "2s")

	cfg := FromEnv()

	if len(cfg.Brokers) != 2 || cfg.Brokers[0] != "kafka-1:9092" || cfg.Brokers[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers %v", cfg.Brokers)
	}
	if cfg.ProducerCompression != "gzip" {
		t.Errorf("expected lower-cased compression, got %s", cfg.ProducerCompression)
	}
	if cfg.ConsumerRetryBackoff != 2*time.Second {
		t.Errorf("expected 2s backoff, got %s", cfg.ConsumerRetryBackoff)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(EnvKafkaProducerCompression, "brotli")
	t.Setenv(EnvKafkaProducerRequireAcks, "2")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "ProducerCompression") || !strings.Contains(err.Error(), "ProducerRequireAcks") {
		t.Errorf("expected both problems reported, got %q", err.Error())
	}
}

func TestValidate_SessionTimeout(t *testing.T) {
	cfg := FromEnv()
	cfg.ConsumerSessionTimeout = cfg.ConsumerHeartbeatInterval

	if err := cfg.Validate(); err == nil {
		t.Error("session timeout equal to heartbeat should be rejected")
	}
}

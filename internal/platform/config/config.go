package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything main needs to wire the service.
type Config struct {
	Server Server
	Redis  RedisConfig
	Pg     PostgresConfig
	Kafka  KafkaConfig
	Signer SignerConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	AdminSigningKey string
	ShutdownTimeout time.Duration
}

// RedisConfig configures the Redis mapping store backend. An empty URL means
// Redis is not configured.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the Postgres mapping store backend. An empty DSN
// means Postgres is not configured.
type PostgresConfig struct {
	DSN string
}

// KafkaConfig configures the audit publisher. No brokers means audit events
// are only logged.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// SignerConfig configures the CubeSigner-backed address issuer. An empty
// binary path falls back to the local dev issuer.
type SignerConfig struct {
	Binary  string
	Timeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("WALLETMAP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	signingKey := os.Getenv("WALLETMAP_ADMIN_SIGNING_KEY")
	if signingKey == "" {
		// Use a default for development - should be overridden in production
		signingKey = "dev-secret-key-change-in-production"
	}

	kafkaTopic := os.Getenv("WALLETMAP_KAFKA_TOPIC")
	if kafkaTopic == "" {
		kafkaTopic = "walletmap.audit"
	}

	return Config{
		Server: Server{
			Addr:            addr,
			AdminSigningKey: signingKey,
			ShutdownTimeout: 10 * time.Second,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("WALLETMAP_REDIS_URL"),
			PoolSize:     envInt("WALLETMAP_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("WALLETMAP_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Pg: PostgresConfig{
			DSN: os.Getenv("WALLETMAP_POSTGRES_DSN"),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("WALLETMAP_KAFKA_BROKERS")),
			Topic:   kafkaTopic,
		},
		Signer: SignerConfig{
			Binary:  os.Getenv("WALLETMAP_CUBESIGNER_BIN"),
			Timeout: 30 * time.Second,
		},
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures everything main needs to wire the service. Values come from
// environment variables with development defaults so a bare `go run` works.
type Config struct {
	Addr string
	Env  string

	DatabaseURL string
	RedisURL    string

	JWTSigningKey  string
	JWTIssuer      string
	JWTAudience    string
	AccessTokenTTL time.Duration

	// PassTTL is the lifetime of one rotating attendance pass. The rotator
	// regenerates on the same interval, so at any instant exactly one pass
	// is live per session.
	PassTTL time.Duration

	// DefaultGeofenceRadiusM applies when a workshop is created without an
	// explicit radius. The stored per-workshop value is the only authority
	// at verification time.
	DefaultGeofenceRadiusM float64

	KafkaBrokers    []string
	KafkaAuditTopic string

	AuditBuffer     int
	ShutdownTimeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean. A
// local .env file is honored when present and silently skipped otherwise.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		Addr:        envOr("VOKASIA_ADDR", ":8080"),
		Env:         envOr("VOKASIA_ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSigningKey:  envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:      envOr("JWT_ISSUER", "vokasia"),
		JWTAudience:    envOr("JWT_AUDIENCE", "vokasia-api"),
		AccessTokenTTL: durationOr("ACCESS_TOKEN_TTL", 24*time.Hour),

		PassTTL:                durationOr("ATTENDANCE_PASS_TTL", 120*time.Second),
		DefaultGeofenceRadiusM: floatOr("GEOFENCE_RADIUS_M", 100),

		KafkaBrokers:    splitOr("KAFKA_BROKERS", nil),
		KafkaAuditTopic: envOr("KAFKA_AUDIT_TOPIC", "vokasia.audit"),

		AuditBuffer:     intOr("AUDIT_BUFFER", 256),
		ShutdownTimeout: durationOr("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func floatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func splitOr(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

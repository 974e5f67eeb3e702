package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration, loaded once at startup.
type Config struct {
	Port          string
	DatabaseDSN   string
	InfluxURL     string
	InfluxToken   string
	InfluxOrg     string
	InfluxBucket  string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	UserTokenTTL  time.Duration
	ResetTokenTTL time.Duration
	MailAPIURL    string
	MailFrom      string
	AllowedOrigin string
	// TrustBodyOwner lets ingest fall back to a body-supplied owner id when
	// the token carries none. Off by default; the token always wins.
	TrustBodyOwner bool
}

// LoadConfig loads the configuration from environment variables. A missing
// signing secret is a startup failure: the process must not serve traffic
// without it.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system environment variables")
	}

	cfg := Config{
		Port:           envOr("PORT", "8080"),
		DatabaseDSN:    os.Getenv("DATABASE_URL"),
		InfluxURL:      os.Getenv("INFLUXDB_URL"),
		InfluxToken:    os.Getenv("INFLUXDB_TOKEN"),
		InfluxOrg:      os.Getenv("INFLUXDB_ORG"),
		InfluxBucket:   envOr("INFLUXDB_BUCKET", "sensor_readings"),
		RedisAddr:      envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		MailAPIURL:     os.Getenv("MAIL_API_URL"),
		MailFrom:       envOr("MAIL_FROM", "no-reply@sentinel.local"),
		AllowedOrigin:  envOr("ALLOWED_ORIGIN", "http://localhost:5173"),
		TrustBodyOwner: os.Getenv("TRUST_BODY_OWNER") == "true",
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is not set; refusing to start without a signing secret")
	}
	if cfg.DatabaseDSN == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.InfluxURL == "" || cfg.InfluxToken == "" || cfg.InfluxOrg == "" {
		return Config{}, fmt.Errorf("InfluxDB configuration is incomplete. Please set INFLUXDB_URL, INFLUXDB_TOKEN, and INFLUXDB_ORG environment variables")
	}

	var err error
	cfg.UserTokenTTL, err = durationOr("USER_TOKEN_TTL", 200*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.ResetTokenTTL, err = durationOr("RESET_TOKEN_TTL", 2*time.Hour)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %w", key, err)
	}
	return parsed, nil
}

package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr        string
	DatabaseURL string

	JWTSecret string
	TokenTTL  time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	DefaultFrom  string
	StaffEmail   string

	UploadDir string
}

func Load() Config {
	addr := os.Getenv("APP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	ttl := 72 * time.Hour
	if raw := os.Getenv("JWT_TTL"); raw != "" {
		if dur, err := time.ParseDuration(raw); err == nil && dur > 0 {
			ttl = dur
		}
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	return Config{
		Addr:         addr,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenTTL:     ttl,
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     envInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		DefaultFrom:  os.Getenv("DEFAULT_FROM_EMAIL"),
		StaffEmail:   os.Getenv("STAFF_EMAIL"),
		UploadDir:    uploadDir,
	}
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the API server.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string // optional; empty means the in-memory cache is used

	JWTSecret string

	UploadDir     string // local blob storage root
	UploadBaseURL string // public prefix the stored files are served from

	// Transactional mail (unread reminders). With SMTPAddr empty the
	// reminders are only logged, not delivered.
	SMTPAddr      string
	MailFrom      string
	ReminderHours int // how often the reminder cron fires
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	uploadBaseURL := os.Getenv("UPLOAD_BASE_URL")
	if uploadBaseURL == "" {
		uploadBaseURL = "/uploads"
	}

	reminderHours := 6
	if s := os.Getenv("REMINDER_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("REMINDER_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		reminderHours = v
	}

	return &Config{
		Port:          port,
		DatabaseURL:   dbURL,
		RedisURL:      os.Getenv("REDIS_URL"),
		JWTSecret:     secret,
		UploadDir:     uploadDir,
		UploadBaseURL: uploadBaseURL,
		SMTPAddr:      os.Getenv("SMTP_ADDR"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		ReminderHours: reminderHours,
	}, nil
}

package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string
	// Site identity used by the page templates
	SiteTitle   string
	CompanyName string
	// Optional submission table; empty disables the Postgres recorder
	DBUrl string
	// SMTP Configuration (staff notification of new contact requests)
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string
	ContactEmailTo string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitContactLimit    int
	RateLimitNewsletterLimit int
	// Contact client configuration
	ContactSubmitURL     string
	ContactSubmitTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	// Missing .env is fine outside local development
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		SiteTitle:   getEnv("SITE_TITLE", "VUIDOKAN"),
		CompanyName: getEnv("COMPANY_NAME", "Công ty TNHH Phát triển Thể thao Vuidokan"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		// SMTP Configuration
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", "noreply@vuidokan.vn"),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", "info@vuidokan.vn"),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactLimit:    getEnvInt("RATE_LIMIT_CONTACT_LIMIT", 5),
		RateLimitNewsletterLimit: getEnvInt("RATE_LIMIT_NEWSLETTER_LIMIT", 10),
		// Contact client configuration
		ContactSubmitURL:     strings.TrimRight(getEnv("CONTACT_SUBMIT_URL", "http://localhost:3000"), "/"),
		ContactSubmitTimeout: getEnvDuration("CONTACT_SUBMIT_TIMEOUT", 10*time.Second),
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("10s") or plain seconds ("10")
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// IsProduction reports whether gin runs in release mode
func IsProduction() bool {
	return getEnvBool("PRODUCTION", os.Getenv("GIN_MODE") == "release")
}

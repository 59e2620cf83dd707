package internal

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `validate:"required,oneof=development production"`
	Port     int    `validate:"required,min=1,max=65535"`
	LogLevel string

	// Mail provider selection: "smtp", "postmark" or "dev"
	MailProvider string `validate:"required,oneof=smtp postmark dev"`

	// SMTP Configuration (Mailhog defaults for development)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	// Postmark Configuration
	PostmarkServerToken  string
	PostmarkAccountToken string

	// Dev mailer output directory
	MailOutputDir string

	// Sender identity and the guesthouse inbox that receives all
	// form submissions. Both must be real addresses.
	MailFrom     string `validate:"required,email"`
	MailFromName string
	MailTo       string `validate:"required,email"`

	// Upper bound on a single provider send. The dispatch call is the
	// only externally-blocking operation in a request, so this bounds
	// total request latency.
	DispatchTimeout time.Duration `validate:"required"`

	// CORS allowlist for the static site origin(s)
	AllowedOrigins []string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 3000),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		MailProvider: getEnv("MAIL_PROVIDER", "dev"),

		// SMTP defaults for Mailhog (development)
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 1025),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		PostmarkServerToken:  getEnv("POSTMARK_SERVER_TOKEN", ""),
		PostmarkAccountToken: getEnv("POSTMARK_ACCOUNT_TOKEN", ""),

		MailOutputDir: getEnv("MAIL_OUTPUT_DIR", "./outbox"),

		MailFrom:     getEnv("MAIL_FROM", "noreply@simphiweguesthouse.com"),
		MailFromName: getEnv("MAIL_FROM_NAME", "Simphiwe Guesthouse"),
		MailTo:       getEnv("MAIL_TO", ""),

		DispatchTimeout: getEnvDuration("DISPATCH_TIMEOUT", 15*time.Second),
	}

	// Parse allowed CORS origins from comma-separated environment variable
	originsStr := getEnv("ALLOWED_ORIGINS", "http://localhost:8080")
	for _, origin := range strings.Split(originsStr, ",") {
		trimmed := strings.TrimSuffix(strings.TrimSpace(origin), "/")
		if trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Required
	if cfg.MailTo == "" {
		return nil, fmt.Errorf("MAIL_TO is required")
	}

	// Validate provider-specific configuration
	if cfg.MailProvider == "postmark" {
		if cfg.PostmarkServerToken == "" {
			return nil, fmt.Errorf("POSTMARK_SERVER_TOKEN is required when MAIL_PROVIDER is 'postmark'")
		}
		if cfg.PostmarkAccountToken == "" {
			return nil, fmt.Errorf("POSTMARK_ACCOUNT_TOKEN is required when MAIL_PROVIDER is 'postmark'")
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	// Absolute site URL, used for Open Graph tags
	BaseURL string

	// Document source: "local" or "r2"
	DataProvider string

	// Local documents directory (development)
	DataDir string

	// Optional single bundle file holding every document (e.g. "data.json")
	DataBundle string

	// R2 document bucket (production)
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2Prefix          string

	// Overrides for the embedded web assets. Empty means embedded.
	TemplatesDir string
	StaticDir    string

	// SMTP Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string

	// Contact notifications: "log" or "smtp"
	ContactNotify    string
	ContactRecipient string

	// Form post throttling per client IP
	FormRateLimit  int
	FormRateWindow time.Duration

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		DataProvider: getEnv("DATA_PROVIDER", "local"),
		DataDir:      getEnv("DATA_DIR", "./web/data"),
		DataBundle:   getEnv("DATA_BUNDLE", ""),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2Prefix:          getEnv("R2_PREFIX", ""),

		TemplatesDir: getEnv("TEMPLATES_DIR", ""),
		StaticDir:    getEnv("STATIC_DIR", ""),

		// SMTP defaults for Mailhog (development)
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 1025),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "site@lapechetenebreuse.fr"),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "La Pêche Ténébreuse"),

		ContactNotify:    getEnv("CONTACT_NOTIFY", "log"),
		ContactRecipient: getEnv("CONTACT_RECIPIENT", ""),

		FormRateLimit:  getEnvInt("FORM_RATE_LIMIT", 10),
		FormRateWindow: getEnvDuration("FORM_RATE_WINDOW", 10*time.Minute),

		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks provider selections and the settings they require.
func (c *Config) Validate() error {
	switch c.DataProvider {
	case "r2":
		if c.R2AccountID == "" {
			return fmt.Errorf("R2_ACCOUNT_ID is required when DATA_PROVIDER is 'r2'")
		}
		if c.R2AccessKeyID == "" {
			return fmt.Errorf("R2_ACCESS_KEY_ID is required when DATA_PROVIDER is 'r2'")
		}
		if c.R2SecretAccessKey == "" {
			return fmt.Errorf("R2_SECRET_ACCESS_KEY is required when DATA_PROVIDER is 'r2'")
		}
		if c.R2BucketName == "" {
			return fmt.Errorf("R2_BUCKET_NAME is required when DATA_PROVIDER is 'r2'")
		}
	case "local":
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required when DATA_PROVIDER is 'local'")
		}
	default:
		return fmt.Errorf("DATA_PROVIDER must be either 'local' or 'r2', got: %s", c.DataProvider)
	}

	switch c.ContactNotify {
	case "smtp":
		if c.ContactRecipient == "" {
			return fmt.Errorf("CONTACT_RECIPIENT is required when CONTACT_NOTIFY is 'smtp'")
		}
	case "log":
	default:
		return fmt.Errorf("CONTACT_NOTIFY must be either 'log' or 'smtp', got: %s", c.ContactNotify)
	}

	if c.FormRateLimit <= 0 {
		return fmt.Errorf("FORM_RATE_LIMIT must be positive, got: %d", c.FormRateLimit)
	}
	return nil
}

// IsDevelopment reports whether templates reload from disk and logs are text.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
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

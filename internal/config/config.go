package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string
	DatabasePath string
	LogLevel     string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// S3 / MinIO
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool
	S3PublicBaseURL   string

	// OpenAI Assistants
	OpenAIAPIKey  string
	OpenAIBaseURL string
	AssistantID   string
	AssistantName string
	ReviewerModel string
	PollInterval  time.Duration
	MaxPolls      int
	RunTimeout    time.Duration

	// Guidelines document attached to new assistants
	GuidelinesPath string

	// Upload limits
	MaxFileSize int64
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := load(newViper())

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	return cfg, nil
}

// LoadForMigrations reads configuration without enforcing reviewer credentials.
func LoadForMigrations() *Config {
	return load(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3005")
	v.SetDefault("DATABASE_PATH", "data/thumbnails.sqlite")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("READ_TIMEOUT", "30s")
	v.SetDefault("WRITE_TIMEOUT", "5m")

	v.SetDefault("S3_ENDPOINT", "localhost:9000")
	v.SetDefault("S3_ACCESS_KEY_ID", "minioadmin")
	v.SetDefault("S3_SECRET_ACCESS_KEY", "minioadmin")
	v.SetDefault("S3_BUCKET_NAME", "thumbnails")
	v.SetDefault("S3_USE_SSL", false)
	v.SetDefault("S3_PUBLIC_BASE_URL", "")

	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("REVIEWER_ASSISTANT_ID", "")
	v.SetDefault("REVIEWER_ASSISTANT_NAME", "thumbnail-checker")
	v.SetDefault("REVIEWER_MODEL", "gpt-4o")
	v.SetDefault("REVIEWER_POLL_INTERVAL", "1s")
	v.SetDefault("REVIEWER_MAX_POLLS", 120)
	v.SetDefault("REVIEWER_RUN_TIMEOUT", "3m")

	v.SetDefault("GUIDELINES_PATH", "thumbnail-rule.pdf")
	v.SetDefault("MAX_FILE_SIZE_MB", 50)

	return v
}

func load(v *viper.Viper) *Config {
	return &Config{
		Port:         v.GetString("PORT"),
		DatabasePath: v.GetString("DATABASE_PATH"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		ReadTimeout:  v.GetDuration("READ_TIMEOUT"),
		WriteTimeout: v.GetDuration("WRITE_TIMEOUT"),

		S3Endpoint:        v.GetString("S3_ENDPOINT"),
		S3AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
		S3BucketName:      v.GetString("S3_BUCKET_NAME"),
		S3UseSSL:          v.GetBool("S3_USE_SSL"),
		S3PublicBaseURL:   v.GetString("S3_PUBLIC_BASE_URL"),

		OpenAIAPIKey:  v.GetString("OPENAI_API_KEY"),
		OpenAIBaseURL: v.GetString("OPENAI_BASE_URL"),
		AssistantID:   v.GetString("REVIEWER_ASSISTANT_ID"),
		AssistantName: v.GetString("REVIEWER_ASSISTANT_NAME"),
		ReviewerModel: v.GetString("REVIEWER_MODEL"),
		PollInterval:  v.GetDuration("REVIEWER_POLL_INTERVAL"),
		MaxPolls:      v.GetInt("REVIEWER_MAX_POLLS"),
		RunTimeout:    v.GetDuration("REVIEWER_RUN_TIMEOUT"),

		GuidelinesPath: v.GetString("GUIDELINES_PATH"),
		MaxFileSize:    v.GetInt64("MAX_FILE_SIZE_MB") * 1024 * 1024,
	}
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3005", cfg.Port)
	assert.Equal(t, "thumbnails", cfg.S3BucketName)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, 120, cfg.MaxPolls)
	assert.Equal(t, 3*time.Minute, cfg.RunTimeout)
	assert.Equal(t, int64(50*1024*1024), cfg.MaxFileSize)
	assert.False(t, cfg.S3UseSSL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "9090")
	t.Setenv("S3_USE_SSL", "true")
	t.Setenv("REVIEWER_POLL_INTERVAL", "250ms")
	t.Setenv("REVIEWER_MAX_POLLS", "7")
	t.Setenv("REVIEWER_ASSISTANT_ID", "asst_123")
	t.Setenv("MAX_FILE_SIZE_MB", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.S3UseSSL)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 7, cfg.MaxPolls)
	assert.Equal(t, "asst_123", cfg.AssistantID)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxFileSize)
}

func TestLoadForMigrations_NoAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DATABASE_PATH", "/tmp/x.sqlite")

	cfg := LoadForMigrations()
	assert.Equal(t, "/tmp/x.sqlite", cfg.DatabasePath)
}

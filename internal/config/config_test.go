package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_DefaultsAndYAML(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	t.Setenv("PORT", "")

	path := writeConfig(t, `
telegram_token: "123:abc"
telegram_chat_id: 42
poll_interval: 30s
keywords: ["qt", "c++"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, int64(42), cfg.TelegramChatID)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 2*time.Second, cfg.MessageDelay)
	assert.Equal(t, EmptyLinksSkip, cfg.EmptyLinks)
	assert.Equal(t, "jobs.json", cfg.StorePath)
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.True(t, cfg.Headless)
	assert.Equal(t, []string{"qt", "c++"}, cfg.Keywords)
	assert.Equal(t, 30*time.Second, cfg.TelegramTimeout)
	assert.Equal(t, 25*time.Second, cfg.NavigationTimeout)
	assert.Equal(t, 0, cfg.ScrollSteps)
}

func TestLoad_ExplicitValuesSurvive(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name:  "zero message delay disables pacing",
			body:  "message_delay: 0s",
			check: func(t *testing.T, cfg *Config) { assert.Zero(t, cfg.MessageDelay) },
		},
		{
			name:  "zero render wait",
			body:  "render_wait: 0s",
			check: func(t *testing.T, cfg *Config) { assert.Zero(t, cfg.RenderWait) },
		},
		{
			name:  "scroll steps",
			body:  "scroll_steps: 3",
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, 3, cfg.ScrollSteps) },
		},
		{
			name:  "telegram timeout",
			body:  "telegram_timeout: 5s",
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, 5*time.Second, cfg.TelegramTimeout) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, "telegram_token: t\ntelegram_chat_id: 1\n"+tt.body))
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("TELEGRAM_CHAT_ID", "7")
	t.Setenv("STORE_PATH", "/tmp/seen.json")
	t.Setenv("PORT", "9090")

	path := writeConfig(t, `telegram_token: "yaml-token"`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.TelegramToken)
	assert.Equal(t, int64(7), cfg.TelegramChatID)
	assert.Equal(t, "/tmp/seen.json", cfg.StorePath)
	assert.Equal(t, ":9090", cfg.ServerAddr)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "missing token", body: `telegram_chat_id: 1`, want: "TELEGRAM_BOT_TOKEN is required"},
		{name: "missing chat", body: `telegram_token: "t"`, want: "TELEGRAM_CHAT_ID is required"},
		{
			name: "bad empty link policy",
			body: "telegram_token: t\ntelegram_chat_id: 1\nempty_links: sometimes",
			want: "empty_links must be",
		},
		{name: "broken yaml", body: "telegram_token: [", want: "error parsing"},
		{
			name: "zero poll interval",
			body: "telegram_token: t\ntelegram_chat_id: 1\npoll_interval: 0s",
			want: "poll_interval must be > 0",
		},
		{
			name: "zero navigation timeout",
			body: "telegram_token: t\ntelegram_chat_id: 1\nnavigation_timeout: 0s",
			want: "navigation_timeout and telegram_timeout must be > 0",
		},
		{
			name: "zero telegram timeout",
			body: "telegram_token: t\ntelegram_chat_id: 1\ntelegram_timeout: 0s",
			want: "navigation_timeout and telegram_timeout must be > 0",
		},
		{
			name: "negative message delay",
			body: "telegram_token: t\ntelegram_chat_id: 1\nmessage_delay: -1s",
			want: "message_delay and render_wait must be >= 0",
		},
		{
			name: "negative scroll steps",
			body: "telegram_token: t\ntelegram_chat_id: 1\nscroll_steps: -2",
			want: "scroll_steps must be >= 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_BadChatIDEnv(t *testing.T) {
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")
	_, err := Load(writeConfig(t, `telegram_token: "t"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid TELEGRAM_CHAT_ID")
}

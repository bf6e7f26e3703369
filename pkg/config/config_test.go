package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
telegram:
  token: "file-token"
database:
  use_in_memory: true
messaging:
  group_chat:
    mention_patterns:
      - "pricing"
      - "demo|trial"
filter:
  platform: "whatsapp"
  domain_suffix: "@s.whatsapp.net"
  admin_policy_path: "/etc/bot/admin_policy.json"
openai:
  api_key: "file-key"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, []string{"pricing", "demo|trial"}, cfg.Messaging.GroupChat.MentionPatterns)
	assert.Equal(t, "whatsapp", cfg.Filter.Platform)
	assert.Equal(t, "@s.whatsapp.net", cfg.Filter.DomainSuffix)
	assert.Equal(t, "/etc/bot/admin_policy.json", cfg.Filter.AdminPolicyPath)
	assert.True(t, cfg.Database.UseInMemory)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "telegram:\n  token: \"t\"\n"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Messaging.GroupChat.MentionPatterns)
	assert.Equal(t, "telegram", cfg.Filter.Platform)
	assert.Equal(t, "admin_policy.json", cfg.Filter.AdminPolicyPath)
	assert.Equal(t, 10, cfg.Filter.HistoryLimit)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAI.Model)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "env-token")
	t.Setenv("OPENAI_API_KEY", "env-key")

	cfg, err := LoadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Telegram.Token)
	assert.Equal(t, "env-key", cfg.OpenAI.APIKey)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

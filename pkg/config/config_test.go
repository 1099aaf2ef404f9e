package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StoreDriverNotion, cfg.Store.Driver)
	assert.Equal(t, 100, cfg.Store.MaxPages)
	assert.Equal(t, 30*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "payram.com", cfg.Invite.UIDDomain)
	assert.Equal(t, "event-submissions", cfg.Kafka.SubmissionsTopic)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadLegacyEnvAliases(t *testing.T) {
	t.Setenv("NOTION_REGISTERATION_DATABASE_ID", "reg-db")
	t.Setenv("GMAIL_USER", "events@example.com")
	t.Setenv("GMAIL_APP_PASSWORD", "app-pass")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("STORE_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "reg-db", cfg.Notion.RegistrationDatabaseID)
	assert.Equal(t, "events@example.com", cfg.Mail.Username)
	assert.Equal(t, "app-pass", cfg.Mail.Password)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Store.Timeout)
}

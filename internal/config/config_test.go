package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8710", cfg.ListenAddr)
	assert.Equal(t, "INR", cfg.DefaultCurrency)
	assert.False(t, cfg.EventsEnabled())
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr: ":9000"
db_path: /tmp/ledger.db
kafka:
  brokers: ["kafka-1:9092", "kafka-2:9092"]
  topic: ledger-events
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/tmp/ledger.db", cfg.DBPath)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.EventsEnabled())
	// Values the file omits keep their defaults.
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":9000\"\n"), 0o644))

	t.Setenv("FINLEDGER_ADDR", ":7777")
	t.Setenv("FINLEDGER_KAFKA_BROKERS", "a:9092, b:9092")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.ListenAddr)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
}

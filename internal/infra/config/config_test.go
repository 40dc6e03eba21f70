package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("log:\n  level: debug\n"), 0o600))

	cfg, err := LoadFrom(file)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "usd", cfg.Stripe.Currency)
	assert.Equal(t, uint32(5), cfg.Breaker.FailureThreshold)
	assert.Equal(t, 24*time.Hour, cfg.RateLimit.IdempotencyTTL)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "checkout.handoff", cfg.Kafka.HandoffTopic)
	assert.Equal(t, "orders.events", cfg.Kafka.EventsTopic)
}

func TestLoadFrom_File(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	content := `
backend:
  base_url: http://orders.internal:9000
kafka:
  brokers: ["k1:9092", "k2:9092"]
messages:
  cancel_failed: Cancel did not go through
  canceled: Order canceled
  refund_prompt:
    body: Refund this order?
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	cfg, err := LoadFrom(file)
	require.NoError(t, err)

	assert.Equal(t, "http://orders.internal:9000", cfg.Backend.BaseURL)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "Cancel did not go through", cfg.Messages.CancelFailed)
	assert.Equal(t, "Order canceled", cfg.Messages.Canceled)
	assert.Equal(t, "Refund this order?", cfg.Messages.RefundPrompt.Body)
}

func TestLoadFrom_EnvSecrets(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("{}\n"), 0o600))

	t.Setenv("ORDERFLOW_STRIPE_SECRET_KEY", "sk_test_env")
	t.Setenv("ORDERFLOW_STRIPE_PUBLISHABLE_KEY", "pk_test_env")
	t.Setenv("ORDERFLOW_KAFKA_BROKERS", " a:1 , ,b:2")

	cfg, err := LoadFrom(file)
	require.NoError(t, err)

	assert.Equal(t, "sk_test_env", cfg.Stripe.SecretKey)
	assert.Equal(t, "pk_test_env", cfg.Stripe.PublishableKey)
	assert.Equal(t, []string{"a:1", "b:2"}, cfg.Kafka.Brokers)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Database: "orders", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u dbname=orders sslmode=disable", c.DSN())

	c.Password = "secret"
	assert.Contains(t, c.DSN(), "password=secret")
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	HTTPClient HTTPClientConfig `mapstructure:"http_client"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Log        LogConfig        `mapstructure:"log"`
	Backend    BackendConfig    `mapstructure:"backend"`
	Stripe     StripeConfig     `mapstructure:"stripe"`
	Breaker    BreakerConfig    `mapstructure:"breaker"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Messages   MessagesConfig   `mapstructure:"messages"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowOrigins    []string      `mapstructure:"allow_origins"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Database, c.SSLMode,
	)
	if c.Password != "" {
		dsn += fmt.Sprintf(" password=%s", c.Password)
	}
	return dsn
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// HTTPClientConfig holds HTTP client configuration for connection pooling.
type HTTPClientConfig struct {
	// Connection pool settings
	MaxIdleConns        int           `mapstructure:"max_idle_conns"`
	MaxIdleConnsPerHost int           `mapstructure:"max_idle_conns_per_host"`
	MaxConnsPerHost     int           `mapstructure:"max_conns_per_host"`
	IdleConnTimeout     time.Duration `mapstructure:"idle_conn_timeout"`

	// Timeout settings
	DialTimeout         time.Duration `mapstructure:"dial_timeout"`
	TLSHandshakeTimeout time.Duration `mapstructure:"tls_handshake_timeout"`
	ResponseTimeout     time.Duration `mapstructure:"response_timeout"`

	KeepAlive time.Duration `mapstructure:"keep_alive"`
}

// RateLimitConfig holds rate limiting configuration for the action routes.
type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	ActionLimit    int           `mapstructure:"action_limit"`
	ActionWindow   time.Duration `mapstructure:"action_window"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BackendConfig tells clients where the order backend lives.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StripeConfig holds Stripe checkout configuration.
type StripeConfig struct {
	SecretKey      string `mapstructure:"secret_key"`
	PublishableKey string `mapstructure:"publishable_key"`
	Currency       string `mapstructure:"currency"`
	SuccessURL     string `mapstructure:"success_url"`
	CancelURL      string `mapstructure:"cancel_url"`
	// APIBaseURL overrides the Stripe API endpoint. Empty uses the default.
	APIBaseURL string `mapstructure:"api_base_url"`
}

// BreakerConfig holds the payment gateway circuit breaker settings.
type BreakerConfig struct {
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
}

// KafkaConfig holds the checkout handoff and order event settings.
// Empty Brokers disables kafka.
type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	HandoffTopic string        `mapstructure:"handoff_topic"`
	EventsTopic  string        `mapstructure:"events_topic"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Enabled reports whether brokers are configured.
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// PromptConfig holds the texts of one confirmation prompt.
type PromptConfig struct {
	Title string `mapstructure:"title"`
	Body  string `mapstructure:"body"`
	Yes   string `mapstructure:"yes"`
	No    string `mapstructure:"no"`
}

// MessagesConfig holds user-facing texts. Empty values use built-in texts.
type MessagesConfig struct {
	CancelPrompt  PromptConfig `mapstructure:"cancel_prompt"`
	RefundPrompt  PromptConfig `mapstructure:"refund_prompt"`
	CancelFailed  string       `mapstructure:"cancel_failed"`
	RefundFailed  string       `mapstructure:"refund_failed"`
	PaymentFailed string       `mapstructure:"payment_failed"`
	Unexpected    string       `mapstructure:"unexpected"`
	Canceled      string       `mapstructure:"canceled"`
	Refunded      string       `mapstructure:"refunded"`
}

// Load loads configuration from file and environment.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from the given file, or from the default
// search paths when file is empty.
func LoadFrom(file string) (*Config, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/orderflow")
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found, use defaults and env
	}

	v.SetEnvPrefix("ORDERFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Override with environment variables for sensitive values
	if password := os.Getenv("ORDERFLOW_DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}
	if password := os.Getenv("ORDERFLOW_REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if secretKey := os.Getenv("ORDERFLOW_STRIPE_SECRET_KEY"); secretKey != "" {
		cfg.Stripe.SecretKey = secretKey
	}
	if publicKey := os.Getenv("ORDERFLOW_STRIPE_PUBLISHABLE_KEY"); publicKey != "" {
		cfg.Stripe.PublishableKey = publicKey
	}
	if s := os.Getenv("ORDERFLOW_KAFKA_BROKERS"); s != "" {
		cfg.Kafka.Brokers = parseCommaSeparatedList(s)
	}
	if s := os.Getenv("ORDERFLOW_ALLOW_ORIGINS"); s != "" {
		cfg.Server.AllowOrigins = parseCommaSeparatedList(s)
	}

	return &cfg, nil
}

func parseCommaSeparatedList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.allow_origins", []string{"*"})

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.database", "orderflow")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 30*time.Minute)
	v.SetDefault("database.auto_migrate", true)

	// Redis defaults
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	// HTTP client defaults
	v.SetDefault("http_client.max_idle_conns", 100)
	v.SetDefault("http_client.max_idle_conns_per_host", 20)
	v.SetDefault("http_client.max_conns_per_host", 50)
	v.SetDefault("http_client.idle_conn_timeout", 90*time.Second)
	v.SetDefault("http_client.dial_timeout", 10*time.Second)
	v.SetDefault("http_client.tls_handshake_timeout", 10*time.Second)
	v.SetDefault("http_client.response_timeout", 30*time.Second)
	v.SetDefault("http_client.keep_alive", 30*time.Second)

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.action_limit", 30)
	v.SetDefault("rate_limit.action_window", time.Minute)
	v.SetDefault("rate_limit.idempotency_ttl", 24*time.Hour)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Backend client defaults
	v.SetDefault("backend.base_url", "http://localhost:8080")
	v.SetDefault("backend.timeout", 15*time.Second)

	// Stripe defaults
	v.SetDefault("stripe.currency", "usd")
	v.SetDefault("stripe.success_url", "http://localhost:3000/checkout/success")
	v.SetDefault("stripe.cancel_url", "http://localhost:3000/checkout/cancel")

	// Breaker defaults
	v.SetDefault("breaker.max_requests", 1)
	v.SetDefault("breaker.interval", time.Minute)
	v.SetDefault("breaker.timeout", 30*time.Second)
	v.SetDefault("breaker.failure_threshold", 5)

	// Kafka defaults
	v.SetDefault("kafka.handoff_topic", "checkout.handoff")
	v.SetDefault("kafka.events_topic", "orders.events")
	v.SetDefault("kafka.write_timeout", 10*time.Second)
}

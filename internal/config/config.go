package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// API server configuration
	API APIConfig

	// External data providers
	Providers ProvidersConfig

	// Logging configuration
	Log LogConfig
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" default:"tokenwatch"`
	Password        string        `envconfig:"DB_PASSWORD" default:"tokenwatch"`
	Name            string        `envconfig:"DB_NAME" default:"tokenwatch"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// APIConfig holds API server settings
type APIConfig struct {
	Host            string        `envconfig:"API_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    int           `envconfig:"API_RATE_LIMIT_RPS" default:"100"`
	AnalysisRPM     int           `envconfig:"API_ANALYSIS_RATE_LIMIT_RPM" default:"12"`
	CacheTTL        time.Duration `envconfig:"API_CACHE_TTL" default:"30s"`
}

// ProvidersConfig holds settings for the external market and social data
// sources. Keys are optional; a provider without its key degrades to
// empty results rather than failing analyses.
type ProvidersConfig struct {
	RequestTimeout time.Duration `envconfig:"PROVIDER_REQUEST_TIMEOUT" default:"15s"`

	DexScreenerBaseURL string `envconfig:"DEXSCREENER_BASE_URL" default:"https://api.dexscreener.com"`

	CoinGeckoBaseURL string `envconfig:"COINGECKO_BASE_URL" default:"https://api.coingecko.com/api/v3"`
	CoinGeckoAPIKey  string `envconfig:"COINGECKO_API_KEY" default:""`

	EtherscanAPIKey string `envconfig:"ETHERSCAN_API_KEY" default:""`

	SolscanBaseURL string `envconfig:"SOLSCAN_BASE_URL" default:"https://pro-api.solscan.io/v2.0"`
	SolscanAPIKey  string `envconfig:"SOLSCAN_API_KEY" default:""`

	TwitterBaseURL     string `envconfig:"TWITTER_BASE_URL" default:"https://api.twitter.com/2"`
	TwitterBearerToken string `envconfig:"TWITTER_BEARER_TOKEN" default:""`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the process cannot start with. Provider keys
// are deliberately not checked here; missing keys only degrade analyses.
func (c *Config) Validate() error {
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("invalid max open connections: %d", c.Database.MaxOpenConns)
	}
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		return fmt.Errorf("invalid redis port: %d", c.Redis.Port)
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("invalid api port: %d", c.API.Port)
	}
	if c.API.RateLimitRPS < 1 {
		return fmt.Errorf("invalid rate limit rps: %d", c.API.RateLimitRPS)
	}
	if c.API.AnalysisRPM < 1 {
		return fmt.Errorf("invalid analysis rate limit rpm: %d", c.API.AnalysisRPM)
	}
	if c.Providers.RequestTimeout <= 0 {
		return fmt.Errorf("invalid provider request timeout: %s", c.Providers.RequestTimeout)
	}
	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

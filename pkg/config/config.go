package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration. It is loaded once at start and passed
// explicitly to the components that need it.
type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`

	PostgresHost     string `mapstructure:"POSTGRES_HOST"`
	PostgresPort     string `mapstructure:"POSTGRES_PORT"`
	PostgresUser     string `mapstructure:"POSTGRES_USER"`
	PostgresPassword string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresDB       string `mapstructure:"POSTGRES_DB"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	StatsCacheTTLSeconds     int    `mapstructure:"STATS_CACHE_TTL_SECONDS"`
	HTTPClientTimeoutSeconds int    `mapstructure:"HTTP_CLIENT_TIMEOUT_SECONDS"`
	AuthUserHeader           string `mapstructure:"AUTH_USER_HEADER"`

	Providers Providers `mapstructure:",squash"`
}

// Providers holds credentials and endpoints of the external data sources.
// An empty key disables the source that requires it.
type Providers struct {
	GoogleAPIKey string `mapstructure:"GOOGLE_API_KEY"`
	YelpAPIKey   string `mapstructure:"YELP_API_KEY"`
	ApolloAPIKey string `mapstructure:"APOLLO_API_KEY"`
	AngiAPIKey   string `mapstructure:"ANGI_API_KEY"`

	GoogleBaseURL      string `mapstructure:"GOOGLE_BASE_URL"`
	YelpBaseURL        string `mapstructure:"YELP_BASE_URL"`
	BBBBaseURL         string `mapstructure:"BBB_BASE_URL"`
	ApolloBaseURL      string `mapstructure:"APOLLO_BASE_URL"`
	PPPBaseURL         string `mapstructure:"PPP_BASE_URL"`
	USASpendingBaseURL string `mapstructure:"USASPENDING_BASE_URL"`
	AngiBaseURL        string `mapstructure:"ANGI_BASE_URL"`

	HTTPTimeout time.Duration `mapstructure:"-"`
}

var defaults = map[string]any{
	"SERVER_PORT":                 "8080",
	"LOG_LEVEL":                   "info",
	"STORAGE_DRIVER":              "postgres",
	"POSTGRES_HOST":               "localhost",
	"POSTGRES_PORT":               "5432",
	"POSTGRES_USER":               "user",
	"POSTGRES_PASSWORD":           "password",
	"POSTGRES_DB":                 "bizscrape",
	"REDIS_ADDR":                  "localhost:6379",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"STATS_CACHE_TTL_SECONDS":     30,
	"HTTP_CLIENT_TIMEOUT_SECONDS": 30,
	"AUTH_USER_HEADER":            "X-User-Id",
	"GOOGLE_API_KEY":              "",
	"YELP_API_KEY":                "",
	"APOLLO_API_KEY":              "",
	"ANGI_API_KEY":                "",
	"GOOGLE_BASE_URL":             "https://maps.googleapis.com/maps/api/place",
	"YELP_BASE_URL":               "https://api.yelp.com/v3",
	"BBB_BASE_URL":                "https://www.bbb.org/api",
	"APOLLO_BASE_URL":             "https://api.apollo.io/v1",
	"PPP_BASE_URL":                "https://projects.propublica.org/coronavirus/bailouts/api/v1",
	"USASPENDING_BASE_URL":        "https://api.usaspending.gov/api/v2",
	"ANGI_BASE_URL":               "https://api.angi.com",
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// Environment variables alone are enough in production.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Providers.HTTPTimeout = time.Duration(cfg.HTTPClientTimeoutSeconds) * time.Second
	return &cfg, nil
}

// PostgresDSN builds the connection string for pgxpool.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB)
}

func (c *Config) StatsCacheTTL() time.Duration {
	return time.Duration(c.StatsCacheTTLSeconds) * time.Second
}

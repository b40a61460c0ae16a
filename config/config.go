// Package config provides configuration management for the application.
package config

import (
	"github.com/spf13/viper"
)

// DefaultBodySizeLimit is the maximum accepted request body size in bytes.
const DefaultBodySizeLimit int64 = 1 << 20 // 1MB

// Config holds the application configuration
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Metrics MetricsConfig
	Logging LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port          string
	BodySizeLimit int64
}

// StorageConfig holds MongoDB connection configuration
type StorageConfig struct {
	// URL is the connection string (e.g., mongodb://localhost:27017).
	// Integration tests supply a dedicated test-database URL here,
	// distinct from the default.
	URL string
	// Database is the database name
	Database string
}

// MetricsConfig holds Prometheus metrics configuration
type MetricsConfig struct {
	Enabled  bool
	Endpoint string
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Pretty switches from JSON log lines to a colorized tint handler
	Pretty bool
}

// Load reads configuration from the environment, with a .env file as an
// optional source for local development.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // .env file is optional

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("BODY_SIZE_LIMIT", DefaultBodySizeLimit)
	viper.SetDefault("MONGODB_URL", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DATABASE", "blogapi")
	viper.SetDefault("METRICS_ENABLED", false)
	viper.SetDefault("METRICS_ENDPOINT", "/metrics")
	viper.SetDefault("LOG_PRETTY", false)

	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:          viper.GetString("PORT"),
			BodySizeLimit: viper.GetInt64("BODY_SIZE_LIMIT"),
		},
		Storage: StorageConfig{
			URL:      viper.GetString("MONGODB_URL"),
			Database: viper.GetString("MONGODB_DATABASE"),
		},
		Metrics: MetricsConfig{
			Enabled:  viper.GetBool("METRICS_ENABLED"),
			Endpoint: viper.GetString("METRICS_ENDPOINT"),
		},
		Logging: LogConfig{
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
	}

	return cfg, nil
}

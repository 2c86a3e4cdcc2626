package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the environment-driven configuration. Load validates every
// field; the process refuses to start on an invalid configuration.
type Config struct {
	AppEnv          string
	DatabaseClient  string
	DatabaseURL     string
	Port            int
	TokenSecret     string
	TokenExpiration time.Duration
	RabbitMQURL     string
}

var validEnvs = map[string]bool{
	"production":  true,
	"staging":     true,
	"development": true,
	"test":        true,
}

var validDatabaseClients = map[string]bool{
	"sqlite":   true,
	"postgres": true,
}

// Load reads configuration from the environment with Viper and validates it.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_CLIENT", "sqlite")
	v.SetDefault("PORT", 3001)
	v.AutomaticEnv()

	cfg := &Config{
		AppEnv:         v.GetString("APP_ENV"),
		DatabaseClient: v.GetString("DATABASE_CLIENT"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		Port:           v.GetInt("PORT"),
		TokenSecret:    v.GetString("TOKEN_SECRET"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
	}

	if !validEnvs[cfg.AppEnv] {
		return nil, fmt.Errorf("invalid APP_ENV %q: must be one of production, staging, development, test", cfg.AppEnv)
	}
	if !validDatabaseClients[cfg.DatabaseClient] {
		return nil, fmt.Errorf("invalid DATABASE_CLIENT %q: must be sqlite or postgres", cfg.DatabaseClient)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.Port)
	}
	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required")
	}

	expiration := v.GetString("TOKEN_EXPIRATION")
	if expiration == "" {
		return nil, fmt.Errorf("TOKEN_EXPIRATION is required")
	}
	ttl, err := time.ParseDuration(expiration)
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_EXPIRATION %q: expected a positive duration such as \"10m\" or \"24h\"", expiration)
	}
	cfg.TokenExpiration = ttl

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

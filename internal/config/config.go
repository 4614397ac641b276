package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the application configuration. It is built once at startup
// and handed to every component that needs it; nothing mutates it afterwards.
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	ServerAddr  string `mapstructure:"SERVER_ADDR"`
	StaticDir   string `mapstructure:"STATIC_DIR"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
}

// Load reads the configuration from a .env file and environment variables.
func Load() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_ADDR", ":8080")
	viper.SetDefault("STATIC_DIR", "frontend/dist")
	viper.SetDefault("LOG_LEVEL", "info")

	// A missing .env file is fine; the environment still applies.
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &cfg, nil
}

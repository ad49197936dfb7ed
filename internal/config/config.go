// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	AppName              string `mapstructure:"APP_NAME"`
	Env                  string `mapstructure:"APP_ENV"`
	Debug                bool   `mapstructure:"DEBUG"`
	Port                 string `mapstructure:"PORT"`
	DBHost               string `mapstructure:"DB_HOST"`
	DBPort               string `mapstructure:"DB_PORT"`
	DBUser               string `mapstructure:"DB_USER"`
	DBPassword           string `mapstructure:"DB_PASSWORD"`
	DBName               string `mapstructure:"DB_NAME"`
	DBSSLMode            string `mapstructure:"DB_SSLMODE"`
	RedisURL             string `mapstructure:"REDIS_URL"`
	JWTSecret            string `mapstructure:"JWT_SECRET"`
	JWTAlgorithm         string `mapstructure:"JWT_ALGORITHM"`
	TokenLifetimeMinutes int    `mapstructure:"TOKEN_LIFETIME_MINUTES"`
	MaxUploadSize        int64  `mapstructure:"MAX_UPLOAD_SIZE"`
	AllowedExtensions    string `mapstructure:"ALLOWED_EXTENSIONS"`
	UploadDir            string `mapstructure:"UPLOAD_DIR"`
	FrontendURL          string `mapstructure:"FRONTEND_URL"`

	TracingEnabled      bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter     string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint        string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSamplerRatio float64 `mapstructure:"TRACING_SAMPLER_RATIO"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; environment variables and defaults suffice.
	_ = viper.ReadInConfig()

	viper.SetDefault("APP_NAME", "Blackbook")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DEBUG", true)
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "blackbook")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	viper.SetDefault("JWT_ALGORITHM", "HS256")
	viper.SetDefault("TOKEN_LIFETIME_MINUTES", 30)
	viper.SetDefault("MAX_UPLOAD_SIZE", 5*1024*1024)
	viper.SetDefault("ALLOWED_EXTENSIONS", ".jpg,.jpeg,.png,.gif,.webp")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLER_RATIO", 1.0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTAlgorithm != "HS256" {
		return fmt.Errorf("unsupported JWT_ALGORITHM %q (only HS256 is supported)", c.JWTAlgorithm)
	}
	if c.TokenLifetimeMinutes <= 0 {
		return errors.New("TOKEN_LIFETIME_MINUTES must be positive")
	}
	if c.MaxUploadSize <= 0 {
		return errors.New("MAX_UPLOAD_SIZE must be positive")
	}
	if len(c.AllowedExtensionSet()) == 0 {
		return errors.New("ALLOWED_EXTENSIONS must name at least one extension")
	}

	isProduction := c.Env == "production" || c.Env == "prod"

	if isProduction {
		if c.JWTSecret == "your-secret-key-change-in-production" {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			log.Println("WARNING: DB_SSLMODE is 'disable' in production. It is highly recommended to use SSL for database connections.")
		}
	} else if len(c.JWTSecret) < 32 {
		log.Println("WARNING: JWT_SECRET is shorter than 32 characters. Consider using a stronger secret for production.")
	}

	return nil
}

// AllowedExtensionSet parses ALLOWED_EXTENSIONS into a lowercase lookup set.
// Entries are normalized to carry a leading dot.
func (c *Config) AllowedExtensionSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, ext := range strings.Split(c.AllowedExtensions, ",") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// TokenLifetime returns the configured session token lifetime.
func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// DatabaseDSN builds the PostgreSQL connection string.
func (c *Config) DatabaseDSN() string {
	sslMode := c.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode,
	)
}

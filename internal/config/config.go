package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	AppPort string

	// Storage
	DataDir      string
	StoreBackend string // json, memory, bolt, sqlite, postgres
	DatabaseDSN  string
	AtomicWrites bool

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	RabbitMQURL string // empty disables event publishing
	CORSOrigins string

	LogEnv   string
	LogLevel string

	MaxUploadMB int
}

const devJWTSecret = "dev_jwt_secret"

// Load reads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("STORE_BACKEND", "json")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("STORE_ATOMIC_WRITES", false)
	v.SetDefault("JWT_SECRET", devJWTSecret)
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOG_ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_UPLOAD_MB", 10)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:      v.GetString("APP_PORT"),
		DataDir:      v.GetString("DATA_DIR"),
		StoreBackend: strings.ToLower(v.GetString("STORE_BACKEND")),
		DatabaseDSN:  v.GetString("DATABASE_DSN"),
		AtomicWrites: v.GetBool("STORE_ATOMIC_WRITES"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		TokenTTL:     v.GetDuration("TOKEN_TTL"),
		RabbitMQURL:  v.GetString("RABBITMQ_URL"),
		CORSOrigins:  v.GetString("CORS_ORIGINS"),
		LogEnv:       v.GetString("LOG_ENV"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		MaxUploadMB:  v.GetInt("MAX_UPLOAD_MB"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.LogEnv == "prod" && cfg.JWTSecret == devJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set when LOG_ENV=prod")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.StoreBackend == "postgres" && cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required for the postgres backend")
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 10
	}

	return cfg, nil
}

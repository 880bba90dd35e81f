package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Server  ServerConfig
	Assist  AssistConfig
	Session SessionConfig
	OTEL    OTELConfig
}

// AppConfig holds process-wide settings
type AppConfig struct {
	Name     string `validate:"required"`
	Env      string `validate:"required"`
	LogLevel string `validate:"oneof=trace debug info warn error"`
}

// ServerConfig holds session gateway configuration
type ServerConfig struct {
	Host           string
	Port           int `validate:"min=1,max=65535"`
	AllowedOrigins []string
}

// AssistConfig holds the backend assistant endpoint configuration
type AssistConfig struct {
	BaseURL string `validate:"required,url"`
	// Timeout of zero leaves requests unbounded
	Timeout time.Duration `validate:"min=0"`
}

// SessionConfig holds defaults applied to every new session
type SessionConfig struct {
	DefaultPatientID string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables.
// A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "care-coordinator-assist"),
			Env:      getEnv("APP_ENV", "development"),
			LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		},
		Assist: AssistConfig{
			BaseURL: strings.TrimRight(getEnv("ASSIST_BASE_URL", "http://localhost:5050"), "/"),
			Timeout: getEnvAsDuration("ASSIST_TIMEOUT", 0),
		},
		Session: SessionConfig{
			DefaultPatientID: getEnv("PATIENT_ID", "1"),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "care-coordinator-assist"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ServerAddr returns the gateway listen address
func (c *ServerConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	out := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

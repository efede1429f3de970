package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Gemini    GeminiConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
	Audit     AuditConfig
	Database  DatabaseConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	AllowOrigins string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type GeminiConfig struct {
	APIKey string
	Model  string
	// ThinkingBudget is sent only when >= 0.
	ThinkingBudget int
	// Gap-analysis overrides.
	MaxTokens   int
	Temperature float64
}

type UploadConfig struct {
	MaxFileSize int64
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

type AuditConfig struct {
	Enabled bool
	Workers int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

const defaultModel = "gemini-2.5-flash"

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	apiKey := getEnv("GOOGLE_API_KEY", "")
	if apiKey == "" {
		apiKey = getEnv("GEMINI_API_KEY", "")
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5000"),
			Env:          getEnv("ENV", "production"),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", "60s"),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", "60s"),
		},
		Log: LogConfig{
			JSON:  getEnvAsBool("LOG_JSON", false),
			Debug: getEnvAsBool("LOG_DEBUG", false),
		},
		Gemini: GeminiConfig{
			APIKey:         strings.TrimSpace(apiKey),
			Model:          getEnv("GEMINI_MODEL", defaultModel),
			ThinkingBudget: getEnvAsInt("GEMINI_THINKING_BUDGET", -1),
			MaxTokens:      getEnvAsInt("MAX_TOKENS", 2000),
			Temperature:    getEnvAsFloat("TEMPERATURE", 0.3),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		RateLimit: RateLimitConfig{
			Max:    getEnvAsInt("RATE_LIMIT_MAX", 30),
			Window: getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),
		},
		Audit: AuditConfig{
			Enabled: getEnvAsBool("AUDIT_ENABLED", false),
			Workers: getEnvAsInt("AUDIT_WORKERS", 2),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "portfolio_analyzer"),
		},
	}
}

// IsDevelopment reports whether upstream error details may be returned to clients.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Server.Env, "development")
}

// GeminiConfigured reports whether a credential is present.
func (c *Config) GeminiConfigured() bool {
	return c.Gemini.APIKey != ""
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

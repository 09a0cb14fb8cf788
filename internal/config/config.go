// Package config loads application settings from the environment.
// A .env file is read first when present; real environment variables win.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// GetBoolEnv returns a bool environment variable or a default value.
func GetBoolEnv(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

type ServerConfig struct {
	Port           string
	AllowOrigins   string
	RateLimitMax   int
	RateLimitEvery time.Duration
}

type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled reports whether a Redis host was configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type FeeConfig struct {
	// Rate is kept as a decimal string so it never passes through float64.
	Rate  string
	Scale int
}

type BalanceConfig struct {
	StoreTimeout time.Duration
	MaskKey      string
}

type LogConfig struct {
	Level  string
	Format string
	Prefix string
}

// Config is built once at startup and passed down explicitly.
type Config struct {
	Env     string
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	Fee     FeeConfig
	Balance BalanceConfig
	Log     LogConfig
}

// Load reads the full application configuration from the environment.
func Load() *Config {
	return &Config{
		Env: GetEnv("ENV", "development"),
		Server: ServerConfig{
			Port:           GetEnv("PORT", "3000"),
			AllowOrigins:   GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
			RateLimitMax:   GetIntEnv("RATE_LIMIT_MAX", 30),
			RateLimitEvery: GetDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		},
		DB: DBConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "tradedesk"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
			TTL:      GetDurationEnv("CACHE_TTL", 5*time.Minute),
		},
		Fee: FeeConfig{
			Rate:  GetEnv("FEE_RATE", "0.015"),
			Scale: GetIntEnv("FEE_SCALE", 2),
		},
		Balance: BalanceConfig{
			StoreTimeout: GetDurationEnv("STORE_TIMEOUT", 5*time.Second),
			MaskKey:      GetEnv("MASK_KEY", ""),
		},
		Log: LogConfig{
			Level:  GetEnv("LOG_LEVEL", "info"),
			Format: strings.ToLower(GetEnv("LOG_FORMAT", "text")),
			Prefix: GetEnv("LOG_PREFIX", "tradedesk"),
		},
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации клиента
type Config struct {
	APIBaseURL  string        `env:"API_BASE_URL"`
	GeocodeURL  string        `env:"GEOCODE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`
	HTTPPort    string        `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`

	// Incidents
	PerPage     int           `env:"PER_PAGE" envDefault:"10"`
	CacheMaxAge time.Duration `env:"CACHE_MAX_AGE" envDefault:"5m"`

	// Storage Config
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	StorageDSN    string `env:"STORAGE_DSN" envDefault:"citizen_report.db"`
	DatabaseURL   string `env:"DATABASE_URL"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Notify Config
	NotifyMode       string        `env:"NOTIFY_MODE" envDefault:"direct"`
	NotifyMaxRetries int           `env:"NOTIFY_MAX_RETRIES" envDefault:"3"`
	NotifyBaseDelay  time.Duration `env:"NOTIFY_BASE_DELAY" envDefault:"1s"`

	// API Keys for the local gateway
	APIKeys []string `env:"API_KEYS"`
}

const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"

	NotifyDirect = "direct"
	NotifyQueue  = "queue"
)

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		APIBaseURL:       strings.TrimRight(os.Getenv("API_BASE_URL"), "/"),
		GeocodeURL:       strings.TrimRight(getEnv("GEOCODE_URL", "https://nominatim.openstreetmap.org"), "/"),
		HTTPTimeout:      getEnvAsDuration("HTTP_TIMEOUT", 15*time.Second),
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		PerPage:          getEnvAsInt("PER_PAGE", 10),
		CacheMaxAge:      getEnvAsDuration("CACHE_MAX_AGE", 5*time.Minute),
		StorageDriver:    strings.ToLower(getEnv("STORAGE_DRIVER", StorageSQLite)),
		StorageDSN:       getEnv("STORAGE_DSN", "citizen_report.db"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		NotifyMode:       strings.ToLower(getEnv("NOTIFY_MODE", NotifyDirect)),
		NotifyMaxRetries: getEnvAsInt("NOTIFY_MAX_RETRIES", 3),
		NotifyBaseDelay:  getEnvAsDuration("NOTIFY_BASE_DELAY", time.Second),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные и взаимозависимые параметры
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL environment variable is required")
	}
	if c.PerPage < 1 || c.PerPage > 100 {
		return fmt.Errorf("PER_PAGE must be between 1 and 100, got %d", c.PerPage)
	}
	if c.CacheMaxAge <= 0 {
		return fmt.Errorf("CACHE_MAX_AGE must be positive")
	}

	switch c.StorageDriver {
	case StorageMemory, StorageSQLite, StorageRedis:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.NotifyMode {
	case NotifyDirect, NotifyQueue:
	default:
		return fmt.Errorf("unknown NOTIFY_MODE %q", c.NotifyMode)
	}
	return nil
}

// NeedsRedis сообщает, нужен ли клиенту Redis при текущих настройках
func (c *Config) NeedsRedis() bool {
	return c.StorageDriver == StorageRedis || c.NotifyMode == NotifyQueue
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/yukikurage/opsboard/internal/constants"
)

type Config struct {
	Port              string
	DBDriver          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	RedisHost         string
	RedisPort         string
	SessionSecret     string
	GinMode           string
	OwnerUsername     string
	OwnerPasswordHash string
	TaskCacheTTL      time.Duration
}

func Load() *Config {
	driver := getEnv("DB_DRIVER", "mysql")
	defaultPort := "3306"
	if driver == "postgres" {
		defaultPort = "5432"
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		DBDriver:          driver,
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", defaultPort),
		DBUser:            getEnv("DB_USER", "boarduser"),
		DBPassword:        getEnv("DB_PASSWORD", "boardpassword"),
		DBName:            getEnv("DB_NAME", "opsboard"),
		DBSSLMode:         getEnv("DB_SSL_MODE", "disable"),
		RedisHost:         getEnv("REDIS_HOST", "localhost"),
		RedisPort:         getEnv("REDIS_PORT", "6379"),
		SessionSecret:     getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:           getEnv("GIN_MODE", "debug"),
		OwnerUsername:     getEnv("OWNER_USERNAME", "owner"),
		OwnerPasswordHash: getEnv("OWNER_PASSWORD_HASH", ""),
		TaskCacheTTL:      getEnvAsDuration("TASK_CACHE_TTL", constants.DefaultTaskCacheTTL),
	}
}

// RedisAddr returns host:port of the Redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// AuthEnabled reports whether the owner login is configured. Without a
// password hash the API runs open, which is only meant for local use.
func (c *Config) AuthEnabled() bool {
	return c.OwnerPasswordHash != ""
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings ("90s", "5m") or a plain
// number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	if seconds := getEnvAsInt(key, -1); seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"rento/constants"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Storage    StorageConfig
	Redis      RedisConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Cloudinary CloudinaryConfig
	Jobs       JobsConfig
}

type ServerConfig struct {
	Port          string
	Env           string
	PublicBaseURL string
}

type LogConfig struct {
	Level string
}

// StorageConfig picks the backend holding the collection blobs
type StorageConfig struct {
	Driver  string
	DataDir string
}

type RedisConfig struct {
	Addr      string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

type AuthConfig struct {
	JWTSecret           string
	SessionTTL          time.Duration
	SessionCacheSize    int
	DefaultUserEmail    string
	DefaultUserPassword string
}

type CloudinaryConfig struct {
	URL string
}

type JobsConfig struct {
	TicketReminderCron string
}

// Load reads .env when present, then the process environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:          getEnv("PORT", "8083"),
			Env:           getEnv("APP_ENV", "development"),
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Driver:  getEnv("STORAGE_DRIVER", constants.StorageFile),
			DataDir: getEnv("DATA_DIR", "data"),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
			Username:  getEnv("REDIS_USER", ""),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "rental_"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "rento"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			TimeZone: getEnv("DB_TIMEZONE", "UTC"),
		},
		Auth: AuthConfig{
			JWTSecret:           getEnv("JWT_SECRET", ""),
			SessionTTL:          getEnvAsDuration("SESSION_TTL", 72*time.Hour),
			SessionCacheSize:    getEnvAsInt("SESSION_CACHE_SIZE", 10000),
			DefaultUserEmail:    getEnv("DEFAULT_USER_EMAIL", "owner@rento.local"),
			DefaultUserPassword: getEnv("DEFAULT_USER_PASSWORD", "12345"),
		},
		Cloudinary: CloudinaryConfig{
			URL: getEnv("CLOUDINARY_URL", ""),
		},
		Jobs: JobsConfig{
			TicketReminderCron: getEnv("TICKET_REMINDER_CRON", "0 8 * * *"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case constants.StorageFile, constants.StorageRedis, constants.StoragePostgres, constants.StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Auth.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		c.Auth.JWTSecret = "rento-dev-secret"
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

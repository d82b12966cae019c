package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Catalog  CatalogConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	Path         string
	QueryTimeout time.Duration
}

// GetDSN renders the connection string for the configured driver.
func (d DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
		)
	case "sqlite":
		return d.Path
	default:
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4",
			d.User, d.Password, d.Host, d.Port, d.Name,
		)
	}
}

type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	Enabled   bool
	ReportTTL time.Duration
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
	Enabled     bool
}

type CORSConfig struct {
	AllowedOrigins string
}

type CatalogConfig struct {
	// Path overrides the embedded catalog when set.
	Path string
}

type LogConfig struct {
	Verbose bool
	Dir     string
}

type MetricsConfig struct {
	Addr string
}

var drivers = map[string]int{
	"mysql":    3306,
	"postgres": 5432,
	"sqlite":   0,
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	serverPort, err := getIntEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", "mysql"))
	defaultPort, ok := drivers[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	dbPort, err := getIntEnv("DB_PORT", defaultPort)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	queryTimeout, err := getDurationEnv("DB_QUERY_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_QUERY_TIMEOUT: %w", err)
	}

	redisPort, err := getIntEnv("REDIS_PORT", 6379)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}

	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	reportTTL, err := getDurationEnv("REPORT_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_CACHE_TTL: %w", err)
	}

	expiry, err := getIntEnv("JWT_EXPIRY_HOURS", 24)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_HOURS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: serverPort,
		},
		Database: DatabaseConfig{
			Driver:       driver,
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         dbPort,
			User:         getEnv("DB_USER", "securecheck"),
			Password:     getEnv("DB_PASSWORD", "securecheck_dev_password"),
			Name:         getEnv("DB_NAME", "securelogs"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			Path:         getEnv("DB_PATH", "securecheck.db"),
			QueryTimeout: queryTimeout,
		},
		Redis: RedisConfig{
			Host:      getEnv("REDIS_HOST", "localhost"),
			Port:      redisPort,
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        redisDB,
			Enabled:   getBoolEnv("REDIS_ENABLED", true),
			ReportTTL: reportTTL,
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "securecheck-dev-secret"),
			ExpiryHours: expiry,
			Enabled:     getBoolEnv("AUTH_ENABLED", false),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", ""),
		},
		Log: LogConfig{
			Verbose: getBoolEnv("LOG_VERBOSE", false),
			Dir:     getEnv("LOG_DIR", ""),
		},
		Metrics: MetricsConfig{
			Addr: getEnv("METRICS_ADDR", ":9090"),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func getBoolEnv(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}

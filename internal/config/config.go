package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/validator"
	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
	Storage  StorageConfig
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	AutoMigrate bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
	Timezone       string
}

// PayrollConfig holds payroll engine and scheduling settings
type PayrollConfig struct {
	State            string
	DefaultMetro     bool
	ScheduledLogin   string
	StrictAttendance bool
	Workers          int
	AutoRun          bool
	CompanyName      string
}

// StorageConfig holds where generated payslips are written
type StorageConfig struct {
	Enabled  bool
	BasePath string
	BaseURL  string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	dbMaxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	autoMigrate, err := getEnvBool("DB_AUTO_MIGRATE", false)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        dbPort,
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "hrms_payroll"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		MaxConns:    dbMaxConns,
		AutoMigrate: autoMigrate,
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		Timezone:       getEnv("APP_TIMEZONE", "Asia/Kolkata"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Payroll configuration
	strict, err := getEnvBool("PAYROLL_STRICT_ATTENDANCE", false)
	if err != nil {
		return nil, err
	}
	workers, err := getEnvInt("PAYROLL_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	autoRun, err := getEnvBool("PAYROLL_AUTO_RUN", false)
	if err != nil {
		return nil, err
	}
	defaultMetro, err := getEnvBool("PAYROLL_DEFAULT_METRO", true)
	if err != nil {
		return nil, err
	}

	config.Payroll = PayrollConfig{
		State:            getEnv("PAYROLL_STATE", payroll.DefaultState),
		DefaultMetro:     defaultMetro,
		ScheduledLogin:   getEnv("PAYROLL_SCHEDULED_LOGIN", "09:45"),
		StrictAttendance: strict,
		Workers:          workers,
		AutoRun:          autoRun,
		CompanyName:      getEnv("PAYROLL_COMPANY_NAME", "CMLabs"),
	}

	// Storage configuration
	storageEnabled, err := getEnvBool("STORAGE_ENABLED", true)
	if err != nil {
		return nil, err
	}

	config.Storage = StorageConfig{
		Enabled:  storageEnabled,
		BasePath: getEnv("STORAGE_BASE_PATH", "./storage"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/files"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be a duration: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE is not a known time zone: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if !validator.IsValidClock(c.Payroll.ScheduledLogin) {
		return fmt.Errorf("PAYROLL_SCHEDULED_LOGIN must be HH:MM, got %q", c.Payroll.ScheduledLogin)
	}
	if c.Payroll.Workers < 1 {
		return fmt.Errorf("PAYROLL_WORKERS must be at least 1")
	}
	if !payroll.SupportsState(c.Payroll.State) {
		slog.Warn("No professional tax table for state, using default", "state", c.Payroll.State, "default", payroll.DefaultState)
	}
	if c.Storage.Enabled && c.Storage.BasePath == "" {
		return fmt.Errorf("STORAGE_BASE_PATH is required when storage is enabled")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// LogLevel parses LOG_LEVEL.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.App.LogLevel, err)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

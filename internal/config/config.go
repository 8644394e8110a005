package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig holds the tunables of the attendance classifier and the payroll
// cycle processor. All durations are in hours of scheduled work, not wall time.
type PayrollConfig struct {
	// GraceHours is subtracted from expected hours before a day counts as complete.
	GraceHours float64
	// LateGraceHours is the wider margin under which a short day is late, not incomplete.
	LateGraceHours float64
	// MaxCycleDays caps the day-walk of one payroll cycle.
	MaxCycleDays int
	// PolicyWindowDays caps the span a cycle may be created with.
	PolicyWindowDays int
	// BatchWorkers bounds concurrent per-employee computations.
	BatchWorkers int
	// CompensationLookbackDays is the window scanned for worked days that excuse
	// a weekend or holiday absence. 0 disables the policy.
	CompensationLookbackDays int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, relying on environment")
	}

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	dbMinConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hr_backoffice"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
		MinConns: dbMinConns,
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	graceHours, err := strconv.ParseFloat(getEnv("PAYROLL_GRACE_HOURS", "0.25"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_GRACE_HOURS: %w", err)
	}
	lateGraceHours, err := strconv.ParseFloat(getEnv("PAYROLL_LATE_GRACE_HOURS", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_LATE_GRACE_HOURS: %w", err)
	}
	maxCycleDays, err := strconv.Atoi(getEnv("PAYROLL_MAX_CYCLE_DAYS", "40"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_MAX_CYCLE_DAYS: %w", err)
	}
	policyWindowDays, err := strconv.Atoi(getEnv("PAYROLL_POLICY_WINDOW_DAYS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_POLICY_WINDOW_DAYS: %w", err)
	}
	batchWorkers, err := strconv.Atoi(getEnv("PAYROLL_BATCH_WORKERS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_BATCH_WORKERS: %w", err)
	}
	lookbackDays, err := strconv.Atoi(getEnv("PAYROLL_COMPENSATION_LOOKBACK_DAYS", "6"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_COMPENSATION_LOOKBACK_DAYS: %w", err)
	}

	config.Payroll = PayrollConfig{
		GraceHours:               graceHours,
		LateGraceHours:           lateGraceHours,
		MaxCycleDays:             maxCycleDays,
		PolicyWindowDays:         policyWindowDays,
		BatchWorkers:             batchWorkers,
		CompensationLookbackDays: lookbackDays,
	}

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
	if c.Payroll.MaxCycleDays <= 0 {
		return fmt.Errorf("PAYROLL_MAX_CYCLE_DAYS must be positive")
	}
	if c.Payroll.LateGraceHours < c.Payroll.GraceHours {
		return fmt.Errorf("PAYROLL_LATE_GRACE_HOURS must not be smaller than PAYROLL_GRACE_HOURS")
	}
	if c.Payroll.BatchWorkers <= 0 {
		return fmt.Errorf("PAYROLL_BATCH_WORKERS must be positive")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

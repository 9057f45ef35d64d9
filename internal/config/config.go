package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
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

// PayrollConfig holds the payroll engine's tunables.
type PayrollConfig struct {
	// AbsencePenalty is the flat amount deducted per absent day from fixed
	// salaries.
	AbsencePenalty decimal.Decimal
	// AttendanceCutoff is the "HH:MM" wall-clock time after which the daily
	// absence sweep may run.
	AttendanceCutoff string
	// WorkdayStart is the "HH:MM" time a clock-in must beat to count as
	// present rather than late.
	WorkdayStart string
	// SweepInterval is how often the scheduler checks whether the sweep is
	// due.
	SweepInterval time.Duration
}

func Load() (*Config, error) {
	// Missing .env is fine, variables may come from the environment.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "opspay-payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Payroll configuration
	absencePenalty, err := decimal.NewFromString(getEnv("ABSENCE_PENALTY", "15000"))
	if err != nil {
		return nil, fmt.Errorf("invalid ABSENCE_PENALTY: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("ATTENDANCE_SWEEP_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_SWEEP_INTERVAL: %w", err)
	}

	config.Payroll = PayrollConfig{
		AbsencePenalty:   absencePenalty,
		AttendanceCutoff: getEnv("ATTENDANCE_CUTOFF", "18:00"),
		WorkdayStart:     getEnv("WORKDAY_START", "09:00"),
		SweepInterval:    sweepInterval,
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
	if c.Payroll.AbsencePenalty.IsNegative() {
		return fmt.Errorf("ABSENCE_PENALTY must not be negative")
	}
	if _, err := time.Parse("15:04", c.Payroll.AttendanceCutoff); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_CUTOFF: %w", err)
	}
	if _, err := time.Parse("15:04", c.Payroll.WorkdayStart); err != nil {
		return fmt.Errorf("invalid WORKDAY_START: %w", err)
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

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"monthlyBars/internal/adapters/logger" // Import the logger package for LogLevel
)

// Sink names accepted in SINKS.
const (
	SinkCSV    = "csv"
	SinkSQLite = "sqlite"
)

// Log formats accepted in LOG_FORMAT.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all application configuration.
type Config struct {
	// Pipeline
	InputPath       string
	OutputDir       string
	ExpectedPeriods int      // Monthly records required per ticker; 0 disables the check
	Sinks           []string // Output sinks, in write order

	// Database
	DBPath string

	// Logging
	LogLevel  logger.LogLevel // Use the LogLevel type from the logger adapter
	LogFormat string

	// Binance fetch tool
	APIKey       string
	SecretKey    string
	IsTestnet    bool
	FetchSymbols []string
	FetchStart   time.Time // Inclusive
	FetchEnd     time.Time // Exclusive
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()
	return loadConfigAt(time.Now().UTC())
}

func loadConfigAt(now time.Time) (*Config, error) {
	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Pipeline
	cfg.InputPath = getEnv("INPUT_PATH", "data/output_file.csv")
	cfg.OutputDir = getEnv("OUTPUT_DIR", "output")

	cfg.ExpectedPeriods, err = getEnvAsIntRequired("EXPECTED_MONTHS", 24)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid EXPECTED_MONTHS: %v", err))
	} else if cfg.ExpectedPeriods < 0 {
		errs = append(errs, "EXPECTED_MONTHS cannot be negative")
	}

	cfg.Sinks = getEnvAsList("SINKS", []string{SinkCSV})
	if len(cfg.Sinks) == 0 {
		errs = append(errs, "SINKS must name at least one sink")
	}
	for i, s := range cfg.Sinks {
		s = strings.ToLower(s)
		cfg.Sinks[i] = s
		if s != SinkCSV && s != SinkSQLite {
			errs = append(errs, fmt.Sprintf("unknown sink %q in SINKS (want csv or sqlite)", s))
		}
	}

	// Database
	cfg.DBPath = getEnv("DB_PATH", "./data/monthly.db")

	// Logging
	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))
	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", LogFormatText))
	if cfg.LogFormat != LogFormatText && cfg.LogFormat != LogFormatJSON {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat))
	}

	// Binance fetch tool (public endpoints work without keys)
	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	cfg.IsTestnet = getEnvAsBool("IS_TESTNET", false)
	cfg.FetchSymbols = getEnvAsList("FETCH_SYMBOLS", []string{"ETHUSDT"})
	for i, sym := range cfg.FetchSymbols {
		cfg.FetchSymbols[i] = strings.ToUpper(sym)
	}

	// Default window: the last two full calendar years
	thisYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	cfg.FetchStart, err = getEnvAsDate("FETCH_START", thisYear.AddDate(-2, 0, 0))
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid FETCH_START: %v", err))
	}
	cfg.FetchEnd, err = getEnvAsDate("FETCH_END", thisYear)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid FETCH_END: %v", err))
	}
	if !cfg.FetchStart.Before(cfg.FetchEnd) {
		errs = append(errs, "FETCH_START must be before FETCH_END")
	}

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// HasSink reports whether name is among the configured sinks.
func (c *Config) HasSink(name string) bool {
	for _, s := range c.Sinks {
		if s == name {
			return true
		}
	}
	return false
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvAsDate(key string, defaultValue time.Time) (time.Time, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.Parse("2006-01-02", valueStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	AppMode    string
	Port       string
	Database   DatabaseConfig
	JWT        JWTConfig
	Cookie     CookieConfig
	Simulation SimulationConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// SimulationConfig holds every tunable of the banking simulation.
// Rates are annual fractions, amounts are currency values.
type SimulationConfig struct {
	SlotCount            int
	DaysPerYear          int
	RealPerGameDay       time.Duration
	TickInterval         time.Duration
	DailyWithdrawalLimit decimal.Decimal
	StartingCash         decimal.Decimal
	Sp500InitialPrice    decimal.Decimal
	AnnualGrowthRate     decimal.Decimal
	AnnualDividendRate   decimal.Decimal
	MortgageAnnualRate   decimal.Decimal
	BankruptcyGraceDays  int
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:    appMode,
		Port:       getEnv("PORT", "3000"),
		Database:   loadDatabaseConfig(appMode),
		JWT:        loadJWTConfig(appMode),
		Cookie:     loadCookieConfig(appMode),
		Simulation: loadSimulationConfig(),
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "alkicorp_banksim"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "60"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadSimulationConfig loads the simulation tunables
func loadSimulationConfig() SimulationConfig {
	slotCount, _ := strconv.Atoi(getEnv("SIM_SLOT_COUNT", "3"))
	daysPerYear, _ := strconv.Atoi(getEnv("SIM_DAYS_PER_YEAR", "12"))
	realMsPerDay, _ := strconv.Atoi(getEnv("SIM_REAL_MS_PER_GAME_DAY", "60000"))
	tickMs, _ := strconv.Atoi(getEnv("SIM_TICK_MS", "5000"))
	graceDays, _ := strconv.Atoi(getEnv("SIM_BANKRUPTCY_GRACE_DAYS", "2"))

	return SimulationConfig{
		SlotCount:            slotCount,
		DaysPerYear:          daysPerYear,
		RealPerGameDay:       time.Duration(realMsPerDay) * time.Millisecond,
		TickInterval:         time.Duration(tickMs) * time.Millisecond,
		DailyWithdrawalLimit: decimalEnv("SIM_DAILY_WITHDRAWAL_LIMIT", "500.00"),
		StartingCash:         decimalEnv("SIM_STARTING_CASH", "100000.00"),
		Sp500InitialPrice:    decimalEnv("SIM_SP500_INITIAL_PRICE", "5000.00"),
		AnnualGrowthRate:     decimalEnv("SIM_ANNUAL_GROWTH_RATE", "0.10"),
		AnnualDividendRate:   decimalEnv("SIM_ANNUAL_DIVIDEND_RATE", "0.03"),
		MortgageAnnualRate:   decimalEnv("SIM_MORTGAGE_ANNUAL_RATE", "0.06"),
		BankruptcyGraceDays:  graceDays,
	}
}

// decimalEnv reads a decimal environment variable, falling back to the
// default on parse failure so a typo never silently becomes zero.
func decimalEnv(key, defaultValue string) decimal.Decimal {
	raw := getEnv(key, defaultValue)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		d, _ = decimal.NewFromString(defaultValue)
	}
	return d
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://banksim.alkicorp.com"
	}
	return origins
}

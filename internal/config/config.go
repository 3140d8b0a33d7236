package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	APIKey string // API key guarding admin routes

	TrustedProxies []string // proxy IPs whose X-Forwarded-For headers are honored

	CatalogPath string // JSON file with case reward tables

	// Engine policy knobs
	HouseFactor       float64       // multiplicative discount on fair upgrade odds, (0, 1]
	GrantRetries      int           // bounded retries for reward grants after a committed debit
	GrantRetryBackoff time.Duration // base backoff between grant retries
	ReferralBonus     int64         // minor units credited to a referrer per signup
	RecentWinsSize    int           // LRU capacity for the recent-wins feed
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "casevault"),
		APIKey:      getEnv("API_KEY", ""),
		CatalogPath: getEnv("CATALOG_PATH", DefaultCatalogPath),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	houseFactor, err := strconv.ParseFloat(getEnv("HOUSE_FACTOR", DefaultHouseFactorStr), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid HOUSE_FACTOR value: %w", err)
	}
	if houseFactor <= 0 || houseFactor > 1 {
		return nil, fmt.Errorf("HOUSE_FACTOR must be in (0, 1], got %v", houseFactor)
	}
	cfg.HouseFactor = houseFactor

	retries, err := strconv.Atoi(getEnv("GRANT_RETRIES", strconv.Itoa(DefaultGrantRetries)))
	if err != nil {
		return nil, fmt.Errorf("invalid GRANT_RETRIES value: %w", err)
	}
	cfg.GrantRetries = retries

	backoffMs, err := strconv.Atoi(getEnv("GRANT_RETRY_BACKOFF_MS", strconv.Itoa(DefaultGrantRetryBackoffMs)))
	if err != nil {
		return nil, fmt.Errorf("invalid GRANT_RETRY_BACKOFF_MS value: %w", err)
	}
	cfg.GrantRetryBackoff = time.Duration(backoffMs) * time.Millisecond

	bonus, err := strconv.ParseInt(getEnv("REFERRAL_BONUS", strconv.FormatInt(DefaultReferralBonus, 10)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid REFERRAL_BONUS value: %w", err)
	}
	cfg.ReferralBonus = bonus

	recentSize, err := strconv.Atoi(getEnv("RECENT_WINS_SIZE", strconv.Itoa(DefaultRecentWinsSize)))
	if err != nil {
		return nil, fmt.Errorf("invalid RECENT_WINS_SIZE value: %w", err)
	}
	cfg.RecentWinsSize = recentSize

	if raw := getEnv("TRUSTED_PROXIES", ""); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

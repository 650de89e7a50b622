package utils

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all application configuration loaded from environment
// variables, with a .env file as the local-dev source.
type Config struct {
	ServerPort int

	ListingsBaseURL string
	ListingsAPIKey  string

	OracleURL    string
	OracleAPIKey string

	// static bearer secret for the protected recompute path
	AdminSecret string
	// optional admin password enabling the JWT login flow
	AdminPassword string

	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration

	// "tiered" (default) or "simple"
	ValuationModel string
}

// Load reads the .env file (if present) and returns a populated Config.
func Load(logger *logrus.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using system env vars")
	}

	return &Config{
		ServerPort: getEnvInt("EXITLENS_PORT", 8080),

		ListingsBaseURL: getEnv("EXITLENS_LISTINGS_URL", "https://api.acquisitions.example.com/v1"),
		ListingsAPIKey:  getEnv("EXITLENS_LISTINGS_API_KEY", ""),

		OracleURL:    getEnv("EXITLENS_ORACLE_URL", ""),
		OracleAPIKey: getEnv("EXITLENS_ORACLE_API_KEY", ""),

		AdminSecret:   getEnv("EXITLENS_ADMIN_TOKEN", ""),
		AdminPassword: getEnv("EXITLENS_ADMIN_PASSWORD", ""),

		JWTSecret:   getEnv("EXITLENS_JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:   getEnv("EXITLENS_JWT_ISSUER", "exitlens"),
		JWTDuration: time.Duration(getEnvInt("EXITLENS_JWT_TTL_HOURS", 24)) * time.Hour,

		ValuationModel: getEnv("EXITLENS_VALUATION_MODEL", "tiered"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

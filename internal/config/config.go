package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI                string
	DBName                  string
	JWTSecret               string
	Port                    string
	LogLevel                string
	QueryTimeout            time.Duration
	MealLookupConcurrency   int
	BalanceLocation         *time.Location
	StrictStatusTransitions bool
}

// Load reads an optional .env file and then the process environment. It
// reports whether the .env file was loaded so the caller can log it.
func Load() (Config, bool, error) {
	dotenvLoaded := godotenv.Load() == nil

	cfg := Config{
		MongoURI:                getEnvOrDefault("MONGO_URI", ""),
		DBName:                  getEnvOrDefault("DB_NAME", "foodorder"),
		JWTSecret:               getEnvOrDefault("JWT_SECRET", ""),
		Port:                    getEnvOrDefault("PORT", "8080"),
		LogLevel:                getEnvOrDefault("LOG_LEVEL", "info"),
		QueryTimeout:            getDurationEnv("QUERY_TIMEOUT_SECONDS", 5, time.Second),
		MealLookupConcurrency:   getIntEnv("MEAL_LOOKUP_CONCURRENCY", 8),
		StrictStatusTransitions: getBoolEnv("STRICT_STATUS_TRANSITIONS", false),
	}

	if cfg.MongoURI == "" {
		return Config{}, dotenvLoaded, errors.New("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, dotenvLoaded, errors.New("JWT_SECRET is required")
	}

	loc, err := time.LoadLocation(getEnvOrDefault("BALANCE_TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, dotenvLoaded, err
	}
	cfg.BalanceLocation = loc

	return cfg, dotenvLoaded, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue)) * unit
}

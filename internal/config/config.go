package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver     string // "mysql" or "postgres"
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	JWTSecret    string
	GinMode      string
	Port         string
	LogFile      string
	RatePerTask  float64
	SeedAccounts bool
}

func Load() *Config {
	// .env is optional; deployed environments set variables directly
	_ = godotenv.Load()

	return &Config{
		DBDriver:     getEnv("DB_DRIVER", "mysql"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "3306"),
		DBUser:       getEnv("DB_USER", "taskbridge"),
		DBPassword:   getEnv("DB_PASSWORD", "taskbridge"),
		DBName:       getEnv("DB_NAME", "taskbridge"),
		JWTSecret:    getEnv("JWT_SECRET", "default-secret-key-change-me"),
		GinMode:      getEnv("GIN_MODE", "debug"),
		Port:         getEnv("PORT", "8080"),
		LogFile:      getEnv("LOG_FILE", "logs/taskbridge.log"),
		RatePerTask:  getEnvFloat("RATE_PER_TASK", 50.0),
		SeedAccounts: getEnvBool("SEED_ACCOUNTS", true),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

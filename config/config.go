package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/joho/godotenv"
)

type Config struct {
	// Remote API
	APIURL      string
	HTTPTimeout time.Duration

	// Pagination
	PageSize int

	// Session token storage
	TokenPath string
}

func Load() *Config {
	// A missing .env is fine, env vars may come from the environment itself.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("Could not read .env file: %v", err)
	}

	return &Config{
		APIURL:      getEnv("API_URL", "http://localhost:8080"),
		HTTPTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		PageSize:    getEnvInt("PAGE_SIZE", 10),
		TokenPath:   getEnv("TOKEN_PATH", defaultTokenPath()),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Warnf("Invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".afiliado_token"
	}
	return filepath.Join(home, ".afiliado", "token")
}

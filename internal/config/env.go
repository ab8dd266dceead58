package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by the CLI.
const (
	EnvDB      = "CATAPULT_DB"
	EnvSSHAddr = "CATAPULT_SSH_ADDR"
	EnvHostKey = "CATAPULT_HOST_KEY"
)

// LoadEnv loads a .env file from the working directory if present.
// A missing file is not an error.
func LoadEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return godotenv.Load()
}

// GetEnv returns the value of key, or fallback when unset.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func MustGetEnv(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		panic(fmt.Sprintf("environment variable %s is not set", key))
	}
	return value
}

func GetEnvOrDefault(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

// LoadEnvFileIfExists loads a .env-style file into the process environment,
// silently doing nothing when the file is absent (local dev convenience; the
// host deployment is expected to set real environment variables).
func LoadEnvFileIfExists(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Package config loads the game settings from profiles, an optional TOML
// file and FRUITSLICE_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvFloat parses a float variable. Unset or empty keeps fallback.
func GetEnvFloat(key string, fallback float64) (float64, error) {
	v := GetEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
	}
	return f, nil
}

// GetEnvInt64 parses an integer variable. Unset or empty keeps fallback.
func GetEnvInt64(key string, fallback int64) (int64, error) {
	v := GetEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
	}
	return n, nil
}

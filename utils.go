package main

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// getEnvDefault returns the environment value for key, or defaultValue when unset.
func getEnvDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("ignoring invalid environment value", "key", key, "value", value)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("ignoring invalid environment value", "key", key, "value", value)
		return defaultValue
	}
	return b
}

// getEnvDuration reads a Go duration such as "150ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("ignoring invalid environment value", "key", key, "value", value)
		return defaultValue
	}
	return d
}

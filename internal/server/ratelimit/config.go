package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when the environment leaves a setting unset.
const (
	DefaultLimit           = 10
	DefaultWindow          = time.Hour
	DefaultBurst           = 2
	DefaultCleanupInterval = 5 * time.Minute
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	// Limit generations per Window for one client, refilled continuously.
	Limit           int
	Window          time.Duration
	Burst           int
	CleanupInterval time.Duration
	Whitelist       map[string]bool
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         enabled,
		Limit:           getEnvInt("RATE_LIMIT_GENERATIONS", DefaultLimit),
		Window:          getEnvDuration("RATE_LIMIT_WINDOW", DefaultWindow),
		Burst:           getEnvInt("RATE_LIMIT_BURST", DefaultBurst),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", DefaultCleanupInterval),
		Whitelist:       parseIPList(getEnvString("RATE_LIMIT_WHITELIST", "")),
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}

package utils

import (
	"os"
	"strconv"
	"strings"

	"github.com/clausewise/clausewise-backend/internal/logger"
)

func GetEnv(key, defaultVal string, log *logger.Logger) string {
	if log != nil {
		log = log.With("env_var", key)
	}
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	return strings.TrimSpace(val)
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	if log != nil {
		log = log.With("env_var", key)
	}
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		if log != nil {
			log.Warn("Environment variable is not an integer, using default", "value", val, "default", defaultVal)
		}
		return defaultVal
	}
	return parsed
}

func GetEnvAsBool(key string, defaultVal bool, log *logger.Logger) bool {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return defaultVal
	}
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		if log != nil {
			log.Warn("Environment variable is not a boolean, using default", "env_var", key, "value", val, "default", defaultVal)
		}
		return defaultVal
	}
}

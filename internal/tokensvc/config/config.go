// Package config holds runtime configuration for the token service,
// sourced from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port          string
	SecureCookies bool
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port: fallback(os.Getenv("TOKENSVC_PORT"), "8090"),
	}

	secure := fallback(os.Getenv("TOKENSVC_SECURE_COOKIES"), "false")
	parsed, err := strconv.ParseBool(secure)
	if err != nil {
		return Config{}, fmt.Errorf("TOKENSVC_SECURE_COOKIES: %w", err)
	}
	cfg.SecureCookies = parsed

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

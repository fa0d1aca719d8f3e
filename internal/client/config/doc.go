// Package config loads runtime configuration for the demoboard client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the user directory API
//	-p string   base URL of the post board API
//	-l string   base URL of the book catalog API
//	-t string   base URL of the token service
//	-f string   path of the local overlay database file
//	-i int      outbound request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so the value can be
// either a string like "15s" or integer nanoseconds:
//
//	{
//	  "board_base_url": "https://jsonplaceholder.typicode.com",
//	  "token_service_url": "http://localhost:8090",
//	  "http_timeout": "15s"
//	}
//
// Primary API
//
//   - type Config                     — holds endpoint URLs, the overlay database path and the timeout
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config

package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/avorobjovs/demoboard/internal/flagx"
	"github.com/avorobjovs/demoboard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as
// a string like "15s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DirectoryBaseURL string         `json:"directory_base_url"`
	DirectoryAPIKey  string         `json:"directory_api_key"`
	BoardBaseURL     string         `json:"board_base_url"`
	LibraryBaseURL   string         `json:"library_base_url"`
	TokenServiceURL  string         `json:"token_service_url"`
	DatabaseDSN      string         `json:"database_dsn"`
	HTTPTimeout      timex.Duration `json:"http_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies set fields into the provided Config; omitted fields keep
//     their earlier values.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DirectoryBaseURL != "" {
		cfg.DirectoryBaseURL = jc.DirectoryBaseURL
	}
	if jc.DirectoryAPIKey != "" {
		cfg.DirectoryAPIKey = jc.DirectoryAPIKey
	}
	if jc.BoardBaseURL != "" {
		cfg.BoardBaseURL = jc.BoardBaseURL
	}
	if jc.LibraryBaseURL != "" {
		cfg.LibraryBaseURL = jc.LibraryBaseURL
	}
	if jc.TokenServiceURL != "" {
		cfg.TokenServiceURL = jc.TokenServiceURL
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = time.Duration(jc.HTTPTimeout.Duration)
	}
}

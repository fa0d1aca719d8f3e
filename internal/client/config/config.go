package config

import "time"

// Config holds runtime settings for the demoboard client.
//
// Fields:
//   - DirectoryBaseURL: base URL of the user directory API.
//   - DirectoryAPIKey: api key header value the directory API expects.
//   - BoardBaseURL: base URL of the post board API.
//   - LibraryBaseURL: base URL of the book catalog API.
//   - TokenServiceURL: base URL of the token service.
//   - DatabaseDSN: path of the local overlay database file.
//   - HTTPTimeout: per-request timeout for outbound calls.
type Config struct {
	DirectoryBaseURL string
	DirectoryAPIKey  string
	BoardBaseURL     string
	LibraryBaseURL   string
	TokenServiceURL  string
	DatabaseDSN      string
	HTTPTimeout      time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DirectoryBaseURL = "https://reqres.in/api"
	c.DirectoryAPIKey = "reqres-free-v1"
	c.BoardBaseURL = "https://jsonplaceholder.typicode.com"
	c.LibraryBaseURL = "https://openlibrary.org"
	c.TokenServiceURL = "http://localhost:8090"
	c.DatabaseDSN = "demoboard.db"
	c.HTTPTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://reqres.in/api", c.DirectoryBaseURL)
	assert.Equal(t, "reqres-free-v1", c.DirectoryAPIKey)
	assert.Equal(t, "https://jsonplaceholder.typicode.com", c.BoardBaseURL)
	assert.Equal(t, "https://openlibrary.org", c.LibraryBaseURL)
	assert.Equal(t, "http://localhost:8090", c.TokenServiceURL)
	assert.Equal(t, "demoboard.db", c.DatabaseDSN)
	assert.Equal(t, 15*time.Second, c.HTTPTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "https://reqres.in/api", cfg.DirectoryBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
}

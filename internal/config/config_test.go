package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JOBBOARD_DATABASE__URL", "postgres://localhost/jobboard")
	t.Setenv("JOBBOARD_JWT__SECRET_KEY", "test-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Server.MetricsPort)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenDuration)
	assert.Equal(t, "https://api.clerk.com/v1", cfg.Directory.BaseURL)
	assert.Equal(t, 5, cfg.Directory.LookupConcurrency)
	assert.True(t, cfg.Database.Migrate)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: "3000"
database:
  url: postgres://file-host/jobboard
jwt:
  secret_key: file-secret
directory:
  lookup_concurrency: 10
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	// Environment wins over the file.
	t.Setenv("JOBBOARD_SERVER__PORT", "4000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, "postgres://file-host/jobboard", cfg.Database.URL)
	assert.Equal(t, 10, cfg.Directory.LookupConcurrency)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("JOBBOARD_JWT__SECRET_KEY", "test-secret")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.url")
}

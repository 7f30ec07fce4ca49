// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML and TOML loading, env var expansion, defaults and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", `
server:
  http_addr: "0.0.0.0:3003"

database:
  path: "./test.db"

auth:
  token_secret: "a-very-secret-value"
  bcrypt_cost: 12

cors:
  allowed_origins:
    - "http://localhost:3000"
    - "https://blog.example.com"

logging:
  level: "debug"
  format: "json"

metrics:
  enabled: true
  path: "/internal/metrics"

testing:
  enable_reset: true
`)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3003", cfg.Server.HTTPAddr)
	assert.Equal(t, "./test.db", cfg.Database.Path)
	assert.Equal(t, "a-very-secret-value", cfg.Auth.TokenSecret)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, []string{"http://localhost:3000", "https://blog.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/internal/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.Testing.EnableReset)
}

func TestLoad_Defaults(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", `
database:
  path: ":memory:"
auth:
  token_secret: "s3cret"
`)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddr, cfg.Server.HTTPAddr)
	assert.Equal(t, DefaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, DefaultMetricsPath, cfg.Metrics.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.False(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Testing.EnableReset)
}

func TestLoad_TOML(t *testing.T) {
	configPath := writeConfig(t, "config.toml", `
[server]
http_addr = "127.0.0.1:4000"

[database]
path = "/tmp/blog.db"

[auth]
token_secret = "toml-secret"

[cors]
allowed_origins = ["*"]

[metrics]
enabled = true
`)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:4000", cfg.Server.HTTPAddr)
	assert.Equal(t, "/tmp/blog.db", cfg.Database.Path)
	assert.Equal(t, "toml-secret", cfg.Auth.TokenSecret)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_BLOG_SECRET", "from-the-environment")
	t.Setenv("TEST_BLOG_DB", "/var/lib/bloglist/blog.db")

	configPath := writeConfig(t, "config.yaml", `
database:
  path: "${TEST_BLOG_DB}"
auth:
  token_secret: "${TEST_BLOG_SECRET}"
`)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "from-the-environment", cfg.Auth.TokenSecret)
	assert.Equal(t, "/var/lib/bloglist/blog.db", cfg.Database.Path)
}

func TestLoad_UnsetSecretIsFatal(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", `
database:
  path: "./test.db"
auth:
  token_secret: "${TEST_BLOG_UNSET_SECRET_VARIABLE}"
`)

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.token_secret is required")
}

func TestLoad_DBPathOverride(t *testing.T) {
	t.Setenv("BLOGLIST_DB_PATH", "/override/blog.db")

	configPath := writeConfig(t, "config.yaml", `
database:
  path: "./test.db"
auth:
  token_secret: "s3cret"
`)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/override/blog.db", cfg.Database.Path)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "reading config file"))
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", "server:\n  http_addr: [unclosed\n")

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoad_InvalidTOML(t *testing.T) {
	configPath := writeConfig(t, "config.toml", "[server\nhttp_addr = 1\n")

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{
			Database: DatabaseConfig{Path: "./test.db"},
			Auth:     AuthConfig{TokenSecret: "s3cret"},
		}
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing http addr", mutate: func(c *Config) { c.Server.HTTPAddr = "" }, wantErr: "server.http_addr"},
		{name: "missing database path", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: "database.path"},
		{name: "missing secret", mutate: func(c *Config) { c.Auth.TokenSecret = "" }, wantErr: "auth.token_secret"},
		{name: "bcrypt cost too low", mutate: func(c *Config) { c.Auth.BcryptCost = 3 }, wantErr: "auth.bcrypt_cost"},
		{name: "bcrypt cost too high", mutate: func(c *Config) { c.Auth.BcryptCost = 32 }, wantErr: "auth.bcrypt_cost"},
		{name: "bcrypt cost min", mutate: func(c *Config) { c.Auth.BcryptCost = 4 }},
		{name: "unknown log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "unknown log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "uppercase log level", mutate: func(c *Config) { c.Logging.Level = "DEBUG" }},
		{name: "relative metrics path", mutate: func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Path = "metrics" }, wantErr: "metrics.path"},
		{name: "metrics path ignored when disabled", mutate: func(c *Config) { c.Metrics.Path = "metrics" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_EXPAND_A", "alpha")

	assert.Equal(t, "x-alpha-y", expandEnvVars("x-${TEST_EXPAND_A}-y"))
	assert.Equal(t, "x--y", expandEnvVars("x-${TEST_EXPAND_UNSET_VARIABLE}-y"))
	assert.Equal(t, "$TEST_EXPAND_A", expandEnvVars("$TEST_EXPAND_A"), "only braced form expands")
}

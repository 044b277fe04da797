package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config dir at an empty temp dir so a developer's
// own shesafe.toml cannot leak into the tests.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	for _, k := range []string{
		"SHESAFE_APP_ENV",
		"SHESAFE_API_BASE_URL",
		"SHESAFE_API_TIMEOUT",
		"SHESAFE_AUTH_TOKEN_STORE",
		"SHESAFE_PROXY_TARGET",
		"SHESAFE_PROXY_PREFIX",
		"SHESAFE_LOG_LEVEL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		dir := isolate(t)

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "shesafe", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "http://localhost:5173/api", cfg.API.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.API.Timeout)
		assert.Equal(t, TokenStoreFile, cfg.Auth.TokenStore)
		assert.Equal(t, filepath.Join(dir, ".config", "shesafe", "token.yaml"), cfg.Auth.TokenFile)
		assert.Equal(t, "localhost:6379", cfg.Auth.Redis.Addr())
		assert.Equal(t, ":5173", cfg.Proxy.Listen)
		assert.Equal(t, "/api", cfg.Proxy.Prefix)
		assert.Equal(t, "https://characteristic-verna-nbootcamp-9a822aaf.koyeb.app/", cfg.Proxy.Target)
		assert.Equal(t, "warn", cfg.Log.Level)
	})

	t.Run("selects the API base URL from the environment", func(t *testing.T) {
		isolate(t)
		t.Setenv("SHESAFE_API_BASE_URL", "https://api.shesafe.test")
		t.Setenv("SHESAFE_API_TIMEOUT", "5s")
		t.Setenv("SHESAFE_AUTH_TOKEN_STORE", "memory")

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "https://api.shesafe.test", cfg.API.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.API.Timeout)
		assert.Equal(t, TokenStoreMemory, cfg.Auth.TokenStore)
	})

	t.Run("reads an explicit toml file", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "custom.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "https://backend.example"
validate_requests = true

[proxy]
listen = ":9000"
prefix = "/backend"
rate_limit_rps = 5
`), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "https://backend.example", cfg.API.BaseURL)
		assert.True(t, cfg.API.ValidateRequests)
		assert.Equal(t, ":9000", cfg.Proxy.Listen)
		assert.Equal(t, "/backend", cfg.Proxy.Prefix)
		assert.Equal(t, 5.0, cfg.Proxy.RateLimitRPS)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "custom.toml")
		require.NoError(t, os.WriteFile(path, []byte("[api]\nbase_url = \"https://file.example\"\n"), 0o600))
		t.Setenv("SHESAFE_API_BASE_URL", "https://env.example")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://env.example", cfg.API.BaseURL)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		dir := isolate(t)
		_, err := Load(filepath.Join(dir, "nope.toml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid"},
		{
			name:    "non http base url",
			mutate:  func(c *Config) { c.API.BaseURL = "ftp://x" },
			wantErr: "http(s)",
		},
		{
			name:    "base url without host",
			mutate:  func(c *Config) { c.API.BaseURL = "http://" },
			wantErr: "host",
		},
		{
			name:    "unknown token store",
			mutate:  func(c *Config) { c.Auth.TokenStore = "cookie" },
			wantErr: "auth.token_store",
		},
		{
			name:    "relative proxy prefix",
			mutate:  func(c *Config) { c.Proxy.Prefix = "api" },
			wantErr: "proxy.prefix",
		},
		{
			name:    "relative proxy target",
			mutate:  func(c *Config) { c.Proxy.Target = "backend" },
			wantErr: "proxy.target",
		},
		{
			name: "production requires https",
			mutate: func(c *Config) {
				c.App.Env = "production"
				c.API.BaseURL = "http://backend.example"
			},
			wantErr: "https",
		},
		{
			name: "production rejects memory token store",
			mutate: func(c *Config) {
				c.App.Env = "production"
				c.API.BaseURL = "https://backend.example"
				c.Auth.TokenStore = TokenStoreMemory
			},
			wantErr: "memory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Token store kinds
const (
	TokenStoreMemory = "memory"
	TokenStoreFile   = "file"
	TokenStoreRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	App   AppConfig
	API   APIConfig
	Auth  AuthConfig
	Proxy ProxyConfig
	Log   LogConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// APIConfig describes the backend the client talks to
type APIConfig struct {
	BaseURL          string // selected by SHESAFE_API_BASE_URL
	Timeout          time.Duration
	UserAgent        string
	ValidateRequests bool // check outgoing requests against the embedded contract
	Headers          map[string]string
}

// AuthConfig selects where the authorization token is kept
type AuthConfig struct {
	TokenStore string // memory, file, redis
	TokenFile  string
	Redis      RedisConfig
}

// RedisConfig holds Redis connection settings for the token store
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Key      string
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ProxyConfig holds the development proxy settings
type ProxyConfig struct {
	Listen         string
	Target         string // backend origin requests are forwarded to
	Prefix         string // stripped before forwarding
	RateLimitRPS   float64
	RateLimitBurst int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Load loads configuration from a TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with SHESAFE_ prefix (e.g., SHESAFE_API_BASE_URL)
// 2. the file at path, or shesafe.toml found in the search paths
// 3. Built-in defaults
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("shesafe")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "shesafe"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SHESAFE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		API: APIConfig{
			BaseURL:          v.GetString("api.base_url"),
			Timeout:          v.GetDuration("api.timeout"),
			UserAgent:        v.GetString("api.user_agent"),
			ValidateRequests: v.GetBool("api.validate_requests"),
			Headers:          v.GetStringMapString("api.headers"),
		},
		Auth: AuthConfig{
			TokenStore: v.GetString("auth.token_store"),
			TokenFile:  v.GetString("auth.token_file"),
			Redis: RedisConfig{
				Host:     v.GetString("auth.redis.host"),
				Port:     v.GetInt("auth.redis.port"),
				Password: v.GetString("auth.redis.password"),
				DB:       v.GetInt("auth.redis.db"),
				Key:      v.GetString("auth.redis.key"),
			},
		},
		Proxy: ProxyConfig{
			Listen:         v.GetString("proxy.listen"),
			Target:         v.GetString("proxy.target"),
			Prefix:         v.GetString("proxy.prefix"),
			RateLimitRPS:   v.GetFloat64("proxy.rate_limit_rps"),
			RateLimitBurst: v.GetInt("proxy.rate_limit_burst"),
			ReadTimeout:    v.GetDuration("proxy.read_timeout"),
			WriteTimeout:   v.GetDuration("proxy.write_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "shesafe"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	// The CLI talks through the development proxy unless told otherwise.
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:5173/api"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.API.UserAgent == "" {
		cfg.API.UserAgent = "shesafe-cli/1.0"
	}
	if cfg.Auth.TokenStore == "" {
		cfg.Auth.TokenStore = TokenStoreFile
	}
	if cfg.Auth.TokenFile == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.Auth.TokenFile = filepath.Join(dir, "shesafe", "token.yaml")
		} else {
			cfg.Auth.TokenFile = ".shesafe-token.yaml"
		}
	}
	if cfg.Auth.Redis.Host == "" {
		cfg.Auth.Redis.Host = "localhost"
	}
	if cfg.Auth.Redis.Port == 0 {
		cfg.Auth.Redis.Port = 6379
	}
	if cfg.Auth.Redis.Key == "" {
		cfg.Auth.Redis.Key = "shesafe:auth:token"
	}
	if cfg.Proxy.Listen == "" {
		cfg.Proxy.Listen = ":5173"
	}
	if cfg.Proxy.Target == "" {
		cfg.Proxy.Target = "https://characteristic-verna-nbootcamp-9a822aaf.koyeb.app/"
	}
	if cfg.Proxy.Prefix == "" {
		cfg.Proxy.Prefix = "/api"
	}
	if cfg.Proxy.RateLimitRPS == 0 {
		cfg.Proxy.RateLimitRPS = 20
	}
	if cfg.Proxy.RateLimitBurst == 0 {
		cfg.Proxy.RateLimitBurst = 40
	}
	if cfg.Proxy.ReadTimeout == 0 {
		cfg.Proxy.ReadTimeout = 15 * time.Second
	}
	if cfg.Proxy.WriteTimeout == 0 {
		cfg.Proxy.WriteTimeout = 60 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	base, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url is invalid: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if base.Host == "" {
		return fmt.Errorf("api.base_url must include a host, got %q", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout cannot be negative")
	}

	switch c.Auth.TokenStore {
	case TokenStoreMemory, TokenStoreFile, TokenStoreRedis:
	default:
		return fmt.Errorf("auth.token_store must be one of memory, file, redis; got %q", c.Auth.TokenStore)
	}

	target, err := url.Parse(c.Proxy.Target)
	if err != nil || target.Host == "" {
		return fmt.Errorf("proxy.target must be an absolute URL, got %q", c.Proxy.Target)
	}
	if !strings.HasPrefix(c.Proxy.Prefix, "/") {
		return fmt.Errorf("proxy.prefix must start with '/', got %q", c.Proxy.Prefix)
	}
	if c.Proxy.RateLimitRPS < 0 || c.Proxy.RateLimitBurst < 0 {
		return fmt.Errorf("proxy rate limit cannot be negative")
	}

	if c.App.Env == "production" {
		if base.Scheme != "https" {
			return fmt.Errorf("api.base_url must use https in production")
		}
		if c.Auth.TokenStore == TokenStoreMemory {
			return fmt.Errorf("auth.token_store=memory loses the token between runs and is not allowed in production")
		}
	}

	return nil
}

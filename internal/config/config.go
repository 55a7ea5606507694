// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Addr            string        `mapstructure:"addr"`
		BasePath        string        `mapstructure:"base_path"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"server"`
	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"logging"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
	Security struct {
		RequestID struct {
			TrustHeader bool `mapstructure:"trust_header"`
		} `mapstructure:"request_id"`
		Session struct {
			TTL             time.Duration `mapstructure:"ttl"`
			SweeperInterval time.Duration `mapstructure:"sweeper_interval"`
		} `mapstructure:"session"`
		RateLimit struct {
			Enabled           bool          `mapstructure:"enabled"`
			RequestsPerMinute int           `mapstructure:"rpm"`
			Burst             int           `mapstructure:"burst"`
			TTL               time.Duration `mapstructure:"ttl"`
		} `mapstructure:"rate_limit"`
		// EnforceRoles puts admin-only writes behind an admin session.
		EnforceRoles bool `mapstructure:"enforce_roles"`
	} `mapstructure:"security"`
	Analytics struct {
		Timezone string `mapstructure:"timezone"`
	} `mapstructure:"analytics"`
	Assistant struct {
		URL     string        `mapstructure:"url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"assistant"`
}

// Location resolves analytics.timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Analytics.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Analytics.Timezone)
}

// Load reads config.yaml (from . or ..) and env overrides into Config.
// It panics on invalid configuration.
func Load() Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	c, err := LoadFrom(v)
	if err != nil {
		panic("config error: " + err.Error())
	}
	return c
}

// LoadFrom applies defaults and env bindings to v and decodes it. A missing
// config file is not an error.
func LoadFrom(v *viper.Viper) (Config, error) {
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.base_path", "/api")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	// Security defaults
	v.SetDefault("security.request_id.trust_header", false)
	v.SetDefault("security.session.ttl", "24h")
	v.SetDefault("security.session.sweeper_interval", "5m")
	v.SetDefault("security.rate_limit.enabled", false)
	v.SetDefault("security.rate_limit.rpm", 600)
	v.SetDefault("security.rate_limit.burst", 100)
	v.SetDefault("security.rate_limit.ttl", "30m")
	v.SetDefault("security.enforce_roles", false)
	v.SetDefault("analytics.timezone", "UTC")
	v.SetDefault("assistant.url", "")
	v.SetDefault("assistant.timeout", "30s")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// explicit bindings
	_ = v.BindEnv("server.addr", "HTTP_ADDR")
	_ = v.BindEnv("server.base_path", "API_BASE_PATH")
	_ = v.BindEnv("server.shutdown_timeout", "SHUTDOWN_TIMEOUT")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")
	_ = v.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")
	_ = v.BindEnv("security.request_id.trust_header", "REQUEST_ID_TRUST_HEADER")
	_ = v.BindEnv("security.session.ttl", "SESSION_TTL")
	_ = v.BindEnv("security.session.sweeper_interval", "SESSION_SWEEPER_INTERVAL")
	_ = v.BindEnv("security.rate_limit.enabled", "RATE_LIMIT_ENABLED")
	_ = v.BindEnv("security.rate_limit.rpm", "RATE_LIMIT_RPM")
	_ = v.BindEnv("security.rate_limit.burst", "RATE_LIMIT_BURST")
	_ = v.BindEnv("security.rate_limit.ttl", "RATE_LIMIT_TTL")
	_ = v.BindEnv("security.enforce_roles", "ENFORCE_ROLES")
	_ = v.BindEnv("analytics.timezone", "ANALYTICS_TIMEZONE")
	_ = v.BindEnv("assistant.url", "AI_ASSISTANT_URL")
	_ = v.BindEnv("assistant.timeout", "AI_ASSISTANT_TIMEOUT")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	// PORT is what most hosting platforms set; it wins over HTTP_ADDR.
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		c.Server.Addr = ":" + port
	}
	// Normalize base path: leading '/', no trailing '/', "" for root.
	c.Server.BasePath = "/" + strings.Trim(strings.TrimSpace(c.Server.BasePath), "/")
	if c.Server.BasePath == "/" {
		c.Server.BasePath = ""
	}
	c.CORS.AllowedOrigins = splitList(c.CORS.AllowedOrigins)
	if _, err := c.Location(); err != nil {
		return Config{}, fmt.Errorf("analytics.timezone: %w", err)
	}
	return c, nil
}

// splitList flattens comma-separated entries, as env vars arrive as one string.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

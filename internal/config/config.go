package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	RateLimit RateLimitConfig `mapstructure:"rl"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	CORS      CORSConfig      `mapstructure:"cors"`
	XRPL      XRPLConfig      `mapstructure:"xrpl"`
	Xumm      XummConfig      `mapstructure:"xumm"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host                    string        `mapstructure:"host"`
	Port                    int           `mapstructure:"port"`
	Mode                    string        `mapstructure:"mode"`
	ReadTimeout             time.Duration `mapstructure:"read_timeout"`
	WriteTimeout            time.Duration `mapstructure:"write_timeout"`
	GracefulShutdownTimeout time.Duration `mapstructure:"graceful_shutdown_timeout"`
}

type StoreConfig struct {
	Backend    string `mapstructure:"backend"` // "memory" | "redis"
	TTLSeconds int    `mapstructure:"ttl_seconds"`
	RedisURL   string `mapstructure:"redis_url"`
	RedisToken string `mapstructure:"redis_token"`
}

func (c StoreConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	MaxTTLSeconds int    `mapstructure:"max_ttl_seconds"`
}

// CORSConfig holds the exact-match origin allow list as a comma-separated
// string so it can come straight from the CORS_ORIGINS env var.
type CORSConfig struct {
	Origins string `mapstructure:"origins"`
}

func (c CORSConfig) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.Origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

type XRPLConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

type XummConfig struct {
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	BaseURL   string `mapstructure:"base_url"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the optional config file, overlays environment variables, and
// returns Config. Every key has a default so an env-only deployment
// (JWT_SECRET, CORS_ORIGINS, STORE_BACKEND, ...) works without a file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.graceful_shutdown_timeout", 10*time.Second)
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.ttl_seconds", 600)
	v.SetDefault("store.redis_url", "")
	v.SetDefault("store.redis_token", "")
	v.SetDefault("rl.window_seconds", 10)
	v.SetDefault("rl.max_requests", 20)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.max_ttl_seconds", 300)
	v.SetDefault("cors.origins", "")
	v.SetDefault("xrpl.endpoint", "https://s.altnet.rippletest.net:51234")
	v.SetDefault("xumm.api_key", "")
	v.SetDefault("xumm.api_secret", "")
	v.SetDefault("xumm.base_url", "https://xumm.app/api/v1/platform")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Environment variable override: JWT_SECRET -> jwt.secret, RL_WINDOW_SECONDS -> rl.window_seconds
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
		// No config file: defaults + env carry the deployment.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

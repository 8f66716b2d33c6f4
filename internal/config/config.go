package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Upstream  UpstreamConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type UpstreamConfig struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
	SearchLimit    int
	ThumbnailSize  int
}

type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
	// ProxyHeader, when set (e.g. "X-Forwarded-For"), makes the client key
	// come from that header instead of the raw remote address. Left empty
	// by default: behind no proxy the remote address is the right key.
	ProxyHeader   string
	SweepInterval time.Duration
}

type CacheConfig struct {
	SearchCacheTTL time.Duration
	DetailCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config from environment only is fine; .env is optional.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Upstream: UpstreamConfig{
			BaseURL:        viper.GetString("UPSTREAM_BASE_URL"),
			UserAgent:      viper.GetString("UPSTREAM_USER_AGENT"),
			RequestTimeout: time.Duration(viper.GetInt("UPSTREAM_REQUEST_TIMEOUT")) * time.Second,
			SearchLimit:    viper.GetInt("UPSTREAM_SEARCH_LIMIT"),
			ThumbnailSize:  viper.GetInt("UPSTREAM_THUMBNAIL_SIZE"),
		},
		RateLimit: RateLimitConfig{
			MaxRequests:   viper.GetInt("RATE_LIMIT_MAX_REQUESTS"),
			Window:        time.Duration(viper.GetInt("RATE_LIMIT_WINDOW")) * time.Second,
			ProxyHeader:   viper.GetString("RATE_LIMIT_PROXY_HEADER"),
			SweepInterval: time.Duration(viper.GetInt("RATE_LIMIT_SWEEP_INTERVAL")) * time.Second,
		},
		Cache: CacheConfig{
			SearchCacheTTL: time.Duration(viper.GetInt("SEARCH_CACHE_TTL")) * time.Second,
			DetailCacheTTL: time.Duration(viper.GetInt("DETAIL_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = "https://en.wikipedia.org/w/api.php"
	}
	if cfg.Upstream.UserAgent == "" {
		cfg.Upstream.UserAgent = "landmark-service/1.0 (https://github.com/landmark-service)"
	}
	if cfg.Upstream.RequestTimeout == 0 {
		cfg.Upstream.RequestTimeout = 10 * time.Second
	}
	if cfg.Upstream.SearchLimit == 0 {
		cfg.Upstream.SearchLimit = 50
	}
	if cfg.Upstream.ThumbnailSize == 0 {
		cfg.Upstream.ThumbnailSize = 400
	}
	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = 60
	}
	if cfg.RateLimit.Window == 0 {
		cfg.RateLimit.Window = 60 * time.Second
	}
	if cfg.RateLimit.SweepInterval == 0 {
		cfg.RateLimit.SweepInterval = 5 * time.Minute
	}
	if cfg.Cache.SearchCacheTTL == 0 {
		cfg.Cache.SearchCacheTTL = 60 * time.Second
	}
	if cfg.Cache.DetailCacheTTL == 0 {
		cfg.Cache.DetailCacheTTL = 10 * time.Minute
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session persistence backends.
const (
	BackendNone  = "none"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Portal  PortalConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type PortalConfig struct {
	BaseURL        string        `env:"PORTAL_API_BASE_URL,    default=http://localhost:8000/api/v1"`
	RequestTimeout time.Duration `env:"PORTAL_REQUEST_TIMEOUT, default=15s"`
	FetchWorkers   int           `env:"FETCH_WORKERS,          default=4"`
}

type SessionConfig struct {
	Backend string `env:"PORTAL_SESSION_BACKEND, default=none"`
	Name    string `env:"PORTAL_SESSION_NAME,    default=default"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through l and checks it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Backend {
	case BackendNone, BackendRedis, BackendMongo:
	default:
		return fmt.Errorf("PORTAL_SESSION_BACKEND must be none, redis or mongo, got %q", c.Session.Backend)
	}
	if c.Portal.RequestTimeout <= 0 {
		return fmt.Errorf("PORTAL_REQUEST_TIMEOUT must be positive, got %s", c.Portal.RequestTimeout)
	}
	if c.Portal.FetchWorkers < 1 {
		return fmt.Errorf("FETCH_WORKERS must be at least 1, got %d", c.Portal.FetchWorkers)
	}
	return nil
}

// Development reports whether the process runs with developer defaults.
func (c *Config) Development() bool {
	return c.Env == "development"
}

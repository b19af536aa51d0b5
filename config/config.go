package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"pos_service/internal/repository"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:":8080"`
	GrpcPort string `envconfig:"GRPC_PORT" default:":50051"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	StoreBackend   string `envconfig:"STORE_BACKEND"   default:"sqlite"`
	SQLitePath     string `envconfig:"SQLITE_PATH"     default:"pos.db"`
	DatabaseURL    string `envconfig:"DATABASE_URL"`
	RedisAddr      string `envconfig:"REDIS_ADDR"      default:"localhost:6379"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD"`
	RedisDB        int    `envconfig:"REDIS_DB"        default:"0"`
	RedisNamespace string `envconfig:"REDIS_NAMESPACE" default:"pos"`

	SimulateLatency bool   `envconfig:"SIMULATE_LATENCY" default:"true"`
	IDStrategy      string `envconfig:"ID_STRATEGY"      default:"timestamp"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"default_secret_change_me"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL"    default:"12h"`
	AuthMode  string        `envconfig:"AUTH_MODE"  default:"demo"`
	UsersFile string        `envconfig:"USERS_FILE"`
}

var (
	config Config
	once   sync.Once
)

// LoadConfig reads the configuration once per process and exits on invalid settings.
func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		cfg, err := Load(logger)
		if err != nil {
			logger.Fatalf("Failed to load configuration: %v", err)
		}
		config = *cfg
	})
	return &config
}

// Load reads .env (when present) and the environment into a validated Config.
func Load(logger *logrus.Logger) (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Info("Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Infof("Configuration loaded: HTTP Port=%s, GRPC Port=%s, LogLevel=%s, Store=%s", cfg.HTTPPort, cfg.GrpcPort, cfg.LogLevel, cfg.StoreBackend)
	if cfg.JWTSecret == "default_secret_change_me" {
		logger.Warn("Configuration: JWT_SECRET is not set, using the insecure default")
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("configuration error: SQLITE_PATH is required for the sqlite store")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("configuration error: DATABASE_URL is required for the postgres store")
		}
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("configuration error: REDIS_ADDR is required for the redis store")
		}
	case "memory", "none":
	default:
		return fmt.Errorf("configuration error: unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.AuthMode {
	case "demo":
	case "credentials":
		if c.UsersFile == "" {
			return fmt.Errorf("configuration error: USERS_FILE is required when AUTH_MODE=credentials")
		}
	default:
		return fmt.Errorf("configuration error: unknown AUTH_MODE %q", c.AuthMode)
	}

	if c.JWTTTL <= 0 {
		return fmt.Errorf("configuration error: JWT_TTL must be positive")
	}
	return nil
}

// StoreOptions maps the store settings onto repository.Open options.
func (c *Config) StoreOptions() repository.Options {
	return repository.Options{
		Backend:     c.StoreBackend,
		SQLitePath:  c.SQLitePath,
		DatabaseURL: c.DatabaseURL,
		Redis: repository.RedisOptions{
			Addr:      c.RedisAddr,
			Password:  c.RedisPassword,
			DB:        c.RedisDB,
			Namespace: c.RedisNamespace,
		},
	}
}

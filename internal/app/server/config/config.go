package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress        = "0.0.0.0:9999"
	defaultStoreTimeout      = 30 * time.Second
	defaultRateLimitInterval = time.Minute
)

// ErrConfiguration is returned when required startup configuration is
// missing. It is fatal.
var ErrConfiguration = errors.New("configuration error")

type Config struct {
	Env       string
	Server    server
	Store     store
	Auth      auth
	RateLimit rateLimit
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type store struct {
	URI     string        `env:"FIREBASE_URI"`
	Token   string        `env:"STORE_TOKEN"`
	Timeout time.Duration `env:"STORE_TIMEOUT"`
}

type auth struct {
	Secret string `env:"AUTH_TOKEN"`
}

type rateLimit struct {
	Tokens   uint64        `env:"RATE_LIMIT_TOKENS"`
	Interval time.Duration `env:"RATE_LIMIT_INTERVAL"`
}

func init() {
	viper.SetDefault("app_env", EnvLocal)
	viper.SetDefault("run_address", defaultRunAddress)
	viper.SetDefault("store_timeout", defaultStoreTimeout)
	viper.SetDefault("rate_limit_tokens", 0)
	viper.SetDefault("rate_limit_interval", defaultRateLimitInterval)
}

// Load reads the configuration from the environment, optionally seeded by a
// .env file. Values bound to command line flags take precedence.
func Load() (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("failed to load %s: %v", envPath, err)
		}
	}

	viper.AutomaticEnv()

	cfg := &Config{
		Env:    viper.GetString("app_env"),
		Server: server{RunAddress: viper.GetString("run_address")},
		Store: store{
			URI:     viper.GetString("firebase_uri"),
			Token:   viper.GetString("store_token"),
			Timeout: viper.GetDuration("store_timeout"),
		},
		Auth: auth{Secret: viper.GetString("auth_token")},
		RateLimit: rateLimit{
			Tokens:   viper.GetUint64("rate_limit_tokens"),
			Interval: viper.GetDuration("rate_limit_interval"),
		},
	}

	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("%w: AUTH_TOKEN not set", ErrConfiguration)
	}
	if cfg.Store.URI == "" {
		return nil, fmt.Errorf("%w: FIREBASE_URI not set", ErrConfiguration)
	}

	return cfg, nil
}

// MustLoad is Load that aborts the process on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalln(err)
	}
	return cfg
}

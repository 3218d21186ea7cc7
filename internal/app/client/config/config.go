package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:9999"
	defaultEnv           = "local"
	defaultTimeout       = 30 * time.Second
)

var ErrNoServer = errors.New("server address is empty")

type Config struct {
	Env           string        `mapstructure:"app_env"`
	ServerAddress string        `mapstructure:"server_address"`
	Token         string        `mapstructure:"auth_token"`
	EnableTLS     bool          `mapstructure:"enable_tls"`
	Timeout       time.Duration `mapstructure:"client_timeout"`
}

// Load reads the client configuration from the environment, optionally
// seeded by a .env file in the working directory.
func Load() (*Config, error) {
	envPath := ".env"
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", envPath, err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("ENABLE_TLS", false)
	viper.SetDefault("CLIENT_TIMEOUT", defaultTimeout)

	cfg := &Config{
		Env:           viper.GetString("APP_ENV"),
		ServerAddress: viper.GetString("SERVER_ADDRESS"),
		Token:         viper.GetString("AUTH_TOKEN"),
		EnableTLS:     viper.GetBool("ENABLE_TLS"),
		Timeout:       viper.GetDuration("CLIENT_TIMEOUT"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return ErrNoServer
	}
	return nil
}

// BaseURL is the server address with its scheme.
func (c *Config) BaseURL() string {
	scheme := "http://"
	if c.EnableTLS {
		scheme = "https://"
	}
	return scheme + c.ServerAddress
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

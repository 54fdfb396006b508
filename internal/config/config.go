package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/hostguard/pkg/hostresolver"
	"github.com/dmitrymomot/hostguard/pkg/logger"
)

// Sentinel errors for configuration loading.
var (
	ErrParseEnv  = errors.New("config: failed to parse environment")
	ErrReadFile  = errors.New("config: failed to read config file")
	ErrParseFile = errors.New("config: failed to parse config file")
)

// Config is the hostguard service configuration.
type Config struct {
	Address         string        `env:"HOSTGUARD_ADDR" envDefault:":8080" yaml:"address"`
	MetricsAddress  string        `env:"HOSTGUARD_METRICS_ADDR" yaml:"metrics_address"`
	AdminHost       string        `env:"HOSTGUARD_ADMIN_HOST" yaml:"admin_host"`
	ShutdownTimeout time.Duration `env:"HOSTGUARD_SHUTDOWN_TIMEOUT" envDefault:"10s" yaml:"shutdown_timeout"`

	Log      logger.Config       `yaml:"log"`
	Resolver hostresolver.Config `yaml:"resolver"`
}

// Load reads configuration from the environment and, when path is not
// empty, overlays the YAML file at path. Keys present in the file take
// precedence over environment values.
func Load(path string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrParseEnv, err)
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrParseFile, path, err)
	}

	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port      int        `env:"PORT" envDefault:"8080"`
	StaticDir string     `env:"STATIC_DIR" envDefault:"build/web"`
	IndexFile string     `env:"INDEX_FILE" envDefault:"index.html"`
	AdminAddr string     `env:"ADMIN_ADDR"`
	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; variables already set
// in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d: must be between 1 and 65535", c.Port)
	}
	if c.StaticDir == "" {
		return errors.New("STATIC_DIR must not be empty")
	}
	if c.IndexFile == "" || !fs.ValidPath(c.IndexFile) || c.IndexFile == "." {
		return fmt.Errorf("invalid INDEX_FILE %q", c.IndexFile)
	}
	return nil
}

// HTTPAddr is the public listen address on all interfaces.
func (c *Config) HTTPAddr() string {
	return net.JoinHostPort("", strconv.Itoa(c.Port))
}

// URL is the address announced on the console.
func (c *Config) URL() string {
	return "http://localhost:" + strconv.Itoa(c.Port)
}

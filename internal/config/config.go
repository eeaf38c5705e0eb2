// internal/config/config.go
//
// Server configuration.
//
// Sources, later ones winning:
//   1. Defaults (Default).
//   2. Optional TOML file (path from the -config flag or HANGMAN_CONFIG).
//   3. A `.env` file in the working directory, if present.
//   4. Process environment variables.

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvConfigPath names the variable that points at a TOML config file.
const EnvConfigPath = "HANGMAN_CONFIG"

// Config holds every knob of the server.
type Config struct {
	Port           string        `toml:"port" env:"PORT"`
	LogLevel       string        `toml:"log_level" env:"LOG_LEVEL"`
	LogFormat      string        `toml:"log_format" env:"LOG_FORMAT"` // json | console
	DatabasePath   string        `toml:"database_path" env:"DATABASE_PATH"`
	JWTSecret      string        `toml:"jwt_secret" env:"JWT_SECRET"`
	JWTExpiresDays int           `toml:"jwt_expires_days" env:"JWT_EXPIRES_DAYS"`
	CookieName     string        `toml:"cookie_name" env:"COOKIE_NAME"`
	Production     bool          `toml:"production" env:"PRODUCTION"`
	ClientOrigin   string        `toml:"client_origin" env:"CLIENT_ORIGIN"`
	PhrasesFile    string        `toml:"phrases_file" env:"PHRASES_FILE"`
	DailySalt      string        `toml:"daily_salt" env:"DAILY_SALT"`
	RequestTimeout time.Duration `toml:"request_timeout" env:"REQUEST_TIMEOUT"`
}

// Default returns the development defaults.
func Default() Config {
	return Config{
		Port:           "5175",
		LogLevel:       "info",
		LogFormat:      "json",
		DatabasePath:   "./data/hangman.db",
		JWTSecret:      "dev_secret_change_me",
		JWTExpiresDays: 14,
		CookieName:     "hangman_token",
		ClientOrigin:   "http://localhost:5173",
		DailySalt:      "local_dev_salt",
		RequestTimeout: 10 * time.Second,
	}
}

// Load builds the configuration. path may be empty, in which case
// HANGMAN_CONFIG is consulted; a missing file named by either is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	// .env is optional; a missing file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Port == "":
		return errors.New("config: port is required")
	case c.JWTSecret == "":
		return errors.New("config: jwt secret is required")
	case c.Production && c.JWTSecret == Default().JWTSecret:
		return errors.New("config: jwt secret must be changed in production")
	case c.JWTExpiresDays <= 0:
		return errors.New("config: jwt_expires_days must be positive")
	case c.RequestTimeout <= 0:
		return errors.New("config: request_timeout must be positive")
	}
	return nil
}

// JWTTTL is the lifetime of issued tokens.
func (c Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTExpiresDays) * 24 * time.Hour
}

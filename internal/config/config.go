package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	Game    GameConfig
	Storage StorageConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port         string `env:"PORT" envDefault:"5175"`
	Host         string `env:"HOST" envDefault:""`
	Env          string `env:"ENV" envDefault:"development"` // "development" or "production"
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
}

// AuthConfig holds game token settings
type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

// GameConfig holds game-related configuration
type GameConfig struct {
	PhrasesFile           string        `env:"PHRASES_FILE"`
	DailySalt             string        `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	SessionTTL            time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	SweepInterval         time.Duration `env:"SWEEP_INTERVAL" envDefault:"10m"`
	RejectRepeatedGuesses bool          `env:"REJECT_REPEATED_GUESSES" envDefault:"false"`
}

// StorageConfig selects the session store; an empty path keeps sessions in memory.
type StorageConfig struct {
	DatabasePath string `env:"DATABASE_PATH"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"` // "json" or "console"
}

// Load decodes the process environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Game.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.Game.SessionTTL)
	}
	if cfg.Game.SweepInterval <= 0 {
		return nil, fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", cfg.Game.SweepInterval)
	}
	return &cfg, nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Addr returns the server address in host:port format
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

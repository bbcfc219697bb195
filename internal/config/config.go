package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Game struct {
	MaxPlayers int `env:"MAX_PLAYERS" envDefault:"4"`
	HandSize   int `env:"HAND_SIZE" envDefault:"5"`
}

type Rooms struct {
	IdleTTL       time.Duration `env:"ROOM_IDLE_TTL" envDefault:"30m"`
	SweepInterval time.Duration `env:"ROOM_SWEEP_INTERVAL" envDefault:"1m"`
}

type Log struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	JSON  bool   `env:"LOG_JSON" envDefault:"false"`
	File  string `env:"LOG_FILE"`
}

type Config struct {
	HTTPAddr        string `env:"HTTP_ADDR" envDefault:":3000"`
	PublicDir       string `env:"PUBLIC_DIR"`
	GinMode         string `env:"GIN_MODE" envDefault:"release"`
	ResultsDB       string `env:"RESULTS_DB" envDefault:"cardclash.db"`
	RecorderWorkers int    `env:"RECORDER_WORKERS" envDefault:"8"`

	Game  Game
	Rooms Rooms
	Log   Log
}

// Default returns the configuration with every default applied and no
// environment overrides.
func Default() Config {
	var c Config
	_ = env.ParseWithOptions(&c, env.Options{Environment: map[string]string{}})
	return c
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Game.MaxPlayers < 1 {
		errs = append(errs, errors.New("MAX_PLAYERS must be positive"))
	}
	if c.Game.HandSize < 1 {
		errs = append(errs, errors.New("HAND_SIZE must be positive"))
	}
	if c.Rooms.IdleTTL <= 0 || c.Rooms.SweepInterval <= 0 {
		errs = append(errs, errors.New("room idle ttl and sweep interval must be positive"))
	}
	if c.RecorderWorkers < 1 {
		errs = append(errs, errors.New("RECORDER_WORKERS must be positive"))
	}
	return errors.Join(errs...)
}

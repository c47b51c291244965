package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/commonsgame/commons-go/internal/model"
)

// Config holds the peer configuration, loaded from COMMONS_* environment
// variables. Game constants are configuration, never hard-coded.
type Config struct {
	Host string `env:"COMMONS_HOST" envDefault:""`
	Port int    `env:"COMMONS_PORT" envDefault:"8080"`

	// PlayerID is the peer's stable identity. Generated at startup when
	// empty, which makes the install a brand-new player.
	PlayerID string `env:"COMMONS_PLAYER_ID"`

	// StoreBackend selects the record store: "memory" or "redis"
	StoreBackend string `env:"COMMONS_STORE" envDefault:"memory"`
	RedisURL     string `env:"COMMONS_REDIS_URL"`

	// Game constants
	StartAmount        int     `env:"COMMONS_START_AMOUNT" envDefault:"100"`
	MaxRounds          int     `env:"COMMONS_MAX_ROUNDS" envDefault:"3"`
	DepletionFloor     int     `env:"COMMONS_DEPLETION_FLOOR" envDefault:"0"`
	DepletionPolicy    string  `env:"COMMONS_DEPLETION_POLICY" envDefault:"both"`
	RegenerationFactor float64 `env:"COMMONS_REGENERATION_FACTOR" envDefault:"1.0"`
}

// Load parses the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	switch model.DepletionPolicy(cfg.DepletionPolicy) {
	case model.DepletionPolicyFixedRounds, model.DepletionPolicyResourceFloor, model.DepletionPolicyBoth:
	default:
		return nil, fmt.Errorf("invalid COMMONS_DEPLETION_POLICY %q", cfg.DepletionPolicy)
	}

	return &cfg, nil
}

// GameParams returns the game constants from the configuration
func (c *Config) GameParams() model.GameParams {
	return model.GameParams{
		StartAmount:        model.ResourceAmount(c.StartAmount),
		MaxRounds:          c.MaxRounds,
		DepletionFloor:     model.ResourceAmount(c.DepletionFloor),
		DepletionPolicy:    model.DepletionPolicy(c.DepletionPolicy),
		RegenerationFactor: c.RegenerationFactor,
	}
}

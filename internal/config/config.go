package config

import (
	"errors"
	"fmt"

	"github.com/joeshaw/envdecode"

	"take5/internal/model"
)

const (
	MinPlayers = 2
	MaxPlayers = 10
)

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreNone   = "none"
)

// Rules are the table constants fixed for the lifetime of a game.
type Rules struct {
	Rows        int `env:"TAKE5_ROWS,default=4"`
	CardsPerRow int `env:"TAKE5_CARDS_PER_ROW,default=5"`
	Turns       int `env:"TAKE5_TURNS,default=10"`
	DeckSize    int `env:"TAKE5_DECK_SIZE,default=104"`
}

type Config struct {
	Rules    Rules
	Store    string `env:"TAKE5_STORE,default=sqlite"`
	DBPath   string `env:"TAKE5_DB_PATH,default=./take5.db"`
	RedisURL string `env:"TAKE5_REDIS_URL,default=redis://localhost:6379/0"`
	// Listen is the spectator server address; empty disables it.
	Listen string `env:"TAKE5_LISTEN"`
}

// DefaultRules are the standard Take 5 table settings.
func DefaultRules() Rules {
	return Rules{Rows: 4, CardsPerRow: 5, Turns: 10, DeckSize: 104}
}

func Default() Config {
	return Config{
		Rules:    DefaultRules(),
		Store:    StoreSQLite,
		DBPath:   "./take5.db",
		RedisURL: "redis://localhost:6379/0",
	}
}

// Load reads the configuration from TAKE5_* environment variables.
func Load() (Config, error) {
	cfg := Default()
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	switch cfg.Store {
	case StoreSQLite, StoreRedis, StoreNone:
	default:
		return Config{}, fmt.Errorf("unknown store %q", cfg.Store)
	}
	return cfg, nil
}

// Validate checks the rules can seat the given number of players.
func (r Rules) Validate(players int) error {
	if r.Rows <= 0 || r.CardsPerRow <= 0 || r.Turns <= 0 || r.DeckSize <= 0 {
		return fmt.Errorf("%w: rows=%d cards_per_row=%d turns=%d deck=%d",
			model.ErrInvalidRules, r.Rows, r.CardsPerRow, r.Turns, r.DeckSize)
	}
	if players < MinPlayers || players > MaxPlayers {
		return fmt.Errorf("%w: %d players, need %d-%d", model.ErrNotEnoughPlayers, players, MinPlayers, MaxPlayers)
	}
	if need := r.CardsNeeded(players); need > r.DeckSize {
		return fmt.Errorf("%w: %d cards needed, deck holds %d", model.ErrEmptyDeck, need, r.DeckSize)
	}
	return nil
}

// CardsNeeded is the number of draws for seeding the board and dealing every hand.
func (r Rules) CardsNeeded(players int) int {
	return r.Rows + players*r.Turns
}

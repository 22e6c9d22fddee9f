package session

import (
	"fmt"
	"time"
)

// Config controls session length and adaptation.
type Config struct {
	// Length is the number of answers after which a session completes.
	Length int `mapstructure:"length"`

	InitialDifficulty float64 `mapstructure:"initial_difficulty"`

	Difficulty DifficultyParams `mapstructure:"difficulty"`

	// HistorySize is how many recent question texts are passed to the
	// provider.
	HistorySize int `mapstructure:"history_size"`

	// ProviderTimeout bounds each question provider attempt.
	ProviderTimeout time.Duration `mapstructure:"provider_timeout"`
}

// DefaultConfig returns a 10 question session starting at difficulty 1.0.
func DefaultConfig() Config {
	return Config{
		Length:            10,
		InitialDifficulty: 1.0,
		Difficulty:        DefaultDifficultyParams(),
		HistorySize:       5,
		ProviderTimeout:   5 * time.Second,
	}
}

// Validate checks the configured ranges.
func (c Config) Validate() error {
	if c.Length < 1 {
		return fmt.Errorf("session length must be at least 1, got %d", c.Length)
	}
	if c.Difficulty.Threshold <= 0 || c.Difficulty.Threshold > 1 {
		return fmt.Errorf("difficulty threshold must be in (0, 1], got %g", c.Difficulty.Threshold)
	}
	if c.Difficulty.Step <= 0 {
		return fmt.Errorf("difficulty step must be positive, got %g", c.Difficulty.Step)
	}
	if c.Difficulty.Max < MinDifficulty || c.Difficulty.Max > 5 {
		return fmt.Errorf("max difficulty must be in [1, 5], got %g", c.Difficulty.Max)
	}
	if c.Difficulty.Window < 0 {
		return fmt.Errorf("difficulty window must not be negative, got %d", c.Difficulty.Window)
	}
	if c.InitialDifficulty < MinDifficulty || c.InitialDifficulty > c.Difficulty.Max {
		return fmt.Errorf("initial difficulty must be in [1, %g], got %g", c.Difficulty.Max, c.InitialDifficulty)
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("history size must not be negative, got %d", c.HistorySize)
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("provider timeout must be positive, got %s", c.ProviderTimeout)
	}
	return nil
}

package assess

import (
	"context"
	"math"
	"testing"

	"github.com/abhisek/cognilevel/internal/cognition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"zero questions", func(c *Config) { c.MaxQuestions = 0 }, true},
		{"negative questions", func(c *Config) { c.MaxQuestions = -2 }, true},
		{"threshold below zero", func(c *Config) { c.ConfidenceThreshold = -0.1 }, true},
		{"threshold above one", func(c *Config) { c.ConfidenceThreshold = 1.1 }, true},
		{"threshold NaN", func(c *Config) { c.ConfidenceThreshold = math.NaN() }, true},
		{"threshold bounds", func(c *Config) { c.ConfidenceThreshold = 1 }, false},
		{"unknown strategy", func(c *Config) { c.Strategy = "reckless" }, true},
		{"empty strategy", func(c *Config) { c.Strategy = "" }, true},
		{"aggressive", func(c *Config) { c.Strategy = StrategyAggressive }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStartSession_RejectsInvalidConfig(t *testing.T) {
	e := newTestEngine(numberedBank(3), constant(3, 0.5))

	_, err := e.StartSession(context.Background(), "go", Config{MaxQuestions: 0, ConfidenceThreshold: 0.8, Strategy: StrategyBalanced})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = e.StartSession(context.Background(), "  ", DefaultConfig())
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy(" Aggressive ")
	require.NoError(t, err)
	assert.Equal(t, StrategyAggressive, s)

	_, err = ParseStrategy("random")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStrategyBand(t *testing.T) {
	tests := []struct {
		strategy Strategy
		current  cognition.Level
		want     []cognition.Level
	}{
		{StrategyConservative, 3, []cognition.Level{2, 3}},
		{StrategyConservative, 1, []cognition.Level{1, 1}},
		{StrategyAggressive, 3, []cognition.Level{3, 4}},
		{StrategyAggressive, 5, []cognition.Level{5, 5}},
		{StrategyBalanced, 3, []cognition.Level{2, 3, 4}},
		{StrategyBalanced, 1, []cognition.Level{1, 1, 2}},
		{StrategyBalanced, 5, []cognition.Level{4, 5, 5}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.strategy.Band(tt.current), "%s at %d", tt.strategy, tt.current)
	}
}

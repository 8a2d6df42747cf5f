// Package assess is the adaptive session controller. It owns assessment
// sessions, picks the next question around the running level estimate,
// folds each classified answer into the estimate and confidence, decides
// when to stop and produces the final report.
package assess

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/cognilevel/internal/cognition"
)

// ErrInvalidConfig is returned by StartSession for unusable configuration.
var ErrInvalidConfig = errors.New("invalid assessment config")

// Strategy decides which levels around the current estimate are preferred
// when selecting the next question.
type Strategy string

const (
	StrategyConservative Strategy = "conservative"
	StrategyAggressive   Strategy = "aggressive"
	StrategyBalanced     Strategy = "balanced"
)

// ParseStrategy parses a strategy name, ignoring case.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case StrategyConservative, StrategyAggressive, StrategyBalanced:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, s)
}

// Band returns the target levels for a session currently at level current.
func (s Strategy) Band(current cognition.Level) []cognition.Level {
	lower := max(cognition.MinLevel, current-1)
	upper := min(cognition.MaxLevel, current+1)
	switch s {
	case StrategyConservative:
		return []cognition.Level{lower, current}
	case StrategyAggressive:
		return []cognition.Level{current, upper}
	default:
		return []cognition.Level{lower, current, upper}
	}
}

// Config holds per-session settings.
type Config struct {
	// MaxQuestions caps the number of turns.
	MaxQuestions int

	// ConfidenceThreshold is the confidence target reported on the final
	// report. It does not affect when a session stops.
	ConfidenceThreshold float64

	Strategy Strategy
}

// DefaultConfig returns five questions, a 0.8 threshold and the balanced
// strategy.
func DefaultConfig() Config {
	return Config{
		MaxQuestions:        5,
		ConfidenceThreshold: 0.8,
		Strategy:            StrategyBalanced,
	}
}

// Validate reports the first problem with c, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if c.MaxQuestions <= 0 {
		return fmt.Errorf("%w: max questions must be positive, got %d", ErrInvalidConfig, c.MaxQuestions)
	}
	if math.IsNaN(c.ConfidenceThreshold) || c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("%w: confidence threshold %v outside [0,1]", ErrInvalidConfig, c.ConfidenceThreshold)
	}
	if _, err := ParseStrategy(string(c.Strategy)); err != nil {
		return err
	}
	return nil
}

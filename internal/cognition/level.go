package cognition

import (
	"fmt"
	"math"
)

// Level is an ordinal cognitive level on a five-point Bloom-style scale.
type Level int

const (
	LevelRemember   Level = 1 // Recall facts and syntax
	LevelUnderstand Level = 2 // Explain concepts in own words
	LevelApply      Level = 3 // Use knowledge to solve concrete problems
	LevelAnalyze    Level = 4 // Break problems apart, debug, compare
	LevelEvaluate   Level = 5 // Judge trade-offs, review, design
)

const (
	MinLevel = LevelRemember
	MaxLevel = LevelEvaluate
)

// AllLevels returns every level in ascending order.
func AllLevels() []Level {
	return []Level{LevelRemember, LevelUnderstand, LevelApply, LevelAnalyze, LevelEvaluate}
}

// Valid reports whether l lies on the scale.
func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

// Name returns the display name of the level.
func (l Level) Name() string {
	switch l {
	case LevelRemember:
		return "Remember"
	case LevelUnderstand:
		return "Understand"
	case LevelApply:
		return "Apply"
	case LevelAnalyze:
		return "Analyze"
	case LevelEvaluate:
		return "Evaluate"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

func (l Level) String() string {
	return fmt.Sprintf("L%d %s", int(l), l.Name())
}

// ClampLevel bounds l to [MinLevel, MaxLevel].
func ClampLevel(l Level) Level {
	if l < MinLevel {
		return MinLevel
	}
	if l > MaxLevel {
		return MaxLevel
	}
	return l
}

// ClampEstimate bounds a continuous level estimate to [1, 5].
func ClampEstimate(v float64) float64 {
	return math.Max(float64(MinLevel), math.Min(float64(MaxLevel), v))
}

// ClampUnit bounds v to [0, 1].
func ClampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// RoundEstimate converts a continuous estimate to the nearest level,
// rounding halves up.
func RoundEstimate(v float64) Level {
	return ClampLevel(Level(math.Floor(ClampEstimate(v) + 0.5)))
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DefaultCriteria describes, per level, what a response has to show to be
// credited at that level. The classification client receives these with
// every request.
func DefaultCriteria() map[Level][]string {
	return map[Level][]string{
		LevelRemember: {
			"recalls terminology, syntax or definitions",
			"answers with isolated facts and no explanation",
		},
		LevelUnderstand: {
			"explains a concept in own words",
			"describes how related pieces connect",
		},
		LevelApply: {
			"uses the concept to solve a concrete problem",
			"describes an implementation with concrete steps",
		},
		LevelAnalyze: {
			"breaks a problem into parts and identifies causes",
			"debugs or compares alternative approaches",
		},
		LevelEvaluate: {
			"judges trade-offs and justifies a decision",
			"reviews designs against quality criteria",
		},
	}
}

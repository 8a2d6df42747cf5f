package cognition

import (
	"errors"
	"fmt"
	"strings"
)

// QuestionKind is the response format a question asks for.
type QuestionKind string

const (
	KindMultipleChoice     QuestionKind = "multiple-choice"
	KindOpenEnded          QuestionKind = "open-ended"
	KindCodeAnalysis       QuestionKind = "code-analysis"
	KindScenario           QuestionKind = "scenario"
	KindConceptExplanation QuestionKind = "concept-explanation"
	KindProblemSolving     QuestionKind = "problem-solving"
	KindDebugging          QuestionKind = "debugging"
	KindArchitecture       QuestionKind = "architecture"
)

// AllKinds returns every question kind.
func AllKinds() []QuestionKind {
	return []QuestionKind{
		KindMultipleChoice,
		KindOpenEnded,
		KindCodeAnalysis,
		KindScenario,
		KindConceptExplanation,
		KindProblemSolving,
		KindDebugging,
		KindArchitecture,
	}
}

// Valid reports whether k is a known kind.
func (k QuestionKind) Valid() bool {
	for _, known := range AllKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Difficulty is the ordinal difficulty of a question.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// ErrInvalidQuestion is returned by Question.Validate.
var ErrInvalidQuestion = errors.New("invalid question")

// Question is a single assessable item. Questions are immutable once they
// enter a repository.
type Question struct {
	ID          string       `yaml:"id" json:"id"`
	Domain      string       `yaml:"domain" json:"domain"`
	Kind        QuestionKind `yaml:"kind" json:"kind"`
	TargetLevel Level        `yaml:"target_level" json:"target_level"`
	Difficulty  Difficulty   `yaml:"difficulty" json:"difficulty"`
	Text        string       `yaml:"text" json:"text"`
	Options     []string     `yaml:"options,omitempty" json:"options,omitempty"`
}

// Validate checks the question's invariants.
func (q Question) Validate() error {
	switch {
	case strings.TrimSpace(q.ID) == "":
		return fmt.Errorf("%w: empty id", ErrInvalidQuestion)
	case strings.TrimSpace(q.Domain) == "":
		return fmt.Errorf("%w: %s: empty domain", ErrInvalidQuestion, q.ID)
	case !q.Kind.Valid():
		return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidQuestion, q.ID, q.Kind)
	case !q.TargetLevel.Valid():
		return fmt.Errorf("%w: %s: target level %d outside [1,5]", ErrInvalidQuestion, q.ID, q.TargetLevel)
	case !q.Difficulty.Valid():
		return fmt.Errorf("%w: %s: unknown difficulty %q", ErrInvalidQuestion, q.ID, q.Difficulty)
	}
	return nil
}

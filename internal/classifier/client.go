// Package classifier turns a learner's answer to a question into a
// normalized cognition.Assessment. An LLM-backed Client does the semantic
// work; Classifier wraps it with domain-specific confidence adjustment and a
// deterministic fallback so that classification never fails.
package classifier

import (
	"context"
	"fmt"
	"math"

	"github.com/abhisek/cognilevel/internal/cognition"
)

// Request is everything a Client gets to classify one response.
type Request struct {
	Question cognition.Question
	Response string
	Domain   string
	Criteria map[cognition.Level][]string
}

// RawAssessment is the unadjusted output of a Client.
type RawAssessment struct {
	Level      int      `json:"level"`
	Confidence float64  `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
	Evidence   []string `json:"evidence"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// Client classifies a single response. Implementations may fail; Classifier
// absorbs every failure.
type Client interface {
	Classify(ctx context.Context, req Request) (*RawAssessment, error)
}

// ErrMalformedAssessment is returned when a client answers with values
// outside the level or confidence range.
type ErrMalformedAssessment struct {
	Field string
	Value any
}

func (e *ErrMalformedAssessment) Error() string {
	return fmt.Sprintf("malformed assessment: %s = %v", e.Field, e.Value)
}

// Validate checks the level and confidence ranges.
func (r *RawAssessment) Validate() error {
	if r == nil {
		return &ErrMalformedAssessment{Field: "assessment", Value: nil}
	}
	if !cognition.Level(r.Level).Valid() {
		return &ErrMalformedAssessment{Field: "level", Value: r.Level}
	}
	if math.IsNaN(r.Confidence) || r.Confidence < 0 || r.Confidence > 1 {
		return &ErrMalformedAssessment{Field: "confidence", Value: r.Confidence}
	}
	return nil
}

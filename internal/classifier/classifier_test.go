package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/cognilevel/internal/cognition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	raw   *RawAssessment
	err   error
	calls []Request
}

func (s *stubClient) Classify(_ context.Context, req Request) (*RawAssessment, error) {
	s.calls = append(s.calls, req)
	return s.raw, s.err
}

func question(kind cognition.QuestionKind, target cognition.Level) cognition.Question {
	return cognition.Question{
		ID:          "q-1",
		Domain:      "javascript",
		Kind:        kind,
		TargetLevel: target,
		Difficulty:  cognition.DifficultyIntermediate,
		Text:        "Explain closures.",
	}
}

func TestClassify_EmptyResponseSkipsClient(t *testing.T) {
	for _, response := range []string{"", "   ", "\n\t"} {
		client := &stubClient{raw: &RawAssessment{Level: 5, Confidence: 1}}
		c := New(client)

		a := c.Classify(context.Background(), question(cognition.KindArchitecture, 5), response, "go")

		assert.Equal(t, cognition.LevelRemember, a.Level)
		assert.Equal(t, 0.1, a.Confidence)
		assert.Equal(t, "No response provided", a.Reasoning)
		assert.Equal(t, []string{"response-completion"}, a.Weaknesses)
		assert.Empty(t, a.Strengths)
		assert.Equal(t, OutcomeEmpty, a.Source)
		assert.Empty(t, client.calls, "client must not be called for %q", response)
	}
}

func TestClassify_PassesCriteriaAndDomain(t *testing.T) {
	client := &stubClient{raw: &RawAssessment{Level: 2, Confidence: 0.5}}
	c := New(client)

	c.Classify(context.Background(), question(cognition.KindOpenEnded, 2), "an answer", "javascript")

	require.Len(t, client.calls, 1)
	req := client.calls[0]
	assert.Equal(t, "javascript", req.Domain)
	assert.Equal(t, "an answer", req.Response)
	assert.Len(t, req.Criteria, 5)
	assert.Contains(t, req.Criteria[cognition.LevelApply], "writes or describes working JavaScript for the task")
}

func TestClassify_ConfidenceAdjustment(t *testing.T) {
	long := strings.Repeat("a", 201)

	tests := []struct {
		name     string
		kind     cognition.QuestionKind
		domain   string
		response string
		level    int
		conf     float64
		want     float64
	}{
		{"multiple choice high level", cognition.KindMultipleChoice, "sql", "B", 4, 0.9, 0.72},
		{"multiple choice level 3 untouched", cognition.KindMultipleChoice, "sql", "B", 3, 0.9, 0.9},
		{"open ended long", cognition.KindOpenEnded, "sql", long, 3, 0.8, 0.88},
		{"open ended exactly 200", cognition.KindOpenEnded, "sql", strings.Repeat("a", 200), 3, 0.8, 0.8},
		{"surrounding whitespace not counted", cognition.KindOpenEnded, "sql", "\n  " + strings.Repeat("a", 190) + strings.Repeat(" ", 20), 3, 0.8, 0.8},
		{"multibyte under 200 runes", cognition.KindOpenEnded, "sql", strings.Repeat("é", 150), 3, 0.8, 0.8},
		{"multibyte over 200 runes", cognition.KindOpenEnded, "sql", strings.Repeat("é", 201), 3, 0.8, 0.88},
		{"keyword boost", cognition.KindScenario, "javascript", "I would use a Closure here", 3, 0.8, 0.84},
		{"long with keyword", cognition.KindOpenEnded, "javascript", long + " function", 3, 0.8, 0.92},
		{"capped at one", cognition.KindOpenEnded, "javascript", long + " function", 3, 0.95, 1.0},
		{"unknown domain has no keywords", cognition.KindScenario, "cobol", "function", 3, 0.8, 0.8},
		{"rounded", cognition.KindDebugging, "go", "no keywords here", 4, 0.777, 0.78},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubClient{raw: &RawAssessment{Level: tt.level, Confidence: tt.conf, Reasoning: "r"}}
			a := New(client).Classify(context.Background(), question(tt.kind, 5), tt.response, tt.domain)

			assert.Equal(t, cognition.Level(tt.level), a.Level)
			assert.InDelta(t, tt.want, a.Confidence, 1e-9)
			assert.Equal(t, OutcomeLLM, a.Source)
		})
	}
}

func TestClassify_DedupsLabels(t *testing.T) {
	client := &stubClient{raw: &RawAssessment{
		Level:      3,
		Confidence: 0.6,
		Evidence:   []string{"uses-example", "uses-example"},
		Strengths:  []string{"closures", "", "closures"},
		Weaknesses: []string{"naming"},
	}}
	a := New(client).Classify(context.Background(), question(cognition.KindScenario, 3), "answer", "react")

	assert.Equal(t, []string{"uses-example"}, a.Evidence)
	assert.Equal(t, []string{"closures"}, a.Strengths)
	assert.Equal(t, []string{"naming"}, a.Weaknesses)
}

func TestClassify_FallbackOnFailure(t *testing.T) {
	failures := map[string]*stubClient{
		"error":              {err: errors.New("timeout")},
		"level out of range": {raw: &RawAssessment{Level: 7, Confidence: 0.5}},
		"confidence > 1":     {raw: &RawAssessment{Level: 3, Confidence: 1.5}},
		"nil result":         {},
	}
	for name, client := range failures {
		t.Run(name, func(t *testing.T) {
			a := New(client).Classify(context.Background(), question(cognition.KindOpenEnded, 5), strings.Repeat("x", 120), "go")

			assert.Equal(t, cognition.LevelUnderstand, a.Level)
			assert.Equal(t, 0.4, a.Confidence)
			assert.Equal(t, []string{"communication"}, a.Strengths)
			assert.Empty(t, a.Weaknesses)
			assert.Equal(t, []string{"response-length-detailed"}, a.Evidence)
			assert.Equal(t, OutcomeFallback, a.Source)
		})
	}
}

func TestFallbackAssessment_LengthBands(t *testing.T) {
	tests := []struct {
		length     int
		target     cognition.Level
		want       cognition.Level
		weaknesses []string
		strengths  []string
		evidence   string
	}{
		{10, 5, 1, []string{"detail-level"}, []string{}, "response-length-brief"},
		{49, 5, 1, []string{"detail-level"}, []string{}, "response-length-brief"},
		{50, 5, 1, []string{}, []string{}, "response-length-brief"},
		{51, 5, 2, []string{}, []string{}, "response-length-detailed"},
		{101, 5, 2, []string{}, []string{"communication"}, "response-length-detailed"},
		{150, 5, 2, []string{}, []string{"communication"}, "response-length-detailed"},
		{151, 5, 3, []string{}, []string{"communication"}, "response-length-detailed"},
		{151, 2, 2, []string{}, []string{"communication"}, "response-length-detailed"},
		{400, 1, 1, []string{}, []string{"communication"}, "response-length-detailed"},
	}
	for _, tt := range tests {
		a := fallbackAssessment(question(cognition.KindOpenEnded, tt.target), strings.Repeat("é", tt.length))

		assert.Equal(t, tt.want, a.Level, "length %d target %d", tt.length, tt.target)
		assert.LessOrEqual(t, a.Level, tt.target)
		assert.Equal(t, tt.weaknesses, a.Weaknesses, "length %d", tt.length)
		assert.Equal(t, tt.strengths, a.Strengths, "length %d", tt.length)
		assert.Equal(t, []string{tt.evidence}, a.Evidence, "length %d", tt.length)
	}
}

func TestClassify_NilClientUsesFallback(t *testing.T) {
	a := New(nil).Classify(context.Background(), question(cognition.KindOpenEnded, 3), "  short  ", "go")
	assert.Equal(t, cognition.LevelRemember, a.Level)
	assert.Equal(t, OutcomeFallback, a.Source)
}

func TestWithKeywords(t *testing.T) {
	client := &stubClient{raw: &RawAssessment{Level: 3, Confidence: 0.8}}
	c := New(client, WithKeywords("Kotlin", "coroutine"))

	a := c.Classify(context.Background(), question(cognition.KindScenario, 3), "launch a COROUTINE", "kotlin")
	assert.Equal(t, 0.84, a.Confidence)
}

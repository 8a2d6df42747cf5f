package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/cognilevel/internal/cognition"
	"github.com/abhisek/cognilevel/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLLMClient_Classify(t *testing.T) {
	resp := json.RawMessage(`{"level":3,"confidence":0.75,"reasoning":"Applies closures to a concrete case","evidence":["concrete-example"],"strengths":["closures"],"weaknesses":[]}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: resp})
	client := NewLLMClient(mock, DefaultLLMClientConfig())

	q := question(cognition.KindMultipleChoice, 2)
	q.Options = []string{"A: a closure", "B: a class"}

	raw, err := client.Classify(context.Background(), Request{
		Question: q,
		Response: "A, because the inner function keeps its scope",
		Domain:   "javascript",
		Criteria: CriteriaFor("javascript"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, raw.Level)
	assert.Equal(t, 0.75, raw.Confidence)
	assert.Equal(t, []string{"closures"}, raw.Strengths)

	require.Equal(t, 1, mock.CallCount())
	sent := mock.Calls[0]
	assert.Equal(t, ClassificationSchema, sent.Schema)
	msg := sent.Messages[0].Content
	assert.Contains(t, msg, "Domain: javascript")
	assert.Contains(t, msg, "- A: a closure")
	assert.Contains(t, msg, "A, because the inner function keeps its scope")
	assert.Contains(t, msg, "L5 Evaluate:")
}

func TestLLMClient_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	client := NewLLMClient(mock, DefaultLLMClientConfig())

	_, err := client.Classify(context.Background(), Request{Question: question(cognition.KindOpenEnded, 2), Response: "x"})
	var unavailable *llm.ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavailable))
}

const validAnswer = `{"level":2,"confidence":0.6,"reasoning":"Explains the idea","evidence":[],"strengths":[],"weaknesses":[]}`

func TestLLMClient_CorrectsMalformedAnswerOnce(t *testing.T) {
	tests := map[string]string{
		"not json":       `level 3`,
		"level too high": `{"level":6,"confidence":0.5,"reasoning":"","evidence":[],"strengths":[],"weaknesses":[]}`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			mock := llm.NewMockProvider(
				llm.MockResponse{Content: json.RawMessage(content)},
				llm.MockResponse{Content: json.RawMessage(validAnswer)},
			)
			raw, err := NewLLMClient(mock, DefaultLLMClientConfig()).Classify(context.Background(), Request{
				Question: question(cognition.KindOpenEnded, 2),
				Response: "x",
			})
			require.NoError(t, err)
			assert.Equal(t, 2, raw.Level)

			require.Equal(t, 2, mock.CallCount())
			retry := mock.Calls[1].Messages
			require.Len(t, retry, 3)
			assert.Equal(t, llm.RoleAssistant, retry[1].Role)
			assert.Equal(t, content, retry[1].Content)
			assert.Equal(t, llm.RoleUser, retry[2].Role)
			assert.Contains(t, retry[2].Content, "rejected")
		})
	}
}

func TestLLMClient_GivesUpAfterCorrection(t *testing.T) {
	bad := json.RawMessage(`{"level":0,"confidence":0.5,"reasoning":"","evidence":[],"strengths":[],"weaknesses":[]}`)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: bad},
		llm.MockResponse{Content: bad},
		llm.MockResponse{Content: json.RawMessage(validAnswer)},
	)

	_, err := NewLLMClient(mock, DefaultLLMClientConfig()).Classify(context.Background(), Request{
		Question: question(cognition.KindOpenEnded, 2),
		Response: "x",
	})
	var malformed *ErrMalformedAssessment
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "level", malformed.Field)
	assert.Equal(t, 2, mock.CallCount())
}

func TestLLMClient_NoCorrectionsConfigured(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`level 3`)},
		llm.MockResponse{Content: json.RawMessage(validAnswer)},
	)
	cfg := DefaultLLMClientConfig()
	cfg.Corrections = 0

	_, err := NewLLMClient(mock, cfg).Classify(context.Background(), Request{
		Question: question(cognition.KindOpenEnded, 2),
		Response: "x",
	})
	assert.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestLLMClient_CorrectsSchemaViolation(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrInvalidResponse{Content: json.RawMessage(`{"level":"three"}`), Err: errors.New("schema validation failed")}},
		llm.MockResponse{Content: json.RawMessage(validAnswer)},
	)

	raw, err := NewLLMClient(mock, DefaultLLMClientConfig()).Classify(context.Background(), Request{
		Question: question(cognition.KindOpenEnded, 2),
		Response: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, raw.Level)
	assert.Equal(t, `{"level":"three"}`, mock.Calls[1].Messages[1].Content)
}

func TestLLMClient_InvalidResponseWithoutContentNotCorrected(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrInvalidResponse{Err: errors.New("no choices")}},
		llm.MockResponse{Content: json.RawMessage(validAnswer)},
	)

	_, err := NewLLMClient(mock, DefaultLLMClientConfig()).Classify(context.Background(), Request{
		Question: question(cognition.KindOpenEnded, 2),
		Response: "x",
	})
	assert.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestLLMClient_ThroughClassifierFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"level":0}`)})
	c := New(NewLLMClient(mock, DefaultLLMClientConfig()))

	a := c.Classify(context.Background(), question(cognition.KindOpenEnded, 2), strings.Repeat("word ", 40), "javascript")
	assert.Equal(t, OutcomeFallback, a.Source)
	assert.Equal(t, cognition.LevelUnderstand, a.Level)
}

func TestRawAssessmentValidate(t *testing.T) {
	var nilRaw *RawAssessment
	var malformed *ErrMalformedAssessment
	require.ErrorAs(t, nilRaw.Validate(), &malformed)

	err := (&RawAssessment{Level: 3, Confidence: -0.1}).Validate()
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "confidence", malformed.Field)

	assert.NoError(t, (&RawAssessment{Level: 1, Confidence: 0}).Validate())
}

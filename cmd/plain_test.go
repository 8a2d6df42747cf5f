package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cognilevel/internal/assess"
	"github.com/abhisek/cognilevel/internal/cognition"
	"github.com/abhisek/cognilevel/internal/questionbank"
)

type recordingClassifier struct {
	responses []string
}

func (c *recordingClassifier) Classify(_ context.Context, _ cognition.Question, response, _ string) cognition.Assessment {
	c.responses = append(c.responses, response)
	return cognition.Assessment{Level: cognition.LevelApply, Confidence: 0.6, Source: "llm"}
}

func newPlainEngine(t *testing.T) (*assess.Engine, *recordingClassifier) {
	t.Helper()
	bank := questionbank.New()
	for _, q := range []cognition.Question{
		{ID: "mc-1", Kind: cognition.KindMultipleChoice, TargetLevel: 2, Difficulty: cognition.DifficultyBeginner,
			Text: "Which keyword declares a constant?", Options: []string{"var", "const", "let"}},
		{ID: "oe-1", Kind: cognition.KindOpenEnded, TargetLevel: 3, Difficulty: cognition.DifficultyIntermediate,
			Text: "How would you share state between goroutines?"},
	} {
		require.NoError(t, bank.AddQuestion("test", q))
	}
	cls := &recordingClassifier{}
	return assess.NewEngine(bank, cls, assess.WithRandom(assess.NewRandom(1))), cls
}

var plainConfig = assess.Config{MaxQuestions: 2, ConfidenceThreshold: 1, Strategy: assess.StrategyBalanced}

func TestRunPlain_TextReport(t *testing.T) {
	engine, cls := newPlainEngine(t)
	in := strings.NewReader("2\n  use a channel  \n")
	var out bytes.Buffer

	require.NoError(t, runPlain(context.Background(), engine, "test", plainConfig, in, &out, false))

	assert.Equal(t, []string{"const", "use a channel"}, cls.responses)
	text := out.String()
	assert.Contains(t, text, "Question 1/2")
	assert.Contains(t, text, "  2) const")
	assert.Contains(t, text, "Level:       L3 Apply")
	assert.Contains(t, text, "Questions:   2 (stopped: max-questions)")
	assert.Contains(t, text, "Target:      100% (not reached)")
}

func TestRunPlain_OutOfRangeNumberIsKeptVerbatim(t *testing.T) {
	engine, cls := newPlainEngine(t)
	var out bytes.Buffer

	require.NoError(t, runPlain(context.Background(), engine, "test", plainConfig,
		strings.NewReader("7\n42\n"), &out, false))

	assert.Equal(t, []string{"7", "42"}, cls.responses)
}

func TestRunPlain_ClosedInputPrintsPartialReport(t *testing.T) {
	engine, cls := newPlainEngine(t)
	var out bytes.Buffer

	require.NoError(t, runPlain(context.Background(), engine, "test", plainConfig,
		strings.NewReader("1\n"), &out, true))

	assert.Len(t, cls.responses, 1)
	var report assess.FinalReport
	require.NoError(t, json.Unmarshal(out.Bytes()[strings.Index(out.String(), "{"):], &report))
	assert.Equal(t, 1, report.QuestionsAsked)
	assert.Equal(t, assess.StopFinalized, report.StopReason)
	assert.Equal(t, "test", report.Domain)
}

func TestRunPlain_UnknownDomainStopsExhausted(t *testing.T) {
	engine, cls := newPlainEngine(t)
	var out bytes.Buffer

	require.NoError(t, runPlain(context.Background(), engine, "cobol", plainConfig,
		strings.NewReader(""), &out, false))

	assert.Empty(t, cls.responses)
	assert.Contains(t, out.String(), "Questions:   0 (stopped: exhausted)")
	assert.NotContains(t, out.String(), "Question 1/")
}

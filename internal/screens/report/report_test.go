package report

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cognilevel/internal/assess"
	"github.com/abhisek/cognilevel/internal/cognition"
)

func testReport() assess.FinalReport {
	return assess.FinalReport{
		SessionID:            "s-1",
		Domain:               "javascript",
		FinalLevel:           cognition.LevelApply,
		OverallConfidence:    0.9,
		ConfidenceTarget:     0.8,
		TargetReached:        true,
		QualityTier:          assess.QualityMedium,
		Recommendations:      []string{"Practice implementing solutions to real-world problems", "Focus on improving: testing"},
		AggregatedWeaknesses: []string{"testing"},
		AggregatedStrengths:  []string{"closures"},
		QuestionsAsked:       2,
		StopReason:           assess.StopConfidence,
		NextLevel:            cognition.LevelAnalyze,
		LearningModules: []assess.LearningModule{
			{ID: "debugging-optimization", Title: "Debugging and Optimization", Level: cognition.LevelAnalyze, EstimatedHours: 10},
		},
	}
}

func TestReportScreen_Title(t *testing.T) {
	s := New(testReport())
	if s.Title() != "Assessment Report" {
		t.Errorf("Title = %q, want %q", s.Title(), "Assessment Report")
	}
}

func TestRender_ContainsReportFields(t *testing.T) {
	view := Render(testReport(), 100)
	for _, want := range []string{
		"javascript",
		"Level 3",
		"Apply",
		"Focus on improving: testing",
		"closures",
		"Debugging and Optimization",
		"confident result",
		"Confidence target 80%: reached",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRender_ZeroTurnReport(t *testing.T) {
	r := testReport()
	r.QuestionsAsked = 0
	r.AggregatedStrengths = nil
	r.AggregatedWeaknesses = nil
	r.LearningModules = nil

	if view := Render(r, 80); strings.Contains(view, "Strengths and weaknesses") {
		t.Error("empty strengths/weaknesses section should be omitted")
	}
}

func TestReportScreen_Navigation(t *testing.T) {
	for _, key := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testReport())
		_, cmd := s.Update(tea.KeyPressMsg{Code: key})
		if cmd == nil {
			t.Errorf("expected a pop command for key %v", key)
		}
	}
}

func TestReportScreen_KeyHints(t *testing.T) {
	if n := len(New(testReport()).KeyHints()); n != 2 {
		t.Errorf("KeyHints length = %d, want 2", n)
	}
}

package store

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/cognilevel/internal/assess"
	"github.com/abhisek/cognilevel/internal/cognition"
)

type oneQuestion struct{}

func (oneQuestion) QuestionsFor(string) []cognition.Question {
	return []cognition.Question{{
		ID: "go-1", Domain: "go", Kind: cognition.KindOpenEnded,
		TargetLevel: cognition.LevelUnderstand, Difficulty: cognition.DifficultyBeginner,
		Text: "What does defer do?",
	}}
}

type fixedLevel struct{}

func (fixedLevel) Classify(context.Context, cognition.Question, string, string) cognition.Assessment {
	return cognition.Assessment{Level: cognition.LevelApply, Confidence: 0.7, Source: "fallback"}
}

func TestSessionRecorder_PersistsSession(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	engine := assess.NewEngine(oneQuestion{}, fixedLevel{},
		assess.WithRecorder(NewSessionRecorder(repo)),
		assess.WithRandom(assess.NewRandom(1)))

	responder := assess.ResponderFunc(func(context.Context, *assess.Session, cognition.Question) (string, time.Duration, error) {
		return "it runs a call when the function returns", 1500 * time.Millisecond, nil
	})
	want, err := engine.Run(context.Background(), "go", assess.DefaultConfig(), responder)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	ctx := context.Background()
	sessions, err := repo.RecentSessions(ctx, 10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	got := sessions[0]
	if got.SessionID != want.SessionID || got.Domain != "go" || got.FinalLevel != int(want.FinalLevel) {
		t.Errorf("unexpected session row: %+v", got.SessionEventData)
	}
	if got.StopReason != string(assess.StopExhausted) {
		t.Errorf("StopReason = %q, want exhausted", got.StopReason)
	}

	rep, err := DecodeReport(got)
	if err != nil {
		t.Fatalf("DecodeReport: %v", err)
	}
	if rep.QualityTier != want.QualityTier || len(rep.Recommendations) != len(want.Recommendations) {
		t.Errorf("decoded report differs: %+v", rep)
	}

	turns, err := repo.SessionTurns(ctx, want.SessionID)
	if err != nil {
		t.Fatalf("SessionTurns: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(turns))
	}
	if turns[0].QuestionID != "go-1" || turns[0].TimeSpentMs != 1500 || turns[0].Level != 3 {
		t.Errorf("unexpected turn row: %+v", turns[0].TurnEventData)
	}
}

func TestDecodeReport_Missing(t *testing.T) {
	if _, err := DecodeReport(SessionEvent{SessionEventData: SessionEventData{SessionID: "x"}}); err == nil {
		t.Error("expected an error for a session without report")
	}
}

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/cognilevel/internal/assess"
)

// SessionRecorder persists assessment sessions as events. It implements
// assess.Recorder.
type SessionRecorder struct {
	repo EventRepo
}

var _ assess.Recorder = (*SessionRecorder)(nil)

// NewSessionRecorder returns a recorder writing to repo.
func NewSessionRecorder(repo EventRepo) *SessionRecorder {
	return &SessionRecorder{repo: repo}
}

func (r *SessionRecorder) SessionStarted(ctx context.Context, s *assess.Session) error {
	return r.repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: s.ID(),
		Action:    SessionActionStart,
		Domain:    s.Domain(),
		Strategy:  string(s.Config().Strategy),
	})
}

func (r *SessionRecorder) TurnRecorded(ctx context.Context, s *assess.Session, t assess.Turn) error {
	return r.repo.AppendTurnEvent(ctx, TurnEventData{
		SessionID:     s.ID(),
		Turn:          t.Number,
		QuestionID:    t.Question.ID,
		Kind:          string(t.Question.Kind),
		TargetLevel:   int(t.Question.TargetLevel),
		Response:      t.Response,
		TimeSpentMs:   t.TimeSpent.Milliseconds(),
		Level:         int(t.Assessment.Level),
		Confidence:    t.Assessment.Confidence,
		Source:        t.Assessment.Source,
		EstimateAfter: t.EstimateAfter,
	})
}

func (r *SessionRecorder) SessionCompleted(ctx context.Context, rep assess.FinalReport) error {
	body, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return r.repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID:      rep.SessionID,
		Action:         SessionActionEnd,
		Domain:         rep.Domain,
		QuestionsAsked: rep.QuestionsAsked,
		FinalLevel:     int(rep.FinalLevel),
		Confidence:     rep.OverallConfidence,
		QualityTier:    string(rep.QualityTier),
		StopReason:     string(rep.StopReason),
		Report:         string(body),
	})
}

// DecodeReport returns the final report stored with a completed session.
func DecodeReport(e SessionEvent) (assess.FinalReport, error) {
	var rep assess.FinalReport
	if e.Report == "" {
		return rep, fmt.Errorf("session %s has no stored report", e.SessionID)
	}
	if err := json.Unmarshal([]byte(e.Report), &rep); err != nil {
		return rep, fmt.Errorf("decode report of session %s: %w", e.SessionID, err)
	}
	return rep, nil
}

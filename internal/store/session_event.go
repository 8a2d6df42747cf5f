package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var sessionEventColumns = []string{
	"session_id", "action", "domain", "strategy", "questions_asked",
	"final_level", "confidence", "quality_tier", "stop_reason", "report",
}

var turnEventColumns = []string{
	"session_id", "turn", "question_id", "kind", "target_level", "response",
	"time_spent_ms", "level", "confidence", "source", "estimate_after",
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, tableSessionEvents, sessionEventColumns, []any{
		data.SessionID,
		data.Action,
		data.Domain,
		data.Strategy,
		data.QuestionsAsked,
		data.FinalLevel,
		data.Confidence,
		data.QualityTier,
		data.StopReason,
		data.Report,
	})
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendTurnEvent(ctx context.Context, data TurnEventData) error {
	err := r.insert(ctx, tableTurnEvents, turnEventColumns, []any{
		data.SessionID,
		data.Turn,
		data.QuestionID,
		data.Kind,
		data.TargetLevel,
		data.Response,
		data.TimeSpentMs,
		data.Level,
		data.Confidence,
		data.Source,
		data.EstimateAfter,
	})
	if err != nil {
		return fmt.Errorf("save turn event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionTurns(ctx context.Context, sessionID string) ([]TurnEvent, error) {
	s := selectEvents(tableTurnEvents, turnEventColumns...).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("turn")

	var turns []TurnEvent
	err := r.query(ctx, s, func(rows *entsql.Rows) error {
		var (
			e  TurnEvent
			ts int64
		)
		if err := rows.Scan(
			&e.ID, &e.Sequence, &ts,
			&e.SessionID, &e.Turn, &e.QuestionID, &e.Kind, &e.TargetLevel, &e.Response,
			&e.TimeSpentMs, &e.Level, &e.Confidence, &e.Source, &e.EstimateAfter,
		); err != nil {
			return err
		}
		e.Timestamp = fromMillis(ts)
		turns = append(turns, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query session turns: %w", err)
	}
	return turns, nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionEvent, error) {
	s := selectEvents(tableSessionEvents, sessionEventColumns...).
		Where(entsql.EQ("action", SessionActionEnd)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		s.Limit(limit)
	}

	var sessions []SessionEvent
	err := r.query(ctx, s, func(rows *entsql.Rows) error {
		var (
			e  SessionEvent
			ts int64
		)
		if err := rows.Scan(
			&e.ID, &e.Sequence, &ts,
			&e.SessionID, &e.Action, &e.Domain, &e.Strategy, &e.QuestionsAsked,
			&e.FinalLevel, &e.Confidence, &e.QualityTier, &e.StopReason, &e.Report,
		); err != nil {
			return err
		}
		e.Timestamp = fromMillis(ts)
		sessions = append(sessions, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	return sessions, nil
}

package assess

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/cognilevel/internal/cognition"
	"github.com/google/uuid"
)

// QuestionSource supplies the ordered questions of a domain.
type QuestionSource interface {
	QuestionsFor(domain string) []cognition.Question
}

// ResponseClassifier classifies one answer. It must not fail; degraded
// results carry a low confidence instead.
type ResponseClassifier interface {
	Classify(ctx context.Context, q cognition.Question, response, domain string) cognition.Assessment
}

// Responder obtains the learner's answer to q, e.g. from a terminal prompt.
type Responder interface {
	Respond(ctx context.Context, s *Session, q cognition.Question) (response string, timeSpent time.Duration, err error)
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(ctx context.Context, s *Session, q cognition.Question) (string, time.Duration, error)

func (f ResponderFunc) Respond(ctx context.Context, s *Session, q cognition.Question) (string, time.Duration, error) {
	return f(ctx, s, q)
}

// TurnOutcome is the result of RunTurn.
type TurnOutcome struct {
	// Turn is nil when no question was left to ask.
	Turn       *Turn
	Completed  bool
	StopReason StopReason
}

// Engine runs assessment sessions. One Engine serves any number of
// independent sessions concurrently.
type Engine struct {
	bank       QuestionSource
	classifier ResponseClassifier
	random     Random
	recorder   Recorder
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandom sets the randomness used for out-of-band selection.
func WithRandom(r Random) Option {
	return func(e *Engine) { e.random = r }
}

// WithRecorder sets a Recorder for session events.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine over bank and classifier.
func NewEngine(bank QuestionSource, classifier ResponseClassifier, opts ...Option) *Engine {
	e := &Engine{
		bank:       bank,
		classifier: classifier,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.random == nil {
		e.random = newTimeRandom()
	}
	return e
}

// StartSession validates cfg and returns a running session for domain.
func (e *Engine) StartSession(ctx context.Context, domain string, cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(domain) == "" {
		return nil, fmt.Errorf("%w: empty domain", ErrInvalidConfig)
	}

	s := newSession(uuid.NewString(), domain, cfg, e.now())
	s.state = StateRunning

	e.logger.Info("assessment session started",
		"session_id", s.id, "domain", domain, "strategy", cfg.Strategy, "max_questions", cfg.MaxQuestions)
	if e.recorder != nil {
		if err := e.recorder.SessionStarted(ctx, s); err != nil {
			e.logger.Warn("failed to record session start", "session_id", s.id, "error", err)
		}
	}
	return s, nil
}

// NextQuestion returns the question to ask next. It returns false once the
// session is complete; an exhausted question pool completes the session.
// Calling it again before SubmitResponse returns the same question.
func (e *Engine) NextQuestion(s *Session) (cognition.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateCompleted {
		return cognition.Question{}, false
	}
	if s.pending != nil {
		return *s.pending, true
	}

	q, ok := e.selectQuestion(s)
	if !ok {
		e.logger.Info("question pool exhausted", "session_id", s.id, "domain", s.domain)
		s.complete(StopExhausted)
		return cognition.Question{}, false
	}
	s.pending = &q
	return q, true
}

// SubmitResponse classifies the answer to the pending question and applies
// the turn. The turn is applied entirely or not at all.
func (e *Engine) SubmitResponse(ctx context.Context, s *Session, response string, timeSpent time.Duration) (Turn, error) {
	s.mu.Lock()
	turn, err := e.applyTurn(ctx, s, response, timeSpent)
	s.mu.Unlock()
	if err != nil {
		return Turn{}, err
	}

	if e.recorder != nil {
		if err := e.recorder.TurnRecorded(ctx, s, turn); err != nil {
			e.logger.Warn("failed to record turn", "session_id", s.id, "turn", turn.Number, "error", err)
		}
	}
	return turn, nil
}

// applyTurn must be called with s.mu held.
func (e *Engine) applyTurn(ctx context.Context, s *Session, response string, timeSpent time.Duration) (Turn, error) {
	if s.state == StateCompleted {
		return Turn{}, ErrSessionComplete
	}
	if s.pending == nil {
		return Turn{}, ErrNoPendingQuestion
	}
	q := *s.pending

	a := e.classifier.Classify(ctx, q, response, s.domain)
	a.Level = cognition.ClampLevel(a.Level)
	a.Confidence = cognition.ClampUnit(a.Confidence)

	s.estimate = updateEstimate(s.estimate, s.confidence, a)
	s.confidence = sessionConfidence(append(s.assessments(), a))

	turn := Turn{
		Number:          len(s.turns) + 1,
		Question:        q,
		Response:        response,
		Assessment:      a,
		TimeSpent:       timeSpent,
		AnsweredAt:      e.now(),
		EstimateAfter:   s.estimate,
		ConfidenceAfter: s.confidence,
	}
	s.turns = append(s.turns, turn)
	s.used[q.ID] = true
	s.usedKinds[q.Kind] = true
	s.pending = nil

	turnsTotal.WithLabelValues(string(s.cfg.Strategy)).Inc()
	e.logger.Debug("assessment turn",
		"session_id", s.id, "turn", turn.Number, "question_id", q.ID,
		"level", int(a.Level), "confidence", a.Confidence, "source", a.Source,
		"estimate", s.estimate, "session_confidence", s.confidence)

	switch {
	case len(s.turns) >= s.cfg.MaxQuestions:
		s.complete(StopMaxQuestions)
	case s.confidence > earlyStopConfidence:
		s.complete(StopConfidence)
	case !e.hasUnused(s):
		s.complete(StopExhausted)
	}
	return turn, nil
}

// IsComplete reports whether s has completed.
func (e *Engine) IsComplete(s *Session) bool {
	return s.State() == StateCompleted
}

// Finalize completes s if it is still running and returns its report. The
// report is computed once; later calls return the same values.
func (e *Engine) Finalize(ctx context.Context, s *Session) FinalReport {
	s.mu.Lock()
	if s.report != nil {
		r := s.report.clone()
		s.mu.Unlock()
		return r
	}
	s.complete(StopFinalized)
	report := buildReport(s, e.now())
	s.report = &report
	s.mu.Unlock()

	sessionsCompleted.WithLabelValues(string(report.QualityTier), string(report.StopReason)).Inc()
	e.logger.Info("assessment session completed",
		"session_id", report.SessionID, "final_level", int(report.FinalLevel),
		"confidence", report.OverallConfidence, "quality", report.QualityTier,
		"stop_reason", report.StopReason, "questions", report.QuestionsAsked)
	if e.recorder != nil {
		if err := e.recorder.SessionCompleted(ctx, report.clone()); err != nil {
			e.logger.Warn("failed to record session completion", "session_id", report.SessionID, "error", err)
		}
	}
	return report.clone()
}

// RunTurn asks the next question through responder and submits the answer.
// A responder error leaves the session unchanged.
func (e *Engine) RunTurn(ctx context.Context, s *Session, responder Responder) (TurnOutcome, error) {
	q, ok := e.NextQuestion(s)
	if !ok {
		return TurnOutcome{Completed: true, StopReason: s.StopReason()}, nil
	}

	response, spent, err := responder.Respond(ctx, s, q)
	if err != nil {
		return TurnOutcome{}, fmt.Errorf("obtain response to %s: %w", q.ID, err)
	}

	turn, err := e.SubmitResponse(ctx, s, response, spent)
	if err != nil {
		return TurnOutcome{}, err
	}
	return TurnOutcome{
		Turn:       &turn,
		Completed:  e.IsComplete(s),
		StopReason: s.StopReason(),
	}, nil
}

// Run drives a whole session for domain and returns its report. If the
// responder fails, the session is finalized with the turns so far and the
// error is returned alongside the partial report.
func (e *Engine) Run(ctx context.Context, domain string, cfg Config, responder Responder) (FinalReport, error) {
	s, err := e.StartSession(ctx, domain, cfg)
	if err != nil {
		return FinalReport{}, err
	}

	for !e.IsComplete(s) {
		if err := ctx.Err(); err != nil {
			return e.Finalize(ctx, s), err
		}
		if _, err := e.RunTurn(ctx, s, responder); err != nil {
			return e.Finalize(ctx, s), err
		}
	}
	return e.Finalize(ctx, s), nil
}

package assess

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/abhisek/cognilevel/internal/cognition"
)

var (
	// ErrSessionComplete is returned when submitting to a completed session.
	ErrSessionComplete = errors.New("assessment session is complete")

	// ErrNoPendingQuestion is returned when a response is submitted before
	// NextQuestion handed out a question.
	ErrNoPendingQuestion = errors.New("no pending question")
)

// Initial prior of every session.
const (
	initialEstimate   = 2.0
	initialConfidence = 0.5
)

// State is the lifecycle state of a session.
type State int

const (
	StateCreated State = iota
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// StopReason says why a session completed.
type StopReason string

const (
	StopMaxQuestions StopReason = "max-questions"
	StopConfidence   StopReason = "confidence"
	StopExhausted    StopReason = "exhausted"
	StopFinalized    StopReason = "finalized"
)

// Turn is one answered question.
type Turn struct {
	Number     int
	Question   cognition.Question
	Response   string
	Assessment cognition.Assessment
	TimeSpent  time.Duration
	AnsweredAt time.Time

	// Session state right after this turn was applied.
	EstimateAfter   float64
	ConfidenceAfter float64
}

// Session is one learner's run in one domain. All methods are safe for
// concurrent use; turns are applied one at a time.
type Session struct {
	mu sync.Mutex

	id        string
	domain    string
	cfg       Config
	startedAt time.Time

	state      State
	estimate   float64
	confidence float64
	turns      []Turn
	used       map[string]bool
	usedKinds  map[cognition.QuestionKind]bool
	pending    *cognition.Question
	stopReason StopReason
	report     *FinalReport
}

func newSession(id, domain string, cfg Config, now time.Time) *Session {
	return &Session{
		id:         id,
		domain:     domain,
		cfg:        cfg,
		startedAt:  now,
		state:      StateCreated,
		estimate:   initialEstimate,
		confidence: initialConfidence,
		used:       make(map[string]bool),
		usedKinds:  make(map[cognition.QuestionKind]bool),
	}
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Domain() string       { return s.domain }
func (s *Session) Config() Config       { return s.cfg }
func (s *Session) StartedAt() time.Time { return s.startedAt }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Estimate returns the running level estimate in [1, 5].
func (s *Session) Estimate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.estimate
}

// Confidence returns the running confidence in [0, 1].
func (s *Session) Confidence() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confidence
}

// Turns returns a copy of the turns so far.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.turns)
}

// TurnCount returns the number of completed turns.
func (s *Session) TurnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// StopReason returns why the session completed, or "" while it runs.
func (s *Session) StopReason() StopReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopReason
}

// complete must be called with mu held. The first reason wins.
func (s *Session) complete(reason StopReason) {
	if s.state == StateCompleted {
		return
	}
	s.state = StateCompleted
	s.stopReason = reason
	s.pending = nil
}

func (s *Session) assessments() []cognition.Assessment {
	out := make([]cognition.Assessment, len(s.turns))
	for i, t := range s.turns {
		out[i] = t.Assessment
	}
	return out
}

package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls by purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls by model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// Session event actions.
const (
	SessionActionStart = "start"
	SessionActionEnd   = "end"
)

// SessionEventData captures an assessment session starting or completing.
// Result fields are only set on SessionActionEnd.
type SessionEventData struct {
	SessionID      string
	Action         string
	Domain         string
	Strategy       string
	QuestionsAsked int
	FinalLevel     int
	Confidence     float64
	QualityTier    string
	StopReason     string

	// Report is the JSON-encoded final report.
	Report string
}

// SessionEvent is a stored session event.
type SessionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// TurnEventData captures one answered question and its classification.
type TurnEventData struct {
	SessionID     string
	Turn          int
	QuestionID    string
	Kind          string
	TargetLevel   int
	Response      string
	TimeSpentMs   int64
	Level         int
	Confidence    float64
	Source        string
	EstimateAfter float64
}

// TurnEvent is a stored turn event.
type TurnEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	TurnEventData
}

// EventRepo provides append and query access to assessment events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns the event with id, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendTurnEvent(ctx context.Context, data TurnEventData) error

	// SessionTurns returns the turns of a session in turn order.
	SessionTurns(ctx context.Context, sessionID string) ([]TurnEvent, error)

	// RecentSessions returns completed sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionEvent, error)
}

package assess

import "context"

// Recorder receives session lifecycle events, e.g. to persist them. Errors
// are logged by the engine and never affect the session.
type Recorder interface {
	SessionStarted(ctx context.Context, s *Session) error
	TurnRecorded(ctx context.Context, s *Session, t Turn) error
	SessionCompleted(ctx context.Context, r FinalReport) error
}

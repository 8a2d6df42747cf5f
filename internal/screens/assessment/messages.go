package assessment

import "github.com/abhisek/cognilevel/internal/assess"

// sessionStartedMsg is sent once the engine has created the session.
type sessionStartedMsg struct {
	Session *assess.Session
	Err     error
}

// turnAppliedMsg is sent when a submitted answer has been classified.
type turnAppliedMsg struct {
	Turn assess.Turn
	Err  error
}

// sessionFinalizedMsg carries the final report.
type sessionFinalizedMsg struct {
	Report assess.FinalReport
}

package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	tableLLMEvents     = "llm_request_events"
	tableSessionEvents = "session_events"
	tableTurnEvents    = "turn_events"
)

// eventColumnsDDL is shared by every event table. timestamp is unix millis.
const eventColumnsDDL = `
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence INTEGER NOT NULL,
	timestamp INTEGER NOT NULL,`

// schema lists the DDL applied on open, in order. Statements must be
// idempotent; existing tables are left untouched.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS ` + tableLLMEvents + ` (` + eventColumnsDDL + `
	provider TEXT NOT NULL DEFAULT '',
	model TEXT NOT NULL DEFAULT '',
	purpose TEXT NOT NULL DEFAULT '',
	input_tokens INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	latency_ms INTEGER NOT NULL DEFAULT 0,
	success BOOLEAN NOT NULL DEFAULT false,
	error_message TEXT NOT NULL DEFAULT '',
	request_body TEXT NOT NULL DEFAULT '',
	response_body TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS ` + tableSessionEvents + ` (` + eventColumnsDDL + `
	session_id TEXT NOT NULL,
	action TEXT NOT NULL,
	domain TEXT NOT NULL DEFAULT '',
	strategy TEXT NOT NULL DEFAULT '',
	questions_asked INTEGER NOT NULL DEFAULT 0,
	final_level INTEGER NOT NULL DEFAULT 0,
	confidence REAL NOT NULL DEFAULT 0,
	quality_tier TEXT NOT NULL DEFAULT '',
	stop_reason TEXT NOT NULL DEFAULT '',
	report TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS ` + tableTurnEvents + ` (` + eventColumnsDDL + `
	session_id TEXT NOT NULL,
	turn INTEGER NOT NULL,
	question_id TEXT NOT NULL,
	kind TEXT NOT NULL DEFAULT '',
	target_level INTEGER NOT NULL DEFAULT 0,
	response TEXT NOT NULL DEFAULT '',
	time_spent_ms INTEGER NOT NULL DEFAULT 0,
	level INTEGER NOT NULL DEFAULT 0,
	confidence REAL NOT NULL DEFAULT 0,
	source TEXT NOT NULL DEFAULT '',
	estimate_after REAL NOT NULL DEFAULT 0
)`,
	`CREATE INDEX IF NOT EXISTS idx_session_events_action ON ` + tableSessionEvents + ` (action, sequence)`,
	`CREATE INDEX IF NOT EXISTS idx_turn_events_session ON ` + tableTurnEvents + ` (session_id, turn)`,
}

// migrate creates any missing event tables and indexes.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range schema {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

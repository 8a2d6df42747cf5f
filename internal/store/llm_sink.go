package store

import (
	"context"

	"github.com/abhisek/cognilevel/internal/llm"
)

// LLMEventSink stores provider calls as LLM request events. It implements
// llm.EventSink.
type LLMEventSink struct {
	repo EventRepo
}

var _ llm.EventSink = (*LLMEventSink)(nil)

func NewLLMEventSink(repo EventRepo) *LLMEventSink {
	return &LLMEventSink{repo: repo}
}

func (s *LLMEventSink) RecordLLMRequest(ctx context.Context, ev llm.RequestEvent) error {
	return s.repo.AppendLLMRequest(ctx, LLMRequestEventData(ev))
}

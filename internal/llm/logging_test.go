package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type recordingSink struct {
	events []RequestEvent
	err    error
}

func (s *recordingSink) RecordLLMRequest(_ context.Context, ev RequestEvent) error {
	s.events = append(s.events, ev)
	return s.err
}

func TestLogging_RecordsSuccessfulCall(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"level":3}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 4},
	})
	sink := &recordingSink{}
	p := WithLogging(mock, ProviderMock, sink, nil)

	ctx := WithPurpose(context.Background(), "response-classification")
	_, err := p.Generate(ctx, Request{
		System:   "classify",
		Messages: []Message{{Role: RoleUser, Content: "closures capture variables"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Purpose != "response-classification" || ev.Model != "mock" || !ev.Success {
		t.Errorf("unexpected event %+v", ev)
	}
	if ev.InputTokens != 12 || ev.OutputTokens != 4 {
		t.Errorf("tokens = %d/%d, want 12/4", ev.InputTokens, ev.OutputTokens)
	}
	if !strings.Contains(ev.RequestBody, "closures capture variables") {
		t.Errorf("request body missing message: %q", ev.RequestBody)
	}
	if ev.ResponseBody != `{"level":3}` {
		t.Errorf("response body = %q", ev.ResponseBody)
	}
}

func TestLogging_SinkFailureDoesNotFailCall(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	sink := &recordingSink{err: errors.New("disk full")}
	p := WithLogging(mock, ProviderMock, sink, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("sink failure leaked into call: %v", err)
	}
	if len(sink.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sink.events))
	}
}

func TestLogging_RecordsProviderError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	sink := &recordingSink{}
	p := WithLogging(mock, ProviderMock, sink, nil)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected provider error")
	}
	if ev := sink.events[0]; ev.Success || ev.ErrorMessage == "" {
		t.Errorf("failed call recorded as %+v", ev)
	}
}

package assess

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/cognilevel/internal/cognition"
)

type sliceBank []cognition.Question

func (b sliceBank) QuestionsFor(string) []cognition.Question { return b }

func q(id string, kind cognition.QuestionKind, level cognition.Level) cognition.Question {
	return cognition.Question{
		ID:          id,
		Domain:      "test",
		Kind:        kind,
		TargetLevel: level,
		Difficulty:  cognition.DifficultyIntermediate,
		Text:        "question " + id,
	}
}

// numberedBank returns n open-ended questions cycling through the levels.
func numberedBank(n int) sliceBank {
	b := make(sliceBank, n)
	for i := range b {
		b[i] = q(fmt.Sprintf("q-%02d", i+1), cognition.KindOpenEnded, cognition.Level(i%5+1))
	}
	return b
}

// scriptedClassifier replays assessments in order, repeating the last one.
type scriptedClassifier struct {
	mu     sync.Mutex
	script []cognition.Assessment
	calls  int
}

func constant(level cognition.Level, conf float64) *scriptedClassifier {
	return &scriptedClassifier{script: []cognition.Assessment{{Level: level, Confidence: conf}}}
}

func (c *scriptedClassifier) Classify(_ context.Context, _ cognition.Question, _, _ string) cognition.Assessment {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := min(c.calls, len(c.script)-1)
	c.calls++
	return c.script[i]
}

func (c *scriptedClassifier) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// scriptedRandom always answers index and records the n it was asked for.
type scriptedRandom struct {
	index int
	asked []int
}

func (r *scriptedRandom) Intn(n int) int {
	r.asked = append(r.asked, n)
	return r.index % n
}

func (r *scriptedRandom) Float64() float64 { return 0.5 }

func answer(text string) Responder {
	return ResponderFunc(func(context.Context, *Session, cognition.Question) (string, time.Duration, error) {
		return text, 3 * time.Second, nil
	})
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(bank QuestionSource, c ResponseClassifier, opts ...Option) *Engine {
	return NewEngine(bank, c, append([]Option{WithLogger(quietLogger()), WithRandom(NewRandom(1))}, opts...)...)
}

type recordingRecorder struct {
	mu        sync.Mutex
	started   []string
	turns     []int
	completed []FinalReport
	err       error
}

func (r *recordingRecorder) SessionStarted(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, s.ID())
	return r.err
}

func (r *recordingRecorder) TurnRecorded(_ context.Context, _ *Session, t Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns = append(r.turns, t.Number)
	return r.err
}

func (r *recordingRecorder) SessionCompleted(_ context.Context, rep FinalReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, rep)
	return r.err
}

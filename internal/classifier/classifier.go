package classifier

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abhisek/cognilevel/internal/cognition"
)

// Confidence adjustment factors.
const (
	multipleChoiceHighLevelFactor = 0.8
	elaborateAnswerFactor         = 1.1
	keywordFactor                 = 1.05

	elaborateAnswerRunes = 200
)

// Fixed results for the short-circuit and fallback paths.
const (
	emptyConfidence    = 0.1
	fallbackConfidence = 0.4
)

// Classifier turns (question, response, domain) into an Assessment. It never
// fails: empty responses get a fixed low assessment and client failures fall
// back to a length heuristic.
type Classifier struct {
	client   Client
	logger   *slog.Logger
	keywords map[string][]string
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) { c.logger = l }
}

// WithKeywords replaces the keyword set for domain.
func WithKeywords(domain string, keywords ...string) Option {
	return func(c *Classifier) { c.keywords[strings.ToLower(domain)] = keywords }
}

// New creates a Classifier. A nil client makes every non-empty response take
// the fallback path.
func New(client Client, opts ...Option) *Classifier {
	c := &Classifier{
		client:   client,
		logger:   slog.Default(),
		keywords: make(map[string][]string, len(defaultKeywords)),
	}
	for d, k := range defaultKeywords {
		c.keywords[d] = k
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify assesses one response.
func (c *Classifier) Classify(ctx context.Context, q cognition.Question, response, domain string) cognition.Assessment {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		classificationsTotal.WithLabelValues(OutcomeEmpty).Inc()
		return emptyAssessment()
	}

	if c.client == nil {
		classificationsTotal.WithLabelValues(OutcomeFallback).Inc()
		return fallbackAssessment(q, trimmed)
	}

	start := time.Now()
	raw, err := c.client.Classify(ctx, Request{
		Question: q,
		Response: response,
		Domain:   domain,
		Criteria: CriteriaFor(domain),
	})
	classificationDuration.Observe(time.Since(start).Seconds())
	if err == nil {
		err = raw.Validate()
	}
	if err != nil {
		c.logger.Warn("classification failed, using heuristic",
			"domain", domain, "question_id", q.ID, "error", err)
		classificationsTotal.WithLabelValues(OutcomeFallback).Inc()
		return fallbackAssessment(q, trimmed)
	}

	classificationsTotal.WithLabelValues(OutcomeLLM).Inc()
	return cognition.Assessment{
		Level:      cognition.Level(raw.Level),
		Confidence: c.adjustConfidence(q, trimmed, domain, cognition.Level(raw.Level), raw.Confidence),
		Reasoning:  raw.Reasoning,
		Evidence:   cognition.Dedup(raw.Evidence),
		Strengths:  cognition.Dedup(raw.Strengths),
		Weaknesses: cognition.Dedup(raw.Weaknesses),
		Source:     OutcomeLLM,
	}
}

// adjustConfidence applies the format and keyword factors in order and
// rounds to two decimals.
func (c *Classifier) adjustConfidence(q cognition.Question, response, domain string, level cognition.Level, conf float64) float64 {
	if q.Kind == cognition.KindMultipleChoice && level > cognition.LevelApply {
		conf *= multipleChoiceHighLevelFactor
	}
	if q.Kind == cognition.KindOpenEnded && utf8.RuneCountInString(response) > elaborateAnswerRunes {
		conf = min(1, conf*elaborateAnswerFactor)
	}
	if containsKeyword(response, c.keywords[strings.ToLower(domain)]) {
		conf = min(1, conf*keywordFactor)
	}
	return cognition.Round2(conf)
}

func emptyAssessment() cognition.Assessment {
	return cognition.Assessment{
		Level:      cognition.LevelRemember,
		Confidence: emptyConfidence,
		Reasoning:  "No response provided",
		Evidence:   []string{},
		Strengths:  []string{},
		Weaknesses: []string{"response-completion"},
		Source:     OutcomeEmpty,
	}
}

// fallbackAssessment grades by length alone and never credits more than the
// question targets.
func fallbackAssessment(q cognition.Question, trimmed string) cognition.Assessment {
	n := utf8.RuneCountInString(trimmed)

	level := cognition.LevelRemember
	switch {
	case n > 150:
		level = cognition.LevelApply
	case n > 50:
		level = cognition.LevelUnderstand
	}
	if q.TargetLevel.Valid() {
		level = min(level, q.TargetLevel)
	}

	a := cognition.Assessment{
		Level:      level,
		Confidence: fallbackConfidence,
		Reasoning:  "Classification unavailable; level estimated from response length",
		Evidence:   []string{"response-length-detailed"},
		Strengths:  []string{},
		Weaknesses: []string{},
		Source:     OutcomeFallback,
	}
	if n <= 50 {
		a.Evidence = []string{"response-length-brief"}
	}
	if n < 50 {
		a.Weaknesses = []string{"detail-level"}
	}
	if n > 100 {
		a.Strengths = []string{"communication"}
	}
	return a
}

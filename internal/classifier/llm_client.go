package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/template"
	"time"

	"github.com/abhisek/cognilevel/internal/cognition"
	"github.com/abhisek/cognilevel/internal/llm"
)

// LLMClientConfig holds configuration for the LLM classification client.
type LLMClientConfig struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds one classification including corrections. Zero means
	// no limit beyond ctx.
	Timeout time.Duration

	// Corrections is how many times a malformed answer is sent back to the
	// model together with the validation error.
	Corrections int
}

// DefaultLLMClientConfig returns sensible defaults.
func DefaultLLMClientConfig() LLMClientConfig {
	return LLMClientConfig{
		MaxTokens:   512,
		Temperature: 0.2,
		Timeout:     20 * time.Second,
		Corrections: 1,
	}
}

// LLMClient is a Client backed by an llm.Provider with structured output.
type LLMClient struct {
	provider llm.Provider
	cfg      LLMClientConfig
}

// NewLLMClient creates an LLM-backed classification client.
func NewLLMClient(provider llm.Provider, cfg LLMClientConfig) *LLMClient {
	return &LLMClient{provider: provider, cfg: cfg}
}

func (c *LLMClient) Classify(ctx context.Context, req Request) (*RawAssessment, error) {
	ctx = llm.WithPurpose(ctx, Purpose)
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	userMsg, err := buildClassificationMessage(req)
	if err != nil {
		return nil, fmt.Errorf("build classification prompt: %w", err)
	}

	messages := []llm.Message{{Role: llm.RoleUser, Content: userMsg}}
	for attempt := 0; ; attempt++ {
		raw, rejected, err := c.generate(ctx, messages)
		if err == nil {
			return raw, nil
		}
		if rejected == nil || attempt >= c.cfg.Corrections {
			return nil, err
		}
		correctionsTotal.Inc()
		messages = append(messages,
			llm.Message{Role: llm.RoleAssistant, Content: string(rejected)},
			llm.Message{Role: llm.RoleUser, Content: fmt.Sprintf(correctionPrompt, err)},
		)
	}
}

// generate runs one provider call. When the model answered but the answer
// is unusable, rejected holds that answer.
func (c *LLMClient) generate(ctx context.Context, messages []llm.Message) (raw *RawAssessment, rejected json.RawMessage, err error) {
	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      classificationSystemPrompt,
		Messages:    messages,
		Schema:      ClassificationSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) && len(invalid.Content) > 0 {
			rejected = invalid.Content
		}
		return nil, rejected, fmt.Errorf("LLM classification failed: %w", err)
	}

	raw = &RawAssessment{}
	if err := json.Unmarshal(resp.Content, raw); err != nil {
		return nil, resp.Content, fmt.Errorf("failed to parse classification response: %w", err)
	}
	if err := raw.Validate(); err != nil {
		return nil, resp.Content, err
	}
	return raw, nil, nil
}

const correctionPrompt = `Your previous answer was rejected: %v
Reply again with a single JSON object that matches the schema. level must be an integer from 1 to 5 and confidence a number from 0 to 1.`

const classificationSystemPrompt = `You are an expert technical educator assessing the cognitive level of a learner's answer on a five-level scale modelled on Bloom's taxonomy: 1 Remember, 2 Understand, 3 Apply, 4 Analyze, 5 Evaluate.

Instructions:
- Judge the answer itself, not the level the question was written for.
- Credit a level only when the answer shows the criteria listed for it.
- Use evidence, strengths and weaknesses tags in kebab-case, at most four each.
- Confidence (0.0–1.0) reflects how clearly the answer fits the chosen level.
- Keep reasoning to two sentences.`

type criteriaLine struct {
	Level cognition.Level
	Items []string
}

type promptData struct {
	Request
	Criteria []criteriaLine
}

var classificationUserTemplate = template.Must(template.New("classification").Parse(`Domain: {{.Domain}}
Question ({{.Question.Kind}}, written for {{.Question.TargetLevel}}, {{.Question.Difficulty}}):
{{.Question.Text}}
{{- if .Question.Options}}
Options:
{{range .Question.Options}}- {{.}}
{{end}}{{end}}

Learner's answer:
{{.Response}}

Level criteria:
{{range .Criteria}}{{.Level}}:
{{range .Items}}  - {{.}}
{{end}}{{end}}`))

func buildClassificationMessage(req Request) (string, error) {
	data := promptData{Request: req}
	for _, l := range cognition.AllLevels() {
		if items := req.Criteria[l]; len(items) > 0 {
			data.Criteria = append(data.Criteria, criteriaLine{Level: l, Items: items})
		}
	}

	var buf bytes.Buffer
	if err := classificationUserTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

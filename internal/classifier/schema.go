package classifier

import "github.com/abhisek/cognilevel/internal/llm"

// Purpose labels classification calls in the LLM event log.
const Purpose = "response-classification"

// ClassificationSchema defines the structured output of a classification call.
var ClassificationSchema = &llm.Schema{
	Name:        "response-classification",
	Description: "Cognitive level classification of a learner's answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"level": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     5,
				"description": "Detected cognitive level: 1 remember, 2 understand, 3 apply, 4 analyze, 5 evaluate",
			},
			"confidence": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "How certain the classification is (0.0–1.0)",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "One or two sentences explaining the level",
			},
			"evidence": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Short kebab-case tags for indicators observed in the answer",
			},
			"strengths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Short kebab-case skill labels the answer demonstrates",
			},
			"weaknesses": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Short kebab-case skill labels the learner should work on",
			},
		},
		"required":             []any{"level", "confidence", "reasoning", "evidence", "strengths", "weaknesses"},
		"additionalProperties": false,
	},
}

package cognition

// Assessment is the normalized result of classifying one learner response.
type Assessment struct {
	Level      Level    `json:"level"`
	Confidence float64  `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
	Evidence   []string `json:"evidence"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`

	// Source names what produced the assessment: "llm", "fallback" or "empty".
	Source string `json:"source"`
}

// Valid reports whether the assessment honours the level and confidence bounds.
func (a Assessment) Valid() bool {
	return a.Level.Valid() && a.Confidence >= 0 && a.Confidence <= 1
}

// Dedup returns the distinct values of xs in first-seen order.
func Dedup(xs []string) []string {
	seen := make(map[string]bool, len(xs))
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if x == "" || seen[x] {
			continue
		}
		seen[x] = true
		out = append(out, x)
	}
	return out
}

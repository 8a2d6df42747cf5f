package classifier

import (
	"strings"

	"github.com/abhisek/cognilevel/internal/cognition"
)

// defaultKeywords are the per-domain terms whose presence in an answer
// slightly raises trust in the classification.
var defaultKeywords = map[string][]string{
	"javascript": {"function", "closure", "promise", "async", "callback", "prototype", "scope"},
	"react":      {"component", "hook", "state", "props", "render", "effect"},
	"go":         {"goroutine", "channel", "interface", "context", "defer", "slice"},
	"sql":        {"index", "join", "transaction", "query", "normaliz"},
	"python":     {"def ", "list comprehension", "generator", "decorator", "dict"},
}

// domainCriteria extends the level criteria for domains where a level has a
// well-known concrete marker.
var domainCriteria = map[string]map[cognition.Level][]string{
	"javascript": {
		cognition.LevelApply:   {"writes or describes working JavaScript for the task"},
		cognition.LevelAnalyze: {"traces execution order across the event loop"},
	},
	"react": {
		cognition.LevelAnalyze: {"explains re-render causes and state ownership"},
	},
	"go": {
		cognition.LevelAnalyze:  {"reasons about goroutine lifetimes and channel ownership"},
		cognition.LevelEvaluate: {"weighs package boundaries and interface placement"},
	},
}

// CriteriaFor returns the level criteria sent to the client for domain.
func CriteriaFor(domain string) map[cognition.Level][]string {
	criteria := cognition.DefaultCriteria()
	for level, extra := range domainCriteria[strings.ToLower(domain)] {
		criteria[level] = append(criteria[level], extra...)
	}
	return criteria
}

// containsKeyword reports whether text contains any keyword, ignoring case.
func containsKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if k != "" && strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

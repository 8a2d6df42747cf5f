package assess

import (
	"slices"

	"github.com/abhisek/cognilevel/internal/cognition"
)

// selectQuestion picks the next question for s, which must be locked.
// Questions whose target level is in the strategy band are ranked by
// scoreCandidate with ties going to the earliest; without any, an unused
// question is drawn at random.
func (e *Engine) selectQuestion(s *Session) (cognition.Question, bool) {
	unused := e.unused(s)
	if len(unused) == 0 {
		return cognition.Question{}, false
	}

	band := s.cfg.Strategy.Band(cognition.RoundEstimate(s.estimate))

	var (
		best      cognition.Question
		bestScore float64
		found     bool
	)
	for _, q := range unused {
		if !slices.Contains(band, q.TargetLevel) {
			continue
		}
		score := scoreCandidate(q, s.estimate, s.usedKinds)
		if !found || score > bestScore {
			best, bestScore, found = q, score, true
		}
	}
	if found {
		return best, true
	}

	return unused[e.random.Intn(len(unused))], true
}

func (e *Engine) unused(s *Session) []cognition.Question {
	var out []cognition.Question
	for _, q := range e.bank.QuestionsFor(s.domain) {
		if !s.used[q.ID] {
			out = append(out, q)
		}
	}
	return out
}

func (e *Engine) hasUnused(s *Session) bool {
	for _, q := range e.bank.QuestionsFor(s.domain) {
		if !s.used[q.ID] {
			return true
		}
	}
	return false
}

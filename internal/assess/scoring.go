package assess

import (
	"math"

	"github.com/abhisek/cognilevel/internal/cognition"
)

// A session stops early once its confidence exceeds this.
const earlyStopConfidence = 0.85

// Selection score bonuses.
const (
	newKindBonus  = 5
	scenarioBonus = 3
)

// scoreCandidate ranks a question in the target band. Closer target levels
// score higher; unseen kinds and, from level 3 up, scenarios get a bonus.
func scoreCandidate(q cognition.Question, estimate float64, usedKinds map[cognition.QuestionKind]bool) float64 {
	score := (5 - math.Abs(float64(q.TargetLevel)-estimate)) * 10
	if !usedKinds[q.Kind] {
		score += newKindBonus
	}
	if q.Kind == cognition.KindScenario && estimate >= 3 {
		score += scenarioBonus
	}
	return score
}

// updateEstimate blends the observed level into the estimate weighted by the
// two confidences.
func updateEstimate(estimate, confidence float64, a cognition.Assessment) float64 {
	total := confidence + a.Confidence
	if total <= 0 {
		return cognition.ClampEstimate(estimate)
	}
	blended := (estimate*confidence + float64(a.Level)*a.Confidence) / total
	return cognition.ClampEstimate(blended)
}

// sessionConfidence is recomputed from the whole history: consistency of the
// levels, mean per-turn confidence and sample size, weighted 0.4/0.4/0.2.
func sessionConfidence(history []cognition.Assessment) float64 {
	n := len(history)
	if n == 0 {
		return initialConfidence
	}

	var sumLevel, sumConf float64
	for _, a := range history {
		sumLevel += float64(a.Level)
		sumConf += a.Confidence
	}
	mean := sumLevel / float64(n)

	var variance float64
	for _, a := range history {
		d := float64(a.Level) - mean
		variance += d * d
	}
	variance /= float64(n)

	consistency := math.Max(0, 1-variance/4)
	avgConf := sumConf / float64(n)
	sample := math.Min(1, float64(n)/3)

	return cognition.ClampUnit(cognition.Round2(0.4*consistency + 0.4*avgConf + 0.2*sample))
}

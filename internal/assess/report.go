package assess

import (
	"slices"
	"strings"
	"time"

	"github.com/abhisek/cognilevel/internal/cognition"
)

// QualityTier summarizes how far a finished result can be trusted.
type QualityTier string

const (
	QualityHigh   QualityTier = "high"
	QualityMedium QualityTier = "medium"
	QualityLow    QualityTier = "low"
)

// LearningModule is a suggested study unit for the next level.
type LearningModule struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Level          cognition.Level `json:"level"`
	EstimatedHours int             `json:"estimated_hours"`
}

// FinalReport is the read-only summary of a completed session.
type FinalReport struct {
	SessionID            string           `json:"session_id"`
	Domain               string           `json:"domain"`
	FinalLevel           cognition.Level  `json:"final_level"`
	OverallConfidence    float64          `json:"overall_confidence"`
	ConfidenceTarget     float64          `json:"confidence_target"`
	TargetReached        bool             `json:"target_reached"`
	QualityTier          QualityTier      `json:"quality_tier"`
	Recommendations      []string         `json:"recommendations"`
	AggregatedWeaknesses []string         `json:"aggregated_weaknesses"`
	AggregatedStrengths  []string         `json:"aggregated_strengths"`
	QuestionsAsked       int              `json:"questions_asked"`
	StopReason           StopReason       `json:"stop_reason"`
	NextLevel            cognition.Level  `json:"next_level"`
	LearningModules      []LearningModule `json:"learning_modules"`
	StartedAt            time.Time        `json:"started_at"`
	CompletedAt          time.Time        `json:"completed_at"`
}

func (r FinalReport) clone() FinalReport {
	r.Recommendations = slices.Clone(r.Recommendations)
	r.AggregatedWeaknesses = slices.Clone(r.AggregatedWeaknesses)
	r.AggregatedStrengths = slices.Clone(r.AggregatedStrengths)
	r.LearningModules = slices.Clone(r.LearningModules)
	return r
}

const retakeNotice = "Consider retaking the assessment with more detailed responses for better accuracy"

var levelRecommendations = map[cognition.Level][2]string{
	cognition.LevelRemember: {
		"Focus on memorizing fundamental concepts and syntax",
		"Practice basic exercises to build foundation knowledge",
	},
	cognition.LevelUnderstand: {
		"Work on explaining concepts in your own words",
		"Study how different technologies connect and work together",
	},
	cognition.LevelApply: {
		"Practice implementing solutions to real-world problems",
		"Build projects that demonstrate practical application of skills",
	},
	cognition.LevelAnalyze: {
		"Focus on debugging and optimizing existing code",
		"Compare different approaches to solving the same problem",
	},
	cognition.LevelEvaluate: {
		"Review and evaluate others' code for quality and best practices",
		"Make architectural decisions for complex systems",
	},
}

var learningModules = map[cognition.Level][]LearningModule{
	cognition.LevelUnderstand: {
		{ID: "understand-concepts", Title: "Understanding Core Concepts", EstimatedHours: 8},
		{ID: "explain-relationships", Title: "Explaining Relationships", EstimatedHours: 6},
	},
	cognition.LevelApply: {
		{ID: "practical-implementation", Title: "Practical Implementation", EstimatedHours: 12},
		{ID: "hands-on-projects", Title: "Hands-on Projects", EstimatedHours: 16},
	},
	cognition.LevelAnalyze: {
		{ID: "debugging-optimization", Title: "Debugging and Optimization", EstimatedHours: 10},
		{ID: "comparative-analysis", Title: "Comparative Analysis", EstimatedHours: 8},
	},
	cognition.LevelEvaluate: {
		{ID: "architecture-evaluation", Title: "Architecture Evaluation", EstimatedHours: 12},
		{ID: "best-practices-review", Title: "Best Practices Review", EstimatedHours: 10},
	},
}

func qualityTier(confidence float64, turns int) QualityTier {
	switch {
	case confidence >= 0.8 && turns >= 3:
		return QualityHigh
	case confidence >= 0.6 && turns >= 2:
		return QualityMedium
	default:
		return QualityLow
	}
}

func recommendations(tier QualityTier, level cognition.Level, weaknesses []string) []string {
	var out []string
	if tier == QualityLow {
		out = append(out, retakeNotice)
	}
	pair := levelRecommendations[cognition.ClampLevel(level)]
	out = append(out, pair[0], pair[1])
	if len(weaknesses) > 0 {
		out = append(out, "Focus on improving: "+strings.Join(weaknesses, ", "))
	}
	return out
}

// modulesFor returns the next level to work towards and its modules. At the
// top level the learner keeps working on level 5 material.
func modulesFor(level cognition.Level) (cognition.Level, []LearningModule) {
	next := min(cognition.MaxLevel, level+1)
	mods := slices.Clone(learningModules[next])
	for i := range mods {
		mods[i].Level = next
	}
	return next, mods
}

// buildReport must be called with s.mu held.
func buildReport(s *Session, completedAt time.Time) FinalReport {
	level := cognition.RoundEstimate(s.estimate)
	tier := qualityTier(s.confidence, len(s.turns))

	var weaknesses, strengths []string
	for _, t := range s.turns {
		weaknesses = append(weaknesses, t.Assessment.Weaknesses...)
		strengths = append(strengths, t.Assessment.Strengths...)
	}
	weaknesses = cognition.Dedup(weaknesses)
	strengths = cognition.Dedup(strengths)

	next, mods := modulesFor(level)
	return FinalReport{
		SessionID:            s.id,
		Domain:               s.domain,
		FinalLevel:           level,
		OverallConfidence:    s.confidence,
		ConfidenceTarget:     s.cfg.ConfidenceThreshold,
		TargetReached:        s.confidence >= s.cfg.ConfidenceThreshold,
		QualityTier:          tier,
		Recommendations:      recommendations(tier, level, weaknesses),
		AggregatedWeaknesses: weaknesses,
		AggregatedStrengths:  strengths,
		QuestionsAsked:       len(s.turns),
		StopReason:           s.stopReason,
		NextLevel:            next,
		LearningModules:      mods,
		StartedAt:            s.startedAt,
		CompletedAt:          completedAt,
	}
}

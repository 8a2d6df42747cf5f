package questionbank

import "github.com/abhisek/cognilevel/internal/cognition"

type seedDomain struct {
	id        string
	questions []cognition.Question
}

// seedDomains is the built-in catalogue. The python domain is intentionally
// empty until a bank file provides questions for it.
var seedDomains = []seedDomain{
	{
		id: "javascript",
		questions: []cognition.Question{
			{
				ID:          "js-001",
				Text:        "What is the difference between let, const, and var in JavaScript?",
				Kind:        cognition.KindOpenEnded,
				TargetLevel: cognition.LevelUnderstand,
				Difficulty:  cognition.DifficultyBeginner,
			},
			{
				ID:          "js-002",
				Text:        "Implement a function that debounces another function with a specified delay.",
				Kind:        cognition.KindCodeAnalysis,
				TargetLevel: cognition.LevelAnalyze,
				Difficulty:  cognition.DifficultyAdvanced,
			},
			{
				ID:          "js-003",
				Text:        "Which array method would you use to transform each element in an array?",
				Kind:        cognition.KindMultipleChoice,
				TargetLevel: cognition.LevelRemember,
				Difficulty:  cognition.DifficultyBeginner,
				Options:     []string{"forEach", "map", "filter", "reduce"},
			},
			{
				ID:          "js-004",
				Text:        "A page freezes while a large list is sorted on every keystroke. How would you fix it?",
				Kind:        cognition.KindScenario,
				TargetLevel: cognition.LevelApply,
				Difficulty:  cognition.DifficultyIntermediate,
			},
			{
				ID:          "js-005",
				Text:        "An async function inside Array.forEach does not wait for its promises. Why, and what would you use instead?",
				Kind:        cognition.KindDebugging,
				TargetLevel: cognition.LevelAnalyze,
				Difficulty:  cognition.DifficultyIntermediate,
			},
			{
				ID:          "js-006",
				Text:        "Would you choose a global store or component state for a multi-step checkout form? Justify the trade-offs.",
				Kind:        cognition.KindArchitecture,
				TargetLevel: cognition.LevelEvaluate,
				Difficulty:  cognition.DifficultyAdvanced,
			},
		},
	},
	{
		id: "react",
		questions: []cognition.Question{
			{
				ID:          "react-001",
				Text:        "Explain the difference between state and props in React components.",
				Kind:        cognition.KindOpenEnded,
				TargetLevel: cognition.LevelUnderstand,
				Difficulty:  cognition.DifficultyBeginner,
			},
			{
				ID:          "react-002",
				Text:        "How would you optimize a React component that re-renders unnecessarily?",
				Kind:        cognition.KindScenario,
				TargetLevel: cognition.LevelAnalyze,
				Difficulty:  cognition.DifficultyAdvanced,
			},
		},
	},
	{
		id: "go",
		questions: []cognition.Question{
			{
				ID:          "go-001",
				Text:        "Which keyword starts a new goroutine?",
				Kind:        cognition.KindMultipleChoice,
				TargetLevel: cognition.LevelRemember,
				Difficulty:  cognition.DifficultyBeginner,
				Options:     []string{"async", "go", "spawn", "thread"},
			},
			{
				ID:          "go-002",
				Text:        "Explain what happens when you send on an unbuffered channel that nobody receives from.",
				Kind:        cognition.KindConceptExplanation,
				TargetLevel: cognition.LevelUnderstand,
				Difficulty:  cognition.DifficultyBeginner,
			},
			{
				ID:          "go-003",
				Text:        "Write a worker pool that processes jobs from a channel with a fixed number of goroutines.",
				Kind:        cognition.KindProblemSolving,
				TargetLevel: cognition.LevelApply,
				Difficulty:  cognition.DifficultyIntermediate,
			},
			{
				ID:          "go-004",
				Text:        "A service leaks goroutines under load. How would you find and fix the leak?",
				Kind:        cognition.KindDebugging,
				TargetLevel: cognition.LevelAnalyze,
				Difficulty:  cognition.DifficultyAdvanced,
			},
			{
				ID:          "go-005",
				Text:        "Evaluate sharing state with a mutex versus passing ownership over channels for a rate limiter.",
				Kind:        cognition.KindArchitecture,
				TargetLevel: cognition.LevelEvaluate,
				Difficulty:  cognition.DifficultyAdvanced,
			},
		},
	},
	{
		id: "sql",
		questions: []cognition.Question{
			{
				ID:          "sql-001",
				Text:        "What does a LEFT JOIN return that an INNER JOIN does not?",
				Kind:        cognition.KindOpenEnded,
				TargetLevel: cognition.LevelUnderstand,
				Difficulty:  cognition.DifficultyBeginner,
			},
			{
				ID:          "sql-002",
				Text:        "Write a query returning the three most recent orders per customer.",
				Kind:        cognition.KindProblemSolving,
				TargetLevel: cognition.LevelApply,
				Difficulty:  cognition.DifficultyIntermediate,
			},
			{
				ID:          "sql-003",
				Text:        "A report query got slow after the table grew tenfold. Walk through how you would diagnose it.",
				Kind:        cognition.KindScenario,
				TargetLevel: cognition.LevelAnalyze,
				Difficulty:  cognition.DifficultyAdvanced,
			},
		},
	},
	{id: "python"},
}

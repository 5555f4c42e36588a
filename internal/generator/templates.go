package generator

import (
	"github.com/google/uuid"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
)

// last-resort question per (type, difficulty). These are deliberately
// self-contained: no topics, no external context required.
type fallbackTemplate struct {
	text             string
	hints            []string
	expectedPoints   []string
	timeLimitSeconds int
	complexity       string
	theme            string
	components       []string
	discussionPoints []string
}

var fallbackTemplates = map[models.RoundType]map[models.Difficulty]fallbackTemplate{
	models.RoundDSA: {
		models.DifficultyEasy: {
			text: "Reverse a String\n\nWrite a function that reverses a string in place. " +
				"Explain the time and space complexity of your solution.",
			hints:            []string{"Two pointers from both ends meet in the middle."},
			expectedPoints:   []string{"two pointer swap", "O(n) time"},
			timeLimitSeconds: 600,
			complexity:       "O(n)",
		},
		models.DifficultyMedium: {
			text: "First Non-Repeating Character\n\nGiven a string, return the index of the first " +
				"character that appears exactly once, or -1 if none exists. Aim for a single pass " +
				"over the input plus a constant-size summary structure.",
			hints:            []string{"Count occurrences first.", "A second pass finds the first count of one."},
			expectedPoints:   []string{"frequency map", "two passes", "O(n) time"},
			timeLimitSeconds: 900,
			complexity:       "O(n)",
		},
		models.DifficultyHard: {
			text: "Sliding Window Maximum\n\nGiven an array and a window size k, return the maximum " +
				"of every contiguous window of size k. A solution better than O(n*k) is expected.",
			hints: []string{
				"A max-heap works but pays log factors on eviction.",
				"A deque holding candidate indices gives amortized O(1) per step.",
			},
			expectedPoints:   []string{"monotonic deque", "amortized O(n)"},
			timeLimitSeconds: 1500,
			complexity:       "O(n)",
		},
	},
	models.RoundBehavioral: {
		models.DifficultyEasy: {
			text: "Tell me about a recent project you enjoyed working on. What was your " +
				"contribution and what did you learn?",
			hints:            []string{"Structure your answer as Situation, Task, Action, Result."},
			expectedPoints:   []string{"concrete project", "personal contribution", "lesson learned"},
			timeLimitSeconds: 300,
			theme:            "motivation",
		},
		models.DifficultyMedium: {
			text: "Describe a time you received difficult feedback. How did you react and " +
				"what changed afterwards?",
			expectedPoints:   []string{"the feedback itself", "initial reaction", "concrete change"},
			timeLimitSeconds: 300,
			theme:            "feedback",
		},
		models.DifficultyHard: {
			text: "Tell me about the hardest decision you made with incomplete information. " +
				"How did you decide, and how did you handle the consequences?",
			expectedPoints:   []string{"stakes of the decision", "decision process", "outcome and reflection"},
			timeLimitSeconds: 420,
			theme:            "decision-making",
		},
	},
	models.RoundSystemDesign: {
		models.DifficultyEasy: {
			text: "Design a Pastebin\n\nDesign a service where users paste text and share a link " +
				"to it. Cover storage, link generation and expiry.",
			components:       []string{"api gateway", "database", "cache"},
			discussionPoints: []string{"link generation", "expiry", "read-heavy traffic"},
			timeLimitSeconds: 1200,
		},
		models.DifficultyMedium: {
			text: "Design a Notification Service\n\nDesign a service that delivers email, push and " +
				"in-app notifications for a large platform. Cover fan-out, retries and user preferences.",
			components:       []string{"queue", "worker pool", "database"},
			discussionPoints: []string{"delivery guarantees", "rate limiting", "preference filtering"},
			timeLimitSeconds: 1500,
		},
		models.DifficultyHard: {
			text: "Design a Metrics Pipeline\n\nDesign a system ingesting millions of metric points " +
				"per second, supporting near-real-time dashboards and long-term storage. Cover ingestion, " +
				"aggregation, downsampling and querying.",
			components:       []string{"message broker", "stream processor", "time-series database", "cache"},
			discussionPoints: []string{"write amplification", "late data", "retention and downsampling", "query fan-out"},
			timeLimitSeconds: 1800,
		},
	},
	models.RoundTechnical: {
		models.DifficultyEasy: {
			text: "Explain the difference between an array and a linked list. When would you " +
				"choose one over the other?",
			expectedPoints:   []string{"contiguous memory", "random access", "insertion cost"},
			timeLimitSeconds: 420,
		},
		models.DifficultyMedium: {
			text: "Explain how garbage collection works in a managed runtime, and what " +
				"trade-offs different collection strategies make.",
			expectedPoints:   []string{"reachability", "generational hypothesis", "pause time vs throughput"},
			timeLimitSeconds: 600,
		},
		models.DifficultyHard: {
			text: "Explain the CAP theorem, and walk through how a real datastore you know " +
				"positions itself. What does it actually give up during a partition?",
			expectedPoints:   []string{"consistency vs availability", "partition tolerance", "concrete system example"},
			timeLimitSeconds: 900,
		},
	},
}

// templateQuestion returns the built-in fallback question for the pair.
// Every valid (type, difficulty) pair has a template, so this is total.
func templateQuestion(roundType models.RoundType, difficulty models.Difficulty) *models.Question {
	byDifficulty, ok := fallbackTemplates[roundType]
	if !ok {
		byDifficulty = fallbackTemplates[models.RoundTechnical]
	}
	tpl, ok := byDifficulty[difficulty]
	if !ok {
		tpl = byDifficulty[models.DifficultyMedium]
	}

	return &models.Question{
		ID:                 uuid.New().String(),
		Type:               roundType,
		Difficulty:         difficulty,
		Text:               tpl.text,
		Hints:              tpl.hints,
		ExpectedPoints:     tpl.expectedPoints,
		TimeLimitSeconds:   tpl.timeLimitSeconds,
		Source:             models.SourceTemplate,
		SourceRef:          "template:" + string(roundType) + ":" + string(difficulty),
		ExpectedComplexity: tpl.complexity,
		Theme:              tpl.theme,
		ExpectedComponents: tpl.components,
		DiscussionPoints:   tpl.discussionPoints,
	}
}

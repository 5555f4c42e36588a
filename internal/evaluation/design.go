package evaluation

import (
	"context"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/utils"
)

// DesignEvaluator grades system-design answers:
// 0.35 architecture + 0.25 scalability + 0.25 tradeoffs + 0.15 clarity.
type DesignEvaluator struct {
	fw *feedbackWriter
}

func NewDesignEvaluator(fw *feedbackWriter) *DesignEvaluator {
	return &DesignEvaluator{fw: fw}
}

func (e *DesignEvaluator) Type() models.RoundType { return models.RoundSystemDesign }

var designPhrases = highlightPhrases{
	"architecture": {"Strong component-level architecture", "Name the concrete components your design is built from"},
	"scalability":  {"Addressed scale and throughput explicitly", "Discuss how your design behaves as load grows"},
	"tradeoffs":    {"Weighed design trade-offs explicitly", "Discuss the trade-offs behind your design choices"},
	"clarity":      {"Clearly structured design walkthrough", "Structure your walkthrough: requirements, components, data flow"},
}

var architectureVocab = []string{
	"load balancer", "api gateway", "microservice", "database", "cache",
	"queue", "message broker", "cdn", "replica", "shard", "proxy",
	"service", "storage", "index",
}

var scalabilityVocab = []string{
	"horizontal", "vertical", "scale", "scaling", "throughput", "latency",
	"partition", "replicat", "consistent hashing", "qps", "load", "capacity",
	"bottleneck",
}

var tradeoffVocab = []string{
	"trade-off", "tradeoff", "on the other hand", "at the cost of",
	"versus", " vs ", "downside", "alternatively", "cap theorem",
	"consistency", "however",
}

func (e *DesignEvaluator) Evaluate(ctx context.Context, in Input) models.Evaluation {
	lowered := utils.Normalize(in.Text)

	dims := []dimension{
		{name: "architecture", weight: 0.35, score: vocabularyScore(lowered, architectureVocab, 8, in.Question.ExpectedComponents)},
		{name: "scalability", weight: 0.25, score: vocabularyScore(lowered, scalabilityVocab, 8, nil)},
		{name: "tradeoffs", weight: 0.25, score: vocabularyScore(lowered, tradeoffVocab, 10, in.Question.DiscussionPoints)},
		{name: "clarity", weight: 0.15, score: structuralClarity(in.Text)},
	}

	score, breakdown := combine(dims)
	strengths, improvements := highlights(dims, designPhrases)

	feedback, fbReason := e.fw.write(ctx, "system_design", in, dims)

	ev := models.Evaluation{
		Score:        score,
		Feedback:     feedback,
		Strengths:    strengths,
		Improvements: improvements,
		Breakdown:    breakdown,
	}
	if fbReason != "" {
		ev.Degraded = true
		ev.DegradedReasons = []string{fbReason}
	}
	return ev
}

// vocabularyScore: base 40, per-keyword bonus capped at +40, plus a
// proportional bonus (up to +20) for covering the question's declared
// expected items.
func vocabularyScore(lowered string, vocab []string, perMatch float64, expected []string) float64 {
	score := 40.0

	bonus := float64(utils.CountDistinct(lowered, vocab)) * perMatch
	if bonus > 40 {
		bonus = 40
	}
	score += bonus

	if len(expected) > 0 {
		covered := 0
		for _, item := range expected {
			if keyPointCovered(lowered, item) {
				covered++
			}
		}
		score += 20 * float64(covered) / float64(len(expected))
	}

	return utils.Clamp(score)
}

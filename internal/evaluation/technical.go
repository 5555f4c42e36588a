package evaluation

import (
	"context"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/utils"
)

// TechnicalEvaluator grades conceptual technical answers:
// 0.35 clarity + 0.35 depth + 0.30 accuracy.
// Clarity reuses the same structural heuristic as the system-design rubric.
type TechnicalEvaluator struct {
	fw *feedbackWriter
}

func NewTechnicalEvaluator(fw *feedbackWriter) *TechnicalEvaluator {
	return &TechnicalEvaluator{fw: fw}
}

func (e *TechnicalEvaluator) Type() models.RoundType { return models.RoundTechnical }

var technicalPhrases = highlightPhrases{
	"clarity":  {"Clear, well-organized explanation", "Organize explanations: definition first, then mechanics, then implications"},
	"depth":    {"Deep technical understanding", "Go deeper: explain the mechanics behind the concept, not just its name"},
	"accuracy": {"Technically accurate answer", "Verify the technical facts you state; several expected points were missed"},
}

var technicalVocab = []string{
	"complexity", "algorithm", "memory", "thread", "process", "index",
	"transaction", "protocol", "encryption", "compile", "runtime",
	"garbage", "pointer", "socket", "schema", "cache", "buffer",
	"latency", "concurrency", "atomic",
}

func (e *TechnicalEvaluator) Evaluate(ctx context.Context, in Input) models.Evaluation {
	lowered := utils.Normalize(in.Text)

	dims := []dimension{
		{name: "clarity", weight: 0.35, score: structuralClarity(in.Text)},
		{name: "depth", weight: 0.35, score: technicalDepth(in.Text, lowered)},
		{name: "accuracy", weight: 0.30, score: technicalAccuracy(lowered, in.Question)},
	}

	score, breakdown := combine(dims)
	strengths, improvements := highlights(dims, technicalPhrases)

	feedback, fbReason := e.fw.write(ctx, "technical", in, dims)

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

func technicalDepth(text, lowered string) float64 {
	score := 35.0

	words := utils.WordCount(text)
	switch {
	case words >= 120:
		score += 30
	case words >= 40:
		score += 20
	}

	bonus := float64(utils.CountDistinct(lowered, technicalVocab)) * 5
	if bonus > 35 {
		bonus = 35
	}
	score += bonus

	return utils.Clamp(score)
}

func technicalAccuracy(lowered string, q *models.Question) float64 {
	score := 45.0

	covered := 0
	for _, point := range q.ExpectedPoints {
		if keyPointCovered(lowered, point) {
			covered++
		}
	}
	bonus := float64(covered) * 12
	if bonus > 36 {
		bonus = 36
	}
	score += bonus

	if utils.CountDistinct(lowered, technicalVocab) >= 3 {
		score += 10
	}

	return utils.Clamp(score)
}

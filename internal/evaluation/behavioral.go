package evaluation

import (
	"context"
	"regexp"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/utils"
)

// BehavioralEvaluator grades behavioral-round answers:
// 0.4 STAR format + 0.3 depth + 0.3 relevance.
type BehavioralEvaluator struct {
	fw *feedbackWriter
}

func NewBehavioralEvaluator(fw *feedbackWriter) *BehavioralEvaluator {
	return &BehavioralEvaluator{fw: fw}
}

func (e *BehavioralEvaluator) Type() models.RoundType { return models.RoundBehavioral }

var behavioralPhrases = highlightPhrases{
	"star_format": {"Well-structured STAR answer", "Structure answers as Situation, Task, Action, Result"},
	"depth":       {"Detailed answer with concrete specifics", "Add concrete details and measurable outcomes to your stories"},
	"relevance":   {"Directly addressed the question asked", "Make sure your story actually answers the question asked"},
}

// the four STAR keyword families
var starFamilies = [][]string{
	{"situation", "context", "background", "at the time"},
	{"task", "goal", "objective", "responsib", "challenge"},
	{"action", "i did", "i implemented", "i led", "i decided", "i built", "approach", "steps i"},
	{"result", "outcome", "impact", "achieved", "improved", "increased", "reduced", "delivered"},
}

func (e *BehavioralEvaluator) Evaluate(ctx context.Context, in Input) models.Evaluation {
	dims := []dimension{
		{name: "star_format", weight: 0.4, score: starFormat(in.Text)},
		{name: "depth", weight: 0.3, score: answerDepth(in.Text)},
		{name: "relevance", weight: 0.3, score: relevance(in.Text, in.Question)},
	}

	score, breakdown := combine(dims)
	strengths, improvements := highlights(dims, behavioralPhrases)

	feedback, fbReason := e.fw.write(ctx, "behavioral", in, dims)

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

// starFormat awards 25 points per present STAR family, plus a 10-point bonus
// for explicit "Situation:"/"Task:" style labels.
func starFormat(text string) float64 {
	lowered := utils.Normalize(text)
	score := 0.0
	for _, family := range starFamilies {
		if utils.ContainsAny(lowered, family) {
			score += 25
		}
	}
	if utils.ContainsAny(lowered, []string{"situation:", "task:", "action:", "result:"}) {
		score += 10
	}
	return utils.Clamp(score)
}

var metricRe = regexp.MustCompile(`[0-9]+(\.[0-9]+)?\s*(%|percent|x|ms|seconds|hours|days|users|requests)?`)
var properNounRe = regexp.MustCompile(`\s[A-Z][a-z]+`)

func answerDepth(text string) float64 {
	words := utils.WordCount(text)
	var score float64
	switch {
	case words < 50:
		score = 30
	case words < 100:
		score = 55
	case words < 200:
		score = 75
	default:
		score = 85
	}

	if metricRe.MatchString(text) {
		score += 10
	}
	if len(properNounRe.FindAllString(text, -1)) >= 3 {
		score += 5
	}

	lowered := utils.Normalize(text)
	if utils.ContainsAny(lowered, []string{"because", "therefore", "however", "as a result", "which led", "so that"}) {
		score += 5
	}

	return utils.Clamp(score)
}

// relevance: base 60, +15 for the question's theme, +10 per covered
// expected point, capped at 100.
func relevance(text string, q *models.Question) float64 {
	lowered := utils.Normalize(text)
	score := 60.0

	if q.Theme != "" && utils.ContainsAny(lowered, []string{utils.Normalize(q.Theme)}) {
		score += 15
	}
	for _, point := range q.ExpectedPoints {
		if keyPointCovered(lowered, point) {
			score += 10
		}
	}

	return utils.Clamp(score)
}

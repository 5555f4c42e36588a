package evaluation

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/llm"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/prompts"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/utils"
)

// sub-score thresholds for deriving strengths and improvements
const (
	strengthThreshold    = 80.0
	improvementThreshold = 50.0
)

// Input is everything a rubric evaluator may inspect for one answer.
type Input struct {
	Question         *models.Question
	Text             string
	Code             string
	Language         string
	TimeTakenSeconds int
}

// RubricEvaluator scores one answer archetype. Implementations are pure
// functions of their input when the remote AI and sandbox paths are disabled.
type RubricEvaluator interface {
	Type() models.RoundType
	Evaluate(ctx context.Context, in Input) models.Evaluation
}

// Evaluator dispatches an answer to the rubric evaluator matching the
// question's type. It carries no state of its own.
type Evaluator struct {
	byType map[models.RoundType]RubricEvaluator
	logger *zap.Logger
}

// New wires the four rubric evaluators. provider and runner may be nil;
// evaluation then runs on heuristics alone.
func New(provider llm.Provider, promptManager prompts.PromptProvider, runner SandboxRunner, remoteTimeout time.Duration, logger *zap.Logger) *Evaluator {
	if remoteTimeout <= 0 {
		remoteTimeout = 8 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	fw := &feedbackWriter{
		provider: provider,
		prompts:  promptManager,
		timeout:  remoteTimeout,
		logger:   logger,
	}

	evaluators := []RubricEvaluator{
		NewDsaEvaluator(runner, provider, promptManager, remoteTimeout, fw, logger),
		NewBehavioralEvaluator(fw),
		NewDesignEvaluator(fw),
		NewTechnicalEvaluator(fw),
	}

	byType := make(map[models.RoundType]RubricEvaluator, len(evaluators))
	for _, ev := range evaluators {
		byType[ev.Type()] = ev
	}

	return &Evaluator{byType: byType, logger: logger}
}

// Evaluate scores one answer with the rubric matching its question type.
func (e *Evaluator) Evaluate(ctx context.Context, in Input) models.Evaluation {
	ev, ok := e.byType[in.Question.Type]
	if !ok {
		// unknown types grade as generic technical answers
		e.logger.Warn("no rubric evaluator for question type, using technical",
			zap.String("type", string(in.Question.Type)))
		ev = e.byType[models.RoundTechnical]
	}
	return ev.Evaluate(ctx, in)
}

// dimension is one named, weighted sub-score of a rubric.
type dimension struct {
	name   string
	weight float64
	score  float64
}

// combine folds weighted sub-scores into the final score and breakdown map.
func combine(dims []dimension) (float64, map[string]float64) {
	total := 0.0
	breakdown := make(map[string]float64, len(dims))
	for _, d := range dims {
		score := utils.Clamp(d.score)
		total += d.weight * score
		breakdown[d.name] = utils.Round1(score)
	}
	return utils.Round1(total), breakdown
}

// highlightPhrases maps a dimension name to its strength and improvement wording.
type highlightPhrases map[string][2]string

// highlights derives strengths (sub-score >= 80) and improvements (< 50)
// from the rubric dimensions.
func highlights(dims []dimension, phrases highlightPhrases) (strengths, improvements []string) {
	for _, d := range dims {
		p, ok := phrases[d.name]
		if !ok {
			continue
		}
		switch {
		case d.score >= strengthThreshold:
			strengths = append(strengths, p[0])
		case d.score < improvementThreshold:
			improvements = append(improvements, p[1])
		}
	}
	return strengths, improvements
}

// meanScore averages the dimension sub-scores, for templated feedback banding.
func meanScore(dims []dimension) float64 {
	if len(dims) == 0 {
		return 0
	}
	sum := 0.0
	for _, d := range dims {
		sum += utils.Clamp(d.score)
	}
	return sum / float64(len(dims))
}

// structuralClarity grades how well-organized a written answer is. Shared by
// the system design and technical rubrics.
func structuralClarity(text string) float64 {
	lowered := utils.Normalize(text)
	score := 40.0

	if utils.WordCount(text) >= 80 {
		score += 15
	}
	if countParagraphs(text) >= 2 {
		score += 15
	}
	if utils.ContainsAny(lowered, []string{"1.", "2.", "- ", "first", "second", "finally"}) {
		score += 15
	}
	if utils.ContainsAny(lowered, []string{"overall", "in summary", "to summarize", "in conclusion"}) {
		score += 10
	}

	return utils.Clamp(score)
}

// keyPointCovered checks whether an expected key point is addressed: every
// significant word of the point (longer than 3 characters) must appear.
func keyPointCovered(loweredText, point string) bool {
	found := false
	for _, word := range strings.Fields(utils.Normalize(point)) {
		if len(word) <= 3 {
			continue
		}
		if !strings.Contains(loweredText, word) {
			return false
		}
		found = true
	}
	return found
}

func countParagraphs(text string) int {
	count := 1
	for i := 0; i+1 < len(text); i++ {
		if text[i] == '\n' && text[i+1] == '\n' {
			count++
		}
	}
	return count
}

package evaluation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/llm"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/prompts"
)

// feedbackWriter produces the prose feedback for an evaluation: AI-written
// when a provider is configured and responsive, templated otherwise. The
// templated path is the deterministic floor every evaluation can rely on.
type feedbackWriter struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	timeout  time.Duration
	logger   *zap.Logger
}

const degradedFeedback = "ai_feedback_unavailable"

// write returns the feedback text and, when the AI path failed, a
// degradation reason. A nil provider is a configuration choice, not a
// degradation.
func (fw *feedbackWriter) write(ctx context.Context, variant string, in Input, dims []dimension) (string, string) {
	if fw.provider == nil || fw.prompts == nil {
		return templateFeedback(meanScore(dims)), ""
	}

	prompt, err := fw.prompts.BuildPrompt("feedback", variant, map[string]string{
		"Question":  in.Question.Text,
		"Answer":    in.Text,
		"Code":      in.Code,
		"Breakdown": formatBreakdown(dims),
	})
	if err != nil {
		fw.logger.Warn("failed to build feedback prompt", zap.String("variant", variant), zap.Error(err))
		return templateFeedback(meanScore(dims)), degradedFeedback
	}

	aiCtx, cancel := context.WithTimeout(ctx, fw.timeout)
	defer cancel()

	text, err := fw.provider.GenerateText(aiCtx, prompt, "You are a supportive technical interview coach.")
	if err != nil {
		fw.logger.Warn("AI feedback generation failed, using template",
			zap.String("variant", variant), zap.Error(err))
		return templateFeedback(meanScore(dims)), degradedFeedback
	}

	return strings.TrimSpace(text), ""
}

// templateFeedback is keyed on the mean sub-score so its tone tracks the
// numeric result even without AI.
func templateFeedback(mean float64) string {
	switch {
	case mean >= 80:
		return "Excellent answer. You covered the essentials convincingly; keep refining the details that separate a good answer from a great one."
	case mean >= 65:
		return "Solid answer with room to grow. Most of the key elements are there; work on covering the weaker areas shown in the score breakdown."
	case mean >= 50:
		return "Reasonable attempt, but several important elements are missing or underdeveloped. Review the score breakdown and practice structuring your answer around those points."
	default:
		return "This answer needs significant work. Focus on the fundamentals of this question type first, then practice with easier questions before moving up."
	}
}

func formatBreakdown(dims []dimension) string {
	parts := make([]string, 0, len(dims))
	for _, d := range dims {
		parts = append(parts, fmt.Sprintf("%s=%.0f", d.name, d.score))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

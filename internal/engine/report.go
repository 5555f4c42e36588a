package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/utils"
)

// Report builds the final assessment for a COMPLETED session. Reports are
// cached: repeated calls for the same session return the cached copy.
func (e *Engine) Report(ctx context.Context, id string) (*models.Report, error) {
	if e.reports != nil {
		if cached, err := e.reports.Get(ctx, id); err == nil {
			return cached, nil
		}
	}

	session, err := e.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status != models.StatusCompleted {
		return nil, ErrReportNotReady
	}

	report := e.buildReport(ctx, session)

	if e.reports != nil {
		if err := e.reports.Set(ctx, report); err != nil {
			e.logger.Warn("Failed to cache report", zap.String("session_id", id), zap.Error(err))
		}
	}
	return report, nil
}

func (e *Engine) buildReport(ctx context.Context, session *models.Session) *models.Report {
	report := &models.Report{
		SessionID:              session.ID,
		StudentID:              session.StudentID,
		Company:                session.Company,
		Role:                   session.Role,
		OverallScore:           session.OverallScore,
		Strengths:              session.Strengths,
		Improvements:           session.Improvements,
		TotalQuestionsAnswered: session.TotalQuestionsAnswered,
		TotalTimeSpentSeconds:  session.TotalTimeSpentSeconds,
		GeneratedAt:            e.now(),
	}

	for ri := range session.Rounds {
		round := &session.Rounds[ri]
		report.Rounds = append(report.Rounds, models.RoundBreakdown{
			Name:              round.Name,
			Type:              round.Type,
			QuestionsAnswered: round.QuestionsAnswered,
			Score:             round.Score,
			Status:            round.Status,
		})
		for qi := range round.Questions {
			q := &round.Questions[qi]
			entry := models.ReportEntry{
				RoundNum:   round.RoundNum,
				Question:   q.Text,
				Type:       q.Type,
				Difficulty: q.Difficulty,
			}
			if q.Answer != nil {
				entry.Answer = q.Answer.Text
				entry.Code = q.Answer.Code
				entry.Evaluation = q.Answer.Evaluation
			}
			report.Entries = append(report.Entries, entry)
		}
	}

	report.Recommendations = e.recommendations(ctx, session)
	return report
}

// recommendations asks the AI coach first and falls back to score-banded
// guidance when no provider is configured or the call fails.
func (e *Engine) recommendations(ctx context.Context, session *models.Session) []string {
	if e.provider != nil && e.prompts != nil {
		if recs, err := e.aiRecommendations(ctx, session); err == nil && len(recs) > 0 {
			return recs
		} else if err != nil {
			e.logger.Warn("AI recommendations unavailable, using banded guidance",
				zap.String("session_id", session.ID), zap.Error(err))
		}
	}
	return bandedRecommendations(session.OverallScore)
}

func (e *Engine) aiRecommendations(ctx context.Context, session *models.Session) ([]string, error) {
	prompt, err := e.prompts.BuildPrompt("recommendations", "default", map[string]string{
		"OverallScore": fmt.Sprintf("%.1f", session.OverallScore),
		"Strengths":    strings.Join(session.Strengths, "; "),
		"Improvements": strings.Join(session.Improvements, "; "),
	})
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, e.llmTimeout)
	defer cancel()

	raw, err := e.provider.GenerateText(callCtx, prompt, "")
	if err != nil {
		return nil, err
	}

	var recs []string
	for _, line := range strings.Split(utils.StripFences(raw), "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*0123456789. "))
		if line != "" {
			recs = append(recs, line)
		}
	}
	if len(recs) > 3 {
		recs = recs[:3]
	}
	return recs, nil
}

func bandedRecommendations(overall float64) []string {
	switch {
	case overall >= 80:
		return []string{
			"Strong performance overall. Practice harder variants of the same question types to keep sharpening.",
			"Rehearse explaining your reasoning out loud under stricter time limits.",
		}
	case overall >= 60:
		return []string{
			"Solid foundation. Target the improvement areas above with focused daily practice.",
			"Review model answers for the question types where your round score was lowest.",
		}
	default:
		return []string{
			"Revisit the fundamentals behind the lowest-scoring rounds before the next mock interview.",
			"Practice structuring answers first (outline, then detail) to lift clarity scores.",
			"Schedule shorter, more frequent practice sessions to build consistency.",
		}
	}
}

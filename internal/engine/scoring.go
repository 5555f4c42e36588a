package engine

import (
	"github.com/montanaflynn/stats"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/utils"
)

// roundScore is the mean of the round's answer scores, one decimal.
func roundScore(round *models.Round) float64 {
	var scores []float64
	for i := range round.Questions {
		q := &round.Questions[i]
		if q.Answered && q.Answer != nil {
			scores = append(scores, q.Answer.Evaluation.Score)
		}
	}
	if len(scores) == 0 {
		return 0
	}
	mean, err := stats.Mean(scores)
	if err != nil {
		return 0
	}
	return utils.Round1(mean)
}

// finalize stamps the terminal state on the session: overall score over the
// scored rounds and the deduplicated highlight lists.
func (e *Engine) finalize(session *models.Session) {
	now := e.now()
	session.Status = models.StatusCompleted
	session.CompletedAt = &now
	// every round is done; no round is active anymore
	session.CurrentRoundIndex = len(session.Rounds)

	var roundScores []float64
	for i := range session.Rounds {
		if session.Rounds[i].Score > 0 {
			roundScores = append(roundScores, session.Rounds[i].Score)
		}
	}
	if len(roundScores) > 0 {
		if mean, err := stats.Mean(roundScores); err == nil {
			session.OverallScore = utils.Round1(mean)
		}
	}

	var strengths, improvements []string
	for ri := range session.Rounds {
		for qi := range session.Rounds[ri].Questions {
			q := &session.Rounds[ri].Questions[qi]
			if q.Answer == nil {
				continue
			}
			strengths = append(strengths, q.Answer.Evaluation.Strengths...)
			improvements = append(improvements, q.Answer.Evaluation.Improvements...)
		}
	}
	session.Strengths = utils.Dedupe(strengths, highlightLimit)
	session.Improvements = utils.Dedupe(improvements, highlightLimit)
}

package engine

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/evaluation"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/generator"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/store/memory"
)

// newTestEngine wires an engine on the in-memory store with template-only
// question generation and heuristic-only evaluation.
func newTestEngine() *Engine {
	logger := zap.NewNop()
	return New(Deps{
		Store:     memory.NewStore(),
		Generator: generator.New(nil, nil, nil, 0, logger),
		Evaluator: evaluation.New(nil, nil, nil, 0, logger),
		Logger:    logger,
	})
}

func createSession(t *testing.T, e *Engine) *models.Session {
	t.Helper()
	session, err := e.Create(context.Background(), &models.CreateSessionRequest{StudentID: "stu-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return session
}

func TestCreateUsesDefaultRounds(t *testing.T) {
	e := newTestEngine()
	session := createSession(t, e)

	if session.Status != models.StatusNotStarted {
		t.Errorf("expected NOT_STARTED, got %s", session.Status)
	}
	if session.CurrentDifficulty != models.DifficultyMedium {
		t.Errorf("expected MEDIUM start difficulty, got %s", session.CurrentDifficulty)
	}
	if len(session.Rounds) != 3 {
		t.Fatalf("expected 3 default rounds, got %d", len(session.Rounds))
	}
	wantTypes := []models.RoundType{models.RoundDSA, models.RoundSystemDesign, models.RoundBehavioral}
	for i, want := range wantTypes {
		if session.Rounds[i].Type != want {
			t.Errorf("round %d: expected %s, got %s", i+1, want, session.Rounds[i].Type)
		}
		if session.Rounds[i].Status != models.RoundPending {
			t.Errorf("round %d: expected pending, got %s", i+1, session.Rounds[i].Status)
		}
	}
}

func TestStartIssuesFirstQuestion(t *testing.T) {
	e := newTestEngine()
	session := createSession(t, e)

	started, question, err := e.Start(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != models.StatusInProgress {
		t.Errorf("expected IN_PROGRESS, got %s", started.Status)
	}
	if started.StartedAt == nil {
		t.Errorf("expected StartedAt to be set")
	}
	if question == nil || question.Type != models.RoundDSA {
		t.Fatalf("expected a DSA question, got %+v", question)
	}
	if question.RoundNum != 1 {
		t.Errorf("expected question in round 1, got %d", question.RoundNum)
	}

	// starting twice is an invalid transition
	if _, _, err := e.Start(context.Background(), session.ID); err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestNextQuestionIsIdempotentWhileUnanswered(t *testing.T) {
	e := newTestEngine()
	session := createSession(t, e)
	ctx := context.Background()

	_, first, err := e.Start(ctx, session.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	resp, err := e.NextQuestion(ctx, session.ID)
	if err != nil {
		t.Fatalf("next question: %v", err)
	}
	if resp.Question == nil || resp.Question.ID != first.ID {
		t.Errorf("expected the pending question back, got %+v", resp.Question)
	}
}

func TestSubmitAnswerAdvancesRounds(t *testing.T) {
	e := newTestEngine()
	session := createSession(t, e)
	ctx := context.Background()

	_, question, err := e.Start(ctx, session.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// a contentless answer scores below 50 and de-escalates difficulty
	resp, err := e.SubmitAnswer(ctx, session.ID, &models.SubmitAnswerRequest{
		QuestionID: question.ID,
		Text:       "zzz",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.NextAction != models.ActionNextQuestion {
		t.Errorf("expected next_question after the first answer, got %s", resp.NextAction)
	}
	if resp.NewDifficulty != models.DifficultyEasy {
		t.Errorf("expected de-escalation to EASY, got %s", resp.NewDifficulty)
	}

	// second answer closes the round
	q2, err := e.NextQuestion(ctx, session.ID)
	if err != nil {
		t.Fatalf("next question: %v", err)
	}
	resp, err = e.SubmitAnswer(ctx, session.ID, &models.SubmitAnswerRequest{
		QuestionID: q2.Question.ID,
		Text:       "zzz",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.NextAction != models.ActionNextRound {
		t.Errorf("expected next_round after the second answer, got %s", resp.NextAction)
	}
	if resp.NextRound == "" {
		t.Errorf("expected the next round's name")
	}

	stored, err := e.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Rounds[0].Status != models.RoundCompleted {
		t.Errorf("expected round 1 completed, got %s", stored.Rounds[0].Status)
	}
	if stored.Rounds[0].Score <= 0 {
		t.Errorf("expected a round score, got %v", stored.Rounds[0].Score)
	}
	if stored.Rounds[1].Status != models.RoundInProgress {
		t.Errorf("expected round 2 in progress, got %s", stored.Rounds[1].Status)
	}
	if stored.TotalQuestionsAnswered != 2 {
		t.Errorf("expected 2 answered, got %d", stored.TotalQuestionsAnswered)
	}
}

// completeInterview answers two questions per round until the session finishes.
func completeInterview(t *testing.T, e *Engine, sessionID string) *models.SubmitAnswerResponse {
	t.Helper()
	ctx := context.Background()

	_, question, err := e.Start(ctx, sessionID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	var last *models.SubmitAnswerResponse
	current := question
	for i := 0; i < 20; i++ {
		last, err = e.SubmitAnswer(ctx, sessionID, &models.SubmitAnswerRequest{
			QuestionID:       current.ID,
			Text:             "The situation required a structured approach and I explained the result clearly.",
			TimeTakenSeconds: 120,
		})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if last.NextAction == models.ActionInterviewCompleted {
			return last
		}

		next, err := e.NextQuestion(ctx, sessionID)
		if err != nil {
			t.Fatalf("next question %d: %v", i, err)
		}
		if next.Completed {
			t.Fatalf("next question reported completion before interview_completed action")
		}
		current = next.Question
	}
	t.Fatalf("interview did not complete within the expected number of answers")
	return nil
}

func TestFullInterviewCompletes(t *testing.T) {
	e := newTestEngine()
	session := createSession(t, e)
	ctx := context.Background()

	last := completeInterview(t, e, session.ID)
	if last.NextAction != models.ActionInterviewCompleted {
		t.Fatalf("expected completion, got %s", last.NextAction)
	}

	stored, err := e.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != models.StatusCompleted {
		t.Errorf("expected COMPLETED, got %s", stored.Status)
	}
	if stored.CompletedAt == nil {
		t.Errorf("expected CompletedAt set")
	}
	if stored.OverallScore <= 0 || stored.OverallScore > 100 {
		t.Errorf("unexpected overall score %v", stored.OverallScore)
	}
	if stored.TotalQuestionsAnswered != 6 {
		t.Errorf("expected 6 answers across 3 rounds, got %d", stored.TotalQuestionsAnswered)
	}
	if len(stored.Improvements) == 0 {
		t.Errorf("expected aggregated improvements")
	}
	if len(stored.Strengths) > 5 || len(stored.Improvements) > 5 {
		t.Errorf("highlights must be capped at 5: %v / %v", stored.Strengths, stored.Improvements)
	}

	// a finished session keeps answering next_question idempotently
	resp, err := e.NextQuestion(ctx, session.ID)
	if err != nil {
		t.Fatalf("next question after completion: %v", err)
	}
	if !resp.Completed || resp.Question != nil {
		t.Errorf("expected completion response, got %+v", resp)
	}

	// and rejects further answers
	_, err = e.SubmitAnswer(ctx, session.ID, &models.SubmitAnswerRequest{QuestionID: "any", Text: "x"})
	if err != ErrSessionTerminal {
		t.Errorf("expected ErrSessionTerminal, got %v", err)
	}
}

func TestStartOnFinishedSession(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	completed := createSession(t, e)
	completeInterview(t, e, completed.ID)
	if _, _, err := e.Start(ctx, completed.ID); err != ErrSessionTerminal {
		t.Errorf("start on COMPLETED: got %v, want ErrSessionTerminal", err)
	}

	abandoned := createSession(t, e)
	if _, err := e.Abandon(ctx, abandoned.ID); err != nil {
		t.Fatalf("abandon: %v", err)
	}
	if _, _, err := e.Start(ctx, abandoned.ID); err != ErrSessionTerminal {
		t.Errorf("start on ABANDONED: got %v, want ErrSessionTerminal", err)
	}
}

func TestFinalizeLeavesNoActiveRound(t *testing.T) {
	e := newTestEngine()
	session := createSession(t, e)
	ctx := context.Background()

	completeInterview(t, e, session.ID)

	stored, err := e.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.CurrentRoundIndex != len(stored.Rounds) {
		t.Errorf("CurrentRoundIndex = %d, want %d", stored.CurrentRoundIndex, len(stored.Rounds))
	}
	if stored.ActiveRound() != nil {
		t.Errorf("completed session must have no active round")
	}
}

func TestSubmitAnswerIsIdempotent(t *testing.T) {
	e := newTestEngine()
	session := createSession(t, e)
	ctx := context.Background()

	_, question, err := e.Start(ctx, session.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	first, err := e.SubmitAnswer(ctx, session.ID, &models.SubmitAnswerRequest{
		QuestionID: question.ID,
		Text:       "A structured answer with a clear result.",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	replay, err := e.SubmitAnswer(ctx, session.ID, &models.SubmitAnswerRequest{
		QuestionID: question.ID,
		Text:       "a completely different answer that must be ignored",
	})
	if err != nil {
		t.Fatalf("replay submit: %v", err)
	}
	if replay.Evaluation.Score != first.Evaluation.Score {
		t.Errorf("replay must return the stored evaluation: %v vs %v", replay.Evaluation.Score, first.Evaluation.Score)
	}

	stored, _ := e.Get(ctx, session.ID)
	if stored.TotalQuestionsAnswered != 1 {
		t.Errorf("replay must not count again, got %d", stored.TotalQuestionsAnswered)
	}
}

func TestPauseResume(t *testing.T) {
	e := newTestEngine()
	session := createSession(t, e)
	ctx := context.Background()

	if _, _, err := e.Start(ctx, session.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	paused, err := e.Pause(ctx, session.ID)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if paused.Status != models.StatusPaused {
		t.Errorf("expected PAUSED, got %s", paused.Status)
	}

	// no questions while paused
	if _, err := e.NextQuestion(ctx, session.ID); err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition while paused, got %v", err)
	}
	// pausing twice is invalid
	if _, err := e.Pause(ctx, session.ID); err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition on double pause, got %v", err)
	}

	resumed, err := e.Resume(ctx, session.ID)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.Status != models.StatusInProgress {
		t.Errorf("expected IN_PROGRESS, got %s", resumed.Status)
	}
}

func TestAbandon(t *testing.T) {
	e := newTestEngine()
	session := createSession(t, e)
	ctx := context.Background()

	abandoned, err := e.Abandon(ctx, session.ID)
	if err != nil {
		t.Fatalf("abandon: %v", err)
	}
	if abandoned.Status != models.StatusAbandoned {
		t.Errorf("expected ABANDONED, got %s", abandoned.Status)
	}
	if abandoned.OverallScore != 0 {
		t.Errorf("abandoned sessions must not carry an overall score")
	}

	if _, err := e.Abandon(ctx, session.ID); err != ErrSessionTerminal {
		t.Errorf("expected ErrSessionTerminal on double abandon, got %v", err)
	}
}

func TestUnknownSessionAndQuestion(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	if _, err := e.Get(ctx, "missing"); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}

	session := createSession(t, e)
	if _, _, err := e.Start(ctx, session.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	_, err := e.SubmitAnswer(ctx, session.ID, &models.SubmitAnswerRequest{QuestionID: "bogus", Text: "x"})
	if err != ErrQuestionNotFound {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestReportLifecycle(t *testing.T) {
	e := newTestEngine()
	session := createSession(t, e)
	ctx := context.Background()

	if _, err := e.Report(ctx, session.ID); err != ErrReportNotReady {
		t.Fatalf("expected ErrReportNotReady before completion, got %v", err)
	}

	completeInterview(t, e, session.ID)

	report, err := e.Report(ctx, session.ID)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.SessionID != session.ID {
		t.Errorf("wrong session id: %s", report.SessionID)
	}
	if len(report.Rounds) != 3 {
		t.Errorf("expected 3 round breakdowns, got %d", len(report.Rounds))
	}
	if len(report.Entries) != 6 {
		t.Errorf("expected 6 question entries, got %d", len(report.Entries))
	}
	if len(report.Recommendations) == 0 {
		t.Errorf("expected recommendations")
	}
	if report.OverallScore <= 0 {
		t.Errorf("expected an overall score, got %v", report.OverallScore)
	}
}

func TestRoundScoreRounding(t *testing.T) {
	round := &models.Round{
		Questions: []models.Question{
			{Answered: true, Answer: &models.Answer{Evaluation: models.Evaluation{Score: 85}}},
			{Answered: true, Answer: &models.Answer{Evaluation: models.Evaluation{Score: 75}}},
		},
	}
	if got := roundScore(round); got != 80.0 {
		t.Errorf("roundScore = %v, want 80.0", got)
	}

	uneven := &models.Round{
		Questions: []models.Question{
			{Answered: true, Answer: &models.Answer{Evaluation: models.Evaluation{Score: 70.5}}},
			{Answered: true, Answer: &models.Answer{Evaluation: models.Evaluation{Score: 60.2}}},
		},
	}
	if got := roundScore(uneven); got != 65.4 {
		t.Errorf("roundScore = %v, want 65.4", got)
	}

	if got := roundScore(&models.Round{}); got != 0 {
		t.Errorf("empty round must score 0, got %v", got)
	}
}

func TestBandedRecommendations(t *testing.T) {
	if recs := bandedRecommendations(85); len(recs) == 0 {
		t.Errorf("expected recommendations for high scores")
	}
	if recs := bandedRecommendations(40); len(recs) < 3 {
		t.Errorf("expected detailed guidance for low scores, got %v", recs)
	}
}

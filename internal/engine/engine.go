package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/cache"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/difficulty"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/evaluation"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/generator"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/llm"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/monitoring"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/patterns"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/prompts"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/store"
)

// minQuestionsPerRound is how many accepted answers close a round.
const minQuestionsPerRound = 2

// highlightLimit caps aggregated strengths/improvements on the session.
const highlightLimit = 5

// Deps collects the engine's collaborators. Reports, Events, Provider and
// Prompts are optional; the engine degrades to local behavior without them.
type Deps struct {
	Store      store.SessionStore
	Generator  *generator.Generator
	Evaluator  *evaluation.Evaluator
	Patterns   patterns.Lookup
	Reports    *cache.ReportCache
	Events     *cache.Publisher
	Provider   llm.Provider
	Prompts    prompts.PromptProvider
	LLMTimeout time.Duration
	Logger     *zap.Logger
}

// Engine drives interview sessions through their lifecycle. Every mutation
// loads the session document, applies the transition in memory and persists
// the whole document with one store write.
type Engine struct {
	store      store.SessionStore
	generator  *generator.Generator
	evaluator  *evaluation.Evaluator
	patterns   patterns.Lookup
	reports    *cache.ReportCache
	events     *cache.Publisher
	provider   llm.Provider
	prompts    prompts.PromptProvider
	llmTimeout time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func New(deps Deps) *Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.LLMTimeout <= 0 {
		deps.LLMTimeout = 8 * time.Second
	}
	return &Engine{
		store:      deps.Store,
		generator:  deps.Generator,
		evaluator:  deps.Evaluator,
		patterns:   deps.Patterns,
		reports:    deps.Reports,
		events:     deps.Events,
		provider:   deps.Provider,
		prompts:    deps.Prompts,
		llmTimeout: deps.LLMTimeout,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// Create builds a new session from the company's interview pattern (or the
// built-in default) and persists it in NOT_STARTED.
func (e *Engine) Create(ctx context.Context, req *models.CreateSessionRequest) (*models.Session, error) {
	rounds := e.resolveRounds(ctx, req)

	now := e.now()
	session := &models.Session{
		ID:                uuid.New().String(),
		StudentID:         req.StudentID,
		Company:           req.Company,
		Role:              req.Role,
		Status:            models.StatusNotStarted,
		CurrentRoundIndex: 0,
		CurrentDifficulty: models.DifficultyMedium,
		CreatedAt:         now,
		LastActivityAt:    now,
	}

	for i, p := range rounds {
		topics := p.Topics
		if p.Type == models.RoundTechnical && len(req.Skills) > 0 {
			topics = append(append([]string{}, topics...), req.Skills...)
		}
		session.Rounds = append(session.Rounds, models.Round{
			RoundNum:        i + 1,
			Type:            p.Type,
			Name:            p.Name,
			DurationMinutes: p.DurationMinutes,
			Topics:          topics,
			Status:          models.RoundPending,
		})
	}

	if err := e.store.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	monitoring.SessionsCreated.Inc()
	e.logger.Info("Interview session created",
		zap.String("session_id", session.ID),
		zap.String("student_id", session.StudentID),
		zap.Int("rounds", len(session.Rounds)))

	return session, nil
}

func (e *Engine) resolveRounds(ctx context.Context, req *models.CreateSessionRequest) []patterns.RoundPattern {
	if e.patterns != nil && req.Company != "" {
		rounds, err := e.patterns.Rounds(ctx, req.Company, req.Role)
		if err == nil {
			if sanitized := patterns.Sanitize(rounds); len(sanitized) > 0 {
				return sanitized
			}
		} else {
			e.logger.Warn("Company pattern lookup failed, using default rounds",
				zap.String("company", req.Company), zap.Error(err))
		}
	}
	return patterns.DefaultPattern()
}

// Get returns the session document as stored.
func (e *Engine) Get(ctx context.Context, id string) (*models.Session, error) {
	session, err := e.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	return session, err
}

// Start moves a NOT_STARTED session into IN_PROGRESS and issues the first
// question of the first round.
func (e *Engine) Start(ctx context.Context, id string) (*models.Session, *models.Question, error) {
	session, err := e.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if session.Status.IsTerminal() {
		return nil, nil, ErrSessionTerminal
	}
	if session.Status != models.StatusNotStarted {
		return nil, nil, ErrInvalidTransition
	}
	if len(session.Rounds) == 0 {
		return nil, nil, ErrInvalidTransition
	}

	now := e.now()
	session.Status = models.StatusInProgress
	session.StartedAt = &now
	session.LastActivityAt = now
	session.Rounds[0].Status = models.RoundInProgress

	question := e.issueQuestion(ctx, session, &session.Rounds[0])

	if err := e.store.Update(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return session, question, nil
}

// NextQuestion returns the question the student should answer next. It is
// idempotent: while an issued question is unanswered that same question is
// returned again, and a finished session always gets the completion message.
func (e *Engine) NextQuestion(ctx context.Context, id string) (*models.QuestionResponse, error) {
	session, err := e.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Status == models.StatusCompleted {
		return &models.QuestionResponse{
			Completed: true,
			Message:   "interview completed",
		}, nil
	}
	if session.Status != models.StatusInProgress {
		return nil, ErrInvalidTransition
	}

	round := session.ActiveRound()
	if round == nil {
		return nil, ErrInvalidTransition
	}

	if pending := pendingQuestion(round); pending != nil {
		return &models.QuestionResponse{Question: pending}, nil
	}

	question := e.issueQuestion(ctx, session, round)
	session.LastActivityAt = e.now()

	if err := e.store.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return &models.QuestionResponse{Question: question}, nil
}

// SubmitAnswer evaluates an answer, records it, adapts difficulty and
// advances round/session progression. Re-submitting an already answered
// question returns the stored evaluation without mutating anything.
func (e *Engine) SubmitAnswer(ctx context.Context, id string, req *models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error) {
	session, err := e.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status.IsTerminal() {
		return nil, ErrSessionTerminal
	}
	if session.Status != models.StatusInProgress {
		return nil, ErrInvalidTransition
	}

	round, question := session.FindQuestion(req.QuestionID)
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	if question.Answered {
		return e.replayResponse(session, round, question), nil
	}

	evaluated := e.evaluator.Evaluate(ctx, evaluation.Input{
		Question:         question,
		Text:             req.Text,
		Code:             req.Code,
		Language:         req.Language,
		TimeTakenSeconds: req.TimeTakenSeconds,
	})

	now := e.now()
	question.Answered = true
	question.Answer = &models.Answer{
		QuestionID:       question.ID,
		Text:             req.Text,
		Code:             req.Code,
		Language:         req.Language,
		TimeTakenSeconds: req.TimeTakenSeconds,
		Evaluation:       evaluated,
		SubmittedAt:      now,
	}

	round.QuestionsAnswered++
	session.TotalQuestionsAnswered++
	session.TotalTimeSpentSeconds += req.TimeTakenSeconds
	session.CurrentDifficulty = difficulty.Adapt(evaluated.Score, session.CurrentDifficulty)
	session.LastActivityAt = now

	monitoring.AnswersEvaluated.WithLabelValues(string(question.Type)).Inc()
	if evaluated.Degraded {
		monitoring.DegradedEvaluations.Inc()
	}

	action, nextRoundName := e.advance(session, round)

	if err := e.store.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	if action == models.ActionInterviewCompleted {
		e.publishCompletion(ctx, session)
	}

	return &models.SubmitAnswerResponse{
		Evaluation:    evaluated,
		NextAction:    action,
		NextRound:     nextRoundName,
		NewDifficulty: session.CurrentDifficulty,
	}, nil
}

// replayResponse rebuilds the submit response for an already answered
// question from persisted state.
func (e *Engine) replayResponse(session *models.Session, round *models.Round, question *models.Question) *models.SubmitAnswerResponse {
	resp := &models.SubmitAnswerResponse{
		Evaluation:    question.Answer.Evaluation,
		NextAction:    models.ActionNextQuestion,
		NewDifficulty: session.CurrentDifficulty,
	}
	if session.Status == models.StatusCompleted {
		resp.NextAction = models.ActionInterviewCompleted
	} else if round.Status == models.RoundCompleted {
		resp.NextAction = models.ActionNextRound
		if next := session.ActiveRound(); next != nil {
			resp.NextRound = next.Name
		}
	}
	return resp
}

// advance closes the round once enough answers are in and either opens the
// next round or finalizes the session.
func (e *Engine) advance(session *models.Session, round *models.Round) (models.NextAction, string) {
	if round.QuestionsAnswered < minQuestionsPerRound {
		return models.ActionNextQuestion, ""
	}

	round.Score = roundScore(round)
	round.Status = models.RoundCompleted

	if session.CurrentRoundIndex+1 < len(session.Rounds) {
		session.CurrentRoundIndex++
		next := &session.Rounds[session.CurrentRoundIndex]
		next.Status = models.RoundInProgress
		return models.ActionNextRound, next.Name
	}

	e.finalize(session)
	return models.ActionInterviewCompleted, ""
}

// Pause suspends an IN_PROGRESS session.
func (e *Engine) Pause(ctx context.Context, id string) (*models.Session, error) {
	return e.transition(ctx, id, models.StatusInProgress, models.StatusPaused)
}

// Resume continues a PAUSED session.
func (e *Engine) Resume(ctx context.Context, id string) (*models.Session, error) {
	return e.transition(ctx, id, models.StatusPaused, models.StatusInProgress)
}

func (e *Engine) transition(ctx context.Context, id string, from, to models.SessionStatus) (*models.Session, error) {
	session, err := e.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status.IsTerminal() {
		return nil, ErrSessionTerminal
	}
	if session.Status != from {
		return nil, ErrInvalidTransition
	}

	session.Status = to
	session.LastActivityAt = e.now()

	if err := e.store.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return session, nil
}

// Abandon terminates a session early. Already answered rounds keep their
// scores; the session never produces an overall score.
func (e *Engine) Abandon(ctx context.Context, id string) (*models.Session, error) {
	session, err := e.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status.IsTerminal() {
		return nil, ErrSessionTerminal
	}

	session.Status = models.StatusAbandoned
	session.LastActivityAt = e.now()

	if err := e.store.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	monitoring.SessionsCompleted.WithLabelValues(string(models.StatusAbandoned)).Inc()
	e.logger.Info("Interview session abandoned", zap.String("session_id", session.ID))
	return session, nil
}

func (e *Engine) issueQuestion(ctx context.Context, session *models.Session, round *models.Round) *models.Question {
	question := e.generator.Generate(ctx, round.Type, session.CurrentDifficulty, round.Topics, session.IssuedQuestionRefs())
	question.RoundNum = round.RoundNum
	question.IssuedAt = e.now()
	round.Questions = append(round.Questions, *question)

	monitoring.QuestionsServed.WithLabelValues(string(question.Source)).Inc()
	return &round.Questions[len(round.Questions)-1]
}

func (e *Engine) publishCompletion(ctx context.Context, session *models.Session) {
	monitoring.SessionsCompleted.WithLabelValues(string(models.StatusCompleted)).Inc()
	e.logger.Info("Interview session completed",
		zap.String("session_id", session.ID),
		zap.Float64("overall_score", session.OverallScore))

	if e.events != nil {
		completedAt := e.now()
		if session.CompletedAt != nil {
			completedAt = *session.CompletedAt
		}
		e.events.PublishCompleted(ctx, cache.CompletionEvent{
			SessionID:    session.ID,
			StudentID:    session.StudentID,
			Company:      session.Company,
			Role:         session.Role,
			OverallScore: session.OverallScore,
			CompletedAt:  completedAt,
		})
	}
}

// pendingQuestion returns the round's issued-but-unanswered question, if any.
func pendingQuestion(round *models.Round) *models.Question {
	for i := range round.Questions {
		if !round.Questions[i].Answered {
			return &round.Questions[i]
		}
	}
	return nil
}

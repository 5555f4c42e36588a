package generator

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/bank"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/llm"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/prompts"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/utils"
)

// QuestionBank is the slice of the bank repository the generator needs.
type QuestionBank interface {
	Pick(ctx context.Context, roundType models.RoundType, difficulty models.Difficulty, topics []string, exclude []string) (*models.Question, error)
}

// Generator produces questions through an ordered fallback chain:
// pre-authored bank, then LLM generation, then built-in templates.
// Generate never fails; the template tier always yields a usable question.
type Generator struct {
	bank       QuestionBank
	provider   llm.Provider
	prompts    prompts.PromptProvider
	llmTimeout time.Duration
	logger     *zap.Logger
}

func New(questionBank QuestionBank, provider llm.Provider, promptManager prompts.PromptProvider, llmTimeout time.Duration, logger *zap.Logger) *Generator {
	if llmTimeout <= 0 {
		llmTimeout = 8 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		bank:       questionBank,
		provider:   provider,
		prompts:    promptManager,
		llmTimeout: llmTimeout,
		logger:     logger,
	}
}

// Generate selects or authors one question for the given round type and
// difficulty. Pure selection: persisting the question is the caller's job.
func (g *Generator) Generate(ctx context.Context, roundType models.RoundType, difficulty models.Difficulty, topics []string, exclude []string) *models.Question {
	if g.bank != nil {
		q, err := g.bank.Pick(ctx, roundType, difficulty, topics, exclude)
		if err == nil {
			return q
		}
		if !errors.Is(err, bank.ErrNoMatch) {
			g.logger.Warn("question bank lookup failed",
				zap.String("round_type", string(roundType)),
				zap.Error(err))
		}
	}

	if g.provider != nil {
		if q, err := g.generateWithLLM(ctx, roundType, difficulty, topics); err == nil {
			return q
		} else {
			g.logger.Warn("LLM question generation failed, using template",
				zap.String("round_type", string(roundType)),
				zap.String("difficulty", string(difficulty)),
				zap.Error(err))
		}
	}

	return templateQuestion(roundType, difficulty)
}

// structured response expected from the LLM
type llmQuestion struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Hints            []string `json:"hints"`
	ExpectedPoints   []string `json:"expected_points"`
	TimeLimitSeconds int      `json:"time_limit_seconds"`
}

func (g *Generator) generateWithLLM(ctx context.Context, roundType models.RoundType, difficulty models.Difficulty, topics []string) (*models.Question, error) {
	prompt, err := g.prompts.BuildPrompt("question_gen", strings.ToLower(string(difficulty)), map[string]string{
		"RoundType": string(roundType),
		"Topics":    strings.Join(topics, ", "),
	})
	if err != nil {
		return nil, err
	}

	llmCtx, cancel := context.WithTimeout(ctx, g.llmTimeout)
	defer cancel()

	raw, err := g.provider.GenerateText(llmCtx, prompt, "")
	if err != nil {
		return nil, err
	}

	var parsed llmQuestion
	if err := json.Unmarshal([]byte(utils.StripFences(raw)), &parsed); err != nil {
		return nil, err
	}
	if strings.TrimSpace(parsed.Description) == "" {
		return nil, errors.New("LLM response has no question description")
	}

	text := parsed.Description
	if parsed.Title != "" {
		text = parsed.Title + "\n\n" + parsed.Description
	}
	timeLimit := parsed.TimeLimitSeconds
	if timeLimit <= 0 {
		timeLimit = 600
	}

	return &models.Question{
		ID:               uuid.New().String(),
		Type:             roundType,
		Difficulty:       difficulty,
		Text:             text,
		Hints:            parsed.Hints,
		ExpectedPoints:   parsed.ExpectedPoints,
		TimeLimitSeconds: timeLimit,
		Source:           models.SourceLLM,
	}, nil
}

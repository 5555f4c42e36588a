package bank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/utils"
)

// ErrNoMatch signals that no bank question satisfies the selection filters;
// the generator falls through to its next tier.
var ErrNoMatch = errors.New("no bank question matches the filters")

// Repository serves pre-authored questions from a relational bank.
// It holds no mutable state, so one instance is shared across requests.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) (*Repository, error) {
	if err := db.AutoMigrate(&BankQuestion{}); err != nil {
		return nil, fmt.Errorf("failed to migrate question bank: %w", err)
	}
	return &Repository{db: db}, nil
}

// Pick selects one active question matching the exact (type, difficulty)
// pair, uniformly at random. When a topic pool is given, only questions
// intersecting it are eligible (questions without topic tags are treated as
// wildcard). Refs in exclude are questions already issued this session.
func (r *Repository) Pick(ctx context.Context, roundType models.RoundType, difficulty models.Difficulty, topics []string, exclude []string) (*models.Question, error) {
	var rows []BankQuestion
	err := r.db.WithContext(ctx).
		Where("type = ? AND difficulty = ? AND active = ?", string(roundType), string(difficulty), true).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("bank query failed: %w", err)
	}

	excluded := make(map[string]bool, len(exclude))
	for _, ref := range exclude {
		excluded[ref] = true
	}

	var candidates []BankQuestion
	for _, row := range rows {
		if excluded[row.Ref] {
			continue
		}
		if len(topics) > 0 && !topicsOverlap(decodeList(row.Topics), topics) {
			continue
		}
		candidates = append(candidates, row)
	}

	if len(candidates) == 0 {
		return nil, ErrNoMatch
	}

	chosen := candidates[rand.Intn(len(candidates))]
	return chosen.toQuestion(), nil
}

// Count reports the number of active bank questions (used by readiness checks).
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&BankQuestion{}).Where("active = ?", true).Count(&n).Error
	return n, err
}

// Ping verifies the bank database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.WithContext(ctx).DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func topicsOverlap(questionTopics, pool []string) bool {
	if len(questionTopics) == 0 {
		return true
	}
	poolSet := make(map[string]bool, len(pool))
	for _, t := range pool {
		poolSet[utils.Normalize(t)] = true
	}
	for _, t := range questionTopics {
		if poolSet[utils.Normalize(t)] {
			return true
		}
	}
	return false
}

func (bq *BankQuestion) toQuestion() *models.Question {
	text := bq.Text
	if bq.Title != "" {
		text = bq.Title + "\n\n" + bq.Text
	}

	q := &models.Question{
		ID:                 uuid.New().String(),
		Type:               models.RoundType(bq.Type),
		Difficulty:         models.Difficulty(bq.Difficulty),
		Text:               text,
		Hints:              decodeList(bq.Hints),
		ExpectedPoints:     decodeList(bq.ExpectedPoints),
		TimeLimitSeconds:   bq.TimeLimitSeconds,
		Source:             models.SourceBank,
		SourceRef:          bq.Ref,
		ExpectedComplexity: bq.ExpectedComplexity,
		Theme:              bq.Theme,
		ExpectedComponents: decodeList(bq.ExpectedComponents),
		DiscussionPoints:   decodeList(bq.DiscussionPoints),
	}

	if bq.TestCases != "" {
		var cases []models.TestCase
		if err := json.Unmarshal([]byte(bq.TestCases), &cases); err == nil {
			q.TestCases = cases
		}
	}

	return q
}

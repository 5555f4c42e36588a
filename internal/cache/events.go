package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const completedChannel = "interview_completed"

// CompletionEvent is published when a session finishes, for downstream
// consumers such as history or notification services.
type CompletionEvent struct {
	SessionID    string    `json:"session_id"`
	StudentID    string    `json:"student_id"`
	Company      string    `json:"company"`
	Role         string    `json:"role"`
	OverallScore float64   `json:"overall_score"`
	CompletedAt  time.Time `json:"completed_at"`
}

// Publisher fans out session lifecycle events over Redis pub/sub.
type Publisher struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewPublisher(rdb *redis.Client, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{rdb: rdb, logger: logger}
}

// PublishCompleted is best effort. A pub/sub failure never blocks the
// interview flow, it is logged and dropped.
func (p *Publisher) PublishCompleted(ctx context.Context, event CompletionEvent) {
	if p == nil || p.rdb == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("Failed to marshal completion event", zap.Error(err))
		return
	}

	if err := p.rdb.Publish(ctx, completedChannel, data).Err(); err != nil {
		p.logger.Warn("Failed to publish completion event",
			zap.String("session_id", event.SessionID),
			zap.Error(err))
	}
}

package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/monitoring"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/store"
)

// SessionSweeperJob abandons sessions with no activity past the idle
// timeout, so forgotten sessions reach a terminal state on their own.
type SessionSweeperJob struct {
	sessions    store.SessionStore
	idleTimeout time.Duration
	schedule    string
	cron        *cron.Cron
	logger      *zap.Logger
}

func NewSessionSweeperJob(sessions store.SessionStore, schedule string, idleTimeout time.Duration, logger *zap.Logger) *SessionSweeperJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionSweeperJob{
		sessions:    sessions,
		idleTimeout: idleTimeout,
		schedule:    schedule,
		cron:        cron.New(),
		logger:      logger,
	}
}

// Start begins the scheduled sweep
func (ssj *SessionSweeperJob) Start() error {
	_, err := ssj.cron.AddFunc(ssj.schedule, func() {
		if err := ssj.RunSweep(context.Background()); err != nil {
			ssj.logger.Error("Session sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule session sweeper: %w", err)
	}

	ssj.cron.Start()
	ssj.logger.Info("Session sweeper started", zap.String("schedule", ssj.schedule))
	return nil
}

func (ssj *SessionSweeperJob) Stop() {
	ssj.cron.Stop()
}

// RunSweep abandons every non-terminal session idle past the cutoff.
func (ssj *SessionSweeperJob) RunSweep(ctx context.Context) error {
	cutoff := time.Now().Add(-ssj.idleTimeout)

	stale, err := ssj.sessions.ListIdle(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list idle sessions: %w", err)
	}

	swept := 0
	for _, session := range stale {
		if session.Status.IsTerminal() {
			continue
		}
		session.Status = models.StatusAbandoned
		session.LastActivityAt = time.Now()

		if err := ssj.sessions.Update(ctx, session); err != nil {
			ssj.logger.Warn("Failed to abandon stale session",
				zap.String("session_id", session.ID), zap.Error(err))
			continue
		}
		monitoring.SessionsCompleted.WithLabelValues(string(models.StatusAbandoned)).Inc()
		swept++
	}

	if swept > 0 {
		ssj.logger.Info("Stale sessions abandoned", zap.Int("count", swept))
	}
	return nil
}

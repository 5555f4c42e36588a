package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestReportCacheRoundTrip(t *testing.T) {
	cache := NewReportCache(newTestRedis(t), time.Hour)
	ctx := context.Background()

	report := &models.Report{
		SessionID:    "s1",
		StudentID:    "stu-1",
		OverallScore: 78.5,
		Rounds: []models.RoundBreakdown{
			{Name: "Coding Round", Type: models.RoundDSA, Score: 80.0},
		},
	}
	if err := cache.Set(ctx, report); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := cache.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.OverallScore != 78.5 || len(got.Rounds) != 1 {
		t.Errorf("unexpected cached report: %+v", got)
	}
}

func TestReportCacheMiss(t *testing.T) {
	cache := NewReportCache(newTestRedis(t), time.Hour)
	if _, err := cache.Get(context.Background(), "absent"); err != ErrMiss {
		t.Errorf("expected ErrMiss, got %v", err)
	}
}

func TestReportCacheNilClientIsInert(t *testing.T) {
	var cache *ReportCache
	if err := cache.Set(context.Background(), &models.Report{SessionID: "s1"}); err != nil {
		t.Errorf("nil cache Set must be a no-op, got %v", err)
	}
	if _, err := cache.Get(context.Background(), "s1"); err != ErrMiss {
		t.Errorf("nil cache Get must miss, got %v", err)
	}
}

func TestPublishCompleted(t *testing.T) {
	client := newTestRedis(t)
	publisher := NewPublisher(client, zap.NewNop())

	sub := client.Subscribe(context.Background(), "interview_completed")
	defer sub.Close()
	if _, err := sub.Receive(context.Background()); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	publisher.PublishCompleted(context.Background(), CompletionEvent{
		SessionID:    "s1",
		StudentID:    "stu-1",
		OverallScore: 81.2,
		CompletedAt:  time.Now(),
	})

	select {
	case msg := <-sub.Channel():
		if msg.Payload == "" {
			t.Errorf("expected event payload")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no completion event received")
	}
}

func TestPublishCompletedNilPublisherIsSafe(t *testing.T) {
	var publisher *Publisher
	publisher.PublishCompleted(context.Background(), CompletionEvent{SessionID: "s1"})
}

package store

import (
	"context"
	"errors"
	"time"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
)

// ErrNotFound is returned when a session id is unknown to the store.
var ErrNotFound = errors.New("session not found")

// SessionStore persists sessions as whole documents. A session embeds its
// rounds, questions and answers, so Update replaces the document in one
// durable step; the engine relies on that for its atomicity guarantees.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Create(ctx context.Context, session *models.Session) error
	Update(ctx context.Context, session *models.Session) error

	// ListIdle returns non-terminal sessions with no activity since the
	// given time. Used by the stale-session sweeper.
	ListIdle(ctx context.Context, before time.Time) ([]*models.Session, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

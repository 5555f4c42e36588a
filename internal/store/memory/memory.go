package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/store"
)

// Store is an in-process SessionStore for tests and single-node development.
// Sessions are deep-copied on every read and write so callers can never
// mutate stored state except through Update.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*models.Session)}
}

func (s *Store) Get(ctx context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return clone(session)
}

func (s *Store) Create(ctx context.Context, session *models.Session) error {
	copied, err := clone(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = copied
	return nil
}

func (s *Store) Update(ctx context.Context, session *models.Session) error {
	copied, err := clone(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; !ok {
		return store.ErrNotFound
	}
	s.sessions[session.ID] = copied
	return nil
}

func (s *Store) ListIdle(ctx context.Context, before time.Time) ([]*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var idle []*models.Session
	for _, session := range s.sessions {
		if session.Status.IsTerminal() {
			continue
		}
		if session.LastActivityAt.Before(before) {
			copied, err := clone(session)
			if err != nil {
				return nil, err
			}
			idle = append(idle, copied)
		}
	}
	return idle, nil
}

func (s *Store) Ping(ctx context.Context) error { return nil }

// clone round-trips through JSON; sessions are plain data so this is a
// faithful deep copy.
func clone(session *models.Session) (*models.Session, error) {
	raw, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	var copied models.Session
	if err := json.Unmarshal(raw, &copied); err != nil {
		return nil, err
	}
	return &copied, nil
}

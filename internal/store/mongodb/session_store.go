package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sushant-mutnale/StudentHub-sub000/internal/models"
	"github.com/sushant-mutnale/StudentHub-sub000/internal/store"
)

// SessionStore persists each session as one Mongo document. ReplaceOne on
// the whole document is the single durable step the engine's atomicity
// contract asks for.
type SessionStore struct {
	client *Client
	col    *mongo.Collection
}

func NewSessionStore(client *Client, dbName, collection string) (*SessionStore, error) {
	db, err := client.DB(dbName)
	if err != nil {
		return nil, err
	}
	if collection == "" {
		collection = "interview_sessions"
	}

	col := db.Collection(collection)

	// index for the sweeper's idle scan
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "last_activity_at", Value: 1}},
	})

	return &SessionStore{client: client, col: col}, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionStore) Create(ctx context.Context, session *models.Session) error {
	_, err := s.col.InsertOne(ctx, session)
	return err
}

func (s *SessionStore) Update(ctx context.Context, session *models.Session) error {
	result, err := s.col.ReplaceOne(ctx, bson.M{"_id": session.ID}, session)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *SessionStore) ListIdle(ctx context.Context, before time.Time) ([]*models.Session, error) {
	filter := bson.M{
		"status":           bson.M{"$in": []models.SessionStatus{models.StatusNotStarted, models.StatusInProgress, models.StatusPaused}},
		"last_activity_at": bson.M{"$lt": before},
	}

	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sessions []*models.Session
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

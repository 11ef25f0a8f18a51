// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"github.com/dalemusser/sallehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists the operational audit trail (ingestion outcomes, problem
// lifecycle actions). Append-only; rows are never updated.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("ingestion_events")}
}

// Log appends one event. CreatedAt is stamped here if the caller left it
// zero.
func (s *Store) Log(ctx context.Context, ev models.IngestionEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, ev)
	return err
}

// GetRecent returns the newest events, newest first.
func (s *Store) GetRecent(ctx context.Context, limit int64) ([]models.IngestionEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var out []models.IngestionEvent
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByBatch returns every event logged for one ingestion batch, oldest
// first, for after-the-fact review of what the batch changed.
func (s *Store) GetByBatch(ctx context.Context, batchID string) ([]models.IngestionEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"batch_id": batchID}, opts)
	if err != nil {
		return nil, err
	}

	var out []models.IngestionEvent
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// internal/app/store/reports/reportstore.go
package reportstore

import (
	"context"
	"time"

	"github.com/dalemusser/sallehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store keeps the integration reports, one per ingestion batch. Reports
// are append-only: each batch saves a fresh report and the latest one
// supersedes the rest for display.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("integration_reports")}
}

// Save appends the report for a completed batch.
func (s *Store) Save(ctx context.Context, rep models.IntegrationReport) (models.IntegrationReport, error) {
	rep.ID = primitive.NewObjectID()
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, rep); err != nil {
		return models.IntegrationReport{}, err
	}
	return rep, nil
}

// Latest returns the most recent report, or mongo.ErrNoDocuments when no
// batch has run yet.
func (s *Store) Latest(ctx context.Context) (models.IntegrationReport, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	var rep models.IntegrationReport
	if err := s.c.FindOne(ctx, bson.M{}, opts).Decode(&rep); err != nil {
		return models.IntegrationReport{}, err
	}
	return rep, nil
}

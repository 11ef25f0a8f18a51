// internal/app/store/cohorts/cohortstore.go
package cohortstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/sallehub/internal/app/system/normalize"
	"github.com/dalemusser/sallehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store holds cohort schedule records keyed by normalized cohort ID.
// Documents are replaced wholesale on re-ingestion, never merged.
type Store struct {
	c *mongo.Collection
}

var (
	// ErrEmptyCohortID rejects records whose identifier normalizes to "".
	// The caller must fix the input; retrying cannot succeed.
	ErrEmptyCohortID = errors.New("cohort record has an empty normalized identifier")

	// ErrOverwriteConflict signals that a verified (status OK) record
	// already exists for this ID. It is control flow, not a failure:
	// the caller must confirm and retry with ForceUpsert, or cancel.
	ErrOverwriteConflict = errors.New("a verified schedule already exists for this cohort")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("cohort_records")}
}

// Upsert inserts rec under its normalized ID. An existing MISSING or
// UNREADABLE record is overwritten unconditionally; an existing OK record
// makes Upsert return ErrOverwriteConflict without touching the store:
// replacing a verified schedule always requires explicit confirmation
// via ForceUpsert.
func (s *Store) Upsert(ctx context.Context, rec models.CohortRecord) error {
	rec.ID = normalize.CohortID(rec.ID)
	if rec.ID == "" {
		return ErrEmptyCohortID
	}

	existing, err := s.Get(ctx, rec.ID)
	switch {
	case err == nil:
		if existing.Status == models.StatusOK {
			return ErrOverwriteConflict
		}
		return s.replace(ctx, rec, existing.CreatedAt)
	case errors.Is(err, mongo.ErrNoDocuments):
		return s.insert(ctx, rec)
	default:
		return err
	}
}

// ForceUpsert is the confirmed-overwrite variant of Upsert: it replaces
// whatever exists for the ID, preserving the original CreatedAt so the
// cohort keeps its place in the store's iteration order.
func (s *Store) ForceUpsert(ctx context.Context, rec models.CohortRecord) error {
	rec.ID = normalize.CohortID(rec.ID)
	if rec.ID == "" {
		return ErrEmptyCohortID
	}

	existing, err := s.Get(ctx, rec.ID)
	switch {
	case err == nil:
		return s.replace(ctx, rec, existing.CreatedAt)
	case errors.Is(err, mongo.ErrNoDocuments):
		return s.insert(ctx, rec)
	default:
		return err
	}
}

func (s *Store) insert(ctx context.Context, rec models.CohortRecord) error {
	now := time.Now().UTC()
	rec.CreatedAt = now
	if rec.LastUpdated.IsZero() {
		rec.LastUpdated = now
	}
	_, err := s.c.InsertOne(ctx, rec)
	if wafflemongo.IsDup(err) {
		// Lost a race with a concurrent insert of the same cohort;
		// surface it as the conflict it is.
		return ErrOverwriteConflict
	}
	return err
}

func (s *Store) replace(ctx context.Context, rec models.CohortRecord, createdAt time.Time) error {
	rec.CreatedAt = createdAt
	if rec.LastUpdated.IsZero() {
		rec.LastUpdated = time.Now().UTC()
	}
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec)
	return err
}

// Get fetches one record by cohort ID. The ID is normalized before lookup,
// so callers may pass raw user input. Returns mongo.ErrNoDocuments when
// the cohort has never been ingested.
func (s *Store) Get(ctx context.Context, id string) (models.CohortRecord, error) {
	var rec models.CohortRecord
	err := s.c.FindOne(ctx, bson.M{"_id": normalize.CohortID(id)}).Decode(&rec)
	if err != nil {
		return models.CohortRecord{}, err
	}
	return rec, nil
}

// GetAll returns every record (OK, MISSING and UNREADABLE alike) in
// insertion order (CreatedAt, then ID as the tie-break).
func (s *Store) GetAll(ctx context.Context) ([]models.CohortRecord, error) {
	return s.find(ctx, bson.M{})
}

// GetActive returns only status OK records, in insertion order. This is
// the exact slice the matrix builder consumes, and its order is the
// documented double-booking tie-break authority.
func (s *Store) GetActive(ctx context.Context) ([]models.CohortRecord, error) {
	return s.find(ctx, bson.M{"status": models.StatusOK})
}

// CountActive returns the number of status OK records.
func (s *Store) CountActive(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": models.StatusOK})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.CohortRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var out []models.CohortRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

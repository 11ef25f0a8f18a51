// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/sallehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateCohortRecord inserts an OK cohort record with the given entries.
// IDs are stored as provided; pass normalized IDs unless the test is about
// normalization itself.
func (f *Fixtures) CreateCohortRecord(ctx context.Context, id string, entries ...models.ScheduleEntry) models.CohortRecord {
	f.t.Helper()

	now := time.Now().UTC()
	rec := models.CohortRecord{
		ID:          id,
		Status:      models.StatusOK,
		Entries:     entries,
		CreatedAt:   now,
		LastUpdated: now,
	}
	if _, err := f.db.Collection("cohort_records").InsertOne(ctx, rec); err != nil {
		f.t.Fatalf("failed to create test cohort record: %v", err)
	}
	return rec
}

// CreateUnreadableRecord inserts a cohort record with UNREADABLE status,
// as left behind by a failed extraction.
func (f *Fixtures) CreateUnreadableRecord(ctx context.Context, id string) models.CohortRecord {
	f.t.Helper()

	now := time.Now().UTC()
	rec := models.CohortRecord{
		ID:          id,
		Status:      models.StatusUnreadable,
		CreatedAt:   now,
		LastUpdated: now,
	}
	if _, err := f.db.Collection("cohort_records").InsertOne(ctx, rec); err != nil {
		f.t.Fatalf("failed to create test cohort record: %v", err)
	}
	return rec
}

// Entry builds a ScheduleEntry for fixture records.
func Entry(room, day, slot, professor string) models.ScheduleEntry {
	return models.ScheduleEntry{Room: room, Day: day, TimeSlot: slot, Professor: professor}
}

// CreateProblem inserts a reported facility problem.
func (f *Fixtures) CreateProblem(ctx context.Context, room, description, priority string) models.ReportedProblem {
	f.t.Helper()

	p := models.ReportedProblem{
		ID:          uuid.NewString(),
		Room:        room,
		Description: description,
		Priority:    priority,
		Status:      models.ProblemReported,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("reported_problems").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test problem: %v", err)
	}
	return p
}

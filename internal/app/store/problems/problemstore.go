// internal/app/store/problems/problemstore.go
package problemstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/sallehub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the facility-problem ledger: reported problems keyed by a
// process-unique UUID. Handled is terminal; the transition deletes the
// document, so the ledger only ever holds open problems.
type Store struct {
	c *mongo.Collection
}

var (
	ErrUnknownProblem = errors.New("no problem with this id")
	ErrBadPriority    = errors.New("priority must be Important, Urgent or Plus Urgent")
	ErrBadStatus      = errors.New("status must be Reported, Waiting or Handled")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reported_problems")}
}

func validPriority(p string) bool {
	switch p {
	case models.PriorityImportant, models.PriorityUrgent, models.PriorityMostUrgent:
		return true
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case models.ProblemReported, models.ProblemWaiting, models.ProblemHandled:
		return true
	}
	return false
}

// Report records a new problem for a room. The room is a free display
// string; it does not have to be part of the matrix inventory. Status
// starts at Reported.
func (s *Store) Report(ctx context.Context, room, description, priority string) (models.ReportedProblem, error) {
	if !validPriority(priority) {
		return models.ReportedProblem{}, ErrBadPriority
	}

	p := models.ReportedProblem{
		ID:          uuid.NewString(),
		Room:        room,
		Description: description,
		Priority:    priority,
		Status:      models.ProblemReported,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.ReportedProblem{}, err
	}
	return p, nil
}

// UpdateStatus transitions a problem. Handled removes the document from
// the ledger entirely; any other status replaces the field in place and
// leaves the rest of the record untouched.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) error {
	if !validStatus(status) {
		return ErrBadStatus
	}

	if status == models.ProblemHandled {
		res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return ErrUnknownProblem
		}
		return nil
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUnknownProblem
	}
	return nil
}

// ListActive returns every open problem in report order. Handled problems
// are deleted on transition, so this is simply everything in the ledger.
func (s *Store) ListActive(ctx context.Context) ([]models.ReportedProblem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"status": bson.M{"$ne": models.ProblemHandled}}, opts)
	if err != nil {
		return nil, err
	}

	var out []models.ReportedProblem
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one problem by id.
func (s *Store) Get(ctx context.Context, id string) (models.ReportedProblem, error) {
	var p models.ReportedProblem
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ReportedProblem{}, ErrUnknownProblem
	}
	if err != nil {
		return models.ReportedProblem{}, err
	}
	return p, nil
}

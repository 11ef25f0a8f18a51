// internal/domain/models/report.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IntegrationReport is the outcome of one ingestion batch: which cohorts
// from the roster were updated by the batch and which are still missing.
// Reports are created fresh per batch and never mutated; the latest one
// supersedes the rest.
//
// Timestamp is a display-only local time string in the campus time zone.
// It is never used in comparisons; CreatedAt orders the collection.
type IntegrationReport struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	BatchID        string             `bson:"batch_id" json:"batch_id"`
	Timestamp      string             `bson:"timestamp" json:"timestamp"`
	TotalExpected  int                `bson:"total_expected" json:"total_expected"`
	OKCount        int                `bson:"ok_count" json:"ok_count"`
	MissingCount   int                `bson:"missing_count" json:"missing_count"`
	MissingCohorts []string           `bson:"missing_cohorts" json:"missing_cohorts"`
	UpdatedCohorts []string           `bson:"updated_cohorts" json:"updated_cohorts"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

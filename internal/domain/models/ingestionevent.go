// internal/domain/models/ingestionevent.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ingestion/audit event kinds.
const (
	EventCohortIngested    = "cohort_ingested"
	EventCohortOverwritten = "cohort_overwritten"
	EventBatchCompleted    = "batch_completed"
	EventBatchAborted      = "batch_aborted"
	EventOverwriteDeclined = "overwrite_declined"
	EventProblemReported   = "problem_reported"
	EventProblemUpdated    = "problem_updated"
)

// IngestionEvent is one row of the operational audit trail: who changed
// what, when. It exists for after-the-fact review, not for program logic.
type IngestionEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind      string             `bson:"kind" json:"kind"`
	Cohort    string             `bson:"cohort,omitempty" json:"cohort,omitempty"`
	Room      string             `bson:"room,omitempty" json:"room,omitempty"`
	File      string             `bson:"file,omitempty" json:"file,omitempty"`
	BatchID   string             `bson:"batch_id,omitempty" json:"batch_id,omitempty"`
	Detail    string             `bson:"detail,omitempty" json:"detail,omitempty"`
	Actor     string             `bson:"actor,omitempty" json:"actor,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

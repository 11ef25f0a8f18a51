// internal/domain/models/problem.go
package models

import "time"

// Problem priorities, in escalating order. The labels match what facilities
// staff see on the reporting form.
const (
	PriorityImportant  = "Important"
	PriorityUrgent     = "Urgent"
	PriorityMostUrgent = "Plus Urgent"
)

// Problem lifecycle statuses. Handled is terminal: the ledger deletes the
// document on that transition, so no Handled problem is ever queryable.
const (
	ProblemReported = "Reported"
	ProblemWaiting  = "Waiting"
	ProblemHandled  = "Handled"
)

// ReportedProblem is one facility problem tied to a room. Room is a free
// string for display: a problem may reference a room outside the fixed
// inventory (a corridor, a lab annex) even though such rooms never appear
// as matrix rows.
type ReportedProblem struct {
	ID          string    `bson:"_id" json:"id"` // UUID
	Room        string    `bson:"room" json:"room"`
	Description string    `bson:"description" json:"description"`
	Priority    string    `bson:"priority" json:"priority"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"timestamp"`
}

// internal/domain/models/cohort.go
package models

import "time"

// Cohort record statuses. A record is only usable by the occupancy matrix
// when its status is OK; MISSING and UNREADABLE records are retained so the
// integration report can show what went wrong, but they never occupy a cell.
const (
	StatusOK         = "OK"
	StatusMissing    = "MISSING"
	StatusUnreadable = "UNREADABLE"
)

// ScheduleEntry is a single occupancy fact extracted from a cohort timetable:
// one cohort, in one room, on one day, during one half-day slot, with one
// professor. Entries are immutable once created and only exist as children
// of a CohortRecord.
//
// Day holds the canonical day label (Lundi..Samedi) when the extraction
// service produced a recognizable day; otherwise it keeps the raw string,
// which the matrix builder will simply never match.
type ScheduleEntry struct {
	Cohort    string `bson:"cohort" json:"cohort"`
	Room      string `bson:"room" json:"room"`
	Day       string `bson:"day" json:"day"`
	TimeSlot  string `bson:"time_slot" json:"time_slot"`
	Professor string `bson:"professor" json:"professor"`
}

// CohortRecord is the stored schedule for one cohort, keyed by the
// normalized cohort ID. Re-ingestion replaces the document wholesale,
// never field by field.
//
// CreatedAt is set on first insert and preserved across overwrites; the
// store's listing order (CreatedAt, then ID) is the documented iteration
// order for matrix building, which makes the "later cohort wins a
// double-booked cell" rule deterministic.
type CohortRecord struct {
	ID           string          `bson:"_id" json:"id"` // normalized cohort ID
	Status       string          `bson:"status" json:"status"`
	Entries      []ScheduleEntry `bson:"entries" json:"entries"`
	RevisionDate string          `bson:"revision_date,omitempty" json:"revision_date,omitempty"`
	SourceFile   string          `bson:"source_file,omitempty" json:"source_file,omitempty"`

	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	LastUpdated time.Time `bson:"last_updated" json:"last_updated"`
}

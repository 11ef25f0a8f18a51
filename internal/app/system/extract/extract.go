// internal/app/system/extract/extract.go

// Package extract is the boundary to the external timetable extraction
// service. The service does the AI PDF parsing; this package only ships
// bytes out, decodes the structured result, and normalizes it into a
// CohortRecord at the one place raw extraction output is allowed to enter
// the system.
package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/sallehub/internal/app/system/normalize"
	"github.com/dalemusser/sallehub/internal/app/system/roster"
	"github.com/dalemusser/sallehub/internal/domain/models"
	"go.uber.org/zap"
)

// Schedule is the structured result for one uploaded file, exactly as the
// extraction service returns it. Day, timeSlot and room are opaque strings
// here; the matrix builder applies the inventory and slot checks later.
type Schedule struct {
	GroupName    string  `json:"groupName"`
	RevisionDate string  `json:"revisionDate,omitempty"`
	Entries      []Entry `json:"entries"`
}

// Entry is one raw schedule line from the extraction service.
type Entry struct {
	Day       string `json:"day"`
	TimeSlot  string `json:"timeSlot"`
	Room      string `json:"room"`
	Professor string `json:"professor"`
}

// Extractor is the collaborator contract. Implementations parse one file
// per call; batches are the caller's concern and are always sequential.
type Extractor interface {
	ParseSchedule(ctx context.Context, filename string, pdf []byte) (Schedule, error)
}

// Error wraps an extraction service failure with the file it occurred on.
// A batch aborts its remaining files on the first one of these; files
// ingested earlier in the batch stay committed.
type Error struct {
	File string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extraction failed for %q: %v", e.File, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ToRecord converts an extracted schedule into a store-ready CohortRecord.
// The group name is normalized here (raw names never reach the store)
// and each entry's day string is mapped onto the canonical labels.
// Unrecognized day strings stay on the entry verbatim for display but can
// never match a matrix day; they are logged so a misbehaving extraction
// prompt is visible instead of silently producing an empty grid.
func ToRecord(s Schedule, sourceFile string, now time.Time, log *zap.Logger) models.CohortRecord {
	id := normalize.CohortID(s.GroupName)

	entries := make([]models.ScheduleEntry, 0, len(s.Entries))
	for _, e := range s.Entries {
		day := e.Day
		if mapped, ok := roster.MapDay(e.Day); ok {
			day = mapped
		} else if log != nil {
			log.Warn("unmapped day string in extraction output",
				zap.String("cohort", id),
				zap.String("file", sourceFile),
				zap.String("day", e.Day))
		}
		entries = append(entries, models.ScheduleEntry{
			Cohort:    id,
			Room:      e.Room,
			Day:       day,
			TimeSlot:  e.TimeSlot,
			Professor: normalize.Name(e.Professor),
		})
	}

	return models.CohortRecord{
		ID:           id,
		Status:       models.StatusOK,
		Entries:      entries,
		RevisionDate: s.RevisionDate,
		SourceFile:   sourceFile,
		LastUpdated:  now.UTC(),
	}
}

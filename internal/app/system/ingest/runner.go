// internal/app/system/ingest/runner.go

// Package ingest runs multi-file ingestion batches. A batch is strictly
// sequential: files go through the extraction collaborator one at a time,
// each result is committed before the next file starts, and a conflict
// with a verified record suspends the whole batch until the caller
// confirms or cancels the overwrite. One batch per process at a time.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	cohortstore "github.com/dalemusser/sallehub/internal/app/store/cohorts"
	reportstore "github.com/dalemusser/sallehub/internal/app/store/reports"
	"github.com/dalemusser/sallehub/internal/app/system/auditlog"
	"github.com/dalemusser/sallehub/internal/app/system/extract"
	"github.com/dalemusser/sallehub/internal/app/system/integration"
	"github.com/dalemusser/sallehub/internal/app/system/normalize"
	"github.com/dalemusser/sallehub/internal/app/system/roster"
	"github.com/dalemusser/sallehub/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Batch states reported to the caller.
const (
	StateCompleted = "completed"
	StateAwaiting  = "awaiting_confirmation"
	StateAborted   = "aborted"
)

var (
	// ErrBatchInProgress rejects a new batch while another one is
	// suspended on an overwrite confirmation.
	ErrBatchInProgress = errors.New("an ingestion batch is awaiting overwrite confirmation")

	// ErrNoPendingOverwrite rejects confirm/cancel when nothing is
	// suspended.
	ErrNoPendingOverwrite = errors.New("no overwrite is awaiting confirmation")
)

// File is one uploaded timetable document.
type File struct {
	Name string
	Data []byte
}

// PendingOverwrite describes the suspension point of a batch: the cohort
// whose verified record would be replaced, and the file that produced the
// replacement.
type PendingOverwrite struct {
	Cohort string `json:"cohort"`
	File   string `json:"file"`
}

// Result is the outcome of Start, Confirm or Cancel.
type Result struct {
	BatchID  string                    `json:"batch_id"`
	State    string                    `json:"state"`
	Ingested []string                  `json:"ingested"`
	Pending  *PendingOverwrite         `json:"pending,omitempty"`
	Report   *models.IntegrationReport `json:"report,omitempty"`
}

// Runner is the single owner of batch state. Stores are mutated only from
// inside its mutex; derivations (matrix, report) happen on snapshots.
type Runner struct {
	cohorts   *cohortstore.Store
	reports   *reportstore.Store
	extractor extract.Extractor
	audit     *auditlog.Logger
	loc       *time.Location
	log       *zap.Logger

	mu      sync.Mutex
	pending *suspended
}

// suspended is the parked state of a batch stopped at a conflict.
type suspended struct {
	batchID   string
	record    models.CohortRecord
	file      string
	remaining []File
	ingested  []string
}

func NewRunner(cohorts *cohortstore.Store, reports *reportstore.Store, extractor extract.Extractor, audit *auditlog.Logger, loc *time.Location, logger *zap.Logger) *Runner {
	if loc == nil {
		loc = time.Local
	}
	return &Runner{
		cohorts:   cohorts,
		reports:   reports,
		extractor: extractor,
		audit:     audit,
		loc:       loc,
		log:       logger,
	}
}

// Start ingests files sequentially. It returns StateAwaiting (with the
// pending overwrite) when a file collides with a verified record,
// StateCompleted (with the batch report) when every file was processed,
// or StateAborted plus the extraction error when a file could not be
// parsed. Files committed before an abort stay committed.
func (r *Runner) Start(ctx context.Context, files []File) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending != nil {
		return Result{}, ErrBatchInProgress
	}

	batchID := uuid.NewString()
	r.log.Info("ingestion batch started",
		zap.String("batch_id", batchID),
		zap.Int("files", len(files)))

	return r.run(ctx, batchID, files, nil)
}

// Pending returns the suspension point of the current batch, if any.
func (r *Runner) Pending() (PendingOverwrite, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending == nil {
		return PendingOverwrite{}, false
	}
	return PendingOverwrite{Cohort: r.pending.record.ID, File: r.pending.file}, true
}

// Confirm applies the suspended overwrite and resumes the rest of the
// batch.
func (r *Runner) Confirm(ctx context.Context) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending == nil {
		return Result{}, ErrNoPendingOverwrite
	}
	p := r.pending
	r.pending = nil

	if err := r.cohorts.ForceUpsert(ctx, p.record); err != nil {
		// Leave the batch suspended so the caller can retry or cancel.
		r.pending = p
		return Result{}, fmt.Errorf("confirming overwrite for %s: %w", p.record.ID, err)
	}
	r.audit.CohortOverwritten(ctx, p.batchID, p.record.ID, p.file)

	return r.run(ctx, p.batchID, p.remaining, append(p.ingested, p.record.ID))
}

// Cancel declines the suspended overwrite, leaving the verified record as
// it was, and resumes the rest of the batch.
func (r *Runner) Cancel(ctx context.Context) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending == nil {
		return Result{}, ErrNoPendingOverwrite
	}
	p := r.pending
	r.pending = nil

	r.audit.OverwriteDeclined(ctx, p.batchID, p.record.ID)

	return r.run(ctx, p.batchID, p.remaining, p.ingested)
}

// run processes files in order until done, suspended, or aborted. Caller
// holds the mutex.
func (r *Runner) run(ctx context.Context, batchID string, files []File, ingested []string) (Result, error) {
	for i, f := range files {
		schedule, err := r.extractor.ParseSchedule(ctx, f.Name, f.Data)
		if err != nil {
			r.recordUnreadable(ctx, f.Name)
			r.audit.BatchAborted(ctx, batchID, f.Name, err.Error())
			r.log.Error("extraction failed, aborting batch remainder",
				zap.String("batch_id", batchID),
				zap.String("file", f.Name),
				zap.Error(err))
			return Result{BatchID: batchID, State: StateAborted, Ingested: ingested}, err
		}

		rec := extract.ToRecord(schedule, f.Name, time.Now(), r.log)

		switch err := r.cohorts.Upsert(ctx, rec); {
		case err == nil:
			ingested = append(ingested, rec.ID)
			r.audit.CohortIngested(ctx, batchID, rec.ID, f.Name)

		case errors.Is(err, cohortstore.ErrOverwriteConflict):
			r.pending = &suspended{
				batchID:   batchID,
				record:    rec,
				file:      f.Name,
				remaining: files[i+1:],
				ingested:  ingested,
			}
			r.log.Info("batch suspended on overwrite confirmation",
				zap.String("batch_id", batchID),
				zap.String("cohort", rec.ID))
			return Result{
				BatchID:  batchID,
				State:    StateAwaiting,
				Ingested: ingested,
				Pending:  &PendingOverwrite{Cohort: rec.ID, File: f.Name},
			}, nil

		default:
			r.audit.BatchAborted(ctx, batchID, f.Name, err.Error())
			return Result{BatchID: batchID, State: StateAborted, Ingested: ingested}, err
		}
	}

	report, err := r.finish(ctx, batchID, ingested)
	if err != nil {
		return Result{BatchID: batchID, State: StateCompleted, Ingested: ingested}, err
	}
	return Result{BatchID: batchID, State: StateCompleted, Ingested: ingested, Report: &report}, nil
}

// finish audits the batch against the roster and persists the report.
func (r *Runner) finish(ctx context.Context, batchID string, ingested []string) (models.IntegrationReport, error) {
	rep := integration.Audit(ingested, roster.Checklist(), time.Now(), r.loc)
	rep.BatchID = batchID

	saved, err := r.reports.Save(ctx, rep)
	if err != nil {
		r.log.Error("saving integration report failed",
			zap.String("batch_id", batchID), zap.Error(err))
		return models.IntegrationReport{}, err
	}
	r.audit.BatchCompleted(ctx, batchID, len(ingested))
	return saved, nil
}

// recordUnreadable leaves an UNREADABLE record behind for a file the
// extraction service could not parse, so the cohort shows up in the audit
// view instead of vanishing. A verified record for the same cohort is
// never downgraded.
func (r *Runner) recordUnreadable(ctx context.Context, filename string) {
	id := normalize.CohortID(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if id == "" {
		return
	}
	rec := models.CohortRecord{
		ID:          id,
		Status:      models.StatusUnreadable,
		SourceFile:  filename,
		LastUpdated: time.Now().UTC(),
	}
	if err := r.cohorts.Upsert(ctx, rec); err != nil && !errors.Is(err, cohortstore.ErrOverwriteConflict) {
		r.log.Warn("could not record unreadable cohort",
			zap.String("cohort", id), zap.Error(err))
	}
}

// internal/app/system/auditlog/logger.go

// Package auditlog records operational events (what each ingestion batch
// changed, overwrite conflict resolutions, problem lifecycle actions)
// to both the structured log and the ingestion_events collection. A failed
// audit write never fails the operation it describes; it is logged and
// dropped.
package auditlog

import (
	"context"
	"fmt"

	"github.com/dalemusser/sallehub/internal/app/store/audit"
	"github.com/dalemusser/sallehub/internal/domain/models"
	"go.uber.org/zap"
)

// Logger fans audit events out to zap and the audit store.
type Logger struct {
	store *audit.Store
	log   *zap.Logger
}

func New(store *audit.Store, zapLog *zap.Logger) *Logger {
	return &Logger{store: store, log: zapLog}
}

func (l *Logger) record(ctx context.Context, ev models.IngestionEvent) {
	l.log.Info("audit",
		zap.String("kind", ev.Kind),
		zap.String("cohort", ev.Cohort),
		zap.String("batch_id", ev.BatchID),
		zap.String("detail", ev.Detail),
	)
	if l.store == nil {
		return
	}
	if err := l.store.Log(ctx, ev); err != nil {
		l.log.Error("audit event write failed", zap.Error(err), zap.String("kind", ev.Kind))
	}
}

// CohortIngested records a successful first-time or unconditional ingest.
func (l *Logger) CohortIngested(ctx context.Context, batchID, cohort, file string) {
	l.record(ctx, models.IngestionEvent{
		Kind: models.EventCohortIngested, BatchID: batchID, Cohort: cohort, File: file,
	})
}

// CohortOverwritten records a confirmed overwrite of a verified record.
func (l *Logger) CohortOverwritten(ctx context.Context, batchID, cohort, file string) {
	l.record(ctx, models.IngestionEvent{
		Kind: models.EventCohortOverwritten, BatchID: batchID, Cohort: cohort, File: file,
	})
}

// OverwriteDeclined records a cancelled overwrite confirmation.
func (l *Logger) OverwriteDeclined(ctx context.Context, batchID, cohort string) {
	l.record(ctx, models.IngestionEvent{
		Kind: models.EventOverwriteDeclined, BatchID: batchID, Cohort: cohort,
	})
}

// BatchCompleted records a batch that ran to the end of its file list.
func (l *Logger) BatchCompleted(ctx context.Context, batchID string, ingested int) {
	l.record(ctx, models.IngestionEvent{
		Kind: models.EventBatchCompleted, BatchID: batchID,
		Detail: fmt.Sprintf("%d cohorts ingested", ingested),
	})
}

// BatchAborted records a batch cut short by an extraction failure.
func (l *Logger) BatchAborted(ctx context.Context, batchID, file, reason string) {
	l.record(ctx, models.IngestionEvent{
		Kind: models.EventBatchAborted, BatchID: batchID, File: file, Detail: reason,
	})
}

// ProblemReported records a new facility problem.
func (l *Logger) ProblemReported(ctx context.Context, room, problemID string) {
	l.record(ctx, models.IngestionEvent{
		Kind: models.EventProblemReported, Room: room, Detail: problemID,
	})
}

// ProblemUpdated records a problem status transition.
func (l *Logger) ProblemUpdated(ctx context.Context, problemID, status string) {
	l.record(ctx, models.IngestionEvent{
		Kind: models.EventProblemUpdated, Detail: problemID + " -> " + status,
	})
}

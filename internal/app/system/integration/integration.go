// internal/app/system/integration/integration.go

// Package integration compares what a batch actually ingested against the
// expected cohort roster and produces the integration report shown after
// every sync.
package integration

import (
	"math"
	"time"

	"github.com/dalemusser/sallehub/internal/app/system/normalize"
	"github.com/dalemusser/sallehub/internal/domain/models"
)

// ReportTimeFormat is the display format for report timestamps. Local
// campus wall clock, day first.
const ReportTimeFormat = "02/01/2006 15:04:05"

// Audit builds the report for one ingestion batch. updated is the list of
// cohort IDs the batch actually ingested (one invocation per batch, not per
// process); roster is the full expected checklist in canonical order.
//
// IDs in updated are normalized and deduplicated before matching, so
// callers may pass them as collected. Missing cohorts preserve roster
// order. okCount + missingCount always equals len(roster) when every
// updated ID is on the roster.
func Audit(updated []string, roster []string, at time.Time, loc *time.Location) models.IntegrationReport {
	seen := make(map[string]struct{}, len(updated))
	deduped := make([]string, 0, len(updated))
	for _, id := range updated {
		id = normalize.CohortID(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}

	missing := make([]string, 0, len(roster))
	for _, id := range roster {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}

	if loc == nil {
		loc = time.Local
	}

	return models.IntegrationReport{
		Timestamp:      at.In(loc).Format(ReportTimeFormat),
		TotalExpected:  len(roster),
		OKCount:        len(deduped),
		MissingCount:   len(roster) - len(deduped),
		MissingCohorts: missing,
		UpdatedCohorts: deduped,
		CreatedAt:      at.UTC(),
	}
}

// ComplianceRatio is the rounded percentage of expected cohorts that have
// an active schedule on file. totalExpected comes from the roster, which is
// non-empty by construction; a zero total is a configuration error and
// reports 0 rather than dividing.
func ComplianceRatio(activeCount, totalExpected int) int {
	if totalExpected <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(activeCount) / float64(totalExpected)))
}

// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureCohortRecords(ctx, db); err != nil {
		problems = append(problems, "cohort_records: "+err.Error())
	}
	if err := ensureReportedProblems(ctx, db); err != nil {
		problems = append(problems, "reported_problems: "+err.Error())
	}
	if err := ensureIntegrationReports(ctx, db); err != nil {
		problems = append(problems, "integration_reports: "+err.Error())
	}
	if err := ensureIngestionEvents(ctx, db); err != nil {
		problems = append(problems, "ingestion_events: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

// ensureIndexSet reconciles the desired indexes for one collection: an
// index with the same keys and options is reused, one with different
// options (or a stale name) is dropped and recreated, and missing indexes
// are created. Errors are aggregated so one bad index does not hide the
// rest.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing, err := listIndexes(ctx, coll)
	if err != nil {
		return fmt.Errorf("listing indexes: %w", err)
	}

	var errs []string
	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		desiredSig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) && (desiredName == "" || ex.Name == desiredName) {
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig))
				continue
			}
			// Options or name drifted. Drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	out := map[string]existingIndex{} // key signature -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out, cur.Err()
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureCohortRecords(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("cohort_records")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Matrix and report builders read all OK records in insertion order.
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "created_at", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_cohorts_status_created_id"),
		},
		// Full-store iteration order for the audit view.
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_cohorts_created_id"),
		},
	})
}

func ensureReportedProblems(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("reported_problems")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Active-problem listing: everything not yet handled, oldest first.
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "created_at", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_problems_status_created_id"),
		},
		// Per-room incident overlay lookup on the occupancy grid.
		{
			Keys:    bson.D{{Key: "room", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_problems_room_created"),
		},
	})
}

func ensureIntegrationReports(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("integration_reports")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Latest-report lookup.
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_reports_created_desc"),
		},
		{
			Keys:    bson.D{{Key: "batch_id", Value: 1}},
			Options: options.Index().SetName("idx_reports_batch"),
		},
	})
}

func ensureIngestionEvents(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("ingestion_events")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Per-batch audit review, oldest first.
		{
			Keys:    bson.D{{Key: "batch_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_events_batch_created"),
		},
		// Recent-activity feed, newest first.
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_events_created_desc"),
		},
	})
}

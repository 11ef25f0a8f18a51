package indexes_test

import (
	"testing"

	"github.com/dalemusser/sallehub/internal/app/system/indexes"
	"github.com/dalemusser/sallehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesExpectedIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	expected := map[string][]string{
		"cohort_records":      {"idx_cohorts_status_created_id", "idx_cohorts_created_id"},
		"reported_problems":   {"idx_problems_status_created_id", "idx_problems_room_created"},
		"integration_reports": {"idx_reports_created_desc", "idx_reports_batch"},
		"ingestion_events":    {"idx_events_batch_created", "idx_events_created_desc"},
	}

	for coll, names := range expected {
		cur, err := db.Collection(coll).Indexes().List(ctx)
		if err != nil {
			t.Fatalf("%s: list indexes: %v", coll, err)
		}

		have := map[string]bool{}
		for cur.Next(ctx) {
			var idx bson.M
			if err := cur.Decode(&idx); err != nil {
				continue
			}
			if name, ok := idx["name"].(string); ok {
				have[name] = true
			}
		}
		cur.Close(ctx)

		for _, name := range names {
			if !have[name] {
				t.Errorf("%s: index %s missing (have %v)", coll, name, have)
			}
		}
	}
}

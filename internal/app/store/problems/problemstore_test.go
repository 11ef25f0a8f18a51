package problemstore_test

import (
	"errors"
	"testing"

	problemstore "github.com/dalemusser/sallehub/internal/app/store/problems"
	"github.com/dalemusser/sallehub/internal/domain/models"
	"github.com/dalemusser/sallehub/internal/testutil"
)

func TestStore_Report(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := problemstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, err := store.Report(ctx, "DIA-SN 5", "Projector dead", models.PriorityUrgent)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if p.ID == "" {
		t.Error("expected an id")
	}
	if p.Status != models.ProblemReported {
		t.Errorf("status = %q, want Reported", p.Status)
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected CreatedAt set")
	}
}

func TestStore_Report_BadPriority(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := problemstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Report(ctx, "DIA-SN 5", "x", "Catastrophic")
	if !errors.Is(err, problemstore.ErrBadPriority) {
		t.Errorf("expected ErrBadPriority, got %v", err)
	}
}

func TestStore_UniqueIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := problemstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		p, err := store.Report(ctx, "DIA-SN 1", "x", models.PriorityImportant)
		if err != nil {
			t.Fatalf("Report failed: %v", err)
		}
		if _, dup := seen[p.ID]; dup {
			t.Fatalf("duplicate problem id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
}

func TestStore_HandledIsTerminal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := problemstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, err := store.Report(ctx, "DIA-SN 5", "Broken window", models.PriorityMostUrgent)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	if err := store.UpdateStatus(ctx, p.ID, models.ProblemHandled); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	active, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	for _, got := range active {
		if got.ID == p.ID {
			t.Error("handled problem must be gone from the ledger")
		}
	}

	if _, err := store.Get(ctx, p.ID); !errors.Is(err, problemstore.ErrUnknownProblem) {
		t.Errorf("expected ErrUnknownProblem after handling, got %v", err)
	}
}

func TestStore_UpdateStatus_InPlace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := problemstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, err := store.Report(ctx, "DIA-SDC 2", "AC leaking", models.PriorityImportant)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	if err := store.UpdateStatus(ctx, p.ID, models.ProblemWaiting); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	got, err := store.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != models.ProblemWaiting {
		t.Errorf("status = %q, want Waiting", got.Status)
	}
	if got.Description != "AC leaking" || got.Priority != models.PriorityImportant {
		t.Error("other fields must be unchanged by a status update")
	}
}

func TestStore_UpdateStatus_Unknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := problemstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.UpdateStatus(ctx, "nope", models.ProblemWaiting); !errors.Is(err, problemstore.ErrUnknownProblem) {
		t.Errorf("expected ErrUnknownProblem, got %v", err)
	}
	if err := store.UpdateStatus(ctx, "nope", models.ProblemHandled); !errors.Is(err, problemstore.ErrUnknownProblem) {
		t.Errorf("expected ErrUnknownProblem for handled-unknown, got %v", err)
	}
}

func TestStore_ListActive_Order(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := problemstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rooms := []string{"DIA-SN 1", "DIA-SN 2", "DIA-SN 3"}
	for _, room := range rooms {
		if _, err := store.Report(ctx, room, "x", models.PriorityImportant); err != nil {
			t.Fatalf("Report failed: %v", err)
		}
	}

	active, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(active) != 3 {
		t.Fatalf("expected 3 problems, got %d", len(active))
	}
}

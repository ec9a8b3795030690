package database

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatal(err)
	}

	return db
}

func TestInsertAndListRuns(t *testing.T) {
	repo := NewRunRepository(newTestDB(t))

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	runs := []Run{
		{ID: "run-1", Pipeline: "summarize", Status: "ok", UpdatedPages: 2, StartedAt: base},
		{ID: "run-2", Pipeline: "order_ingest", Status: "ok", CreatedPages: 3, StartedAt: base.Add(time.Hour)},
		{ID: "run-3", Pipeline: "summarize", Status: "error", Message: "notion API error: 500", StartedAt: base.Add(2 * time.Hour)},
	}

	for _, run := range runs {
		if err := repo.InsertRun(run); err != nil {
			t.Fatal(err)
		}
	}

	count, err := repo.GetRunCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("Expected 3 runs, got %d", count)
	}

	recent, err := repo.ListRecent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(recent))
	}

	// Most recent first
	if recent[0].ID != "run-3" {
		t.Errorf("Expected run-3 first, got %s", recent[0].ID)
	}
	if recent[0].Message != "notion API error: 500" {
		t.Errorf("Expected error message preserved, got %q", recent[0].Message)
	}
	if recent[1].CreatedPages != 3 {
		t.Errorf("Expected created pages 3, got %d", recent[1].CreatedPages)
	}
}

func TestListRecentEmpty(t *testing.T) {
	repo := NewRunRepository(newTestDB(t))

	runs, err := repo.ListRecent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected no runs, got %d", len(runs))
	}
}

package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/campsite/internal/models"
	"github.com/mmynk/campsite/internal/storage"
)

func day(d int) time.Time {
	return time.Date(2026, time.November, d, 0, 0, 0, 0, time.UTC)
}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "campsite-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func insertGroup(t *testing.T, store *SQLiteStore, groupID string, dates ...time.Time) []models.ReservationDay {
	t.Helper()

	var inserted []models.ReservationDay
	err := store.WithinTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		for _, d := range dates {
			row := models.ReservationDay{
				GroupID:  groupID,
				Occupant: models.Occupant{Name: "Alice", LastName: "Smith", Email: "alice@example.com"},
				Date:     d,
			}
			if err := tx.InsertDay(ctx, &row); err != nil {
				return err
			}
			inserted = append(inserted, row)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("insert group %s failed: %v", groupID, err)
	}
	return inserted
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	t.Run("InsertDay assigns IDs and round-trips fields", func(t *testing.T) {
		store := newTestStore(t)
		inserted := insertGroup(t, store, "g1", day(2), day(3))

		if inserted[0].ID == 0 || inserted[1].ID == 0 {
			t.Fatal("expected row IDs to be assigned")
		}

		days, err := store.ListGroupDays(ctx, "g1")
		if err != nil {
			t.Fatalf("ListGroupDays failed: %v", err)
		}
		if len(days) != 2 {
			t.Fatalf("expected 2 days, got %d", len(days))
		}
		if !days[0].Date.Equal(day(2)) || !days[1].Date.Equal(day(3)) {
			t.Errorf("unexpected dates: %v, %v", days[0].Date, days[1].Date)
		}
		if days[0].Occupant.Email != "alice@example.com" || days[0].Occupant.LastName != "Smith" {
			t.Errorf("occupant mismatch: %+v", days[0].Occupant)
		}
	})

	t.Run("duplicate date is rejected and rolls back the whole transaction", func(t *testing.T) {
		store := newTestStore(t)
		insertGroup(t, store, "g1", day(5))

		err := store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
			for _, d := range []time.Time{day(4), day(5), day(6)} {
				row := models.ReservationDay{GroupID: "g2", Date: d}
				if err := tx.InsertDay(ctx, &row); err != nil {
					return err
				}
			}
			return nil
		})
		if !errors.Is(err, storage.ErrDuplicateDate) {
			t.Fatalf("expected ErrDuplicateDate, got %v", err)
		}

		days, err := store.ListGroupDays(ctx, "g2")
		if err != nil {
			t.Fatalf("ListGroupDays failed: %v", err)
		}
		if len(days) != 0 {
			t.Errorf("expected rolled back group to have no days, got %d", len(days))
		}
	})

	t.Run("ListDays filters by inclusive range", func(t *testing.T) {
		store := newTestStore(t)
		insertGroup(t, store, "g1", day(1), day(2))
		insertGroup(t, store, "g2", day(10))
		insertGroup(t, store, "g3", day(20), day(21), day(22))

		days, err := store.ListDays(ctx, day(2), day(20))
		if err != nil {
			t.Fatalf("ListDays failed: %v", err)
		}
		if len(days) != 3 {
			t.Fatalf("expected 3 days in range, got %d", len(days))
		}
		for i := 1; i < len(days); i++ {
			if !days[i-1].Date.Before(days[i].Date) {
				t.Errorf("days not ordered: %v then %v", days[i-1].Date, days[i].Date)
			}
		}
	})

	t.Run("unknown group yields no days", func(t *testing.T) {
		store := newTestStore(t)
		days, err := store.ListGroupDays(ctx, "nonexistent-id")
		if err != nil {
			t.Fatalf("ListGroupDays failed: %v", err)
		}
		if len(days) != 0 {
			t.Errorf("expected no days, got %d", len(days))
		}
	})

	t.Run("RewriteDate moves a row and enforces uniqueness", func(t *testing.T) {
		store := newTestStore(t)
		g1 := insertGroup(t, store, "g1", day(3))
		insertGroup(t, store, "g2", day(8))

		err := store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
			return tx.RewriteDate(ctx, g1[0].ID, day(4))
		})
		if err != nil {
			t.Fatalf("RewriteDate failed: %v", err)
		}

		err = store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
			return tx.RewriteDate(ctx, g1[0].ID, day(8))
		})
		if !errors.Is(err, storage.ErrDuplicateDate) {
			t.Fatalf("expected ErrDuplicateDate, got %v", err)
		}

		err = store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
			return tx.RewriteDate(ctx, 9999, day(12))
		})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}

		days, _ := store.ListGroupDays(ctx, "g1")
		if len(days) != 1 || !days[0].Date.Equal(day(4)) {
			t.Errorf("expected g1 on day 4, got %+v", days)
		}
	})

	t.Run("DeleteGroupDays removes only the group", func(t *testing.T) {
		store := newTestStore(t)
		insertGroup(t, store, "g1", day(1), day(2), day(3))
		insertGroup(t, store, "g2", day(4))

		var deleted int
		err := store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
			var err error
			deleted, err = tx.DeleteGroupDays(ctx, "g1")
			return err
		})
		if err != nil {
			t.Fatalf("DeleteGroupDays failed: %v", err)
		}
		if deleted != 3 {
			t.Errorf("expected 3 deleted rows, got %d", deleted)
		}

		remaining, _ := store.ListDays(ctx, day(1), day(30))
		if len(remaining) != 1 || remaining[0].GroupID != "g2" {
			t.Errorf("expected only g2 to remain, got %+v", remaining)
		}
	})

	t.Run("error from callback rolls back", func(t *testing.T) {
		store := newTestStore(t)
		insertGroup(t, store, "g1", day(1))

		boom := errors.New("boom")
		err := store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
			if _, err := tx.DeleteGroupDays(ctx, "g1"); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected callback error to pass through, got %v", err)
		}

		days, _ := store.ListGroupDays(ctx, "g1")
		if len(days) != 1 {
			t.Errorf("expected delete to be rolled back, got %d days", len(days))
		}
	})

	t.Run("reopening keeps data", func(t *testing.T) {
		tempDir := t.TempDir()
		path := filepath.Join(tempDir, "nested", "campsite.db")

		first, err := New(path)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		insertGroup(t, first, "g1", day(7))
		first.Close()

		second, err := New(path)
		if err != nil {
			t.Fatalf("reopen failed: %v", err)
		}
		defer second.Close()

		days, err := second.ListGroupDays(ctx, "g1")
		if err != nil {
			t.Fatalf("ListGroupDays failed: %v", err)
		}
		if len(days) != 1 {
			t.Errorf("expected persisted day, got %d", len(days))
		}
	})
}

func TestNewRequiresPath(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Error("expected error for empty path")
	}
}

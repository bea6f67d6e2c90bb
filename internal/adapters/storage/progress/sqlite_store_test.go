package progress

import (
	"context"
	"errors"
	"testing"

	"coursereport/internal/adapters/storage"
	domain "coursereport/internal/domain/progress"
)

// TestSQLiteStore_GetSave round-trips a progress record.
func TestSQLiteStore_GetSave(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	want := domain.Record{Completed: 3, Total: 4, Status: domain.StatusInProgress}
	if err := store.Save(ctx, 1, 5, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Get(ctx, 1, 5)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

// TestSQLiteStore_Get_NotFound wraps storage.ErrNotFound.
func TestSQLiteStore_Get_NotFound(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	_, err := store.Get(context.Background(), 1, 5)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want storage.ErrNotFound", err)
	}
}

// TestSQLiteStore_Get_MalformedCounters coerces bad values to zero.
func TestSQLiteStore_Get_MalformedCounters(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Exec("INSERT INTO course_progress (user_id, course_id, completed, total, status) VALUES (1, 5, 'lots', NULL, NULL)"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := NewSQLiteStore(db).Get(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := domain.Record{}
	if got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

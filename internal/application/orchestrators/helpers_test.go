package orchestrators

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"coursereport/internal/adapters/storage"
	courseStore "coursereport/internal/adapters/storage/course"
	enrollmentStore "coursereport/internal/adapters/storage/enrollment"
	progressStore "coursereport/internal/adapters/storage/progress"
	userStore "coursereport/internal/adapters/storage/user"
	"coursereport/internal/application/projections"
)

type testStores struct {
	courses     *courseStore.SQLiteStore
	users       *userStore.SQLiteStore
	enrollments *enrollmentStore.SQLiteStore
	progress    *progressStore.SQLiteStore
}

// openSeededStores creates in-memory SQLite stores loaded with the demo data set.
func openSeededStores(t *testing.T) testStores {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	s := testStores{
		courses:     courseStore.NewSQLiteStore(db),
		users:       userStore.NewSQLiteStore(db),
		enrollments: enrollmentStore.NewSQLiteStore(db),
		progress:    progressStore.NewSQLiteStore(db),
	}
	err = ExecuteSeedDemo(context.Background(), SeedDemoDeps{
		CourseStore:     s.courses,
		UserStore:       s.users,
		EnrollmentStore: s.enrollments,
		ProgressStore:   s.progress,
		Now:             func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("ExecuteSeedDemo: %v", err)
	}
	return s
}

func (s testStores) reportDeps() projections.GetEnrollmentReportDeps {
	return projections.GetEnrollmentReportDeps{
		EnrollmentStore: s.enrollments,
		UserStore:       s.users,
		ProgressStore:   s.progress,
	}
}

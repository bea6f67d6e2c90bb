package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "modernc.org/sqlite"

	web "coursereport/internal/adapters/http"
	"coursereport/internal/adapters/storage"
	courseStore "coursereport/internal/adapters/storage/course"
	enrollmentStore "coursereport/internal/adapters/storage/enrollment"
	progressStore "coursereport/internal/adapters/storage/progress"
	"coursereport/internal/adapters/storage/redisstore"
	userStore "coursereport/internal/adapters/storage/user"
	"coursereport/internal/application/orchestrators"
	"coursereport/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// backend bundles the stores of one data store with its lifecycle hooks.
type backend struct {
	stores *web.Stores
	seed   orchestrators.SeedDemoDeps
	health func(ctx context.Context) error
	close  func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx := context.Background()
	var b backend
	switch cfg.Store {
	case config.StoreRedis:
		b, err = openRedis(ctx, cfg)
	default:
		b, err = openSQLite(cfg)
	}
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.Store, err)
	}
	defer b.close()

	// Seed demo data for development only
	if !cfg.Production() {
		if err := orchestrators.ExecuteSeedDemo(ctx, b.seed); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
		log.Println("Demo seed data loaded (dev mode)")
	}

	csrfKey, generated, err := cfg.CSRFKey()
	if err != nil {
		log.Fatal(err)
	}
	if generated {
		log.Println("WARNING: using random CSRF key (forms won't survive restart). Set REPORT_CSRF_KEY for production.")
	}

	mux := web.NewMux(b.stores, web.Options{
		CSRFKey:        csrfKey,
		Production:     cfg.Production(),
		TrustedOrigins: cfg.TrustedOrigins,
		SlowRequestMs:  cfg.SlowRequestMs,
		PageNote:       cfg.PageNote,
		Health:         b.health,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("Course report %s starting on %s (env=%s, store=%s)", version, cfg.Addr, cfg.Env, cfg.Store)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// openSQLite opens the database with WAL mode, foreign keys and busy timeout, and creates the schema.
func openSQLite(cfg config.Config) (backend, error) {
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return backend{}, err
	}

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		db.Close()
		return backend{}, err
	}
	if err := storage.InitDB(db); err != nil {
		db.Close()
		return backend{}, err
	}
	log.Println("Database initialized successfully!")

	timedDB := storage.NewTimedDB(db, cfg.SlowQueryMs)
	courses := courseStore.NewSQLiteStore(timedDB)
	users := userStore.NewSQLiteStore(timedDB)
	enrollments := enrollmentStore.NewSQLiteStore(timedDB)
	progress := progressStore.NewSQLiteStore(timedDB)

	return backend{
		stores: &web.Stores{
			CourseStore:     courses,
			EnrollmentStore: enrollments,
			UserStore:       users,
			ProgressStore:   progress,
		},
		seed: orchestrators.SeedDemoDeps{
			CourseStore:     courses,
			UserStore:       users,
			EnrollmentStore: enrollments,
			ProgressStore:   progress,
		},
		health: timedDB.PingContext,
		close: func() error {
			slog.Info("db_stats", "queries", timedDB.Queries(), "slow_queries", timedDB.SlowQueries())
			return timedDB.Close()
		},
	}, nil
}

// openRedis connects to a Redis data store that uses the redisstore key layout.
func openRedis(ctx context.Context, cfg config.Config) (backend, error) {
	client, err := redisstore.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return backend{}, err
	}
	log.Printf("Connected to Redis at %s (db=%d)", cfg.RedisAddr, cfg.RedisDB)

	courses := redisstore.NewCourseStore(client)
	users := redisstore.NewUserStore(client)
	enrollments := redisstore.NewEnrollmentStore(client)
	progress := redisstore.NewProgressStore(client)

	return backend{
		stores: &web.Stores{
			CourseStore:     courses,
			EnrollmentStore: enrollments,
			UserStore:       users,
			ProgressStore:   progress,
		},
		seed: orchestrators.SeedDemoDeps{
			CourseStore:     courses,
			UserStore:       users,
			EnrollmentStore: enrollments,
			ProgressStore:   progress,
		},
		health: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		close:  client.Close,
	}, nil
}

package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/db"
	"github.com/persistorai/rdf2graph/internal/dbpool"
	"github.com/persistorai/rdf2graph/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL, 4)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	if _, err := db.RunMigrations(ctx, pool, log, nil); err != nil {
		t.Fatalf("migrating test DB: %v", err)
	}

	sharedEnv = &testEnv{
		pool: pool,
		log:  log,
	}

	return sharedEnv
}

// setupTestStore returns a Store over an emptied graph, emptied again after the test.
func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	env := getTestEnv(t)
	s := store.New(store.Base{Pool: env.pool, Log: env.log})

	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("clearing graph: %v", err)
	}

	t.Cleanup(func() {
		s.Clear(context.Background()) //nolint:errcheck // best-effort cleanup
	})

	return s
}

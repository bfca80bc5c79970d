// Package store provides the PostgreSQL implementation of the graph store.
//
// Each store owns one concern (nodes, edges, traversal, administration) and
// embeds the shared pool and logger via the Base struct. Stores never import
// each other; shared logic lives in this file or in scan.go and helpers.go.
// Every method runs in its own short transaction.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/rdf2graph/internal/dbpool"
	"github.com/persistorai/rdf2graph/internal/domain"
)

const defaultQueryTimeout = 30 * time.Second

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// beginTx starts a read-write transaction.
func (b *Base) beginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := b.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	return tx, nil
}

// beginReadTx starts a read-only transaction.
func (b *Base) beginReadTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := b.Pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("beginning read transaction: %w", err)
	}

	return tx, nil
}

// Store combines the focused stores into a domain.GraphStore.
type Store struct {
	*NodeStore
	*EdgeStore
	*TraversalStore
	*AdminStore
}

var _ domain.GraphStore = (*Store)(nil)

// New returns a Store whose parts share base.
func New(base Base) *Store {
	return &Store{
		NodeStore:      NewNodeStore(base),
		EdgeStore:      NewEdgeStore(base),
		TraversalStore: NewTraversalStore(base),
		AdminStore:     NewAdminStore(base),
	}
}
